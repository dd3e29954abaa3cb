package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"fivec_analysis/internal/config/connections/postgres"
)

// ScoresRepo persists per-borrower score records per analysis run.
type ScoresRepo struct {
	pg    *postgres.Postgres
	table string
}

func NewScoresRepo(pg *postgres.Postgres, table string) *ScoresRepo {
	if table == "" {
		table = "borrower_scores"
	}
	return &ScoresRepo{pg: pg, table: table}
}

type ScoreRow struct {
	ID             string
	RunID          string
	BorrowerID     string
	BorrowerName   string
	BorrowerType   string
	Industry       string
	LoanAmount     *float64
	Character      float64
	Capacity       float64
	Capital        float64
	Collateral     float64
	Conditions     float64
	Total          float64
	RiskLevel      string
	Recommendation string
	CreatedAt      *time.Time
}

func (r *ScoresRepo) InsertBatch(ctx context.Context, rows []ScoreRow) error {
	if len(rows) == 0 {
		return nil
	}

	query := `
		INSERT INTO ` + r.table + ` (
			id, run_id, borrower_id, borrower_name, borrower_type, industry,
			loan_amount, character_score, capacity_score, capital_score,
			collateral_score, conditions_score, total_score,
			risk_level, recommendation, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12, $13,
			$14, $15, NOW()
		)`

	batch := &pgx.Batch{}
	for _, row := range rows {
		id := row.ID
		if id == "" {
			id = uuid.NewString()
		}
		batch.Queue(query,
			id, row.RunID, row.BorrowerID, row.BorrowerName, row.BorrowerType, row.Industry,
			row.LoanAmount, row.Character, row.Capacity, row.Capital,
			row.Collateral, row.Conditions, row.Total,
			row.RiskLevel, row.Recommendation,
		)
	}

	br := r.pg.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range rows {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *ScoresRepo) ListByRun(ctx context.Context, runID string) ([]ScoreRow, error) {
	query := `
		SELECT id, run_id, borrower_id, borrower_name, borrower_type, industry,
			loan_amount, character_score, capacity_score, capital_score,
			collateral_score, conditions_score, total_score,
			risk_level, recommendation, created_at
		FROM ` + r.table + `
		WHERE run_id = $1
		ORDER BY created_at, id`

	prows, err := r.pg.Pool.Query(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer prows.Close()

	var out []ScoreRow
	for prows.Next() {
		var row ScoreRow
		if err := prows.Scan(
			&row.ID, &row.RunID, &row.BorrowerID, &row.BorrowerName, &row.BorrowerType, &row.Industry,
			&row.LoanAmount, &row.Character, &row.Capacity, &row.Capital,
			&row.Collateral, &row.Conditions, &row.Total,
			&row.RiskLevel, &row.Recommendation, &row.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, prows.Err()
}
