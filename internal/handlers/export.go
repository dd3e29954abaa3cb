package handlers

import (
	"encoding/csv"
	"io"
	"net/http"
	"strconv"

	"fivec_analysis/internal/repository/database"
)

var exportHeader = []string{
	"borrower_id", "borrower_name", "borrower_type", "industry", "loan_amount",
	"character_score", "capacity_score", "capital_score", "collateral_score",
	"conditions_score", "total_score", "risk_level", "recommendation",
}

// Export streams one run's scores as a CSV download.
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "use GET"})
		return
	}

	runID := r.URL.Query().Get("run_id")
	if runID == "" {
		h.JSON(w, http.StatusBadRequest, map[string]string{"error": "run_id is required"})
		return
	}

	rows, err := h.Scores.ListByRun(r.Context(), runID)
	if err != nil {
		h.Logger.Printf("[EXPORT][ERR] list scores: %v", err)
		h.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if len(rows) == 0 {
		h.JSON(w, http.StatusNotFound, map[string]string{"error": `no scores for run "` + runID + `"`})
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="scores-`+runID+`.csv"`)
	if err := writeScoresCSV(w, rows); err != nil {
		h.Logger.Printf("[EXPORT][ERR] write csv: %v", err)
	}
}

func writeScoresCSV(w io.Writer, rows []database.ScoreRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, row := range rows {
		loan := ""
		if row.LoanAmount != nil {
			loan = strconv.FormatFloat(*row.LoanAmount, 'f', -1, 64)
		}
		record := []string{
			row.BorrowerID, row.BorrowerName, row.BorrowerType, row.Industry, loan,
			formatScore(row.Character), formatScore(row.Capacity), formatScore(row.Capital),
			formatScore(row.Collateral), formatScore(row.Conditions), formatScore(row.Total),
			row.RiskLevel, row.Recommendation,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
