package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"fivec_analysis/internal/adapters/opener"
	"fivec_analysis/internal/models"
	"fivec_analysis/internal/repository/database"
	"fivec_analysis/internal/repository/runs"
	"fivec_analysis/internal/services/ingest"
	"fivec_analysis/internal/services/normalizer"
	"fivec_analysis/internal/services/scoring"
	auth "fivec_analysis/internal/transport/auth"
)

type analyzeRequest struct {
	ConsumerPath string           `json:"consumer_path"`
	SMEPath      string           `json:"sme_path"`
	Scenario     string           `json:"scenario,omitempty"`
	Weights      *scoring.Weights `json:"weights,omitempty"`
	Threshold    *float64         `json:"threshold,omitempty"`
	Seed         *int64           `json:"seed,omitempty"`
	TimeoutMin   int              `json:"timeout_minutes,omitempty"`
}

type scoredBorrower struct {
	models.ScoreRecord
	Risk scoring.RiskAssessment `json:"risk"`
}

type segmentation struct {
	Approved     int     `json:"approved"`
	BelowCutoff  int     `json:"below_cutoff"`
	AverageTotal float64 `json:"average_total"`
}

// Analyze runs the full pipeline synchronously: read both raw datasets,
// normalize them into the unified borrower table, score every borrower
// under the requested scenario and return the records. Scores are persisted
// to Postgres and archived to Mongo under a run id before responding.
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "use POST"})
		return
	}

	var req analyzeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(&req); err != nil {
		h.Logger.Printf("[ANALYZE][REQ][ERR] bad JSON: %v", err)
		h.JSON(w, http.StatusBadRequest, map[string]string{"error": "bad JSON: " + err.Error()})
		return
	}

	localOp := opener.NewLocalOpener(h.DataDir)

	if strings.TrimSpace(req.ConsumerPath) == "" || strings.TrimSpace(req.SMEPath) == "" {
		files, err := localOp.List()
		if err != nil {
			h.Logger.Printf("[ANALYZE][REQ][ERR] scan data dir: %v", err)
			h.JSON(w, http.StatusBadRequest, map[string]string{"error": "consumer_path and sme_path are required"})
			return
		}
		datasets := make([]string, 0, len(files))
		for _, f := range files {
			lower := strings.ToLower(f)
			if strings.HasSuffix(lower, ".csv") || strings.HasSuffix(lower, ".xlsx") {
				datasets = append(datasets, f)
			}
		}
		consumer, sme, ok := ingest.DetectRoles(datasets)
		if !ok {
			h.JSON(w, http.StatusBadRequest, map[string]string{"error": "no input datasets found; pass consumer_path and sme_path"})
			return
		}
		if req.ConsumerPath == "" {
			req.ConsumerPath = "file://" + consumer
		}
		if req.SMEPath == "" {
			req.SMEPath = "file://" + sme
		}
		h.Logger.Printf("[ANALYZE] detected roles consumer=%q sme=%q", req.ConsumerPath, req.SMEPath)
	}

	weights, threshold, scenarioName, err := h.resolveScenario(req)
	if err != nil {
		h.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	timeout := 15 * time.Minute
	if req.TimeoutMin > 0 {
		timeout = time.Duration(req.TimeoutMin) * time.Minute
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	rec := runs.Record{
		Kind:         "analysis",
		Status:       runs.StatusPending,
		ConsumerPath: &req.ConsumerPath,
		SMEPath:      &req.SMEPath,
		Scenario:     &scenarioName,
	}
	if userID, errGet := auth.GetUserID(r.Context()); errGet == nil {
		rec.UserID = &userID
	}
	rec, err = runs.InsertRecord(ctx, h.Mongo, rec)
	if err != nil {
		h.Logger.Printf("[ANALYZE][ERR] run record insert: %v", err)
		h.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	start := time.Now()

	httpOp := opener.NewHTTPOpener(h.HTTP)
	s3Op := opener.NewS3Opener(h.S3.Client)
	compound := opener.NewCompoundOpener(httpOp, s3Op, localOp, h.S3.Bucket)
	svc := ingest.NewService(compound)

	consumerRes, err := svc.ReadTable(ctx, req.ConsumerPath)
	if err != nil {
		h.failRun(ctx, rec.ID, start, err)
		h.JSON(w, http.StatusBadRequest, map[string]string{"error": "read consumer dataset: " + err.Error()})
		return
	}
	smeRes, err := svc.ReadTable(ctx, req.SMEPath)
	if err != nil {
		h.failRun(ctx, rec.ID, start, err)
		h.JSON(w, http.StatusBadRequest, map[string]string{"error": "read sme dataset: " + err.Error()})
		return
	}

	norm := normalizer.New(normalizer.DefaultConfig(), seed)
	unified := norm.Normalize(consumerRes.Table, smeRes.Table)

	engine := scoring.NewEngine(scoring.DefaultRuleConfig(), weights)
	engine.SetParallelism(h.Parallelism)
	records, err := engine.ScoreAll(ctx, unified)
	if err != nil {
		h.failRun(ctx, rec.ID, start, err)
		h.JSON(w, http.StatusInternalServerError, map[string]string{"error": "scoring: " + err.Error()})
		return
	}

	scored := make([]scoredBorrower, len(records))
	scoreRows := make([]database.ScoreRow, len(records))
	items := make([]runs.Item, len(records))
	var seg segmentation
	for i, recd := range records {
		risk := scoring.Assess(recd.Total)
		scored[i] = scoredBorrower{ScoreRecord: recd, Risk: risk}
		if recd.Total >= threshold {
			seg.Approved++
		} else {
			seg.BelowCutoff++
		}
		seg.AverageTotal += recd.Total

		scoreRows[i] = database.ScoreRow{
			RunID:          rec.ID,
			BorrowerID:     recd.BorrowerID,
			BorrowerName:   recd.BorrowerName,
			BorrowerType:   recd.BorrowerType,
			Industry:       recd.Industry,
			LoanAmount:     recd.LoanAmount,
			Character:      recd.Character,
			Capacity:       recd.Capacity,
			Capital:        recd.Capital,
			Collateral:     recd.Collateral,
			Conditions:     recd.Conditions,
			Total:          recd.Total,
			RiskLevel:      risk.Level,
			Recommendation: risk.Recommendation,
		}

		payload, _ := json.Marshal(scored[i])
		items[i] = runs.Item{
			RunID:      rec.ID,
			BorrowerID: recd.BorrowerID,
			Payload:    string(payload),
			RiskLevel:  risk.Level,
		}
	}
	if len(records) > 0 {
		seg.AverageTotal /= float64(len(records))
	}

	if err := h.Scores.InsertBatch(ctx, scoreRows); err != nil {
		h.failRun(ctx, rec.ID, start, err)
		h.JSON(w, http.StatusInternalServerError, map[string]string{"error": "persist scores: " + err.Error()})
		return
	}
	if err := runs.InsertItems(ctx, h.Mongo, items); err != nil {
		h.Logger.Printf("[ANALYZE][WARN] archive items: %v", err)
	}

	if err := runs.UpdateRecordStatus(ctx, h.Mongo, rec.ID, runs.StatusDone, len(records), time.Since(start).Milliseconds(), nil); err != nil {
		h.Logger.Printf("[ANALYZE][WARN] run status update: %v", err)
	}

	h.Logger.Printf("[ANALYZE][OK] run=%s scenario=%q rows=%d approved=%d took=%s",
		rec.ID, scenarioName, len(records), seg.Approved, time.Since(start))

	h.JSON(w, http.StatusOK, map[string]any{
		"run_id":       rec.ID,
		"scenario":     scenarioName,
		"weights":      weights,
		"threshold":    threshold,
		"rows":         len(records),
		"summary":      normalizer.Summarize(unified),
		"segmentation": seg,
		"scores":       scored,
	})
}

// resolveScenario picks weights and an approval threshold for a request:
// caller-supplied weights make a custom configuration (normalized to sum to
// one), otherwise the named or default scenario applies as-is.
func (h *Handlers) resolveScenario(req analyzeRequest) (scoring.Weights, float64, string, error) {
	if req.Weights != nil {
		weights := req.Weights.Normalized()
		threshold := 0.6
		if req.Threshold != nil {
			threshold = *req.Threshold
		}
		return weights, threshold, scoring.ScenarioCustom, nil
	}

	name := strings.TrimSpace(req.Scenario)
	if name == "" {
		name = h.DefaultScenario
	}
	sc, ok := scoring.ScenarioByName(name)
	if !ok {
		return scoring.Weights{}, 0, "", errUnknownScenario(name)
	}
	threshold := sc.Threshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	return sc.Weights, threshold, sc.Name, nil
}

type errUnknownScenario string

func (e errUnknownScenario) Error() string {
	return `unknown scenario "` + string(e) + `"`
}

func (h *Handlers) failRun(ctx context.Context, runID string, start time.Time, runErr error) {
	msg := runErr.Error()
	if err := runs.UpdateRecordStatus(ctx, h.Mongo, runID, runs.StatusFailed, 0, time.Since(start).Milliseconds(), &msg); err != nil {
		h.Logger.Printf("[ANALYZE][WARN] run status update: %v", err)
	}
}
