package handlers

import (
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"

	"fivec_analysis/internal/repository/runs"
)

// Runs returns run records, newest first. With ?id= it returns one record.
func (h *Handlers) Runs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "use GET"})
		return
	}

	if id := r.URL.Query().Get("id"); id != "" {
		rec, err := runs.FindRecordByID(r.Context(), h.Mongo, id)
		if err != nil {
			h.JSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		h.JSON(w, http.StatusOK, rec)
		return
	}

	limit := int64(50)
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			limit = n
		}
	}
	var skip int64
	if v := r.URL.Query().Get("skip"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			skip = n
		}
	}

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	recs, total, err := runs.ListRecords(r.Context(), h.Mongo, filter, limit, skip)
	if err != nil {
		h.Logger.Printf("[RUNS][ERR] list: %v", err)
		h.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	h.JSON(w, http.StatusOK, map[string]any{"total": total, "runs": recs})
}
