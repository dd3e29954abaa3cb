package handlers

import (
	"net/http"

	"fivec_analysis/internal/services/scoring"
)

// Scenarios lists the scenario catalog so clients can show weight presets.
func (h *Handlers) Scenarios(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "use GET"})
		return
	}
	h.JSON(w, http.StatusOK, map[string]any{
		"default":   h.DefaultScenario,
		"scenarios": scoring.Scenarios(),
	})
}
