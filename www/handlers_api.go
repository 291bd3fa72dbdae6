package www

import (
	"net/http"

	"github.com/inference-sim/warehouse-sim/sim/trace"
)

func (h *Handlers) apiState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.currentView())
}

func (h *Handlers) apiMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.state.Metrics())
}

func (h *Handlers) apiStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.hub.Stats())
}

func (h *Handlers) apiTraceSummary(w http.ResponseWriter, r *http.Request) {
	if !h.trace.Enabled() {
		http.Error(w, "task tracing disabled", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, trace.Summarize(h.trace))
}
