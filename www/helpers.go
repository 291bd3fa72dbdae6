package www

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/warehouse-sim/sim"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Debugf("www: encode response: %v", err)
	}
}

// currentView prefers the last published view so HTTP readers see exactly
// what streaming observers saw; before the first publish it reads the state.
func (h *Handlers) currentView() sim.StateView {
	if v, ok := h.hub.Latest(); ok {
		return v
	}
	return h.state.Snapshot()
}

// envelope wraps pushed messages so clients can switch on Type.
type envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}
