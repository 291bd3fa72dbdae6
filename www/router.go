// Package www serves warehouse snapshots to observers over HTTP: the latest
// state as JSON, a Server-Sent Events stream, and a WebSocket push channel.
package www

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/inference-sim/warehouse-sim/sim"
	"github.com/inference-sim/warehouse-sim/sim/hub"
	"github.com/inference-sim/warehouse-sim/sim/trace"
)

// Handlers holds what the routes read from. None of it is mutated here.
type Handlers struct {
	hub       *hub.Hub
	state     *sim.WarehouseState
	trace     *trace.SimulationTrace
	keepalive time.Duration
}

// NewRouter builds the observer routes. tr may be nil.
func NewRouter(h *hub.Hub, state *sim.WarehouseState, tr *trace.SimulationTrace) http.Handler {
	return newRouter(&Handlers{hub: h, state: state, trace: tr, keepalive: 30 * time.Second})
}

func newRouter(h *Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/events", h.handleSSE)
	r.Get("/ws", h.handleWebSocket)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.apiState)
		r.Get("/metrics", h.apiMetrics)
		r.Get("/stats", h.apiStats)
		r.Get("/trace", h.apiTraceSummary)
	})
	return r
}
