package sim

import (
	"context"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

// StockArrivalGenerator wakes at a fixed interval and, for each item kind in
// configured order, enqueues that kind with its arrival probability.
type StockArrivalGenerator struct {
	state    *WarehouseState
	pub      Publisher
	clock    Clock
	items    []ItemConfig
	rng      *rand.Rand
	interval time.Duration
}

// NewStockArrivalGenerator creates the generator. rng must not be shared with
// another goroutine.
func NewStockArrivalGenerator(state *WarehouseState, pub Publisher, clock Clock, items []ItemConfig, rng *rand.Rand, interval time.Duration) *StockArrivalGenerator {
	return &StockArrivalGenerator{
		state:    state,
		pub:      pub,
		clock:    clock,
		items:    append([]ItemConfig(nil), items...),
		rng:      rng,
		interval: interval,
	}
}

// Tick performs one wake: one independent uniform draw per kind, in order.
// Each kind whose draw is below its probability is enqueued and published.
// Returns the kinds that arrived.
func (g *StockArrivalGenerator) Tick() []ItemKind {
	var arrived []ItemKind
	for _, it := range g.items {
		if g.rng.Float64() < it.ArrivalProbability {
			g.state.EnqueueSupply(it.Kind)
			logrus.Debugf("[stock] %s arrived", it.Kind)
			g.pub.Publish(g.state.Snapshot())
			arrived = append(arrived, it.Kind)
		}
	}
	return arrived
}

// Run ticks every interval until ctx is cancelled.
func (g *StockArrivalGenerator) Run(ctx context.Context) error {
	return runEvery(ctx, g.clock, fixed(g.interval), func() { g.Tick() })
}
