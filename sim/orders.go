package sim

import (
	"context"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

// OrderGenerator waits a fresh uniformly random interval, then orders one
// item kind chosen uniformly at random.
type OrderGenerator struct {
	state       *WarehouseState
	pub         Publisher
	clock       Clock
	kinds       []ItemKind
	rng         *rand.Rand
	minInterval time.Duration
	maxInterval time.Duration
}

// NewOrderGenerator creates the generator. Panics if kinds is empty or the
// interval range is inverted.
func NewOrderGenerator(state *WarehouseState, pub Publisher, clock Clock, kinds []ItemKind, rng *rand.Rand, minInterval, maxInterval time.Duration) *OrderGenerator {
	if len(kinds) == 0 {
		panic("NewOrderGenerator: kinds must not be empty")
	}
	if minInterval > maxInterval {
		panic("NewOrderGenerator: minInterval exceeds maxInterval")
	}
	return &OrderGenerator{
		state:       state,
		pub:         pub,
		clock:       clock,
		kinds:       append([]ItemKind(nil), kinds...),
		rng:         rng,
		minInterval: minInterval,
		maxInterval: maxInterval,
	}
}

// NextInterval draws the wait before the next order from [min, max).
func (g *OrderGenerator) NextInterval() time.Duration {
	span := g.maxInterval - g.minInterval
	if span <= 0 {
		return g.minInterval
	}
	return g.minInterval + time.Duration(g.rng.Int63n(int64(span)))
}

// Tick places one order and returns the ordered kind.
func (g *OrderGenerator) Tick() ItemKind {
	k := g.kinds[g.rng.Intn(len(g.kinds))]
	g.state.EnqueueOrder(k)
	logrus.Debugf("[order] %s", k)
	g.pub.Publish(g.state.Snapshot())
	return k
}

// Run places orders at random intervals until ctx is cancelled.
func (g *OrderGenerator) Run(ctx context.Context) error {
	return runEvery(ctx, g.clock, g.NextInterval, func() { g.Tick() })
}
