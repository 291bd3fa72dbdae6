// sim/simulator.go
package sim

import (
	"context"
	"math/rand"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/inference-sim/warehouse-sim/sim/trace"
)

// Simulator owns the warehouse state and the four actors that mutate it.
type Simulator struct {
	Config SimConfig
	State  *WarehouseState
	Trace  *trace.SimulationTrace

	Arrivals *StockArrivalGenerator
	Orders   *OrderGenerator
	Supply   *SupplyRobotController
	Delivery *DeliveryRobotController

	pub Publisher
}

// NewSimulator builds the warehouse from cfg, pre-seeds stock, and wires the
// actors. A nil pub discards snapshots, a nil clock uses wall time, and tr
// may be nil. Panics if cfg is invalid; callers validate first.
func NewSimulator(cfg SimConfig, pub Publisher, clock Clock, tr *trace.SimulationTrace) *Simulator {
	if err := cfg.Validate(); err != nil {
		panic("NewSimulator: invalid config: " + err.Error())
	}
	if pub == nil {
		pub = DiscardPublisher
	}
	if clock == nil {
		clock = WallClock{}
	}
	grid, _ := cfg.GridModel()
	kinds := cfg.Kinds()

	// Derive every stream up front; each actor then owns its *rand.Rand.
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	stockRNG := rng.ForSubsystem(SubsystemStock)
	arrivalRNG := rng.ForSubsystem(SubsystemArrivals)
	orderRNG := rng.ForSubsystem(SubsystemOrders)

	state := NewWarehouseState(grid, kinds, cfg.SupplyRobotStart(), cfg.DeliveryRobotStart())
	seeded := SeedInitialStock(state, kinds, stockRNG, cfg.InitialStockAttempts)
	logrus.Infof("Seeded %d items from %d attempts", seeded, cfg.InitialStockAttempts)

	t := cfg.Timing
	mover := NewMover(state, pub, clock, t.StepInterval)
	return &Simulator{
		Config:   cfg,
		State:    state,
		Trace:    tr,
		Arrivals: NewStockArrivalGenerator(state, pub, clock, cfg.Items, arrivalRNG, t.ArrivalInterval),
		Orders:   NewOrderGenerator(state, pub, clock, kinds, orderRNG, t.OrderIntervalMin, t.OrderIntervalMax),
		Supply:   NewSupplyRobotController(state, mover, pub, clock, tr, t.PollInterval),
		Delivery: NewDeliveryRobotController(state, mover, pub, clock, tr, t.PollInterval),
		pub:      pub,
	}
}

// SeedInitialStock makes attempts random draws of (shelf, slot, kind) and
// fills the slot when it is empty. Returns how many slots were filled.
func SeedInitialStock(state *WarehouseState, kinds []ItemKind, rng *rand.Rand, attempts int) int {
	grid := state.Grid()
	filled := 0
	for i := 0; i < attempts; i++ {
		ref := SlotRef{Shelf: rng.Intn(grid.NumShelves()), Slot: rng.Intn(grid.SlotsPerShelf)}
		k := kinds[rng.Intn(len(kinds))]
		if state.SeedStock(ref, k) {
			filled++
		}
	}
	return filled
}

// Run publishes the initial snapshot and runs all four actors concurrently
// until ctx is cancelled. Each actor checks for cancellation only between
// ticks, so Run returns after any in-flight robot task has completed.
func (s *Simulator) Run(ctx context.Context) error {
	s.pub.Publish(s.State.Snapshot())
	logrus.Infof("Starting warehouse simulation: %dx%d grid, %d shelves x %d slots, seed=%d",
		s.Config.Grid.Size, s.Config.Grid.Size, len(s.Config.Grid.Shelves), s.Config.Grid.SlotsPerShelf, s.Config.Seed)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Arrivals.Run(ctx) })
	g.Go(func() error { return s.Orders.Run(ctx) })
	g.Go(func() error { return s.Supply.Run(ctx) })
	g.Go(func() error { return s.Delivery.Run(ctx) })
	err := g.Wait()

	logrus.Info("Simulation stopped.")
	return err
}
