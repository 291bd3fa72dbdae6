package sim

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// recordingPublisher keeps every published view.
type recordingPublisher struct {
	mu    sync.Mutex
	views []StateView
}

func (p *recordingPublisher) Publish(v StateView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.views = append(p.views, v)
}

func (p *recordingPublisher) Views() []StateView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]StateView(nil), p.views...)
}

// smallConfig is the 10x10, 4 shelves x 5 slots warehouse used by scenario tests.
func smallConfig() SimConfig {
	supplyStart := Coord(9, 9)
	deliveryStart := Coord(0, 0)
	return SimConfig{
		Grid: GridConfig{
			Size:               10,
			SlotsPerShelf:      5,
			Shelves:            []Coordinate{Coord(2, 2), Coord(2, 6), Coord(6, 2), Coord(6, 6)},
			SupplyStation:      Coord(0, 5),
			DeliveryStation:    Coord(9, 5),
			SupplyRobotStart:   &supplyStart,
			DeliveryRobotStart: &deliveryStart,
		},
		Items: []ItemConfig{
			{Kind: "A", ArrivalProbability: 0.5},
			{Kind: "B", ArrivalProbability: 0.3},
			{Kind: "C", ArrivalProbability: 0.2},
		},
		Timing: TimingConfig{
			ArrivalInterval:  time.Millisecond,
			OrderIntervalMin: time.Millisecond,
			OrderIntervalMax: 3 * time.Millisecond,
			PollInterval:     time.Millisecond,
			StepInterval:     0,
		},
		Seed: 7,
	}
}

// newTestState builds an empty WarehouseState from cfg.
func newTestState(t *testing.T, cfg SimConfig) *WarehouseState {
	t.Helper()
	grid, err := cfg.GridModel()
	require.NoError(t, err)
	return NewWarehouseState(grid, cfg.Kinds(), cfg.SupplyRobotStart(), cfg.DeliveryRobotStart())
}

// fillAll seeds every empty slot with k as initial stock.
func fillAll(ws *WarehouseState, k ItemKind) {
	g := ws.Grid()
	for s := 0; s < g.NumShelves(); s++ {
		for i := 0; i < g.SlotsPerShelf; i++ {
			ws.SeedStock(SlotRef{Shelf: s, Slot: i}, k)
		}
	}
}

// assertConserved checks shelves + hands + delivered == seeded + dequeued - lost per kind.
func assertConserved(t *testing.T, ws *WarehouseState, kinds []ItemKind) {
	t.Helper()
	v := ws.Snapshot()
	m := ws.Metrics()
	for _, k := range kinds {
		have := v.Inventory[k] + v.InHand(k) + v.Delivered(k)
		require.Equal(t, m.ExpectedStock(k), have, "conservation broken for kind %s", k)
	}
}
