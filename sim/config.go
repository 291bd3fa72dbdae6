package sim

import (
	"fmt"
	"math"
	"time"
)

// GridConfig groups the static floor geometry.
type GridConfig struct {
	Size               int          `yaml:"size"`                           // grid is Size x Size (must be > 0)
	SlotsPerShelf      int          `yaml:"slots_per_shelf"`                // slots on every shelf (must be > 0)
	Shelves            []Coordinate `yaml:"shelves"`                        // shelf index -> cell; len = shelf count
	SupplyStation      Coordinate   `yaml:"supply_station"`                 // supply robot pick-up cell
	DeliveryStation    Coordinate   `yaml:"delivery_station"`               // delivery robot drop-off cell
	SupplyRobotStart   *Coordinate  `yaml:"supply_robot_start,omitempty"`   // nil = supply station
	DeliveryRobotStart *Coordinate  `yaml:"delivery_robot_start,omitempty"` // nil = delivery station
}

// ItemConfig declares one item kind and its per-tick arrival probability.
type ItemConfig struct {
	Kind               ItemKind `yaml:"kind"`
	ArrivalProbability float64  `yaml:"arrival_probability"` // in [0, 1]
}

// TimingConfig groups actor cadences. All durations are wall-clock.
type TimingConfig struct {
	ArrivalInterval  time.Duration `yaml:"arrival_interval"`   // stock arrival tick
	OrderIntervalMin time.Duration `yaml:"order_interval_min"` // lower bound of the random order wait
	OrderIntervalMax time.Duration `yaml:"order_interval_max"` // upper bound (exclusive) of the random order wait
	PollInterval     time.Duration `yaml:"poll_interval"`      // robot controller tick
	StepInterval     time.Duration `yaml:"step_interval"`      // pause after each robot grid step
}

// SimConfig is everything the simulation core consumes at startup.
type SimConfig struct {
	Grid                 GridConfig   `yaml:"grid"`
	Items                []ItemConfig `yaml:"items"`
	Timing               TimingConfig `yaml:"timing"`
	Seed                 int64        `yaml:"seed"`
	InitialStockAttempts int          `yaml:"initial_stock_attempts"` // random pre-seeding draws; 0 = start empty
}

// DefaultSimConfig returns the reference warehouse: a 15x15 floor with twelve
// six-slot shelves in a 3x4 block pattern and stations on the middle column.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Grid: GridConfig{
			Size:          15,
			SlotsPerShelf: 6,
			Shelves: []Coordinate{
				Coord(3, 2), Coord(3, 5), Coord(3, 8), Coord(3, 11),
				Coord(7, 2), Coord(7, 5), Coord(7, 8), Coord(7, 11),
				Coord(11, 2), Coord(11, 5), Coord(11, 8), Coord(11, 11),
			},
			SupplyStation:   Coord(0, 7),
			DeliveryStation: Coord(14, 7),
		},
		Items: []ItemConfig{
			{Kind: "A", ArrivalProbability: 0.5},
			{Kind: "B", ArrivalProbability: 0.3},
			{Kind: "C", ArrivalProbability: 0.2},
		},
		Timing: TimingConfig{
			ArrivalInterval:  time.Second,
			OrderIntervalMin: 2 * time.Second,
			OrderIntervalMax: 4 * time.Second,
			PollInterval:     time.Second,
			StepInterval:     250 * time.Millisecond,
		},
		Seed:                 42,
		InitialStockAttempts: 20,
	}
}

// GridModel builds the validated static geometry from the config.
func (c SimConfig) GridModel() (GridModel, error) {
	return NewGridModel(c.Grid.Size, c.Grid.SlotsPerShelf, c.Grid.Shelves, c.Grid.SupplyStation, c.Grid.DeliveryStation)
}

// Kinds returns the configured item kinds in declaration order.
func (c SimConfig) Kinds() []ItemKind {
	kinds := make([]ItemKind, len(c.Items))
	for i, it := range c.Items {
		kinds[i] = it.Kind
	}
	return kinds
}

// SupplyRobotStart returns the configured start cell, defaulting to the supply station.
func (c SimConfig) SupplyRobotStart() Coordinate {
	if c.Grid.SupplyRobotStart != nil {
		return *c.Grid.SupplyRobotStart
	}
	return c.Grid.SupplyStation
}

// DeliveryRobotStart returns the configured start cell, defaulting to the delivery station.
func (c SimConfig) DeliveryRobotStart() Coordinate {
	if c.Grid.DeliveryRobotStart != nil {
		return *c.Grid.DeliveryRobotStart
	}
	return c.Grid.DeliveryStation
}

// Validate reports the first configuration error found.
func (c SimConfig) Validate() error {
	grid, err := c.GridModel()
	if err != nil {
		return err
	}
	if start := c.SupplyRobotStart(); !grid.InBounds(start) {
		return fmt.Errorf("supply robot start %s outside %dx%d grid", start, grid.Size, grid.Size)
	}
	if start := c.DeliveryRobotStart(); !grid.InBounds(start) {
		return fmt.Errorf("delivery robot start %s outside %dx%d grid", start, grid.Size, grid.Size)
	}

	if len(c.Items) == 0 {
		return fmt.Errorf("at least one item kind required")
	}
	seen := make(map[ItemKind]bool, len(c.Items))
	for i, it := range c.Items {
		if it.Kind.IsEmpty() {
			return fmt.Errorf("items[%d]: kind must not be empty", i)
		}
		if seen[it.Kind] {
			return fmt.Errorf("items[%d]: duplicate kind %q", i, it.Kind)
		}
		seen[it.Kind] = true
		p := it.ArrivalProbability
		if math.IsNaN(p) || p < 0 || p > 1 {
			return fmt.Errorf("items[%d]: arrival_probability must be in [0, 1], got %v", i, p)
		}
	}

	t := c.Timing
	if t.ArrivalInterval <= 0 {
		return fmt.Errorf("arrival_interval must be positive, got %v", t.ArrivalInterval)
	}
	if t.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %v", t.PollInterval)
	}
	if t.OrderIntervalMin < 0 || t.OrderIntervalMax <= 0 {
		return fmt.Errorf("order interval bounds must be positive, got [%v, %v)", t.OrderIntervalMin, t.OrderIntervalMax)
	}
	if t.OrderIntervalMin > t.OrderIntervalMax {
		return fmt.Errorf("order_interval_min %v exceeds order_interval_max %v", t.OrderIntervalMin, t.OrderIntervalMax)
	}
	if t.StepInterval < 0 {
		return fmt.Errorf("step_interval must be non-negative, got %v", t.StepInterval)
	}
	if c.InitialStockAttempts < 0 {
		return fmt.Errorf("initial_stock_attempts must be non-negative, got %d", c.InitialStockAttempts)
	}
	return nil
}
