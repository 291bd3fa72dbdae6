package sim

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Coordinate is a (row, column) cell on the warehouse floor.
// Serialized as a two-element array [row, col] in both JSON and YAML.
type Coordinate struct {
	Row int
	Col int
}

// Coord is shorthand for Coordinate{Row: row, Col: col}.
func Coord(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// ManhattanDistance returns |Δrow| + |Δcol|.
func (c Coordinate) ManhattanDistance(o Coordinate) int {
	return abs(c.Row-o.Row) + abs(c.Col-o.Col)
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.Row, c.Col})
}

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("coordinate: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinate: want [row, col], got %d elements", len(pair))
	}
	c.Row, c.Col = pair[0], pair[1]
	return nil
}

func (c Coordinate) MarshalYAML() (any, error) {
	return []int{c.Row, c.Col}, nil
}

func (c *Coordinate) UnmarshalYAML(value *yaml.Node) error {
	var pair []int
	if err := value.Decode(&pair); err != nil {
		return fmt.Errorf("line %d: coordinate: %w", value.Line, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("line %d: coordinate: want [row, col], got %d elements", value.Line, len(pair))
	}
	c.Row, c.Col = pair[0], pair[1]
	return nil
}

// GridModel is the static geometry of the warehouse. It never changes after
// construction.
type GridModel struct {
	Size            int          // grid is Size x Size
	SlotsPerShelf   int          // slots on every shelf
	ShelfPositions  []Coordinate // shelf index -> physical cell
	SupplyStation   Coordinate   // where the supply robot picks up
	DeliveryStation Coordinate   // where the delivery robot drops off
}

// NewGridModel validates the geometry and returns it. Any error here is a
// configuration mistake; callers treat it as fatal.
func NewGridModel(size, slotsPerShelf int, shelves []Coordinate, supply, delivery Coordinate) (GridModel, error) {
	g := GridModel{
		Size:            size,
		SlotsPerShelf:   slotsPerShelf,
		ShelfPositions:  append([]Coordinate(nil), shelves...),
		SupplyStation:   supply,
		DeliveryStation: delivery,
	}
	if err := g.Validate(); err != nil {
		return GridModel{}, err
	}
	return g, nil
}

// Validate checks bounds on every coordinate and that the layout is non-empty.
func (g GridModel) Validate() error {
	if g.Size <= 0 {
		return fmt.Errorf("grid size must be positive, got %d", g.Size)
	}
	if g.SlotsPerShelf <= 0 {
		return fmt.Errorf("slots per shelf must be positive, got %d", g.SlotsPerShelf)
	}
	if len(g.ShelfPositions) == 0 {
		return fmt.Errorf("shelf layout must contain at least one shelf")
	}
	for i, p := range g.ShelfPositions {
		if !g.InBounds(p) {
			return fmt.Errorf("shelf %d position %s outside %dx%d grid", i, p, g.Size, g.Size)
		}
	}
	if !g.InBounds(g.SupplyStation) {
		return fmt.Errorf("supply station %s outside %dx%d grid", g.SupplyStation, g.Size, g.Size)
	}
	if !g.InBounds(g.DeliveryStation) {
		return fmt.Errorf("delivery station %s outside %dx%d grid", g.DeliveryStation, g.Size, g.Size)
	}
	return nil
}

// NumShelves returns the fixed shelf count.
func (g GridModel) NumShelves() int {
	return len(g.ShelfPositions)
}

// InBounds reports whether c lies in [0, Size) on both axes.
func (g GridModel) InBounds(c Coordinate) bool {
	return c.Row >= 0 && c.Row < g.Size && c.Col >= 0 && c.Col < g.Size
}

// ShelfPosition looks up the physical cell of a shelf.
// Panics on an out-of-range index.
func (g GridModel) ShelfPosition(shelf int) Coordinate {
	if shelf < 0 || shelf >= len(g.ShelfPositions) {
		panic(fmt.Sprintf("ShelfPosition: shelf index %d out of range [0, %d)", shelf, len(g.ShelfPositions)))
	}
	return g.ShelfPositions[shelf]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
