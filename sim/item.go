package sim

import (
	"encoding/json"
	"fmt"
)

// ItemKind names a stock-keeping unit ("A", "B", ...).
// The zero value means "no item": an empty slot or an idle robot.
type ItemKind string

// NoItem is the empty slot / empty hands marker.
const NoItem ItemKind = ""

// IsEmpty reports whether k denotes the absence of an item.
func (k ItemKind) IsEmpty() bool {
	return k == NoItem
}

// MarshalJSON encodes NoItem as null so observers see empty slots the same
// way for both shelves and robots.
func (k ItemKind) MarshalJSON() ([]byte, error) {
	if k.IsEmpty() {
		return []byte("null"), nil
	}
	return json.Marshal(string(k))
}

// UnmarshalJSON accepts a string or null.
func (k *ItemKind) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*k = NoItem
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("item kind: %w", err)
	}
	*k = ItemKind(s)
	return nil
}

// SlotRef identifies one slot on one shelf.
type SlotRef struct {
	Shelf int
	Slot  int
}

// Less orders refs by shelf index, then slot index.
func (r SlotRef) Less(o SlotRef) bool {
	if r.Shelf != o.Shelf {
		return r.Shelf < o.Shelf
	}
	return r.Slot < o.Slot
}

func (r SlotRef) String() string {
	return fmt.Sprintf("shelf %d slot %d", r.Shelf, r.Slot)
}
