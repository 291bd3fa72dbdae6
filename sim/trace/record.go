// Package trace provides task-trace recording for robot task analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

import (
	"time"

	"github.com/google/uuid"
)

// Outcome is how a robot task ended.
type Outcome string

const (
	// OutcomeStored: the supply robot placed the item on a shelf.
	OutcomeStored Outcome = "stored"
	// OutcomeLost: no empty slot existed; the dequeued item was discarded.
	OutcomeLost Outcome = "lost"
	// OutcomeDelivered: the delivery robot dropped the item at the station.
	OutcomeDelivered Outcome = "delivered"
	// OutcomeUnfulfillable: no slot held the ordered kind; the order was dropped.
	OutcomeUnfulfillable Outcome = "unfulfillable"
)

// TaskRecord captures one robot task from dequeue to completion.
type TaskRecord struct {
	ID         string
	Robot      string // "supply" or "delivery"
	Item       string
	Outcome    Outcome
	Shelf      int // -1 when no slot was chosen
	Slot       int // -1 when no slot was chosen
	Steps      int // grid steps walked during the task
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration is the wall-clock span of the task.
func (r TaskRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// NewTaskID returns a fresh random task identifier.
func NewTaskID() string {
	return uuid.NewString()
}
