// Implements ItemQueue, the FIFO used for both the incoming supply queue and
// the delivery order queue. Items are appended at the tail and removed from
// the head; there is no capacity bound.

package sim

import (
	"fmt"
	"strings"
)

// ItemQueue is an unbounded FIFO of item kinds.
// Not safe for concurrent use; WarehouseState guards every access.
type ItemQueue struct {
	queue []ItemKind
}

// Enqueue adds an item to the back of the queue.
func (q *ItemQueue) Enqueue(k ItemKind) {
	if k.IsEmpty() {
		panic("Enqueue: item kind must not be empty")
	}
	q.queue = append(q.queue, k)
}

// Dequeue removes the item at the front of the queue.
// The second result is false when the queue is empty.
func (q *ItemQueue) Dequeue() (ItemKind, bool) {
	if len(q.queue) == 0 {
		return NoItem, false
	}
	k := q.queue[0]
	q.queue[0] = NoItem
	q.queue = q.queue[1:]
	return k, true
}

// Peek returns the front item without removing it.
func (q *ItemQueue) Peek() (ItemKind, bool) {
	if len(q.queue) == 0 {
		return NoItem, false
	}
	return q.queue[0], true
}

// Len returns the number of queued items.
func (q *ItemQueue) Len() int {
	return len(q.queue)
}

// Items returns a copy of the queue contents, head first.
func (q *ItemQueue) Items() []ItemKind {
	out := make([]ItemKind, len(q.queue))
	copy(out, q.queue)
	return out
}

func (q *ItemQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range q.queue {
		sb.WriteString(fmt.Sprint(string(val)))
		if i < len(q.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
