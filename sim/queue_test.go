package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemQueue_FIFO(t *testing.T) {
	// GIVEN a queue with [A, B, C]
	q := &ItemQueue{}
	q.Enqueue("A")
	q.Enqueue("B")
	q.Enqueue("C")

	// WHEN everything is dequeued
	var got []ItemKind
	for q.Len() > 0 {
		k, ok := q.Dequeue()
		assert.True(t, ok)
		got = append(got, k)
	}

	// THEN items come out head first
	assert.Equal(t, []ItemKind{"A", "B", "C"}, got)
}

func TestItemQueue_Dequeue_Empty_ReturnsFalse(t *testing.T) {
	q := &ItemQueue{}
	k, ok := q.Dequeue()
	assert.False(t, ok)
	assert.Equal(t, NoItem, k)
}

func TestItemQueue_Peek_DoesNotRemove(t *testing.T) {
	q := &ItemQueue{}
	_, ok := q.Peek()
	assert.False(t, ok)

	q.Enqueue("B")
	k, ok := q.Peek()
	assert.True(t, ok)
	assert.Equal(t, ItemKind("B"), k)
	assert.Equal(t, 1, q.Len())
}

func TestItemQueue_Items_IsCopy(t *testing.T) {
	q := &ItemQueue{}
	q.Enqueue("A")
	items := q.Items()
	items[0] = "Z"
	k, _ := q.Peek()
	assert.Equal(t, ItemKind("A"), k)
	assert.Equal(t, []ItemKind{}, (&ItemQueue{}).Items())
}

func TestItemQueue_Enqueue_EmptyKindPanics(t *testing.T) {
	q := &ItemQueue{}
	assert.Panics(t, func() { q.Enqueue(NoItem) })
}

func TestItemQueue_String(t *testing.T) {
	q := &ItemQueue{}
	q.Enqueue("A")
	q.Enqueue("C")
	assert.Equal(t, "[A C]", q.String())
}
