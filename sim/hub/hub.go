// Package hub fans warehouse snapshots out to any number of observers
// without ever blocking the simulation.
//
// Each subscriber registers its own buffered channel. Publish attempts a
// non-blocking send to every subscriber; when a channel is full the view is
// dropped for that subscriber and counted. Observers only care about the
// most recent state, so a stale backlog is worth less than a dropped frame.
//
//	h := hub.New()
//	defer h.Close()
//
//	ch := make(chan sim.StateView, 16)
//	h.Subscribe("observer-1", ch)
//
//	s := sim.NewSimulator(cfg, h, nil, nil)
//
// All methods are safe for concurrent use.
package hub

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/inference-sim/warehouse-sim/sim"
)

var (
	// ErrSubscriberExists is returned when Subscribe is called with a duplicate id.
	ErrSubscriberExists = errors.New("subscriber id already exists")

	// ErrSubscriberNotFound is returned when Unsubscribe is called with unknown id.
	ErrSubscriberNotFound = errors.New("subscriber id not found")

	// ErrHubClosed is returned when operations are attempted on a closed hub.
	ErrHubClosed = errors.New("hub is closed")
)

// Stats contains global and per-subscriber counters.
type Stats struct {
	TotalPublished uint64                     `json:"total_published"`
	TotalSent      uint64                     `json:"total_sent"`
	TotalDropped   uint64                     `json:"total_dropped"`
	Subscribers    map[string]SubscriberStats `json:"subscribers"`
}

// SubscriberStats tracks one subscriber.
type SubscriberStats struct {
	Sent    uint64 `json:"sent"`
	Dropped uint64 `json:"dropped"`
}

type subscriberStats struct {
	sent    atomic.Uint64
	dropped atomic.Uint64
}

// Hub is a sim.Publisher that distributes views to subscribers.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]chan<- sim.StateView
	stats       map[string]*subscriberStats
	closed      bool

	totalPublished atomic.Uint64
	latest         atomic.Pointer[sim.StateView]
}

var _ sim.Publisher = (*Hub)(nil)

// New creates an empty hub.
func New() *Hub {
	return &Hub{
		subscribers: make(map[string]chan<- sim.StateView),
		stats:       make(map[string]*subscriberStats),
	}
}

// Subscribe registers ch to receive views.
func (h *Hub) Subscribe(id string, ch chan<- sim.StateView) error {
	if ch == nil {
		return errors.New("subscriber channel cannot be nil")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHubClosed
	}
	if _, exists := h.subscribers[id]; exists {
		return ErrSubscriberExists
	}
	h.subscribers[id] = ch
	h.stats[id] = &subscriberStats{}
	return nil
}

// Unsubscribe removes a subscriber. The channel is not closed; it belongs to
// the subscriber.
func (h *Hub) Unsubscribe(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHubClosed
	}
	if _, exists := h.subscribers[id]; !exists {
		return ErrSubscriberNotFound
	}
	delete(h.subscribers, id)
	delete(h.stats, id)
	return nil
}

// Publish records view as the latest and offers it to every subscriber
// without blocking. A closed hub ignores the view.
func (h *Hub) Publish(view sim.StateView) {
	h.totalPublished.Add(1)

	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}
	h.latest.Store(&view)

	for id, ch := range h.subscribers {
		select {
		case ch <- view:
			h.stats[id].sent.Add(1)
		default:
			h.stats[id].dropped.Add(1)
		}
	}
}

// Latest returns the most recently published view, if any.
func (h *Hub) Latest() (sim.StateView, bool) {
	v := h.latest.Load()
	if v == nil {
		return sim.StateView{}, false
	}
	return *v, true
}

// Stats returns a snapshot of the counters.
func (h *Hub) Stats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := Stats{
		TotalPublished: h.totalPublished.Load(),
		Subscribers:    make(map[string]SubscriberStats, len(h.stats)),
	}
	for id, s := range h.stats {
		sent, dropped := s.sent.Load(), s.dropped.Load()
		result.TotalSent += sent
		result.TotalDropped += dropped
		result.Subscribers[id] = SubscriberStats{Sent: sent, Dropped: dropped}
	}
	return result
}

// SubscriberCount returns the number of registered subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Close stops delivery. Idempotent. Subscriber channels are left open.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return nil
}
