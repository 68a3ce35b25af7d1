package events

import (
	"errors"
	"sync"

	"allocation-tracker/internal/metrics"
)

var ErrHubClosed = errors.New("event hub closed")

// Hub is the process-wide publish/subscribe service for live viewers.
// It is created at startup, injected where needed and closed at shutdown.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]*Subscription
	nextID uint64
	buffer int
	closed bool
}

// NewHub creates a hub whose subscriptions buffer up to buffer events
func NewHub(buffer int) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub{subs: make(map[uint64]*Subscription), buffer: buffer}
}

// Subscription receives the events matching its cycle and user filters
type Subscription struct {
	id      uint64
	cycleID string
	userID  string
	ch      chan Event
	hub     *Hub
	once    sync.Once
}

// Events is closed when the subscription or the hub is closed
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Close releases the subscription; safe to call more than once
func (s *Subscription) Close() {
	s.hub.remove(s)
}

func (s *Subscription) matches(ev Event) bool {
	if s.cycleID != "" && ev.CycleID != s.cycleID {
		return false
	}
	if ev.UserID != "" && ev.UserID != s.userID {
		return false
	}
	return true
}

// Subscribe registers a viewer. An empty cycleID receives events of every cycle.
func (h *Hub) Subscribe(cycleID, userID string) (*Subscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}
	h.nextID++
	sub := &Subscription{id: h.nextID, cycleID: cycleID, userID: userID, ch: make(chan Event, h.buffer), hub: h}
	h.subs[sub.id] = sub
	metrics.SetStreamSubscribers(len(h.subs))
	return sub, nil
}

// Publish delivers ev to every matching subscriber without blocking.
// A subscriber whose buffer is full misses the event.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}
	for _, sub := range h.subs {
		if !sub.matches(ev) {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			metrics.RecordEventDropped(ev.Type)
		}
	}
}

// Subscribers returns the number of live subscriptions
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close ends every subscription and rejects new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, sub := range h.subs {
		sub.once.Do(func() { close(sub.ch) })
		delete(h.subs, id)
	}
	metrics.SetStreamSubscribers(0)
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[s.id]; ok {
		delete(h.subs, s.id)
		metrics.SetStreamSubscribers(len(h.subs))
	}
	s.once.Do(func() { close(s.ch) })
}
