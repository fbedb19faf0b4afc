// Package feed is the in-process incident topic. Publishers never wait on
// subscribers: each subscription owns a bounded buffer and the oldest queued
// event is evicted when it is full.
package feed

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"highwayMonitor/internal/domain"
	"highwayMonitor/internal/metrics"
)

const DefaultBuffer = 64

type Hub struct {
	logger *slog.Logger
	buffer int

	mu     sync.RWMutex
	subs   map[uint64]*Subscription
	nextID uint64
	closed bool
}

type Subscription struct {
	id  uint64
	hub *Hub

	mu      sync.Mutex
	ch      chan domain.Event
	closed  bool
	dropped atomic.Int64
}

func NewHub(logger *slog.Logger, buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		logger: logger,
		buffer: buffer,
		subs:   make(map[uint64]*Subscription),
	}
}

// Subscribe registers a new subscription. On a closed hub the returned
// subscription is already closed.
func (h *Hub) Subscribe() *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	s := &Subscription{
		id:  h.nextID,
		hub: h,
		ch:  make(chan domain.Event, h.buffer),
	}
	if h.closed {
		s.closed = true
		close(s.ch)
		return s
	}
	h.subs[s.id] = s
	metrics.FeedSubscribers.Inc()
	h.logger.Debug("feed subscriber added", slog.Uint64("sub_id", s.id), slog.Int("subscribers", len(h.subs)))
	return s
}

// Publish hands evt to every active subscription without blocking.
func (h *Hub) Publish(evt domain.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, s := range h.subs {
		if s.deliver(evt) {
			metrics.FeedDropped.Inc()
			h.logger.Warn("feed subscriber lagging, dropped oldest event",
				slog.Uint64("sub_id", s.id),
				slog.String("type", string(evt.Type)),
				slog.Int64("dropped_total", s.dropped.Load()),
			)
		}
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close ends every subscription; later Subscribe calls get closed handles.
func (h *Hub) Close() {
	h.mu.Lock()
	subs := h.subs
	h.subs = make(map[uint64]*Subscription)
	h.closed = true
	h.mu.Unlock()

	for _, s := range subs {
		s.shut()
		metrics.FeedSubscribers.Dec()
	}
}

func (h *Hub) remove(id uint64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[id]; !ok {
		return false
	}
	delete(h.subs, id)
	metrics.FeedSubscribers.Dec()
	return true
}

// Events is closed once the subscription is closed.
func (s *Subscription) Events() <-chan domain.Event { return s.ch }

func (s *Subscription) Dropped() int64 { return s.dropped.Load() }

func (s *Subscription) Close() {
	if s.hub.remove(s.id) {
		s.hub.logger.Debug("feed subscriber removed", slog.Uint64("sub_id", s.id))
	}
	s.shut()
}

func (s *Subscription) shut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}

// deliver enqueues evt, evicting from the head until it fits. Reports
// whether anything was evicted.
func (s *Subscription) deliver(evt domain.Event) (dropped bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	for {
		select {
		case s.ch <- evt:
			return dropped
		default:
		}
		select {
		case <-s.ch:
			dropped = true
			s.dropped.Add(1)
		default:
		}
	}
}
