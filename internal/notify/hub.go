// Package notify fans change events out to in-process subscribers and,
// optionally, to an ntfy push topic. Subscribers are plain callbacks; one
// panicking subscriber never blocks the others.
package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a published change.
type Kind string

const (
	KindGeneral Kind = "geral"
	KindCreated Kind = "criacao"
	KindUpdated Kind = "atualizacao"
	KindDeleted Kind = "exclusao"
)

// recentLimit bounds the in-memory diagnostic log.
const recentLimit = 100

// Event is one published change.
type Event struct {
	Time    time.Time
	Kind    Kind
	Payload string
}

// Hub is the observer registry.
type Hub struct {
	logger *slog.Logger

	mu          sync.Mutex
	subscribers map[string]func(Event)
	recent      []Event
}

// NewHub constructs an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger:      logger,
		subscribers: make(map[string]func(Event)),
	}
}

// Subscribe registers a callback and returns the token that removes it.
func (h *Hub) Subscribe(fn func(Event)) string {
	token := uuid.NewString()
	h.mu.Lock()
	h.subscribers[token] = fn
	h.mu.Unlock()
	return token
}

// Unsubscribe removes a previously registered callback. Unknown tokens are
// ignored.
func (h *Hub) Unsubscribe(token string) {
	h.mu.Lock()
	delete(h.subscribers, token)
	h.mu.Unlock()
}

// Publish records the event and invokes every subscriber synchronously.
func (h *Hub) Publish(kind Kind, payload string) {
	event := Event{Time: time.Now(), Kind: kind, Payload: payload}

	h.mu.Lock()
	h.recent = append(h.recent, event)
	if len(h.recent) > recentLimit {
		h.recent = h.recent[len(h.recent)-recentLimit:]
	}
	callbacks := make([]func(Event), 0, len(h.subscribers))
	for _, fn := range h.subscribers {
		callbacks = append(callbacks, fn)
	}
	h.mu.Unlock()

	for _, fn := range callbacks {
		h.invoke(fn, event)
	}
}

func (h *Hub) invoke(fn func(Event), event Event) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Warn("subscriber panicked",
				slog.String("kind", string(event.Kind)),
				slog.Any("panic", r))
		}
	}()
	fn(event)
}

// Recent returns up to limit of the most recently published events, oldest
// first.
func (h *Hub) Recent(limit int) []Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	if limit <= 0 || limit > len(h.recent) {
		limit = len(h.recent)
	}
	out := make([]Event, limit)
	copy(out, h.recent[len(h.recent)-limit:])
	return out
}
