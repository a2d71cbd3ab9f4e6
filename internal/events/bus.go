// Package events provides the in-process notification bus that keeps
// independent surfaces consistent after a record mutation. It is a
// single-process substitute for a real push channel, not a distributed
// message broker.
package events

import (
	"sync"

	"fintrack/internal/logger"
)

// Event names published by the record services.
const (
	CategoryCreated    = "category-created"    // payload *models.Category
	CategoryUpdated    = "category-updated"    // payload *models.Category
	CategoryDeleted    = "category-deleted"    // payload category ID string
	TransactionCreated = "transaction-created" // payload *models.Transaction
	TransactionUpdated = "transaction-updated" // payload *models.Transaction
	TransactionDeleted = "transaction-deleted" // payload transaction ID string
)

// Handler receives the payload published with an event.
type Handler func(payload any)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus dispatches events synchronously to subscribers in registration order.
// A handler must not republish the event it is handling; no cycle detection
// is provided.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[string][]subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

// Subscribe registers handler for event and returns a function that removes
// exactly this registration. Calling the returned function more than once
// is safe.
func (b *Bus) Subscribe(event string, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[event] = append(b.subs[event], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[event]
		for i, s := range subs {
			if s.id == id {
				b.subs[event] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish invokes every handler currently registered for event, in
// registration order. A panicking handler is recovered and logged so that
// the remaining handlers still run.
func (b *Bus) Publish(event string, payload any) {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs[event]))
	copy(subs, b.subs[event])
	b.mu.Unlock()

	for _, s := range subs {
		b.dispatch(event, s.handler, payload)
	}
}

func (b *Bus) dispatch(event string, handler Handler, payload any) {
	defer func() {
		if r := recover(); r != nil {
			logger.Get().Errorw("event handler panicked",
				"event", event,
				"panic", r,
			)
		}
	}()
	handler(payload)
}

// ClearAll removes every registration for every event. Used at teardown.
func (b *Bus) ClearAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = make(map[string][]subscription)
}
