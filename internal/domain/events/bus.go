// Package events carries state-change notifications from the store's single
// writer to every view that renders that state.
package events

import (
	"sync"
	"time"
)

// Topic names a kind of state change
type Topic string

const (
	CartChanged      Topic = "cart.changed"
	WishlistChanged  Topic = "wishlist.changed"
	OrdersChanged    Topic = "orders.changed"
	WalletChanged    Topic = "wallet.changed"
	ProfileChanged   Topic = "profile.changed"
	AddressesChanged Topic = "addresses.changed"
	ContactChanged   Topic = "contact.changed"

	// All subscribes a handler to every topic
	All Topic = "*"
)

// Event is published after a mutation has been persisted
type Event struct {
	Topic      Topic     `json:"topic"`
	SessionID  string    `json:"session_id"`
	Payload    any       `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Handler receives events on the publishing goroutine
type Handler func(Event)

// Publisher is the write side of the bus used by domain services
type Publisher interface {
	Publish(Event)
}

type subscription struct {
	id      uint64
	topic   Topic
	handler Handler
}

// Bus is a synchronous in-process publish/subscribe hub
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscription
	now    func() time.Time
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{now: func() time.Time { return time.Now().UTC() }}
}

// Subscribe registers handler for topic and returns a func that removes it
func (b *Bus) Subscribe(topic Topic, handler Handler) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, topic: topic, handler: handler})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range b.subs {
				if s.id == id {
					b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Publish delivers e to matching handlers in subscription order
func (b *Bus) Publish(e Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = b.now()
	}

	b.mu.RLock()
	targets := make([]Handler, 0, len(b.subs))
	for _, s := range b.subs {
		if s.topic == All || s.topic == e.Topic {
			targets = append(targets, s.handler)
		}
	}
	b.mu.RUnlock()

	for _, h := range targets {
		h(e)
	}
}

// Subscribers returns the number of registered handlers
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Nop discards every event
type Nop struct{}

func (Nop) Publish(Event) {}
