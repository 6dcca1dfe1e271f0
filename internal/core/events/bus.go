// Package events provides the in-process change-notification bus. Repositories
// publish an event after every committed write; subscribers (the summary
// engine, SSE streams) recompute on delivery. Closing a subscription fully
// detaches it: no callbacks fire after Close returns.
package events

import "sync"

// EntityKind identifies which collection an event concerns.
type EntityKind string

const (
	KindAccount     EntityKind = "account"
	KindCategory    EntityKind = "category"
	KindTransaction EntityKind = "transaction"
)

// Op is the write operation that triggered an event.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Event describes one committed write.
type Event struct {
	Kind EntityKind
	Op   Op
	IDs  []string // affected entity ids; may hold several for batch deletes
}

// Bus fans committed-write events out to subscribers. Delivery is synchronous
// in the publisher's goroutine; writes are serialized by the store, so
// subscribers never see concurrent callbacks for the same collection.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*Subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]*Subscription)}
}

// Subscription is a registered callback. Close detaches it.
type Subscription struct {
	bus   *Bus
	id    int
	kinds map[EntityKind]bool // empty = all kinds
	fn    func(Event)
}

// Subscribe registers fn for events of the given kinds (all kinds when none
// are given). The callback runs synchronously on publish.
func (b *Bus) Subscribe(fn func(Event), kinds ...EntityKind) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &Subscription{
		bus:   b,
		id:    b.nextID,
		kinds: make(map[EntityKind]bool, len(kinds)),
		fn:    fn,
	}
	for _, k := range kinds {
		sub.kinds[k] = true
	}
	b.nextID++
	b.subs[sub.id] = sub
	return sub
}

// Publish delivers e to every matching subscriber.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	matched := make([]*Subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		if len(sub.kinds) == 0 || sub.kinds[e.Kind] {
			matched = append(matched, sub)
		}
	}
	b.mu.Unlock()

	// Callbacks run outside the lock so they may subscribe or close freely.
	for _, sub := range matched {
		sub.fn(e)
	}
}

// Close removes the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.mu.Lock()
	delete(s.bus.subs, s.id)
	s.bus.mu.Unlock()
	s.bus = nil
}
