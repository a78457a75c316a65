package event

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/oklog/ulid/v2"
)

// Handler receives the params of a published event.
type Handler func(params json.RawMessage)

// Subscription is the handle returned by Bus.Subscribe.
type Subscription struct {
	id      string
	name    string
	handler Handler
	bus     *Bus
	active  atomic.Bool
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Name returns the event name the subscription listens for.
func (s *Subscription) Name() string {
	return s.name
}

// IsActive reports whether the subscription still receives events.
func (s *Subscription) IsActive() bool {
	return s.active.Load()
}

// Cancel removes the subscription from its bus. It is safe to call more than once.
func (s *Subscription) Cancel() {
	s.bus.Unsubscribe(s)
}

// Bus maps event names to ordered handler lists.
//
// Handlers for the same name run in registration order. The same function may
// be registered more than once, in which case it runs once per registration.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]*Subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string][]*Subscription, 8),
	}
}

// Subscribe registers handler for events named name.
func (b *Bus) Subscribe(name string, handler Handler) *Subscription {
	sub := &Subscription{
		id:      ulid.Make().String(),
		name:    name,
		handler: handler,
		bus:     b,
	}
	sub.active.Store(true)

	b.mu.Lock()
	b.handlers[name] = append(b.handlers[name], sub)
	b.mu.Unlock()

	return sub
}

// Unsubscribe removes sub. It returns false if sub was not registered on this bus.
func (b *Bus) Unsubscribe(sub *Subscription) bool {
	if sub == nil || sub.bus != b {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[sub.name]
	for i, s := range subs {
		if s != sub {
			continue
		}

		// Copy rather than splice in place: Publish may be ranging over the old slice.
		next := make([]*Subscription, 0, len(subs)-1)
		next = append(next, subs[:i]...)
		next = append(next, subs[i+1:]...)

		if len(next) == 0 {
			delete(b.handlers, sub.name)
		} else {
			b.handlers[sub.name] = next
		}

		sub.active.Store(false)

		return true
	}

	return false
}

// Publish invokes every handler registered for name, in registration order,
// and returns how many ran. Handlers run on the caller's goroutine.
//
// The handler list is snapshotted before dispatch, so handlers may subscribe
// or unsubscribe without deadlocking. A subscription cancelled mid-dispatch
// does not run.
func (b *Bus) Publish(name string, params json.RawMessage) int {
	b.mu.RLock()
	subs := b.handlers[name]
	b.mu.RUnlock()

	n := 0

	for _, sub := range subs {
		if !sub.active.Load() {
			continue
		}

		sub.handler(params)
		n++
	}

	return n
}

// Len returns the number of handlers registered for name.
func (b *Bus) Len(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.handlers[name])
}

// Clear removes every subscription.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, subs := range b.handlers {
		for _, sub := range subs {
			sub.active.Store(false)
		}
	}

	b.handlers = make(map[string][]*Subscription, 8)
}
