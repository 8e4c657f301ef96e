package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"snapsearch/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSearchStarted   = domain.EventSearchStarted
	EventSearchCompleted = domain.EventSearchCompleted
	EventSearchFailed    = domain.EventSearchFailed
	EventLikeToggled     = domain.EventLikeToggled
	EventThemeChanged    = domain.EventThemeChanged
	EventError           = domain.EventError
)

// Re-export domain event types
type SearchStartedEvent = domain.SearchStartedEvent
type SearchCompletedEvent = domain.SearchCompletedEvent
type SearchFailedEvent = domain.SearchFailedEvent
type LikeToggledEvent = domain.LikeToggledEvent
type ThemeChangedEvent = domain.ThemeChangedEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus. Events are delivered
// one at a time in publish order, so handlers never run concurrently.
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64

	queueMu sync.Mutex
	ready   *sync.Cond
	queue   []DomainEvent
	closed  bool

	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers: make(map[EventType][]subscription),
	}
	b.ready = sync.NewCond(&b.queueMu)

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish queues an event for all subscribers; it never blocks on handlers
func (b *bus) Publish(event DomainEvent) {
	log.Printf("EventBus: Publishing event %s", event.Type())

	b.queueMu.Lock()
	defer b.queueMu.Unlock()
	if b.closed {
		log.Printf("EventBus: closed, dropping event %s", event.Type())
		return
	}
	b.queue = append(b.queue, event)
	b.ready.Signal()
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops accepting events, delivers everything already queued and
// waits for the last handler to return
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		b.queueMu.Lock()
		b.closed = true
		b.ready.Broadcast()
		b.queueMu.Unlock()
		b.wg.Wait()
	})
}

// next blocks until an event is queued; ok is false once closed and drained
func (b *bus) next() (DomainEvent, bool) {
	b.queueMu.Lock()
	defer b.queueMu.Unlock()

	for len(b.queue) == 0 && !b.closed {
		b.ready.Wait()
	}
	if len(b.queue) == 0 {
		return nil, false
	}
	event := b.queue[0]
	b.queue[0] = nil
	b.queue = b.queue[1:]
	return event, true
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		event, ok := b.next()
		if !ok {
			return
		}

		// Make a copy to avoid holding lock during handler execution
		b.mu.RLock()
		subs := make([]subscription, len(b.handlers[event.Type()]))
		copy(subs, b.handlers[event.Type()])
		b.mu.RUnlock()

		for _, s := range subs {
			b.deliver(s.handler, event)
		}
	}
}

func (b *bus) deliver(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
		}
	}()
	h(event)
}
