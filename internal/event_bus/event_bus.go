// Package event_bus is a synchronous in-process publish/subscribe bus. Services
// publish what they changed and readers of derived data, like the dashboard
// cache, subscribe to drop what became stale.
package event_bus

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type EventType string

// Event is the envelope every subscriber receives. It carries the publisher's
// context, so handlers can see the session that caused the event.
type Event struct {
	ctx       context.Context
	Type      EventType
	Timestamp time.Time
	Data      any
}

func NewEvent(ctx context.Context, eventType EventType, data any) Event {
	return Event{ctx: ctx, Type: eventType, Timestamp: time.Now(), Data: data}
}

func (e Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// EventT is an Event whose payload has already been asserted to T.
type EventT[T any] struct {
	Event
	Data T
}

type subscription struct {
	id      uint64
	handler func(Event) error
}

type EventBus struct {
	mu          sync.RWMutex
	subscribers map[EventType][]subscription
	lastId      uint64
}

func NewEventBus() *EventBus {
	return &EventBus{subscribers: map[EventType][]subscription{}}
}

// Subscribe adds handler for eventType. Handlers run in subscription order.
func (eb *EventBus) Subscribe(eventType EventType, handler func(Event) error) (unsubscribe func()) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.lastId++
	id := eb.lastId
	eb.subscribers[eventType] = append(eb.subscribers[eventType], subscription{id: id, handler: handler})

	return func() {
		eb.mu.Lock()
		defer eb.mu.Unlock()
		remaining := slices.DeleteFunc(eb.subscribers[eventType], func(s subscription) bool { return s.id == id })
		if len(remaining) == 0 {
			delete(eb.subscribers, eventType)
			return
		}
		eb.subscribers[eventType] = remaining
	}
}

// SubscribeTyped adds a handler that only sees events whose payload is a T.
// Events with any other payload are skipped.
func SubscribeTyped[T any](eb *EventBus, eventType EventType, handler func(EventT[T]) error) (unsubscribe func()) {
	return eb.Subscribe(eventType, func(e Event) error {
		payload, ok := e.Data.(T)
		if !ok {
			log.Debugf("skipping %s handler: payload is %T, want %T", eventType, e.Data, *new(T))
			return nil
		}
		return handler(EventT[T]{Event: e, Data: payload})
	})
}

func PublishTyped[T any](ctx context.Context, eb *EventBus, eventType EventType, data T) error {
	return eb.Publish(NewEvent(ctx, eventType, data))
}

// Publish runs every handler of e.Type before returning. A failing or
// panicking handler does not stop the others; their errors are joined. Once
// the event's context is done no further handler runs.
func (eb *EventBus) Publish(e Event) error {
	if err := e.Context().Err(); err != nil {
		return fmt.Errorf("event %s not published: %w", e.Type, err)
	}

	eb.mu.RLock()
	subscribers := slices.Clone(eb.subscribers[e.Type])
	eb.mu.RUnlock()

	var failures []error
	for _, s := range subscribers {
		if err := e.Context().Err(); err != nil {
			failures = append(failures, fmt.Errorf("event %s interrupted: %w", e.Type, err))
			break
		}
		if err := s.run(e); err != nil {
			log.Errorf("handler %d failed on event %s: %v", s.id, e.Type, err)
			failures = append(failures, err)
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("event %s: %d handler(s) failed: %w", e.Type, len(failures), errors.Join(failures...))
	}
	return nil
}

func (s subscription) run(e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler %d panicked: %v", s.id, r)
		}
	}()
	return s.handler(e)
}
