// Package eventbus provides a typed publish/subscribe event bus for
// cross-component notifications within revdiff. The bus is the external
// analytics collaborator of the navigation core: hint usage, revision
// selection, and reload activity all flow through it.
package eventbus

import (
	"context"
	"sync"
)

// Event identifies an event type on the bus.
type Event string

// All event types, sorted A-Z.
const (
	EventHintUsed          Event = "hint.used"
	EventRevisionSelected  Event = "revision.selected"
	EventRevisionsReloaded Event = "revisions.reloaded"
)

// HintUsedPayload is emitted when a user-triggered scroll hint is used.
// Direction is "above" or "below".
type HintUsedPayload struct {
	Direction string
}

// RevisionSelectedPayload is emitted when the active revision changes.
type RevisionSelectedPayload struct {
	RevisionID string
}

// RevisionsReloadedPayload is emitted after the revision set is reloaded
// from disk.
type RevisionsReloadedPayload struct {
	Count int
}

// envelope pairs an event with its payload for the dispatch channel.
type envelope struct {
	event   Event
	payload any
}

// EventBus is a buffered, typed publish/subscribe bus. Publishes never
// block: when the buffer is full the event is dropped and the OnDrop
// hooks fire instead.
type EventBus struct {
	ch chan envelope

	mu                sync.RWMutex
	hintUsed          []func(HintUsedPayload)
	revisionSelected  []func(RevisionSelectedPayload)
	revisionsReloaded []func(RevisionsReloadedPayload)

	hooks hooks
}

// DefaultBuffer is the channel capacity used by callers without a
// specific sizing need.
const DefaultBuffer = 64

// New creates a bus with the given buffer size.
func New(buffer int) *EventBus {
	return &EventBus{
		ch: make(chan envelope, buffer),
	}
}

// Start runs the dispatch loop until ctx is canceled. Subscribers run on
// the dispatch goroutine; a panicking subscriber is recovered and
// reported through the OnPanic hooks.
func (bus *EventBus) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case env := <-bus.ch:
			bus.dispatch(env)
		}
	}
}

// PublishHintUsed enqueues a hint.used event.
func (bus *EventBus) PublishHintUsed(p HintUsedPayload) {
	bus.send(EventHintUsed, p)
}

// SubscribeHintUsed registers a handler for hint.used events.
func (bus *EventBus) SubscribeHintUsed(fn func(HintUsedPayload)) {
	bus.mu.Lock()
	bus.hintUsed = append(bus.hintUsed, fn)
	bus.mu.Unlock()
	bus.runOnSubscribe(EventHintUsed)
}

// PublishRevisionSelected enqueues a revision.selected event.
func (bus *EventBus) PublishRevisionSelected(p RevisionSelectedPayload) {
	bus.send(EventRevisionSelected, p)
}

// SubscribeRevisionSelected registers a handler for revision.selected events.
func (bus *EventBus) SubscribeRevisionSelected(fn func(RevisionSelectedPayload)) {
	bus.mu.Lock()
	bus.revisionSelected = append(bus.revisionSelected, fn)
	bus.mu.Unlock()
	bus.runOnSubscribe(EventRevisionSelected)
}

// PublishRevisionsReloaded enqueues a revisions.reloaded event.
func (bus *EventBus) PublishRevisionsReloaded(p RevisionsReloadedPayload) {
	bus.send(EventRevisionsReloaded, p)
}

// SubscribeRevisionsReloaded registers a handler for revisions.reloaded events.
func (bus *EventBus) SubscribeRevisionsReloaded(fn func(RevisionsReloadedPayload)) {
	bus.mu.Lock()
	bus.revisionsReloaded = append(bus.revisionsReloaded, fn)
	bus.mu.Unlock()
	bus.runOnSubscribe(EventRevisionsReloaded)
}

// send enqueues an event and fires hooks.
func (bus *EventBus) send(event Event, payload any) {
	select {
	case bus.ch <- envelope{event: event, payload: payload}:
		bus.runOnPublish(event, payload)
	default:
		bus.runOnDrop(event, payload)
	}
}

func (bus *EventBus) dispatch(env envelope) {
	bus.mu.RLock()
	var handlers []func(any)
	switch p := env.payload.(type) {
	case HintUsedPayload:
		for _, fn := range bus.hintUsed {
			fn := fn
			handlers = append(handlers, func(any) { fn(p) })
		}
	case RevisionSelectedPayload:
		for _, fn := range bus.revisionSelected {
			fn := fn
			handlers = append(handlers, func(any) { fn(p) })
		}
	case RevisionsReloadedPayload:
		for _, fn := range bus.revisionsReloaded {
			fn := fn
			handlers = append(handlers, func(any) { fn(p) })
		}
	}
	bus.mu.RUnlock()

	for _, fn := range handlers {
		bus.safeCall(env, fn)
	}
}

func (bus *EventBus) safeCall(env envelope, fn func(any)) {
	defer func() {
		if r := recover(); r != nil {
			bus.runOnPanic(env.event, env.payload, r)
		}
	}()
	fn(nil)
}

// HintSink adapts the bus to the navigation core's analytics sink.
type HintSink struct {
	Bus *EventBus
}

// HintUsed publishes a hint.used event with the given direction.
func (s HintSink) HintUsed(direction string) {
	if s.Bus == nil {
		return
	}
	s.Bus.PublishHintUsed(HintUsedPayload{Direction: direction})
}
