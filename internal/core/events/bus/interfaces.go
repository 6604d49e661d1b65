package bus

import "time"

// Event is a single occurrence delivered through the bus. Scene lifecycle
// notifications (enter tree, exit tree, rename, reparent) are the primary
// producers.
type Event interface {
	Type() string
	Source() string
	Timestamp() time.Time
	Data() any
}

// EventHandler processes a delivered event. A non-nil error is joined with
// errors from other handlers and returned to the publisher.
type EventHandler func(Event) error

// EventFilter decides whether an event should be published at all.
type EventFilter func(Event) bool

// Subscription is a handle to an active handler registration.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	Cancel() error
}

// EventBus delivers events synchronously to all subscribers of an event type.
type EventBus interface {
	Publish(event Event) error
	PublishWithFilters(event Event, filters ...EventFilter) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	Unsubscribe(sub Subscription) error
	Metrics() Metrics
}

// Metrics holds delivery counters, updated on every publish.
type Metrics struct {
	Published         uint64
	DeliveredHandlers uint64
	DroppedByFilters  uint64
	Errors            uint64
}
