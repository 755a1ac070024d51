package sdk

import (
	"sync"
	"time"
)

// EventType defines the type of event.
type EventType string

const (
	// EventTypeRulesetSelected is triggered when a ruleset becomes the selected ruleset.
	EventTypeRulesetSelected EventType = "ruleset_selected"
	// EventTypeRulesetActivated is triggered after an activation pass.
	EventTypeRulesetActivated EventType = "ruleset_activated"
	// EventTypeRulesetDeactivated is triggered after a deactivation pass.
	EventTypeRulesetDeactivated EventType = "ruleset_deactivated"
	// EventTypeRuleFailed is triggered for every isolated rule callback failure.
	EventTypeRuleFailed EventType = "rule_failed"
	// EventTypeGameCreated is triggered after a pre or post game created dispatch.
	EventTypeGameCreated EventType = "game_created"
	// EventTypeSyncRequired is triggered in multiplayer sessions when active rules modified syncable data.
	EventTypeSyncRequired EventType = "sync_required"
	// EventTypeRulesetRegistered is triggered when a ruleset is added to a registry at runtime.
	EventTypeRulesetRegistered EventType = "ruleset_registered"
)

// Event represents a system event.
type Event struct {
	Type      EventType
	Payload   any
	Timestamp int64
	Source    string
}

// NewEvent creates a new event with the current timestamp.
func NewEvent(eventType EventType, source string, payload any) Event {
	return Event{
		Type:      eventType,
		Source:    source,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}
}

// EventHandler is a function that handles an event.
type EventHandler func(event Event)

// EventBus defines the interface for the system event bus.
type EventBus interface {
	// Subscribe registers a handler for a specific event type and returns a function that removes it.
	Subscribe(eventType EventType, handler EventHandler) (unsubscribe func())
	// Publish publishes an event to all subscribers.
	Publish(event Event)
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// DefaultEventBus is a simple in-memory event bus implementation.
// Handlers run synchronously, in subscription order, on the publishing goroutine.
type DefaultEventBus struct {
	handlers map[EventType][]subscription
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new DefaultEventBus.
func NewEventBus() *DefaultEventBus {
	return &DefaultEventBus{
		handlers: make(map[EventType][]subscription),
	}
}

// Subscribe registers a handler for a specific event type.
func (b *DefaultEventBus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})
	return func() { b.unsubscribe(eventType, id) }
}

func (b *DefaultEventBus) unsubscribe(eventType EventType, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish publishes an event to all subscribers.
func (b *DefaultEventBus) Publish(event Event) {
	b.mu.RLock()
	subs := append([]subscription(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}
