package engine

import "sync"

// EventType represents the kind of boundary event.
type EventType int

const (
	// EventCollected is emitted when production yield reaches an inventory,
	// whether by explicit collect or by auto-collect during reconcile.
	EventCollected EventType = iota
	// EventSold is emitted when resources are converted into currency.
	EventSold
)

// String returns a human-readable representation of the event type.
func (t EventType) String() string {
	switch t {
	case EventCollected:
		return "Collected"
	case EventSold:
		return "Sold"
	default:
		return "Unknown"
	}
}

// Event notifies downstream collaborators (currency tracking, achievements,
// leaderboard invalidation) about a mass-changing boundary. The engine does
// not depend on their outcome and never rolls back if a handler fails.
type Event struct {
	Type      EventType    `json:"type"`
	GameID    string       `json:"game_id"`
	PlayerID  string       `json:"player_id"`
	Resource  ResourceType `json:"resource"`
	Amount    int64        `json:"amount"`
	Coins     int64        `json:"coins,omitempty"`
	Timestamp int64        `json:"timestamp"`
}

// EventBus delivers boundary events to subscribed handlers.
type EventBus interface {
	// Subscribe registers a handler for one player's events.
	Subscribe(playerID string, handler func(Event))

	// Unsubscribe removes the handler for a player.
	Unsubscribe(playerID string)

	// Publish sends an event to the subscribed handler, if any.
	Publish(event Event)
}

// SimpleEventBus is a basic in-memory event bus implementation.
type SimpleEventBus struct {
	mu       sync.RWMutex
	handlers map[string]func(Event)
}

// NewSimpleEventBus creates a new event bus.
func NewSimpleEventBus() *SimpleEventBus {
	return &SimpleEventBus{handlers: make(map[string]func(Event))}
}

// Subscribe registers a handler for one player's events.
func (bus *SimpleEventBus) Subscribe(playerID string, handler func(Event)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.handlers[playerID] = handler
}

// Unsubscribe removes the handler for a player.
func (bus *SimpleEventBus) Unsubscribe(playerID string) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.handlers, playerID)
}

// Publish sends an event to the subscribed handler. Handlers run
// asynchronously so a slow collaborator cannot block a request.
func (bus *SimpleEventBus) Publish(event Event) {
	bus.mu.RLock()
	handler, exists := bus.handlers[event.PlayerID]
	bus.mu.RUnlock()

	if exists {
		go handler(event)
	}
}

// NullEventBus is an event bus that does nothing (for tests or when events
// are not needed).
type NullEventBus struct{}

// Subscribe does nothing.
func (NullEventBus) Subscribe(playerID string, handler func(Event)) {}

// Unsubscribe does nothing.
func (NullEventBus) Unsubscribe(playerID string) {}

// Publish does nothing.
func (NullEventBus) Publish(event Event) {}
