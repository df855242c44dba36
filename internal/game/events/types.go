package events

import (
	"time"
)

// Event is implemented by everything published on the bus. Type is one of
// the Type* constants and drives subscriber filtering.
type Event interface {
	Type() string
	Timestamp() time.Time
	GameID() string
}

// BaseEvent carries the fields shared by every engine event
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Game      string    `json:"game_id"`
}

// Type implements Event interface
func (e BaseEvent) Type() string {
	return e.EventType
}

// Timestamp implements Event interface
func (e BaseEvent) Timestamp() time.Time {
	return e.Time
}

// GameID implements Event interface
func (e BaseEvent) GameID() string {
	return e.Game
}

func newBase(eventType, gameID string) BaseEvent {
	return BaseEvent{EventType: eventType, Time: time.Now(), Game: gameID}
}

// EventHandler is a function that processes events
type EventHandler func(Event)

// Subscriber receives the events it declares interest in. ID must be unique
// per bus; subscribing a second time with the same ID replaces the first.
type Subscriber interface {
	ID() string
	HandleEvent(Event)
	InterestedIn(eventType string) bool
}

// EventMetadata locates an event in the game timeline
type EventMetadata struct {
	Player   string `json:"player,omitempty"`
	Phase    string `json:"phase,omitempty"`
	Wave     int    `json:"wave"`
	NumMoves int    `json:"num_moves"`
}

// Publisher is the side of the bus the engine and the lifecycle machine see
type Publisher interface {
	Publish(Event)
}

// Bus is the full event bus surface
type Bus interface {
	Publisher
	Subscribe(Subscriber)
	Unsubscribe(subscriberID string)
	SubscribeFunc(eventType string, handler EventHandler) string
}

var _ Bus = (*EventBus)(nil)
