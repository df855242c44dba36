package events

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// EventBus is a synchronous event bus implementation. Subscribers are
// notified in the order they subscribed.
type EventBus struct {
	subscribers  []Subscriber
	funcHandlers map[string][]EventHandler
	mu           sync.RWMutex
	logger       zerolog.Logger
}

// NewEventBus creates a new event bus instance
func NewEventBus(logger zerolog.Logger) *EventBus {
	return &EventBus{
		funcHandlers: make(map[string][]EventHandler),
		logger:       logger.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe adds a new subscriber to the event bus. A subscriber with the
// same ID replaces the previous one.
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for i, s := range eb.subscribers {
		if s.ID() == subscriber.ID() {
			eb.subscribers[i] = subscriber
			return
		}
	}
	eb.subscribers = append(eb.subscribers, subscriber)
	eb.logger.Debug().
		Str("subscriber_id", subscriber.ID()).
		Msg("Subscriber added to event bus")
}

// Unsubscribe removes a subscriber from the event bus
func (eb *EventBus) Unsubscribe(subscriberID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for i, s := range eb.subscribers {
		if s.ID() == subscriberID {
			eb.subscribers = append(eb.subscribers[:i], eb.subscribers[i+1:]...)
			eb.logger.Debug().
				Str("subscriber_id", subscriberID).
				Msg("Subscriber removed from event bus")
			return
		}
	}
}

// SubscribeFunc adds a function handler for specific event types
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.funcHandlers[eventType] = append(eb.funcHandlers[eventType], handler)

	handlerID := fmt.Sprintf("%s_func_%d", eventType, len(eb.funcHandlers[eventType]))
	eb.logger.Debug().
		Str("event_type", eventType).
		Str("handler_id", handlerID).
		Msg("Function handler added to event bus")

	return handlerID
}

// Publish sends an event to all interested subscribers synchronously
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	eventType := event.Type()

	eb.logger.Debug().
		Str("event_type", eventType).
		Str("game_id", event.GameID()).
		Msg("Publishing event")

	for _, subscriber := range eb.subscribers {
		if !subscriber.InterestedIn(eventType) {
			continue
		}
		// A panicking subscriber must not break the others or the engine.
		func() {
			defer func() {
				if r := recover(); r != nil {
					eb.logger.Error().
						Str("subscriber_id", subscriber.ID()).
						Str("event_type", eventType).
						Interface("panic", r).
						Msg("Subscriber panicked while handling event")
				}
			}()
			subscriber.HandleEvent(event)
		}()
	}

	for i, handler := range eb.funcHandlers[eventType] {
		func() {
			defer func() {
				if r := recover(); r != nil {
					eb.logger.Error().
						Str("event_type", eventType).
						Int("handler_index", i).
						Interface("panic", r).
						Msg("Function handler panicked while handling event")
				}
			}()
			handler(event)
		}()
	}
}

// GetSubscriberCount returns the number of subscribers for debugging
func (eb *EventBus) GetSubscriberCount() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers)
}

// GetFuncHandlerCount returns the number of function handlers for a specific event type
func (eb *EventBus) GetFuncHandlerCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.funcHandlers[eventType])
}
