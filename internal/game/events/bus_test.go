package events

import (
	"testing"

	"github.com/mitchelldurbincs/counterair/internal/game/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	received := false
	var receivedEvent Event

	bus.SubscribeFunc(TypeGameStarted, func(e Event) {
		received = true
		receivedEvent = e
	})

	bus.Publish(NewGameStartedEvent("test-game", core.NewState()))

	assert.True(t, received, "Event handler should have been called")
	require.NotNil(t, receivedEvent)
	assert.Equal(t, TypeGameStarted, receivedEvent.Type())
	assert.Equal(t, "test-game", receivedEvent.GameID())

	started := receivedEvent.(*GameStartedEvent)
	assert.Equal(t, core.InitialBlueFighters, started.BlueFighters)
	assert.Equal(t, core.InitialRedFighters, started.RedFighters)
	assert.Equal(t, core.InitialRedSAMs, started.RedSAMs)
}

func TestEventBusMultipleHandlers(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	var order []int
	id1 := bus.SubscribeFunc(TypeMoveApplied, func(e Event) { order = append(order, 1) })
	id2 := bus.SubscribeFunc(TypeMoveApplied, func(e Event) { order = append(order, 2) })

	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, bus.GetFuncHandlerCount(TypeMoveApplied))

	bus.Publish(NewMoveAppliedEvent("test-game", core.NewState(), 3, "Blue(3)"))

	assert.Equal(t, []int{1, 2}, order)
}

// TestSubscriber is a test implementation of Subscriber
type TestSubscriber struct {
	id              string
	interestedTypes map[string]bool
	receivedEvents  []Event
}

func (ts *TestSubscriber) ID() string {
	return ts.id
}

func (ts *TestSubscriber) HandleEvent(e Event) {
	ts.receivedEvents = append(ts.receivedEvents, e)
}

func (ts *TestSubscriber) InterestedIn(eventType string) bool {
	if ts.interestedTypes == nil {
		return true
	}
	return ts.interestedTypes[eventType]
}

type panickingSubscriber struct{}

func (panickingSubscriber) ID() string { return "panics" }
func (panickingSubscriber) HandleEvent(Event) { panic("boom") }
func (panickingSubscriber) InterestedIn(string) bool { return true }

func TestEventBusSubscriber(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())
	s := core.NewState()

	subscriber := &TestSubscriber{
		id: "test-subscriber",
		interestedTypes: map[string]bool{
			TypeGameStarted: true,
			TypeGameEnded:   true,
		},
	}
	bus.Subscribe(subscriber)
	assert.Equal(t, 1, bus.GetSubscriberCount())

	bus.Publish(NewGameStartedEvent("test-game", s))
	bus.Publish(NewPhaseAdvancedEvent("test-game", s, core.PhaseAirToAir, core.PhaseGroundToAir))
	bus.Publish(NewGameEndedEvent("test-game", s, 0))

	require.Len(t, subscriber.receivedEvents, 2)
	assert.Equal(t, TypeGameStarted, subscriber.receivedEvents[0].Type())
	assert.Equal(t, TypeGameEnded, subscriber.receivedEvents[1].Type())

	bus.Unsubscribe(subscriber.ID())
	bus.Publish(NewGameStartedEvent("test-game", s))

	assert.Len(t, subscriber.receivedEvents, 2)
	assert.Equal(t, 0, bus.GetSubscriberCount())
}

func TestEventBusRecoversFromPanics(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())
	after := &TestSubscriber{id: "after"}

	bus.Subscribe(panickingSubscriber{})
	bus.Subscribe(after)
	bus.SubscribeFunc(TypeWaveEnded, func(Event) { panic("handler boom") })

	assert.NotPanics(t, func() {
		bus.Publish(NewWaveEndedEvent("test-game", core.NewState()))
	})
	assert.Len(t, after.receivedEvents, 1)
}

func TestNewUnitDestroyedEvent(t *testing.T) {
	s := core.NewState()
	s.Phase = core.PhaseAirToAir
	s.RedPoints = 2

	e := NewUnitDestroyedEvent("g", s, core.EscortAttacking, core.Blue)

	assert.Equal(t, TypeUnitDestroyed, e.Type())
	assert.Equal(t, "Escort.attacking", e.Slot)
	assert.Equal(t, "Escort", e.Zone)
	assert.Equal(t, "Blue", e.Victim)
	assert.Equal(t, "Red", e.Metadata.Player)
	assert.Equal(t, "AirToAir", e.Metadata.Phase)
	assert.Equal(t, 2, e.RedPoints)
}
