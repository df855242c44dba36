package states

import (
	"errors"
	"testing"

	"github.com/mitchelldurbincs/counterair/internal/game/core"
	"github.com/mitchelldurbincs/counterair/internal/game/events"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionPhase_String(t *testing.T) {
	tests := []struct {
		phase    SessionPhase
		expected string
	}{
		{PhaseInitializing, "Initializing"},
		{PhaseRunning, "Running"},
		{PhaseEnded, "Ended"},
		{PhaseAborted, "Aborted"},
		{SessionPhase(999), "Unknown(999)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.phase.String())
		})
	}
}

func TestSessionPhase_Properties(t *testing.T) {
	t.Run("IsTerminal", func(t *testing.T) {
		assert.True(t, PhaseEnded.IsTerminal())
		assert.True(t, PhaseAborted.IsTerminal())
		assert.False(t, PhaseRunning.IsTerminal())
		assert.False(t, PhaseInitializing.IsTerminal())
	})

	t.Run("CanReceiveMoves", func(t *testing.T) {
		assert.True(t, PhaseRunning.CanReceiveMoves())
		assert.False(t, PhaseInitializing.CanReceiveMoves())
		assert.False(t, PhaseEnded.CanReceiveMoves())
		assert.False(t, PhaseAborted.CanReceiveMoves())
	})
}

func TestSessionPhase_Transitions(t *testing.T) {
	tests := []struct {
		from    SessionPhase
		allowed []SessionPhase
	}{
		{PhaseInitializing, []SessionPhase{PhaseRunning, PhaseAborted}},
		{PhaseRunning, []SessionPhase{PhaseEnded, PhaseAborted}},
		{PhaseEnded, []SessionPhase{}},
		{PhaseAborted, []SessionPhase{}},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.AllowedTransitions())
			for _, target := range []SessionPhase{PhaseInitializing, PhaseRunning, PhaseEnded, PhaseAborted} {
				assert.Equal(t, contains(tt.allowed, target), tt.from.CanTransitionTo(target), "%s -> %s", tt.from, target)
			}
		})
	}
}

func contains(phases []SessionPhase, p SessionPhase) bool {
	for _, q := range phases {
		if q == p {
			return true
		}
	}
	return false
}

func newTestMachine(t *testing.T) (*StateMachine, *events.EventBus) {
	t.Helper()
	bus := events.NewEventBus(zerolog.Nop())
	ctx := NewGameContext("test-game", zerolog.Nop())
	return NewStateMachine(ctx, bus), bus
}

func TestStateMachine_NormalLifecycle(t *testing.T) {
	sm, bus := newTestMachine(t)

	var transitions []*events.StateTransitionEvent
	bus.SubscribeFunc(events.TypeStateTransition, func(e events.Event) {
		transitions = append(transitions, e.(*events.StateTransitionEvent))
	})

	assert.Equal(t, PhaseInitializing, sm.CurrentPhase())
	require.NoError(t, sm.TransitionTo(PhaseRunning, "first move"))
	assert.False(t, sm.GetContext().StartTime.IsZero())

	err := sm.TransitionTo(PhaseEnded, "final wave played")
	require.Error(t, err, "ending without an outcome must fail validation")
	assert.Equal(t, PhaseRunning, sm.CurrentPhase())

	sm.GetContext().Outcome = core.OutcomeDraw
	require.NoError(t, sm.TransitionTo(PhaseEnded, "final wave played"))
	assert.Equal(t, PhaseEnded, sm.CurrentPhase())
	assert.False(t, sm.GetContext().EndTime.IsZero())

	history := sm.GetHistory()
	require.Len(t, history, 2)
	assert.Equal(t, PhaseInitializing, history[0].From)
	assert.Equal(t, PhaseRunning, history[0].To)
	assert.Equal(t, "final wave played", history[1].Reason)

	require.Len(t, transitions, 2)
	assert.Equal(t, "Running", transitions[1].FromState)
	assert.Equal(t, "Ended", transitions[1].ToState)
}

func TestStateMachine_Abort(t *testing.T) {
	sm, _ := newTestMachine(t)
	require.NoError(t, sm.TransitionTo(PhaseRunning, "first move"))

	assert.Error(t, sm.TransitionTo(PhaseAborted, "missing error"))

	sm.GetContext().Error = errors.New("move limit exceeded")
	require.NoError(t, sm.TransitionTo(PhaseAborted, "invariant violation"))
	assert.Equal(t, PhaseAborted, sm.CurrentPhase())

	assert.False(t, sm.CanTransitionTo(PhaseRunning))
	assert.Error(t, sm.TransitionTo(PhaseRunning, "restart"))
}

func TestStateMachine_InvalidTransition(t *testing.T) {
	sm, _ := newTestMachine(t)

	err := sm.TransitionTo(PhaseEnded, "skip running")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid transition")
	assert.Empty(t, sm.GetHistory())
}

func TestStateMachine_NilPublisher(t *testing.T) {
	sm := NewStateMachine(NewGameContext("g", zerolog.Nop()), nil)
	assert.NoError(t, sm.TransitionTo(PhaseRunning, "start"))
}

func TestStateMachine_RunningRequiresGameID(t *testing.T) {
	sm := NewStateMachine(NewGameContext("", zerolog.Nop()), nil)
	assert.Error(t, sm.TransitionTo(PhaseRunning, "start"))
}
