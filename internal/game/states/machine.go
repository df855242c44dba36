package states

import (
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/counterair/internal/game/events"
)

// State represents a session state with lifecycle callbacks
type State interface {
	// Phase returns the SessionPhase this state represents
	Phase() SessionPhase

	// Enter is called when transitioning into this state
	Enter(ctx *GameContext) error

	// Exit is called when transitioning out of this state
	Exit(ctx *GameContext) error

	// Validate checks if the state is valid given the context
	Validate(ctx *GameContext) error
}

// Transition represents a state transition in the history
type Transition struct {
	From      SessionPhase
	To        SessionPhase
	Timestamp time.Time
	Reason    string
}

// StateMachine manages session state transitions and history
type StateMachine struct {
	mu           sync.RWMutex
	currentPhase SessionPhase
	states       map[SessionPhase]State
	context      *GameContext
	history      []Transition
	publisher    events.Publisher
}

// NewStateMachine creates a new state machine. publisher may be nil.
func NewStateMachine(ctx *GameContext, publisher events.Publisher) *StateMachine {
	sm := &StateMachine{
		currentPhase: PhaseInitializing,
		states:       make(map[SessionPhase]State),
		context:      ctx,
		history:      make([]Transition, 0, 4),
		publisher:    publisher,
	}

	sm.RegisterState(NewInitializingState())
	sm.RegisterState(NewRunningState())
	sm.RegisterState(NewEndedState())
	sm.RegisterState(NewAbortedState())

	return sm
}

// RegisterState registers a state implementation
func (sm *StateMachine) RegisterState(state State) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.states[state.Phase()] = state
}

// CurrentPhase returns the current session phase
func (sm *StateMachine) CurrentPhase() SessionPhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase
}

// TransitionTo attempts to transition to the specified phase
func (sm *StateMachine) TransitionTo(targetPhase SessionPhase, reason string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.currentPhase.CanTransitionTo(targetPhase) {
		return fmt.Errorf("invalid transition from %s to %s", sm.currentPhase, targetPhase)
	}

	currentState, hasCurrentState := sm.states[sm.currentPhase]
	targetState, hasTargetState := sm.states[targetPhase]

	if !hasTargetState {
		return fmt.Errorf("no state implementation for phase %s", targetPhase)
	}

	if err := targetState.Validate(sm.context); err != nil {
		return fmt.Errorf("target state validation failed: %w", err)
	}

	if hasCurrentState {
		if err := currentState.Exit(sm.context); err != nil {
			sm.context.Logger.Error().
				Err(err).
				Str("from_phase", sm.currentPhase.String()).
				Str("to_phase", targetPhase.String()).
				Msg("Error exiting state")
		}
	}

	previousPhase := sm.currentPhase
	sm.currentPhase = targetPhase

	if err := targetState.Enter(sm.context); err != nil {
		sm.currentPhase = previousPhase
		return fmt.Errorf("failed to enter state %s: %w", targetPhase, err)
	}

	sm.history = append(sm.history, Transition{
		From:      previousPhase,
		To:        targetPhase,
		Timestamp: time.Now(),
		Reason:    reason,
	})

	if sm.publisher != nil {
		sm.publisher.Publish(events.NewStateTransitionEvent(
			sm.context.GameID,
			previousPhase.String(),
			targetPhase.String(),
			reason,
		))
	}

	sm.context.Logger.Debug().
		Str("from_phase", previousPhase.String()).
		Str("to_phase", targetPhase.String()).
		Str("reason", reason).
		Msg("State transition completed")

	return nil
}

// GetHistory returns a copy of the transition history
func (sm *StateMachine) GetHistory() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	history := make([]Transition, len(sm.history))
	copy(history, sm.history)
	return history
}

// GetContext returns the game context
func (sm *StateMachine) GetContext() *GameContext {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.context
}

// CanTransitionTo checks if a transition to the target phase is allowed
func (sm *StateMachine) CanTransitionTo(targetPhase SessionPhase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase.CanTransitionTo(targetPhase)
}
