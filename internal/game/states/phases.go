package states

import "fmt"

// SessionPhase is the lifecycle position of one game session. It is distinct
// from the ten rule phases played inside a wave.
type SessionPhase int

const (
	// PhaseInitializing - session object created, no move accepted yet
	PhaseInitializing SessionPhase = iota

	// PhaseRunning - moves are being applied
	PhaseRunning

	// PhaseEnded - the final wave was played and the outcome is known
	PhaseEnded

	// PhaseAborted - an invariant violation stopped the session
	PhaseAborted
)

// String returns the string representation of a SessionPhase
func (p SessionPhase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhaseRunning:
		return "Running"
	case PhaseEnded:
		return "Ended"
	case PhaseAborted:
		return "Aborted"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if no further transition is possible
func (p SessionPhase) IsTerminal() bool {
	return p == PhaseEnded || p == PhaseAborted
}

// CanReceiveMoves returns true if the session accepts moves in this phase
func (p SessionPhase) CanReceiveMoves() bool {
	return p == PhaseRunning
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p SessionPhase) AllowedTransitions() []SessionPhase {
	switch p {
	case PhaseInitializing:
		return []SessionPhase{PhaseRunning, PhaseAborted}
	case PhaseRunning:
		return []SessionPhase{PhaseEnded, PhaseAborted}
	default:
		return []SessionPhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p SessionPhase) CanTransitionTo(target SessionPhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}
