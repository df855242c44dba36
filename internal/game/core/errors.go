package core

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove       = errors.New("move is not legal in the current state")
	ErrInvalidMove       = errors.New("invalid move id")
	ErrMoveLimitExceeded = errors.New("move limit exceeded")
	ErrNoTransition      = errors.New("no transition for phase/player/subturn")
	ErrInvalidPlayer     = errors.New("invalid player ID")
	ErrGameOver          = errors.New("game is over")
	ErrNotTerminal       = errors.New("game is not over")
	ErrSessionAborted    = errors.New("session aborted after invariant violation")
)

// InvariantError reports a defect in the driver or the engine. It is never a
// normal game outcome: the session that produced it must stop.
type InvariantError struct {
	Player Player
	Phase  Phase
	Wave   int
	MoveID int
	Err    error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation (player=%s phase=%s wave=%d move=%d): %v",
		e.Player, e.Phase, e.Wave, e.MoveID, e.Err)
}

func (e *InvariantError) Unwrap() error { return e.Err }

// NewInvariantError captures the state coordinates at the point of failure.
func NewInvariantError(s *State, moveID int, err error) *InvariantError {
	return &InvariantError{
		Player: s.CurrentPlayer,
		Phase:  s.Phase,
		Wave:   s.Wave,
		MoveID: moveID,
		Err:    err,
	}
}

// IsInvariantViolation reports whether err is (or wraps) an InvariantError.
func IsInvariantViolation(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}
