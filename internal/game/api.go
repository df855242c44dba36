package game

import (
	"fmt"

	"github.com/mitchelldurbincs/counterair/internal/game/core"
	"github.com/mitchelldurbincs/counterair/internal/game/processor"
	"github.com/mitchelldurbincs/counterair/internal/game/rules"
	"github.com/rs/zerolog"
)

// Stateless helpers for search code that works on bare states. The
// controller and calculator hold no per-game data, so one instance serves
// every caller.
var (
	defaultController = processor.NewPhaseController(zerolog.Nop(), rules.NewOutcomeEvaluator(zerolog.Nop()))
	defaultLegalMoves = rules.NewLegalMoveCalculator()
)

// NewGame returns the initial state.
func NewGame() *core.State {
	return core.NewState()
}

// CurrentPlayer returns the player to move, or core.TerminalPlayer.
func CurrentPlayer(s *core.State) core.Player {
	return s.Player()
}

// LegalMoves returns the legal move ids of s in ascending order.
func LegalMoves(s *core.State) []int {
	return defaultLegalMoves.LegalMoveIDs(s)
}

// Apply returns the successor of s under moveID. s is left untouched. A move
// outside the legal set, or an engine defect, yields a *core.InvariantError.
func Apply(s *core.State, moveID int) (*core.State, error) {
	if s.IsTerminal() {
		return nil, core.ErrGameOver
	}
	m, err := core.DecodeMove(moveID)
	if err != nil {
		return nil, core.NewInvariantError(s, moveID, err)
	}
	if !defaultLegalMoves.IsLegal(s, m) {
		return nil, core.NewInvariantError(s, moveID,
			fmt.Errorf("%w: %s not in %v", core.ErrIllegalMove, m, defaultLegalMoves.LegalMoveIDs(s)))
	}

	next := s.Clone()
	if _, err := defaultController.Apply(next, m); err != nil {
		return nil, err
	}
	return next, nil
}

// IsTerminal reports whether the game is over.
func IsTerminal(s *core.State) bool {
	return s.IsTerminal()
}

// Returns gives the (blue, red) utilities of a finished game.
func Returns(s *core.State) ([core.NumPlayers]float64, error) {
	if !s.IsTerminal() {
		return [core.NumPlayers]float64{}, core.ErrNotTerminal
	}
	return s.Outcome.Returns(), nil
}

// Clone returns an independent copy of s.
func Clone(s *core.State) *core.State {
	return s.Clone()
}

// MoveToString renders moveID as "<PlayerName>(<id>)".
func MoveToString(playerID, moveID int) (string, error) {
	return core.MoveToString(playerID, moveID)
}
