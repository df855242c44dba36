package core

import "fmt"

// MoveKind tags the variant carried by a Move.
type MoveKind int

const (
	// KindPhase is a phase-specific choice; its meaning depends on the phase.
	KindPhase MoveKind = iota
	// KindPassTurn hands the turn to the opponent.
	KindPassTurn
	// KindAdvancePhase closes the current phase.
	KindAdvancePhase
)

// Wire ids of the two meta-moves.
const (
	PassTurnID       = 11
	AdvancePhaseID   = 12
	MaxPhaseOption   = 10
	NumDistinctMoves = 13
)

// Move is a decoded move id.
type Move struct {
	Kind   MoveKind
	Option int // only meaningful for KindPhase
}

// PhaseMove builds a phase-specific move.
func PhaseMove(option int) Move { return Move{Kind: KindPhase, Option: option} }

// PassTurn is the meta-move that swaps the current player.
func PassTurn() Move { return Move{Kind: KindPassTurn} }

// AdvancePhase is the meta-move that closes the current phase.
func AdvancePhase() Move { return Move{Kind: KindAdvancePhase} }

// ID encodes the move into its wire id in [0, 12].
func (m Move) ID() int {
	switch m.Kind {
	case KindPassTurn:
		return PassTurnID
	case KindAdvancePhase:
		return AdvancePhaseID
	default:
		return m.Option
	}
}

func (m Move) String() string {
	switch m.Kind {
	case KindPassTurn:
		return "PassTurn"
	case KindAdvancePhase:
		return "AdvancePhase"
	default:
		return fmt.Sprintf("Option(%d)", m.Option)
	}
}

// DecodeMove converts a wire id into a Move.
func DecodeMove(id int) (Move, error) {
	switch {
	case id == PassTurnID:
		return PassTurn(), nil
	case id == AdvancePhaseID:
		return AdvancePhase(), nil
	case id >= 0 && id <= MaxPhaseOption:
		return PhaseMove(id), nil
	default:
		return Move{}, fmt.Errorf("%w: %d", ErrInvalidMove, id)
	}
}

// MoveIDs encodes a list of moves.
func MoveIDs(moves []Move) []int {
	ids := make([]int, len(moves))
	for i, m := range moves {
		ids[i] = m.ID()
	}
	return ids
}

// MoveToString renders a move as "<PlayerName>(<id>)".
func MoveToString(playerID, moveID int) (string, error) {
	p, err := ValidatePlayer(playerID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%d)", p, moveID), nil
}
