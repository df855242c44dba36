package rules

import "github.com/mitchelldurbincs/counterair/internal/game/core"

// LegalMoveCalculator computes legal moves for the player to move
type LegalMoveCalculator struct{}

// NewLegalMoveCalculator creates a new legal move calculator
func NewLegalMoveCalculator() *LegalMoveCalculator {
	return &LegalMoveCalculator{}
}

// LegalMoves returns the moves permitted in s, in ascending id order. The
// result is empty only when the game is over; otherwise an empty phase
// enumeration falls back to AdvancePhase and then to PassTurn.
func (lmc *LegalMoveCalculator) LegalMoves(s *core.State) []core.Move {
	if s.IsTerminal() {
		return nil
	}

	var moves []core.Move
	switch s.Phase {
	case core.PhasePlaceEscort, core.PhasePlaceHighStrike, core.PhasePlaceSEAD:
		moves = placements(s.BluePlaceableFighters)
	case core.PhasePlaceIntercept:
		moves = placements(s.RedPlaceableFighters)
	case core.PhasePlaceSAM:
		moves = placements(s.RedPlaceableSAMs)
	case core.PhaseAirToAir:
		moves = airToAirMoves(s)
	case core.PhaseGroundToAir:
		moves = groundToAirMoves(s)
	case core.PhaseHighStrikeAttack:
		moves = highStrikeMoves(s)
	case core.PhaseUAV:
		moves = uavMoves(s)
	case core.PhaseLowStrikeAttack:
		moves = lowStrikeMoves(s)
	}

	if len(moves) == 0 {
		moves = append(moves, core.PassTurn())
	}
	return moves
}

// LegalMoveIDs returns the wire ids of LegalMoves.
func (lmc *LegalMoveCalculator) LegalMoveIDs(s *core.State) []int {
	return core.MoveIDs(lmc.LegalMoves(s))
}

// GetLegalActionMask returns a boolean mask of width NumDistinctMoves where
// index i is true when move id i is legal.
func (lmc *LegalMoveCalculator) GetLegalActionMask(s *core.State) []bool {
	mask := make([]bool, core.NumDistinctMoves)
	for _, m := range lmc.LegalMoves(s) {
		mask[m.ID()] = true
	}
	return mask
}

// IsLegal reports whether m is in the legal set of s.
func (lmc *LegalMoveCalculator) IsLegal(s *core.State, m core.Move) bool {
	for _, legal := range lmc.LegalMoves(s) {
		if legal == m {
			return true
		}
	}
	return false
}

// placements enumerates every count from zero to the pool, inclusive.
func placements(pool int) []core.Move {
	moves := make([]core.Move, 0, pool+1)
	for n := 0; n <= pool; n++ {
		moves = append(moves, core.PhaseMove(n))
	}
	return moves
}

func airToAirMoves(s *core.State) []core.Move {
	b := &s.Board
	var moves []core.Move

	switch {
	case s.CurrentPlayer == core.Blue && s.SubTurn == core.Declare:
		if b[core.EscortAttacking] > 0 && b[core.InterceptAttacking] > 0 {
			moves = append(moves, core.PhaseMove(1))
		}
	case s.CurrentPlayer == core.Blue && s.SubTurn == core.Resolve:
		moves = append(moves, core.PhaseMove(0))
		if b[core.EscortAttacking] > 0 {
			moves = append(moves, core.PhaseMove(1))
		}
		if s.Target == core.HighStrikeAttacking {
			moves = append(moves, core.PhaseMove(2))
		}
		if s.Target == core.LowStrikeAttacking {
			moves = append(moves, core.PhaseMove(3))
		}
	case s.CurrentPlayer == core.Red && s.SubTurn == core.Declare:
		if b[core.InterceptAttacking] > 0 {
			if b[core.EscortAttacking] > 0 {
				moves = append(moves, core.PhaseMove(0))
			}
			if b[core.HighStrikeAttacking] > 0 {
				moves = append(moves, core.PhaseMove(1))
			}
			if b[core.LowStrikeAttacking] > 0 {
				moves = append(moves, core.PhaseMove(2))
			}
		}
	case s.CurrentPlayer == core.Red && s.SubTurn == core.Resolve:
		moves = append(moves, core.PhaseMove(0), core.PhaseMove(1))
	}

	noInterceptors := b[core.InterceptAttacking] == 0
	noBlueTargets := b[core.EscortAttacking] == 0 &&
		b[core.HighStrikeAttacking] == 0 &&
		b[core.LowStrikeAttacking] == 0
	if len(moves) == 0 && (noInterceptors || noBlueTargets) {
		moves = append(moves, core.AdvancePhase())
	}
	return moves
}

func groundToAirMoves(s *core.State) []core.Move {
	b := &s.Board
	q := &s.Quotas
	var moves []core.Move

	switch {
	case s.CurrentPlayer == core.Blue && s.SubTurn == core.Declare:
		if b[core.SEADAttacking] > 0 {
			if b[core.ActiveSAMAttacking] > 0 {
				moves = append(moves, core.PhaseMove(0))
			}
			if b[core.AAAAttacking] > 0 {
				moves = append(moves, core.PhaseMove(1))
			}
		}
	case s.CurrentPlayer == core.Blue && s.SubTurn == core.Resolve:
		if s.Target == core.HighStrikeAttacking {
			moves = append(moves, core.PhaseMove(0), core.PhaseMove(1))
			if b[core.SEADAttacking] > 0 {
				moves = append(moves, core.PhaseMove(2))
			}
		}
		if s.Target == core.LowStrikeAttacking {
			moves = append(moves, core.PhaseMove(3))
		}
	case s.CurrentPlayer == core.Red && s.SubTurn == core.Declare:
		if b[core.ActiveSAMAttacking] > 0 && b[core.HighStrikeAttacking] > 0 {
			moves = append(moves, core.PhaseMove(0))
		}
		if b[core.AAAAttacking] > 0 && b[core.LowStrikeAttacking] > 0 && q.LowStrike.Available() {
			moves = append(moves, core.PhaseMove(1))
		}
	case s.CurrentPlayer == core.Red && s.SubTurn == core.Resolve:
		moves = append(moves, core.PhaseMove(0))
	}

	// The phase may close while exchanges are still possible for the side
	// that is not to move, so AdvancePhase can join a non-empty set here.
	samIdle := b[core.ActiveSAMAttacking] == 0 || b[core.HighStrikeAttacking] == 0
	aaaIdle := b[core.AAAAttacking] == 0 || b[core.LowStrikeAttacking] == 0 || q.LowStrike.Used == q.LowStrike.Max
	seadIdle := b[core.SEADAttacking] == 0 || (b[core.ActiveSAMAttacking] == 0 && b[core.AAAAttacking] == 0)
	if samIdle && aaaIdle && seadIdle {
		moves = append(moves, core.AdvancePhase())
	}
	return moves
}

func highStrikeMoves(s *core.State) []core.Move {
	b := &s.Board
	q := &s.Quotas
	var moves []core.Move

	if b[core.HighStrikeAttacking] > 0 {
		if b.ZoneTotal(core.ZoneAirbase) > 0 && q.Airbase.Available() {
			moves = append(moves, core.PhaseMove(0))
		}
		if b.ZoneTotal(core.ZoneActiveSAM) > 0 && q.ActiveSAM.Available() {
			moves = append(moves, core.PhaseMove(1))
		}
		if b.ZoneTotal(core.ZonePassiveSAM) > 0 && q.PassiveSAM.Available() {
			moves = append(moves, core.PhaseMove(2))
		}
	}
	if len(moves) == 0 {
		moves = append(moves, core.AdvancePhase())
	}
	return moves
}

// uavMoves: the UAV only flies in the first and third waves.
func uavMoves(s *core.State) []core.Move {
	b := &s.Board
	q := &s.Quotas
	var moves []core.Move

	if s.Wave == 0 || s.Wave == 2 {
		if b.ZoneTotal(core.ZoneActiveSAM) > 0 && q.ActiveSAM.Available() {
			moves = append(moves, core.PhaseMove(0))
		}
		if b.ZoneTotal(core.ZonePassiveSAM) > 0 && q.PassiveSAM.Available() {
			moves = append(moves, core.PhaseMove(1))
		}
	}
	if len(moves) == 0 {
		moves = append(moves, core.AdvancePhase())
	}
	return moves
}

func lowStrikeMoves(s *core.State) []core.Move {
	b := &s.Board
	q := &s.Quotas
	var moves []core.Move

	if b[core.LowStrikeAttacking] > 0 {
		if b[core.AirbaseAttacking] > 0 {
			moves = append(moves, core.PhaseMove(0))
		}
		if b.ZoneTotal(core.ZoneActiveSAM) > 0 && q.ActiveSAM.Available() {
			moves = append(moves, core.PhaseMove(1))
		}
		if b.ZoneTotal(core.ZonePassiveSAM) > 0 && q.PassiveSAM.Available() {
			moves = append(moves, core.PhaseMove(2))
		}
		if b.ZoneTotal(core.ZoneIntercept) > 0 {
			moves = append(moves, core.PhaseMove(3))
		}
	}
	if len(moves) == 0 {
		moves = append(moves, core.AdvancePhase())
	}
	return moves
}
