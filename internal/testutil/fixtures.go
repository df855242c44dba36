package testutil

import (
	"github.com/mitchelldurbincs/counterair/internal/game/core"
)

// CreateTestState returns a fresh game state.
func CreateTestState() *core.State {
	return core.NewState()
}

// CreateStateAtPhase returns a state positioned at the given phase and wave
// with the supplied board. Placement pools are emptied so the board is the
// only source of units.
func CreateStateAtPhase(phase core.Phase, wave int, board map[core.Slot]int) *core.State {
	s := core.NewState()
	s.Phase = phase
	s.Wave = wave
	s.BluePlaceableFighters = 0
	s.RedPlaceableFighters = 0
	s.RedPlaceableSAMs = 0
	for slot, n := range board {
		s.Board[slot] = n
	}
	return s
}

// CreateAirToAirState returns a state at the start of air-to-air combat with
// a typical first-wave deployment.
func CreateAirToAirState() *core.State {
	s := CreateStateAtPhase(core.PhaseAirToAir, 0, map[core.Slot]int{
		core.EscortAttacking:     3,
		core.HighStrikeAttacking: 3,
		core.SEADAttacking:       2,
		core.LowStrikeAttacking:  2,
		core.InterceptAttacking:  2,
		core.ActiveSAMAttacking:  2,
		core.PassiveSAMAttacking: 2,
		core.AirbaseAttacking:    2,
		core.AAAAttacking:        core.AAAPerWave,
	})
	s.NumMoves = 2
	return s
}

// BoardTotal returns the number of units on the board plus all placement
// pools, the quantity conserved within a wave apart from kills.
func BoardTotal(s *core.State) int {
	return s.Board.Sum() + s.BluePlaceableFighters + s.RedPlaceableFighters + s.RedPlaceableSAMs
}
