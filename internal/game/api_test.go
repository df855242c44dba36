package game

import (
	"slices"
	"testing"

	"github.com/mitchelldurbincs/counterair/internal/game/core"
	"github.com/mitchelldurbincs/counterair/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	s := NewGame()

	assert.Equal(t, core.Blue, CurrentPlayer(s))
	assert.Equal(t, core.PhasePlaceEscort, s.Phase)
	assert.Equal(t, 0, s.Wave)
	assert.Equal(t, core.Board{}, s.Board)
	assert.True(t, s.IsAttacking())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, LegalMoves(s))
	assert.False(t, IsTerminal(s))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	s := NewGame()
	before := *s

	next, err := Apply(s, 5)
	require.NoError(t, err)

	assert.Equal(t, before, *s)
	assert.Equal(t, 5, next.Board[core.EscortAttacking])
	assert.Equal(t, 5, next.BluePlaceableFighters)
	assert.Equal(t, core.PhasePlaceHighStrike, next.Phase)
}

func TestApply_Errors(t *testing.T) {
	s := NewGame()

	_, err := Apply(s, core.PassTurnID)
	assert.ErrorIs(t, err, core.ErrIllegalMove)
	assert.True(t, core.IsInvariantViolation(err))

	_, err = Apply(s, 42)
	assert.ErrorIs(t, err, core.ErrInvalidMove)

	over := testutil.CreateStateAtPhase(core.PhasePlaceEscort, core.NumWaves, nil)
	_, err = Apply(over, 0)
	assert.ErrorIs(t, err, core.ErrGameOver)
}

func TestReturns(t *testing.T) {
	_, err := Returns(NewGame())
	assert.ErrorIs(t, err, core.ErrNotTerminal)

	tests := []struct {
		outcome core.Outcome
		want    [core.NumPlayers]float64
	}{
		{core.OutcomeBlueWins, [2]float64{1, -1}},
		{core.OutcomeDraw, [2]float64{0, 0}},
		{core.OutcomeRedWins, [2]float64{-1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			s := testutil.CreateStateAtPhase(core.PhasePlaceEscort, core.NumWaves, nil)
			s.Outcome = tt.outcome
			got, err := Returns(s)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClone_IsIndependent(t *testing.T) {
	s := testutil.CreateAirToAirState()
	c := Clone(s)
	require.Equal(t, s, c)

	c.Board[core.EscortAttacking] = 0
	c.Quotas.LowStrike.Used = 3
	c.BlueHits = 2

	assert.Equal(t, 3, s.Board[core.EscortAttacking])
	assert.Equal(t, 0, s.Quotas.LowStrike.Used)
	assert.Equal(t, 0, s.BlueHits)
}

func TestMoveToString(t *testing.T) {
	tests := []struct {
		player, move int
		want         string
	}{
		{0, 3, "Blue(3)"},
		{1, 11, "Red(11)"},
		{0, 12, "Blue(12)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := MoveToString(tt.player, tt.move)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := MoveToString(2, 0)
	assert.ErrorIs(t, err, core.ErrInvalidPlayer)
}

// unitsInPlay counts every unit that is on the board or waiting to be
// placed, except the AAA sites which are redeployed each wave.
func unitsInPlay(s *core.State) int {
	return testutil.BoardTotal(s) - s.Board.ZoneTotal(core.ZoneAAA)
}

// TestRandomGames drives many random games through the stateless API and
// checks the structural properties of the rules after every move.
func TestRandomGames(t *testing.T) {
	const games = 2000
	rng := testutil.NewTestRNG(20240601)
	outcomes := make(map[core.Outcome]int)

	for g := 0; g < games; g++ {
		s := NewGame()
		applied := 0

		for !IsTerminal(s) {
			legal := LegalMoves(s)
			require.NotEmpty(t, legal, "game %d: empty legal set in %s", g, s.Phase)
			require.True(t, slices.IsSorted(legal), "game %d: legal set not sorted", g)

			if slices.Contains(legal, core.PassTurnID) {
				require.Equal(t, []int{core.PassTurnID}, legal, "game %d: pass joined other moves", g)
			}
			if slices.Contains(legal, core.AdvancePhaseID) && s.Phase != core.PhaseGroundToAir {
				require.Equal(t, []int{core.AdvancePhaseID}, legal, "game %d: advance joined other moves in %s", g, s.Phase)
			}

			// Every legal move must apply cleanly, not only the one played.
			for _, id := range legal {
				_, err := Apply(s, id)
				require.NoError(t, err, "game %d: legal move %d failed in %s", g, id, s.Phase)
			}

			id := legal[rng.Intn(len(legal))]
			next, err := Apply(s, id)
			require.NoError(t, err)
			applied++

			for slot, n := range next.Board {
				require.GreaterOrEqual(t, n, 0, "game %d: slot %s went negative", g, core.Slot(slot))
			}
			require.GreaterOrEqual(t, next.BlueHits, 0)
			require.Less(t, next.BlueHits, core.HitsPerKill)
			require.GreaterOrEqual(t, next.RedHits, 0)
			require.Less(t, next.RedHits, core.HitsPerKill)
			require.LessOrEqual(t, unitsInPlay(next), unitsInPlay(s), "game %d: units created by move %d in %s", g, id, s.Phase)
			require.LessOrEqual(t, next.NumMoves, core.MoveLimit)
			require.GreaterOrEqual(t, next.NumMoves, s.NumMoves)

			s = next
		}

		require.Less(t, applied, core.MaxGameLength)
		assert.Equal(t, core.NumWaves, s.Wave)
		assert.Empty(t, LegalMoves(s))
		assert.Equal(t, core.TerminalPlayer, CurrentPlayer(s))

		returns, err := Returns(s)
		require.NoError(t, err)
		assert.Equal(t, 0.0, returns[core.Blue]+returns[core.Red])
		outcomes[s.Outcome]++
	}

	assert.Zero(t, outcomes[core.OutcomeUndetermined])
	assert.Equal(t, games, outcomes[core.OutcomeBlueWins]+outcomes[core.OutcomeDraw]+outcomes[core.OutcomeRedWins])
}
