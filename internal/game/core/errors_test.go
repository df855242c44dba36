package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvariantError(t *testing.T) {
	s := NewState()
	s.Phase = PhaseAirToAir
	s.Wave = 2
	s.CurrentPlayer = Red

	err := NewInvariantError(s, 7, ErrIllegalMove)

	assert.Equal(t, Red, err.Player)
	assert.Equal(t, PhaseAirToAir, err.Phase)
	assert.Equal(t, 2, err.Wave)
	assert.Equal(t, 7, err.MoveID)
	assert.ErrorIs(t, err, ErrIllegalMove)
	assert.Contains(t, err.Error(), "player=Red phase=AirToAir wave=2 move=7")

	wrapped := fmt.Errorf("apply: %w", err)
	assert.True(t, IsInvariantViolation(wrapped))
	assert.ErrorIs(t, wrapped, ErrIllegalMove)

	assert.False(t, IsInvariantViolation(ErrGameOver))
	assert.False(t, IsInvariantViolation(nil))
	assert.False(t, IsInvariantViolation(errors.New("other")))
}

func TestValidatePlayer(t *testing.T) {
	p, err := ValidatePlayer(1)
	assert.NoError(t, err)
	assert.Equal(t, Red, p)
	assert.Equal(t, Blue, p.Opponent())

	_, err = ValidatePlayer(NumPlayers)
	assert.ErrorIs(t, err, ErrInvalidPlayer)

	assert.False(t, TerminalPlayer.Valid())
	assert.Equal(t, "Terminal", TerminalPlayer.String())
	assert.Equal(t, "Player(7)", Player(7).String())
}
