package states

import (
	"time"

	"github.com/mitchelldurbincs/counterair/internal/game/core"
	"github.com/rs/zerolog"
)

// GameContext provides session information to states for making decisions
type GameContext struct {
	// GameID uniquely identifies this game instance
	GameID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// StartTime is when the session entered PhaseRunning
	StartTime time.Time

	// EndTime is when the session reached a terminal phase
	EndTime time.Time

	// Outcome is set before the transition to PhaseEnded
	Outcome core.Outcome

	// Error holds the invariant violation that caused PhaseAborted
	Error error
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID: gameID,
		Logger: logger.With().Str("game_id", gameID).Logger(),
	}
}

// GetElapsedTime returns the time elapsed since the session started running
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	if !gc.EndTime.IsZero() {
		return gc.EndTime.Sub(gc.StartTime)
	}
	return time.Since(gc.StartTime)
}
