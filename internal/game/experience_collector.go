package game

import "github.com/mitchelldurbincs/counterair/internal/game/core"

// ExperienceCollector is an interface for collecting experiences during gameplay
type ExperienceCollector interface {
	// OnStateTransition is called after each applied move with the state
	// before and after it, the player who moved and the move id
	OnStateTransition(prevState, currState *core.State, mover core.Player, moveID int)

	// OnGameEnd is called once when the game ends
	OnGameEnd(finalState *core.State)
}
