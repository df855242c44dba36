package experience

import "github.com/mitchelldurbincs/counterair/internal/game/core"

// RewardConfig holds the terminal reward of each outcome
type RewardConfig struct {
	WinGame  float32
	DrawGame float32
	LoseGame float32
}

// DefaultRewardConfig returns rewards matching the game's returns
func DefaultRewardConfig() *RewardConfig {
	return &RewardConfig{
		WinGame:  1.0,
		DrawGame: 0.0,
		LoseGame: -1.0,
	}
}

// CalculateReward computes the reward of mover for the transition from
// prevState to currState. Only the move that ends the game is rewarded.
func CalculateReward(prevState, currState *core.State, mover core.Player) float32 {
	return CalculateRewardWithConfig(prevState, currState, mover, DefaultRewardConfig())
}

// CalculateRewardWithConfig computes reward using custom configuration
func CalculateRewardWithConfig(prevState, currState *core.State, mover core.Player, config *RewardConfig) float32 {
	if !mover.Valid() || prevState.IsTerminal() || !currState.IsTerminal() {
		return 0
	}

	ret := currState.Outcome.Returns()[mover]
	switch {
	case ret > 0:
		return config.WinGame
	case ret < 0:
		return config.LoseGame
	default:
		return config.DrawGame
	}
}

// NormalizeReward applies normalization to keep rewards in reasonable range
func NormalizeReward(reward float32) float32 {
	if reward > 1.0 {
		return 1.0
	} else if reward < -1.0 {
		return -1.0
	}
	return reward
}
