package rules

import (
	"github.com/mitchelldurbincs/counterair/internal/game/core"
	"github.com/rs/zerolog"
)

// WinMargin is the point lead at which the hits tie-break decides the game.
// Blue needs strictly more than this many points over Red to win outright.
const WinMargin = 2

// OutcomeEvaluator decides the result of a finished game
type OutcomeEvaluator struct {
	logger zerolog.Logger
}

// NewOutcomeEvaluator creates a new outcome evaluator
func NewOutcomeEvaluator(logger zerolog.Logger) *OutcomeEvaluator {
	return &OutcomeEvaluator{
		logger: logger.With().Str("component", "OutcomeEvaluator").Logger(),
	}
}

// Evaluate determines the outcome from the tallies of s. It is called once,
// when the wave counter reaches NumWaves.
func (oe *OutcomeEvaluator) Evaluate(s *core.State) core.Outcome {
	outcome := Decide(s.BluePoints, s.RedPoints, s.BlueHits, s.RedHits)
	oe.logger.Info().
		Int("blue_points", s.BluePoints).
		Int("red_points", s.RedPoints).
		Int("blue_hits", s.BlueHits).
		Int("red_hits", s.RedHits).
		Str("outcome", outcome.String()).
		Msg("Outcome determined")
	return outcome
}

// Decide applies the scoring rule. Red is the defender and wins unless Blue
// builds a lead above WinMargin; a lead of exactly WinMargin goes to the
// damage accumulators.
func Decide(bluePoints, redPoints, blueHits, redHits int) core.Outcome {
	switch {
	case bluePoints > redPoints+WinMargin:
		return core.OutcomeBlueWins
	case bluePoints == redPoints+WinMargin:
		switch {
		case blueHits > redHits:
			return core.OutcomeBlueWins
		case blueHits == redHits:
			return core.OutcomeDraw
		default:
			return core.OutcomeRedWins
		}
	default:
		return core.OutcomeRedWins
	}
}
