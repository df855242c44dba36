package states

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchelldurbincs/counterair/internal/game/core"
)

// InitializingState represents a session that has not accepted moves yet
type InitializingState struct{}

func NewInitializingState() State {
	return &InitializingState{}
}

func (s *InitializingState) Phase() SessionPhase {
	return PhaseInitializing
}

func (s *InitializingState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Entering Initializing state")
	return nil
}

func (s *InitializingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Exiting Initializing state")
	return nil
}

func (s *InitializingState) Validate(ctx *GameContext) error {
	return nil
}

// RunningState represents active gameplay
type RunningState struct{}

func NewRunningState() State {
	return &RunningState{}
}

func (s *RunningState) Phase() SessionPhase {
	return PhaseRunning
}

func (s *RunningState) Enter(ctx *GameContext) error {
	ctx.StartTime = time.Now()
	ctx.Logger.Debug().
		Time("start_time", ctx.StartTime).
		Msg("Game started")
	return nil
}

func (s *RunningState) Exit(ctx *GameContext) error {
	ctx.EndTime = time.Now()
	ctx.Logger.Debug().
		Dur("elapsed", ctx.GetElapsedTime()).
		Msg("Exiting running state")
	return nil
}

func (s *RunningState) Validate(ctx *GameContext) error {
	if ctx.GameID == "" {
		return errors.New("game ID is required to start a session")
	}
	return nil
}

// EndedState represents a game whose final wave has been played
type EndedState struct{}

func NewEndedState() State {
	return &EndedState{}
}

func (s *EndedState) Phase() SessionPhase {
	return PhaseEnded
}

func (s *EndedState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().
		Str("outcome", ctx.Outcome.String()).
		Dur("elapsed", ctx.GetElapsedTime()).
		Msg("Game ended")
	return nil
}

func (s *EndedState) Exit(ctx *GameContext) error {
	return fmt.Errorf("cannot exit terminal state %s", PhaseEnded)
}

func (s *EndedState) Validate(ctx *GameContext) error {
	if ctx.Outcome == core.OutcomeUndetermined {
		return errors.New("cannot end a game without an outcome")
	}
	return nil
}

// AbortedState represents a session stopped by an invariant violation
type AbortedState struct{}

func NewAbortedState() State {
	return &AbortedState{}
}

func (s *AbortedState) Phase() SessionPhase {
	return PhaseAborted
}

func (s *AbortedState) Enter(ctx *GameContext) error {
	if ctx.EndTime.IsZero() {
		ctx.EndTime = time.Now()
	}
	ctx.Logger.Error().
		Err(ctx.Error).
		Msg("Game aborted")
	return nil
}

func (s *AbortedState) Exit(ctx *GameContext) error {
	return fmt.Errorf("cannot exit terminal state %s", PhaseAborted)
}

func (s *AbortedState) Validate(ctx *GameContext) error {
	if ctx.Error == nil {
		return errors.New("aborted state requires an error")
	}
	return nil
}
