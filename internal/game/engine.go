package game

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchelldurbincs/counterair/internal/game/core"
	"github.com/mitchelldurbincs/counterair/internal/game/events"
	"github.com/mitchelldurbincs/counterair/internal/game/processor"
	"github.com/mitchelldurbincs/counterair/internal/game/rules"
	"github.com/mitchelldurbincs/counterair/internal/game/states"
	"github.com/rs/zerolog"
)

// GameConfig holds the collaborators of a single game session
type GameConfig struct {
	GameID              string
	Logger              zerolog.Logger
	EventBus            *events.EventBus
	ExperienceCollector ExperienceCollector
}

// Engine drives one game: it validates moves against the legal move
// generator, applies them through the phase controller and publishes the
// resulting events. An Engine is not safe for concurrent use.
type Engine struct {
	gs     *core.State
	gameID string
	logger zerolog.Logger

	controller *processor.PhaseController
	legalMoves *rules.LegalMoveCalculator

	eventBus            *events.EventBus
	stateMachine        *states.StateMachine
	experienceCollector ExperienceCollector

	history []int
}

// NewEngine creates a new game engine in the Running phase
func NewEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

// Apply validates moveID against the legal set and applies it. Illegal or
// malformed ids and engine defects abort the session and are reported as a
// *core.InvariantError; every later call returns core.ErrSessionAborted.
func (e *Engine) Apply(moveID int) error {
	switch phase := e.stateMachine.CurrentPhase(); {
	case phase == states.PhaseAborted:
		return core.ErrSessionAborted
	case phase == states.PhaseEnded || e.gs.IsTerminal():
		return core.ErrGameOver
	}

	m, err := core.DecodeMove(moveID)
	if err != nil {
		return e.abort(core.NewInvariantError(e.gs, moveID, err))
	}
	if !e.legalMoves.IsLegal(e.gs, m) {
		return e.abort(core.NewInvariantError(e.gs, moveID,
			fmt.Errorf("%w: %s not in %v", core.ErrIllegalMove, m, e.legalMoves.LegalMoveIDs(e.gs))))
	}
	if len(e.history) >= core.MaxGameLength {
		return e.abort(core.NewInvariantError(e.gs, moveID,
			fmt.Errorf("%w: game exceeded %d moves", core.ErrMoveLimitExceeded, core.MaxGameLength)))
	}

	prev := *e.gs
	res, err := e.controller.Apply(e.gs, m)
	if err != nil {
		return e.abort(err)
	}
	e.history = append(e.history, moveID)

	e.logger.Debug().
		Str("player", res.Mover.String()).
		Str("phase", res.FromPhase.String()).
		Int("wave", res.FromWave).
		Int("move", moveID).
		Msg("Move applied")

	e.publishMoveEvents(&prev, moveID, res)

	if e.experienceCollector != nil {
		e.experienceCollector.OnStateTransition(&prev, e.gs, res.Mover, moveID)
	}

	if res.GameEnded {
		e.finish()
	}
	return nil
}

func (e *Engine) publishMoveEvents(prev *core.State, moveID int, res processor.Result) {
	label, _ := core.MoveToString(int(res.Mover), moveID)
	e.eventBus.Publish(events.NewMoveAppliedEvent(e.gameID, prev, moveID, label))

	for _, k := range res.Kills {
		e.eventBus.Publish(events.NewUnitDestroyedEvent(e.gameID, e.gs, k.Slot, k.Victim))
	}
	if res.PhaseAdvanced {
		e.eventBus.Publish(events.NewPhaseAdvancedEvent(e.gameID, e.gs, res.FromPhase, res.ToPhase))
	}
	if res.WaveEnded {
		e.eventBus.Publish(events.NewWaveEndedEvent(e.gameID, e.gs))
	}
}

// finish moves the session to Ended once the outcome has been decided.
func (e *Engine) finish() {
	gameCtx := e.stateMachine.GetContext()
	gameCtx.Outcome = e.gs.Outcome
	if err := e.stateMachine.TransitionTo(states.PhaseEnded, "Final wave completed"); err != nil {
		e.logger.Error().Err(err).Msg("Failed to transition to Ended state")
	}

	e.logger.Info().
		Str("outcome", e.gs.Outcome.String()).
		Int("moves", len(e.history)).
		Int("blue_points", e.gs.BluePoints).
		Int("red_points", e.gs.RedPoints).
		Msg("Game over")

	e.eventBus.Publish(events.NewGameEndedEvent(e.gameID, e.gs, gameCtx.GetElapsedTime()))

	if e.experienceCollector != nil {
		e.experienceCollector.OnGameEnd(e.gs)
	}
}

// abort stops the session after an invariant violation and returns err.
func (e *Engine) abort(err error) error {
	e.logger.Error().Err(err).Msg("Invariant violation, aborting game")

	gameCtx := e.stateMachine.GetContext()
	gameCtx.Error = err
	if tErr := e.stateMachine.TransitionTo(states.PhaseAborted, err.Error()); tErr != nil {
		e.logger.Error().Err(tErr).Msg("Failed to transition to Aborted state")
	}
	e.eventBus.Publish(events.NewGameAbortedEvent(e.gameID, e.gs, err))
	return err
}

// Public accessors
func (e *Engine) GameID() string                    { return e.gameID }
func (e *Engine) State() *core.State                { return e.gs.Clone() }
func (e *Engine) IsTerminal() bool                  { return e.gs.IsTerminal() }
func (e *Engine) CurrentPlayer() core.Player        { return e.gs.Player() }
func (e *Engine) SessionPhase() states.SessionPhase { return e.stateMachine.CurrentPhase() }
func (e *Engine) EventBus() *events.EventBus        { return e.eventBus }

// IsAborted reports whether an invariant violation stopped the session.
func (e *Engine) IsAborted() bool {
	return e.stateMachine.CurrentPhase() == states.PhaseAborted
}

// Err returns the invariant violation that aborted the session, if any.
func (e *Engine) Err() error {
	return e.stateMachine.GetContext().Error
}

// LegalMoves returns the legal move ids in ascending order. It is empty once
// the game is over or the session was aborted.
func (e *Engine) LegalMoves() []int {
	if e.IsAborted() {
		return nil
	}
	return e.legalMoves.LegalMoveIDs(e.gs)
}

// LegalActionMask returns the legal moves as a NumDistinctMoves wide mask.
func (e *Engine) LegalActionMask() []bool {
	if e.IsAborted() {
		return make([]bool, core.NumDistinctMoves)
	}
	return e.legalMoves.GetLegalActionMask(e.gs)
}

// Returns gives the (blue, red) utilities of a finished game.
func (e *Engine) Returns() ([core.NumPlayers]float64, error) {
	if e.IsAborted() {
		return [core.NumPlayers]float64{}, core.ErrSessionAborted
	}
	return Returns(e.gs)
}

// History returns a copy of the applied move ids.
func (e *Engine) History() []int {
	h := make([]int, len(e.history))
	copy(h, e.history)
	return h
}

// MoveToString labels moveID as played by playerID.
func (e *Engine) MoveToString(playerID, moveID int) (string, error) {
	return core.MoveToString(playerID, moveID)
}

// InformationStateString returns the move history seen by playerID. The game
// has perfect information, so both players see the same string.
func (e *Engine) InformationStateString(playerID int) (string, error) {
	if _, err := core.ValidatePlayer(playerID); err != nil {
		return "", err
	}
	ids := make([]string, len(e.history))
	for i, id := range e.history {
		ids[i] = strconv.Itoa(id)
	}
	return strings.Join(ids, ", "), nil
}

// ObservationString returns the board diagram seen by playerID.
func (e *Engine) ObservationString(playerID int) (string, error) {
	if _, err := core.ValidatePlayer(playerID); err != nil {
		return "", err
	}
	return RenderBoard(e.gs), nil
}

// Board returns the board diagram of the current state
func (e *Engine) Board() string {
	return RenderBoard(e.gs)
}

// Clone returns a detached copy of the engine for exploring alternative
// futures. The copy shares no mutable state with e, publishes to a private
// event bus and does not feed the experience collector.
func (e *Engine) Clone() *Engine {
	gameCtx := e.stateMachine.GetContext()
	cloneCtx := states.NewGameContext(e.gameID, e.logger)
	cloneCtx.Outcome = gameCtx.Outcome
	cloneCtx.Error = gameCtx.Error

	bus := events.NewEventBus(e.logger)
	sm := states.NewStateMachine(cloneCtx, nil)
	if err := replayLifecycle(sm, e.stateMachine.CurrentPhase()); err != nil {
		e.logger.Error().Err(err).Msg("Failed to restore lifecycle on clone")
	}
	cloneCtx.StartTime = gameCtx.StartTime

	return &Engine{
		gs:           e.gs.Clone(),
		gameID:       e.gameID,
		logger:       e.logger,
		controller:   e.controller,
		legalMoves:   e.legalMoves,
		eventBus:     bus,
		stateMachine: sm,
		history:      e.History(),
	}
}

// replayLifecycle walks a fresh machine to target along the allowed edges.
func replayLifecycle(sm *states.StateMachine, target states.SessionPhase) error {
	if target == states.PhaseInitializing {
		return nil
	}
	if target != states.PhaseAborted {
		if err := sm.TransitionTo(states.PhaseRunning, "Cloned"); err != nil {
			return err
		}
		if target == states.PhaseRunning {
			return nil
		}
	}
	if err := sm.TransitionTo(target, "Cloned"); err != nil {
		return errors.Join(fmt.Errorf("restore %s", target), err)
	}
	return nil
}
