package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/counterair/internal/game/core"
	"github.com/mitchelldurbincs/counterair/internal/game/events"
	"github.com/mitchelldurbincs/counterair/internal/game/processor"
	"github.com/mitchelldurbincs/counterair/internal/game/rules"
	"github.com/mitchelldurbincs/counterair/internal/game/states"
	"github.com/rs/zerolog"
)

// EngineInitializer handles the initialization of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	logger := cfg.Logger.With().Str("component", "GameEngine").Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// Initialize creates and initializes a new game engine
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled or timed out during initial phase")
		return nil, ctx.Err()
	default:
	}

	ei.setupDefaults()

	engine := ei.createEngine(core.NewState())

	if err := ei.initializeStateMachine(engine); err != nil {
		return nil, fmt.Errorf("state machine initialization failed: %w", err)
	}

	engine.eventBus.Publish(events.NewGameStartedEvent(engine.gameID, engine.gs))

	engine.logger.Info().
		Int("blue_fighters", engine.gs.BluePlaceableFighters).
		Int("red_fighters", engine.gs.RedPlaceableFighters).
		Int("red_sams", engine.gs.RedPlaceableSAMs).
		Msg("Engine created successfully")

	return engine, nil
}

// setupDefaults sets up default values for missing configuration
func (ei *EngineInitializer) setupDefaults() {
	if ei.config.GameID == "" {
		ei.config.GameID = uuid.New().String()
	}
	ei.logger = ei.logger.With().Str("game_id", ei.config.GameID).Logger()

	if ei.config.EventBus == nil {
		ei.logger.Debug().Msg("No event bus provided, creating a private one")
		ei.config.EventBus = events.NewEventBus(ei.config.Logger)
	}

	if ei.config.ExperienceCollector != nil {
		ei.logger.Info().Msg("Experience collection enabled")
	}
}

// createEngine creates the engine with all its components
func (ei *EngineInitializer) createEngine(gs *core.State) *Engine {
	gameContext := states.NewGameContext(ei.config.GameID, ei.config.Logger)
	stateMachine := states.NewStateMachine(gameContext, ei.config.EventBus)

	return &Engine{
		gs:                  gs,
		gameID:              ei.config.GameID,
		logger:              ei.logger,
		controller:          processor.NewPhaseController(ei.config.Logger, rules.NewOutcomeEvaluator(ei.config.Logger)),
		legalMoves:          rules.NewLegalMoveCalculator(),
		eventBus:            ei.config.EventBus,
		stateMachine:        stateMachine,
		experienceCollector: ei.config.ExperienceCollector,
		history:             make([]int, 0, 128),
	}
}

// initializeStateMachine moves the new session into the Running phase
func (ei *EngineInitializer) initializeStateMachine(engine *Engine) error {
	if err := engine.stateMachine.TransitionTo(states.PhaseRunning, "Game setup complete"); err != nil {
		ei.logger.Error().Err(err).Msg("Failed to transition to Running state")
		return err
	}
	return nil
}
