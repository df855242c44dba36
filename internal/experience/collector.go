package experience

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/counterair/internal/game"
	"github.com/mitchelldurbincs/counterair/internal/game/core"
	"github.com/rs/zerolog"
)

var _ game.ExperienceCollector = (*SimpleCollector)(nil)

// SimpleCollector implements a basic in-memory experience collector
type SimpleCollector struct {
	experiences []*Experience
	mu          sync.Mutex
	maxSize     int
	gameID      string
	serializer  *Serializer
	sink        *Buffer
	logger      zerolog.Logger
}

// NewSimpleCollector creates a new simple experience collector
func NewSimpleCollector(maxSize int, gameID string, logger zerolog.Logger) *SimpleCollector {
	return &SimpleCollector{
		experiences: make([]*Experience, 0, min(max(maxSize, 0), 256)),
		maxSize:     maxSize,
		gameID:      gameID,
		serializer:  NewSerializer(),
		logger:      logger.With().Str("component", "experience_collector").Str("game_id", gameID).Logger(),
	}
}

// SetSink makes OnGameEnd flush the collected experiences into buf
func (c *SimpleCollector) SetSink(buf *Buffer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sink = buf
}

// OnStateTransition collects one experience for the player who moved
func (c *SimpleCollector) OnStateTransition(prevState, currState *core.State, mover core.Player, moveID int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.experiences) >= c.maxSize {
		c.logger.Warn().
			Int("buffer_size", len(c.experiences)).
			Int("max_size", c.maxSize).
			Msg("Experience buffer full, dropping experience")
		return
	}

	stateTensor, err := c.serializer.StateToTensor(prevState, int(mover))
	if err != nil {
		c.logger.Error().Err(err).Int("move", moveID).Msg("Failed to encode state")
		return
	}
	nextStateTensor, err := c.serializer.StateToTensor(currState, int(mover))
	if err != nil {
		c.logger.Error().Err(err).Int("move", moveID).Msg("Failed to encode next state")
		return
	}

	expID := uuid.New().String()
	reward := CalculateReward(prevState, currState, mover)
	done := currState.IsTerminal()

	exp := &Experience{
		ExperienceID: expID,
		GameID:       c.gameID,
		PlayerID:     int(mover),
		Wave:         prevState.Wave,
		Phase:        int(prevState.Phase),
		MoveNumber:   len(c.experiences),
		State:        stateTensor,
		Action:       moveID,
		Reward:       reward,
		NextState:    nextStateTensor,
		Done:         done,
		ActionMask:   c.serializer.GenerateActionMask(prevState),
		CollectedAt:  time.Now(),
		Metadata: map[string]string{
			"collector_version": "1.0.0",
		},
	}
	c.experiences = append(c.experiences, exp)

	c.logger.Debug().
		Str("experience_id", expID).
		Int("player_id", int(mover)).
		Int("move", moveID).
		Float32("reward", reward).
		Bool("done", done).
		Msg("Collected experience")
}

// OnGameEnd handles terminal states
func (c *SimpleCollector) OnGameEnd(finalState *core.State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Info().
		Int("total_experiences", len(c.experiences)).
		Str("outcome", finalState.Outcome.String()).
		Int("blue_points", finalState.BluePoints).
		Int("red_points", finalState.RedPoints).
		Msg("Game ended, finalizing experience collection")

	if c.sink != nil {
		if err := c.sink.AddBatch(c.experiences); err != nil {
			c.logger.Error().Err(err).Msg("Failed to flush experiences")
		}
	}
}

// GetExperiences returns a copy of all collected experiences
func (c *SimpleCollector) GetExperiences() []*Experience {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]*Experience, len(c.experiences))
	copy(result, c.experiences)
	return result
}

// GetExperienceCount returns the current number of experiences
func (c *SimpleCollector) GetExperienceCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.experiences)
}

// Clear removes all experiences from the buffer
func (c *SimpleCollector) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.experiences = c.experiences[:0]
}

// GetLatestExperiences returns the n most recent experiences
func (c *SimpleCollector) GetLatestExperiences(n int) []*Experience {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n > len(c.experiences) {
		n = len(c.experiences)
	}

	start := len(c.experiences) - n
	result := make([]*Experience, n)
	copy(result, c.experiences[start:])
	return result
}
