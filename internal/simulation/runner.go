// Package simulation plays many independent random games concurrently and
// aggregates their outcomes.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/counterair/internal/experience"
	"github.com/mitchelldurbincs/counterair/internal/game"
	"github.com/mitchelldurbincs/counterair/internal/game/core"
	"github.com/mitchelldurbincs/counterair/internal/game/events"
	"github.com/mitchelldurbincs/counterair/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/counterair/internal/monitoring"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Config controls a simulation run
type Config struct {
	Games   int
	Workers int
	// Seed of game i is Seed+i. Zero selects a time based seed.
	Seed        int64
	PrintBoards bool

	ExperienceEnabled bool
	ExperienceMaxSize int

	LogEvents bool
	DevMode   bool

	// MonitorInterval enables the goroutine monitor when positive.
	MonitorInterval time.Duration
}

// GameResult is the outcome of one simulated game
type GameResult struct {
	Index      int
	GameID     string
	Seed       int64
	Outcome    core.Outcome
	Moves      int
	BluePoints int
	RedPoints  int
	Err        error
}

// Results summarizes a simulation run
type Results struct {
	Seed     int64
	Games    []GameResult
	Outcomes map[core.Outcome]int
	Aborted  int

	TotalMoves int
	MinMoves   int
	MaxMoves   int

	Experiences int
	Stats       subscribers.GameStats
	Goroutines  *monitoring.GoroutineMetrics
	Duration    time.Duration
}

// AverageMoves returns the mean number of moves of completed games
func (r *Results) AverageMoves() float64 {
	completed := len(r.Games) - r.Aborted
	if completed <= 0 {
		return 0
	}
	return float64(r.TotalMoves) / float64(completed)
}

// LogSummary writes the aggregate results at info level
func (r *Results) LogSummary(logger zerolog.Logger) {
	logger.Info().
		Int64("seed", r.Seed).
		Int("games", len(r.Games)).
		Int("blue_wins", r.Outcomes[core.OutcomeBlueWins]).
		Int("red_wins", r.Outcomes[core.OutcomeRedWins]).
		Int("draws", r.Outcomes[core.OutcomeDraw]).
		Int("aborted", r.Aborted).
		Int("min_moves", r.MinMoves).
		Int("max_moves", r.MaxMoves).
		Float64("avg_moves", r.AverageMoves()).
		Int("kills", sumCounts(r.Stats.KillsByVictim)).
		Int("experiences", r.Experiences).
		Dur("duration", r.Duration).
		Msg("Simulation complete")
}

func sumCounts(m map[string]int) int {
	total := 0
	for _, n := range m {
		total += n
	}
	return total
}

// Runner plays random games on a bounded pool of workers. Every game owns
// its engine and random source; the event bus, statistics and experience
// buffer are shared.
type Runner struct {
	cfg    Config
	logger zerolog.Logger

	bus    *events.EventBus
	stats  *subscribers.StatsSubscriber
	buffer *experience.Buffer

	outMu sync.Mutex
	out   io.Writer
}

// NewRunner creates a new simulation runner
func NewRunner(cfg Config, logger zerolog.Logger) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.ExperienceMaxSize <= 0 {
		cfg.ExperienceMaxSize = experience.DefaultBufferCapacity
	}

	logger = logger.With().Str("component", "simulation").Logger()

	bus := events.NewEventBus(logger)
	stats := subscribers.NewStatsSubscriber("simulation_stats")
	bus.Subscribe(stats)

	if cfg.LogEvents {
		eventLogger := subscribers.NewLoggerSubscriber("simulation_events", logger, zerolog.DebugLevel)
		eventLogger.SetDevMode(cfg.DevMode)
		bus.Subscribe(eventLogger)
	}

	r := &Runner{
		cfg:    cfg,
		logger: logger,
		bus:    bus,
		stats:  stats,
		out:    io.Discard,
	}
	if cfg.ExperienceEnabled {
		r.buffer = experience.NewBuffer(cfg.ExperienceMaxSize, logger)
	}
	return r
}

// SetOutput sets where boards are printed when PrintBoards is enabled
func (r *Runner) SetOutput(w io.Writer) {
	r.outMu.Lock()
	defer r.outMu.Unlock()
	r.out = w
}

// EventBus returns the bus shared by every simulated game
func (r *Runner) EventBus() *events.EventBus { return r.bus }

// Buffer returns the experience buffer, or nil if collection is disabled
func (r *Runner) Buffer() *experience.Buffer { return r.buffer }

// Run plays cfg.Games games. An invariant violation in any game stops the
// run and is returned together with the results gathered so far.
func (r *Runner) Run(ctx context.Context) (*Results, error) {
	start := time.Now()

	seed := r.cfg.Seed
	if seed == 0 {
		seed = start.UnixNano()
	}

	var monitor *monitoring.GoroutineMonitor
	if r.cfg.MonitorInterval > 0 {
		monitor = monitoring.NewGoroutineMonitor(r.cfg.MonitorInterval, r.logger)
		monitor.RegisterComponent("simulation_workers", r.cfg.Workers)
		monitor.Start()
	}

	r.logger.Info().
		Int("games", r.cfg.Games).
		Int("workers", r.cfg.Workers).
		Int64("seed", seed).
		Bool("experience", r.buffer != nil).
		Msg("Starting simulation")

	games := make([]GameResult, r.cfg.Games)
	played := make([]bool, r.cfg.Games)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	for i := 0; i < r.cfg.Games; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res := r.PlayGame(gctx, i, seed+int64(i))
			games[i] = res
			played[i] = true
			if core.IsInvariantViolation(res.Err) {
				return res.Err
			}
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	if monitor != nil {
		monitor.Stop()
	}

	results := &Results{
		Seed:     seed,
		Outcomes: make(map[core.Outcome]int),
		Stats:    r.stats.Snapshot(),
	}
	for i, res := range games {
		if !played[i] {
			continue
		}
		results.Games = append(results.Games, res)
		if res.Err != nil {
			results.Aborted++
			continue
		}
		results.Outcomes[res.Outcome]++
		results.TotalMoves += res.Moves
		if results.MinMoves == 0 || res.Moves < results.MinMoves {
			results.MinMoves = res.Moves
		}
		results.MaxMoves = max(results.MaxMoves, res.Moves)
	}
	if r.buffer != nil {
		results.Experiences = r.buffer.Size()
	}
	if monitor != nil {
		m := monitor.GetMetrics()
		results.Goroutines = &m
	}
	results.Duration = time.Since(start)

	return results, err
}

// PlayGame plays one game with uniformly random legal moves
func (r *Runner) PlayGame(ctx context.Context, index int, seed int64) GameResult {
	gameID := uuid.New().String()
	res := GameResult{Index: index, GameID: gameID, Seed: seed}

	cfg := game.GameConfig{
		GameID:   gameID,
		Logger:   r.logger,
		EventBus: r.bus,
	}
	if r.buffer != nil {
		collector := experience.NewSimpleCollector(r.cfg.ExperienceMaxSize, gameID, r.logger)
		collector.SetSink(r.buffer)
		cfg.ExperienceCollector = collector
	}

	engine, err := game.NewEngine(ctx, cfg)
	if err != nil {
		res.Err = err
		return res
	}

	rng := rand.New(rand.NewSource(seed))
	var boards strings.Builder
	if r.cfg.PrintBoards {
		fmt.Fprintf(&boards, "game %d (%s) seed %d\n%s\n", index, gameID, seed, engine.Board())
	}

	for !engine.IsTerminal() {
		if err := ctx.Err(); err != nil {
			res.Err = err
			return res
		}

		legal := engine.LegalMoves()
		if len(legal) == 0 {
			res.Err = core.NewInvariantError(engine.State(), -1, errors.New("no legal moves in a running game"))
			return res
		}
		player := engine.CurrentPlayer()
		moveID := legal[rng.Intn(len(legal))]
		if err := engine.Apply(moveID); err != nil {
			res.Err = err
			return res
		}

		if r.cfg.PrintBoards {
			label, _ := engine.MoveToString(int(player), moveID)
			fmt.Fprintf(&boards, "%s\n%s\n", label, engine.Board())
		}
	}

	final := engine.State()
	res.Outcome = final.Outcome
	res.Moves = len(engine.History())
	res.BluePoints = final.BluePoints
	res.RedPoints = final.RedPoints

	if r.cfg.PrintBoards {
		fmt.Fprintf(&boards, "result: %s\n\n", final.Outcome)
		r.outMu.Lock()
		_, _ = io.WriteString(r.out, boards.String())
		r.outMu.Unlock()
	}

	return res
}
