package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/counterair/internal/config"
	"github.com/mitchelldurbincs/counterair/internal/game/core"
	"github.com/mitchelldurbincs/counterair/internal/simulation"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment overlay (loads config.<env>.yaml)")
	games := flag.Int("games", -1, "Number of games to simulate (-1 to use config default)")
	workers := flag.Int("workers", -1, "Concurrent games (-1 to use config default)")
	seed := flag.Int64("seed", -1, "Base random seed, 0 for time based (-1 to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	printBoards := flag.Bool("print-boards", false, "Print the board after every move")
	collect := flag.Bool("experience", false, "Collect experiences from every move")
	monitorInterval := flag.Duration("monitor-interval", 0, "Goroutine monitor interval (0 disables)")
	watch := flag.Bool("watch-config", false, "Reload the log level when the config file changes")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Str("env", *env).Msg("Failed to load environment config")
	}

	cfg := config.Get()

	// Use config defaults if not overridden by flags
	if *games == -1 {
		*games = cfg.Simulation.Games
	}
	if *workers == -1 {
		*workers = cfg.Simulation.Workers
	}
	if *seed == -1 {
		*seed = cfg.Simulation.Seed
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	if !*printBoards {
		*printBoards = cfg.Simulation.PrintBoards
	}
	if !*collect {
		*collect = cfg.Experience.Enabled
	}

	setupLogging(*logLevel, cfg.Logging.Format)

	if *watch && config.ConfigFilePath() != "" {
		config.WatchConfig(func(c *config.Config) {
			zerolog.SetGlobalLevel(parseLevel(c.Logging.Level))
			log.Info().Str("level", c.Logging.Level).Msg("Config reloaded")
		})
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runner := simulation.NewRunner(simulation.Config{
		Games:             *games,
		Workers:           *workers,
		Seed:              *seed,
		PrintBoards:       *printBoards,
		ExperienceEnabled: *collect,
		ExperienceMaxSize: cfg.Experience.MaxSize,
		LogEvents:         cfg.Events.LogEvents,
		DevMode:           cfg.Events.DevMode,
		MonitorInterval:   *monitorInterval,
	}, log.Logger)
	runner.SetOutput(os.Stdout)

	results, err := runner.Run(ctx)
	if results != nil {
		results.LogSummary(log.Logger)
	}
	if err != nil {
		if core.IsInvariantViolation(err) {
			log.Fatal().Err(err).Msg("Rules engine invariant violated")
		}
		log.Error().Err(err).Msg("Simulation interrupted")
		os.Exit(1)
	}
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func setupLogging(level, format string) {
	zerolog.SetGlobalLevel(parseLevel(level))

	if format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
