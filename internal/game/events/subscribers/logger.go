package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/counterair/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.InfoLevel:
		logEvent = eventLogger.Info()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Int("blue_fighters", e.BlueFighters).
			Int("red_fighters", e.RedFighters).
			Int("red_sams", e.RedSAMs)

	case *events.MoveAppliedEvent:
		withMetadata(logEvent, e.Metadata).
			Int("move_id", e.MoveID).
			Str("label", e.Label)

	case *events.UnitDestroyedEvent:
		withMetadata(logEvent, e.Metadata).
			Str("slot", e.Slot).
			Str("victim", e.Victim).
			Int("blue_points", e.BluePoints).
			Int("red_points", e.RedPoints)

	case *events.PhaseAdvancedEvent:
		logEvent.
			Int("wave", e.Metadata.Wave).
			Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase)

	case *events.WaveEndedEvent:
		logEvent.
			Int("wave", e.EndedWave).
			Int("blue_fighters", e.BlueFighters).
			Int("red_fighters", e.RedFighters).
			Int("red_sams", e.RedSAMs)

	case *events.GameEndedEvent:
		logEvent.
			Str("outcome", e.Outcome).
			Float64("blue_return", e.BlueReturn).
			Float64("red_return", e.RedReturn).
			Int("blue_points", e.BluePoints).
			Int("red_points", e.RedPoints).
			Int("num_moves", e.Metadata.NumMoves).
			Dur("duration", e.Duration)

	case *events.GameAbortedEvent:
		withMetadata(logEvent, e.Metadata).
			Str("error", e.Error)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from_state", e.FromState).
			Str("to_state", e.ToState).
			Str("reason", e.Reason)
	}

	// In dev mode, also log the full event as JSON
	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}

func withMetadata(e *zerolog.Event, m events.EventMetadata) *zerolog.Event {
	return e.
		Str("player", m.Player).
		Str("phase", m.Phase).
		Int("wave", m.Wave).
		Int("num_moves", m.NumMoves)
}
