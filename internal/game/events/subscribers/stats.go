package subscribers

import (
	"sync"

	"github.com/mitchelldurbincs/counterair/internal/game/events"
)

// GameStats is a snapshot of the counters gathered by a StatsSubscriber.
type GameStats struct {
	Games         int
	Aborted       int
	Moves         int
	PhaseAdvances int
	Waves         int
	KillsByZone   map[string]int
	KillsByVictim map[string]int
	Outcomes      map[string]int
}

// StatsSubscriber aggregates per-game statistics from engine events. It is
// safe to share between engines running on different goroutines.
type StatsSubscriber struct {
	id    string
	mu    sync.Mutex
	stats GameStats
}

// NewStatsSubscriber creates a new stats subscriber
func NewStatsSubscriber(id string) *StatsSubscriber {
	return &StatsSubscriber{
		id: id,
		stats: GameStats{
			KillsByZone:   make(map[string]int),
			KillsByVictim: make(map[string]int),
			Outcomes:      make(map[string]int),
		},
	}
}

// ID returns the subscriber's unique identifier
func (ss *StatsSubscriber) ID() string {
	return ss.id
}

// InterestedIn returns true for the event types that feed the counters
func (ss *StatsSubscriber) InterestedIn(eventType string) bool {
	switch eventType {
	case events.TypeMoveApplied, events.TypeUnitDestroyed, events.TypePhaseAdvanced,
		events.TypeWaveEnded, events.TypeGameEnded, events.TypeGameAborted:
		return true
	}
	return false
}

// HandleEvent updates the counters
func (ss *StatsSubscriber) HandleEvent(event events.Event) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	switch e := event.(type) {
	case *events.MoveAppliedEvent:
		ss.stats.Moves++
	case *events.UnitDestroyedEvent:
		ss.stats.KillsByZone[e.Zone]++
		ss.stats.KillsByVictim[e.Victim]++
	case *events.PhaseAdvancedEvent:
		ss.stats.PhaseAdvances++
	case *events.WaveEndedEvent:
		ss.stats.Waves++
	case *events.GameEndedEvent:
		ss.stats.Games++
		ss.stats.Outcomes[e.Outcome]++
	case *events.GameAbortedEvent:
		ss.stats.Aborted++
	}
}

// Snapshot returns a copy of the current counters
func (ss *StatsSubscriber) Snapshot() GameStats {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	out := ss.stats
	out.KillsByZone = copyCounts(ss.stats.KillsByZone)
	out.KillsByVictim = copyCounts(ss.stats.KillsByVictim)
	out.Outcomes = copyCounts(ss.stats.Outcomes)
	return out
}

func copyCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
