package events

import (
	"time"

	"github.com/mitchelldurbincs/counterair/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted     = "game.started"
	TypeGameEnded       = "game.ended"
	TypeGameAborted     = "game.aborted"
	TypeMoveApplied     = "move.applied"
	TypeUnitDestroyed   = "unit.destroyed"
	TypePhaseAdvanced   = "phase.advanced"
	TypeWaveEnded       = "wave.ended"
	TypeStateTransition = "state.transition"
)

// NewMetadata captures the timeline position of s on behalf of player.
func NewMetadata(s *core.State, player core.Player) EventMetadata {
	return EventMetadata{
		Player:   player.String(),
		Phase:    s.Phase.String(),
		Wave:     s.Wave,
		NumMoves: s.NumMoves,
	}
}

// GameStartedEvent is published when a new game begins
type GameStartedEvent struct {
	BaseEvent
	Metadata     EventMetadata
	BlueFighters int
	RedFighters  int
	RedSAMs      int
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, s *core.State) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:    newBase(TypeGameStarted, gameID),
		Metadata:     NewMetadata(s, s.CurrentPlayer),
		BlueFighters: s.BluePlaceableFighters,
		RedFighters:  s.RedPlaceableFighters,
		RedSAMs:      s.RedPlaceableSAMs,
	}
}

// MoveAppliedEvent is published after a move has been applied
type MoveAppliedEvent struct {
	BaseEvent
	Metadata EventMetadata
	MoveID   int
	Label    string
}

// NewMoveAppliedEvent creates a new MoveAppliedEvent. Metadata describes the
// state before the move.
func NewMoveAppliedEvent(gameID string, before *core.State, moveID int, label string) *MoveAppliedEvent {
	return &MoveAppliedEvent{
		BaseEvent: newBase(TypeMoveApplied, gameID),
		Metadata:  NewMetadata(before, before.CurrentPlayer),
		MoveID:    moveID,
		Label:     label,
	}
}

// UnitDestroyedEvent is published for each unit removed by a damage step
type UnitDestroyedEvent struct {
	BaseEvent
	Metadata   EventMetadata
	Slot       string
	Zone       string
	Victim     string
	BluePoints int
	RedPoints  int
}

// NewUnitDestroyedEvent creates a new UnitDestroyedEvent
func NewUnitDestroyedEvent(gameID string, s *core.State, slot core.Slot, victim core.Player) *UnitDestroyedEvent {
	return &UnitDestroyedEvent{
		BaseEvent:  newBase(TypeUnitDestroyed, gameID),
		Metadata:   NewMetadata(s, victim.Opponent()),
		Slot:       slot.String(),
		Zone:       slot.Zone().String(),
		Victim:     victim.String(),
		BluePoints: s.BluePoints,
		RedPoints:  s.RedPoints,
	}
}

// PhaseAdvancedEvent is published when AdvancePhase closes a phase
type PhaseAdvancedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	FromPhase string
	ToPhase   string
}

// NewPhaseAdvancedEvent creates a new PhaseAdvancedEvent
func NewPhaseAdvancedEvent(gameID string, s *core.State, from, to core.Phase) *PhaseAdvancedEvent {
	return &PhaseAdvancedEvent{
		BaseEvent: newBase(TypePhaseAdvanced, gameID),
		Metadata:  NewMetadata(s, s.CurrentPlayer),
		FromPhase: from.String(),
		ToPhase:   to.String(),
	}
}

// WaveEndedEvent is published when a wave rolls over. Pools are the
// placement pools of the new wave.
type WaveEndedEvent struct {
	BaseEvent
	Metadata     EventMetadata
	EndedWave    int
	BlueFighters int
	RedFighters  int
	RedSAMs      int
}

// NewWaveEndedEvent creates a new WaveEndedEvent
func NewWaveEndedEvent(gameID string, s *core.State) *WaveEndedEvent {
	return &WaveEndedEvent{
		BaseEvent:    newBase(TypeWaveEnded, gameID),
		Metadata:     NewMetadata(s, s.CurrentPlayer),
		EndedWave:    s.Wave - 1,
		BlueFighters: s.BluePlaceableFighters,
		RedFighters:  s.RedPlaceableFighters,
		RedSAMs:      s.RedPlaceableSAMs,
	}
}

// GameEndedEvent is published when the last wave is over
type GameEndedEvent struct {
	BaseEvent
	Metadata   EventMetadata
	Outcome    string
	BlueReturn float64
	RedReturn  float64
	BluePoints int
	RedPoints  int
	BlueHits   int
	RedHits    int
	Duration   time.Duration
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, s *core.State, duration time.Duration) *GameEndedEvent {
	returns := s.Outcome.Returns()
	return &GameEndedEvent{
		BaseEvent:  newBase(TypeGameEnded, gameID),
		Metadata:   NewMetadata(s, s.Player()),
		Outcome:    s.Outcome.String(),
		BlueReturn: returns[core.Blue],
		RedReturn:  returns[core.Red],
		BluePoints: s.BluePoints,
		RedPoints:  s.RedPoints,
		BlueHits:   s.BlueHits,
		RedHits:    s.RedHits,
		Duration:   duration,
	}
}

// GameAbortedEvent is published when an invariant violation stops a session
type GameAbortedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Error    string
}

// NewGameAbortedEvent creates a new GameAbortedEvent
func NewGameAbortedEvent(gameID string, s *core.State, err error) *GameAbortedEvent {
	return &GameAbortedEvent{
		BaseEvent: newBase(TypeGameAborted, gameID),
		Metadata:  NewMetadata(s, s.CurrentPlayer),
		Error:     err.Error(),
	}
}

// StateTransitionEvent is published when the session lifecycle changes
type StateTransitionEvent struct {
	BaseEvent
	FromState string
	ToState   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromState, toState, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromState: fromState,
		ToState:   toState,
		Reason:    reason,
	}
}
