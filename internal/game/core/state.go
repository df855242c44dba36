package core

import "fmt"

// Initial placement pools.
const (
	InitialBlueFighters = 10
	InitialRedFighters  = 4
	InitialRedSAMs      = 4

	// AAAPerWave attacking AAA units are deployed at the end of SAM placement.
	AAAPerWave = 4
	// MaxLowStrikeQuota caps the AAA attacks allowed against low strike.
	MaxLowStrikeQuota = 4

	// HitsPerKill is the damage threshold at which an accumulator wraps and
	// destroys the targeted unit.
	HitsPerKill = 4

	// MoveLimit is the ceiling on recorded moves; exceeding it means the
	// phase logic is looping.
	MoveLimit = 200

	// MaxGameLength bounds the number of applied moves in a game.
	MaxGameLength = 1000
)

// Outcome is the final result of a game.
type Outcome int

const (
	OutcomeUndetermined Outcome = iota
	OutcomeBlueWins
	OutcomeDraw
	OutcomeRedWins
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUndetermined:
		return "Undetermined"
	case OutcomeBlueWins:
		return "BlueWins"
	case OutcomeDraw:
		return "Draw"
	case OutcomeRedWins:
		return "RedWins"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Returns maps an outcome to the (blue, red) utilities.
func (o Outcome) Returns() [NumPlayers]float64 {
	switch o {
	case OutcomeBlueWins:
		return [NumPlayers]float64{1, -1}
	case OutcomeRedWins:
		return [NumPlayers]float64{-1, 1}
	default:
		return [NumPlayers]float64{0, 0}
	}
}

// Quota is a per-wave attack allowance against one target category.
type Quota struct {
	Used int
	Max  int
}

// Available reports whether another attack is allowed.
func (q Quota) Available() bool { return q.Used < q.Max }

// Quotas groups the four per-wave attack allowances.
type Quotas struct {
	LowStrike  Quota // AAA attacks on low strike
	ActiveSAM  Quota
	PassiveSAM Quota
	Airbase    Quota
}

// State is the complete game record. It contains no pointers, slices or
// maps, so a plain value copy is an independent snapshot.
type State struct {
	Board         Board
	CurrentPlayer Player
	Phase         Phase
	Wave          int
	NumMoves      int

	BlueHits   int
	RedHits    int
	BluePoints int
	RedPoints  int

	BluePlaceableFighters int
	RedPlaceableFighters  int
	RedPlaceableSAMs      int

	// SubTurn and Target describe the exchange in progress in two-ply
	// phases. Target is the slot the pending attack is aimed at.
	SubTurn SubTurn
	Target  Slot

	Quotas  Quotas
	Outcome Outcome
}

// NewState returns the initial state of a game.
func NewState() *State {
	return &State{
		CurrentPlayer:         Blue,
		Phase:                 PhasePlaceEscort,
		BluePlaceableFighters: InitialBlueFighters,
		RedPlaceableFighters:  InitialRedFighters,
		RedPlaceableSAMs:      InitialRedSAMs,
		SubTurn:               Declare,
		Target:                InterceptAttacking,
	}
}

// Clone returns an independent copy.
func (s *State) Clone() *State {
	c := *s
	return &c
}

// IsTerminal reports whether the final wave has been played.
func (s *State) IsTerminal() bool {
	return s.Outcome != OutcomeUndetermined || s.Wave >= NumWaves
}

// Player returns the player to move, or TerminalPlayer once the game is over.
func (s *State) Player() Player {
	if s.IsTerminal() {
		return TerminalPlayer
	}
	return s.CurrentPlayer
}

// IsAttacking reports whether the next move of the phase is a declare sub-turn.
func (s *State) IsAttacking() bool { return s.SubTurn == Declare }

// Hits returns the damage accumulator of the given side.
func (s *State) Hits(p Player) *int {
	if p == Blue {
		return &s.BlueHits
	}
	return &s.RedHits
}

// Points returns the kill tally of the given side.
func (s *State) Points(p Player) *int {
	if p == Blue {
		return &s.BluePoints
	}
	return &s.RedPoints
}
