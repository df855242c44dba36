package core

import "fmt"

// Phase is one step of the ten-step sequence played every wave.
type Phase int

const (
	PhasePlaceEscort Phase = iota
	PhasePlaceHighStrike
	PhasePlaceSEAD
	PhasePlaceIntercept
	PhasePlaceSAM
	PhaseAirToAir
	PhaseGroundToAir
	PhaseHighStrikeAttack
	PhaseUAV
	PhaseLowStrikeAttack

	NumPhases = 10
)

var phaseNames = [NumPhases]string{
	"PlaceEscort",
	"PlaceHighStrike",
	"PlaceSEAD",
	"PlaceIntercept",
	"PlaceSAM",
	"AirToAir",
	"GroundToAir",
	"HighStrikeAttack",
	"UAV",
	"LowStrikeAttack",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= NumPhases {
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
	return phaseNames[p]
}

// IsPlacement reports whether units are being deployed in this phase.
func (p Phase) IsPlacement() bool { return p >= PhasePlaceEscort && p <= PhasePlaceSAM }

// IsTwoPly reports whether exchanges in this phase are split into a declare
// and a resolve sub-turn.
func (p Phase) IsTwoPly() bool { return p == PhaseAirToAir || p == PhaseGroundToAir }

// SubTurn distinguishes the two halves of an exchange.
type SubTurn int

const (
	// Declare: the mover picks a target. Single-ply phases are always here.
	Declare SubTurn = iota
	// Resolve: the defender picks a posture and damage is applied.
	Resolve
)

func (s SubTurn) String() string {
	switch s {
	case Declare:
		return "Declare"
	case Resolve:
		return "Resolve"
	default:
		return fmt.Sprintf("SubTurn(%d)", int(s))
	}
}

const (
	// NumWaves waves are played; reaching wave NumWaves ends the game.
	NumWaves = 5
)
