package core

import "fmt"

// Player identifies one of the two sides.
type Player int

const (
	Blue Player = 0
	Red  Player = 1

	// TerminalPlayer is reported as the current player once the game is over.
	TerminalPlayer Player = -4

	NumPlayers = 2
)

func (p Player) String() string {
	switch p {
	case Blue:
		return "Blue"
	case Red:
		return "Red"
	case TerminalPlayer:
		return "Terminal"
	default:
		return fmt.Sprintf("Player(%d)", int(p))
	}
}

// Opponent returns the other side. Only meaningful for Blue and Red.
func (p Player) Opponent() Player { return 1 - p }

// Valid reports whether p is Blue or Red.
func (p Player) Valid() bool { return p == Blue || p == Red }

// ValidatePlayer converts a raw player id into a Player, rejecting ids
// outside [0, NumPlayers).
func ValidatePlayer(id int) (Player, error) {
	if id < 0 || id >= NumPlayers {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPlayer, id)
	}
	return Player(id), nil
}
