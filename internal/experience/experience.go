package experience

import "time"

// Experience is one (state, action, reward, next state) sample seen from the
// player who moved.
type Experience struct {
	ExperienceID string
	GameID       string
	PlayerID     int
	Wave         int
	Phase        int
	MoveNumber   int

	State      []float32
	Action     int
	Reward     float32
	NextState  []float32
	Done       bool
	ActionMask []bool

	CollectedAt time.Time
	Metadata    map[string]string
}
