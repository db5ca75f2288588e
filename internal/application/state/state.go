package state

// GameState is the level manager's position in its state machine
type GameState int

const (
	StateLoading GameState = iota
	StatePlaying
	StatePaused
	StateLevelComplete
	StatePlayerDead
	StateGameWon
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateLevelComplete:
		return "LevelComplete"
	case StatePlayerDead:
		return "PlayerDead"
	case StateGameWon:
		return "GameWon"
	default:
		return "Unknown"
	}
}

// Simulating reports whether the world steps in this state
func (s GameState) Simulating() bool {
	return s == StatePlaying
}
