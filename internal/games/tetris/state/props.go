// Package state implements the game state machine: a falling piece, the
// line-clear delay and game over, each an immutable value that produces its
// successor on Tick or HandleAction and records every visible change.
package state

// Props is the static timing configuration of a game.
type Props struct {
	GravityRate float64 // cells per second
	LockDelay   float64 // seconds a resting piece waits before locking
	ClearDelay  float64 // seconds of pause after a line clear; 0 disables
}

// DefaultProps returns one cell per second, a 3s lock delay and a 0.5s clear delay.
func DefaultProps() Props {
	return Props{GravityRate: 1.0, LockDelay: 3.0, ClearDelay: 0.5}
}
