package core

import "time"

// RuntimeConfig is passed to games on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 means the platform picks one from the clock
}

// DefaultConfig returns an 80x24 screen at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// TickDuration returns the simulated time covered by one Step.
func (c RuntimeConfig) TickDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameStats summarizes a game for display and persistence.
type GameStats struct {
	Lines     int
	Pieces    int
	Spins     int
	Holds     int
	Tetrises  int
	AllClears int
	Elapsed   time.Duration // simulated play time, pauses excluded
}

// GameState is returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Lines cleared
	Level    int  // One per ten lines, starting at 1
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
	Stats    GameStats
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
