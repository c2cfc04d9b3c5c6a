package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in configuration: a 40x10 matrix
// with 20 visible rows, SRS rotation and the 7-bag generator.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Rows:        40,
			Cols:        10,
			VisibleRows: 20,
			SpawnRow:    19,
			SpawnCol:    4,
		},
		Timing: TimingConfig{
			GravityRate: 1.0,
			LockDelay:   3.0,
			ClearDelay:  0.5,
		},
		Rules: RulesConfig{
			Rotation:  "srs",
			Generator: "bag",
			Preview:   5,
		},
		Difficulty: DifficultyConfig{
			InitialLevel: 0.0,
			Scaling: ScalingConfig{
				GravityMultiplier:  4.0,
				LockDelayReduction: 0.5,
			},
		},
	}
}

// DefaultTetrisYAML returns the embedded default configuration file.
func DefaultTetrisYAML() []byte {
	return defaultTetrisYAML
}
