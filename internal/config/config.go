// Package config provides YAML-based game configuration loading,
// validation and difficulty presets.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// MaxPreview is the largest supported preview queue.
const MaxPreview = 6

// TetrisConfig contains all configuration for a game.
type TetrisConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Timing     TimingConfig     `yaml:"timing"`
	Rules      RulesConfig      `yaml:"rules"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the matrix geometry.
type BoardConfig struct {
	Rows        int `yaml:"rows"`
	Cols        int `yaml:"cols"`
	VisibleRows int `yaml:"visible_rows"`
	SpawnRow    int `yaml:"spawn_row"`
	SpawnCol    int `yaml:"spawn_col"`
}

// TimingConfig defines gravity and delays, in cells per second and seconds.
type TimingConfig struct {
	GravityRate float64 `yaml:"gravity_rate"`
	LockDelay   float64 `yaml:"lock_delay"`
	ClearDelay  float64 `yaml:"clear_delay"`
}

// RulesConfig selects the rotation system and piece generator.
type RulesConfig struct {
	Rotation  string `yaml:"rotation"`  // "srs" or "nes"
	Generator string `yaml:"generator"` // "bag", "random" or "ordered"
	Preview   int    `yaml:"preview"`
}

// DifficultyConfig scales timing by a level in [0, 1].
type DifficultyConfig struct {
	InitialLevel float64       `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Scaling      ScalingConfig `yaml:"scaling"`
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	GravityMultiplier  float64 `yaml:"gravity_multiplier"`   // Multiplier added to gravity at max difficulty
	LockDelayReduction float64 `yaml:"lock_delay_reduction"` // Fraction of lock delay removed at max difficulty
}

// Validate reports every problem with the configuration, joined.
func (c TetrisConfig) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	b := c.Board
	if b.Rows <= 0 || b.Cols <= 0 {
		bad("board is %dx%d, dimensions must be positive", b.Rows, b.Cols)
	}
	if b.VisibleRows <= 0 || b.VisibleRows > b.Rows {
		bad("visible_rows %d must be in 1..%d", b.VisibleRows, b.Rows)
	}
	if b.SpawnRow < 0 || b.SpawnRow >= b.Rows || b.SpawnCol < 0 || b.SpawnCol >= b.Cols {
		bad("spawn (%d,%d) is outside the board", b.SpawnRow, b.SpawnCol)
	}

	t := c.Timing
	if t.GravityRate < 0 || t.LockDelay < 0 || t.ClearDelay < 0 {
		bad("timings must not be negative")
	}

	switch c.Rules.Rotation {
	case "srs", "nes":
	default:
		bad("unknown rotation system %q", c.Rules.Rotation)
	}
	switch c.Rules.Generator {
	case "bag", "random", "ordered":
	default:
		bad("unknown generator %q", c.Rules.Generator)
	}
	if c.Rules.Preview < 0 || c.Rules.Preview > MaxPreview {
		bad("preview %d must be in 0..%d", c.Rules.Preview, MaxPreview)
	}

	d := c.Difficulty
	if d.InitialLevel < 0 || d.InitialLevel > 1 {
		bad("initial_level %v must be in [0, 1]", d.InitialLevel)
	}
	if d.Scaling.LockDelayReduction < 0 || d.Scaling.LockDelayReduction > 1 {
		bad("lock_delay_reduction %v must be in [0, 1]", d.Scaling.LockDelayReduction)
	}

	return errors.Join(errs...)
}
