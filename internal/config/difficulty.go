package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsKnownPreset reports whether preset is easy, normal or hard.
func IsKnownPreset(preset DifficultyPreset) bool {
	switch preset {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return true
	}
	return false
}

// ApplyTetrisPreset sets the starting difficulty from a preset.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}

// EffectiveTiming returns the timing scaled by the configured level.
// Gravity grows from rate to rate*(1+multiplier); lock delay shrinks by up
// to lock_delay_reduction of itself. The clear delay is not scaled.
func (c TetrisConfig) EffectiveTiming() TimingConfig {
	level := clampF(c.Difficulty.InitialLevel, 0.0, 1.0)
	s := c.Difficulty.Scaling
	return TimingConfig{
		GravityRate: c.Timing.GravityRate * (1.0 + level*s.GravityMultiplier),
		LockDelay:   c.Timing.LockDelay * (1.0 - level*clampF(s.LockDelayReduction, 0.0, 1.0)),
		ClearDelay:  c.Timing.ClearDelay,
	}
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return max(lo, min(hi, val))
}
