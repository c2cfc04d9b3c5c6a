package core

import "time"

// LCG constants (Knuth's MMIX multiplier and increment).
const (
	lcgMultiplier uint64 = 6364136223846793005
	lcgIncrement  uint64 = 1442695040888963407
)

// Random is an immutable 64-bit linear congruential stream. Next returns
// the following state; the receiver is unchanged, so a Random can be
// replayed from any point.
type Random struct {
	value uint64
}

// NewRandom creates a stream positioned one step after seed.
func NewRandom(seed uint64) Random {
	return Random{value: lcgStep(seed)}
}

// NewTimeSeededRandom seeds a stream from the wall clock.
func NewTimeSeededRandom() Random {
	return NewRandom(uint64(time.Now().UnixNano()))
}

// Value returns the raw 64-bit state.
func (r Random) Value() uint64 {
	return r.value
}

// Next returns the stream advanced by one step.
func (r Random) Next() Random {
	return Random{value: lcgStep(r.value)}
}

// Intn maps the current value into [0, n). n must be positive.
func (r Random) Intn(n int) int {
	return int(r.value % uint64(n))
}

// InRange maps the current value into [lo, hi). hi must be greater than lo.
func (r Random) InRange(lo, hi int) int {
	return lo + int(r.value%uint64(hi-lo))
}

func lcgStep(x uint64) uint64 {
	return x*lcgMultiplier + lcgIncrement
}
