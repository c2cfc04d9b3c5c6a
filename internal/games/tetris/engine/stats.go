package engine

import (
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/state"
)

// Stats tallies a game from its transition records.
type Stats struct {
	Pieces    int
	Lines     int
	Tetrises  int
	Holds     int
	Spins     int
	AllClears int
	GameOver  bool

	spins *SpinDetector
}

// NewStats creates an empty tally.
func NewStats() *Stats {
	s := &Stats{}
	s.spins = NewSpinDetector(func(Spin) { s.Spins++ })
	return s
}

// Observe consumes one transition record. Pass it to Engine.Subscribe.
func (s *Stats) Observe(tr state.Transition) {
	s.spins.Observe(tr)

	switch {
	case tr.Kind == state.KindHold:
		s.Holds++
	case tr.Kind == state.KindGameOver:
		s.GameOver = true
	case tr.Kind.IsLock() && tr.Lock != nil:
		s.Pieces++
		n := len(tr.Lock.ClearedRows)
		s.Lines += n
		if n == 4 {
			s.Tetrises++
		}
		if core.IsAllClear(core.LockResult{Board: tr.Lock.NewBoard, ClearedRows: tr.Lock.ClearedRows}) {
			s.AllClears++
		}
	}
}

// Level returns the level reached: one per ten lines, starting at 1.
func (s *Stats) Level() int {
	return s.Lines/10 + 1
}
