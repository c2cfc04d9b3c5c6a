package engine

import (
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/state"
)

// Spin describes a piece that rotated into a spot it could not leave.
type Spin struct {
	Piece core.Piece
	Lines int
}

// SpinDetector watches transition records for spins: a lock whose last
// piece change was a rotation, where the locked piece could not move in any
// direction on the board it locked into.
type SpinDetector struct {
	last    state.Kind
	hasLast bool
	onSpin  func(Spin)
}

// NewSpinDetector creates a detector that calls onSpin for every spin.
// onSpin may be nil.
func NewSpinDetector(onSpin func(Spin)) *SpinDetector {
	return &SpinDetector{onSpin: onSpin}
}

// Observe consumes one transition record. It returns true if the record
// completed a spin.
func (d *SpinDetector) Observe(tr state.Transition) bool {
	if tr.Kind.IsPieceChange() {
		d.last, d.hasLast = tr.Kind, true
		return false
	}
	if !tr.Kind.IsLock() || tr.Lock == nil {
		return false
	}

	spun := d.hasLast && d.last.IsRotation() &&
		!core.CanPieceMove(tr.Lock.LockedPiece, tr.Lock.PrevBoard)
	d.hasLast = false
	if spun && d.onSpin != nil {
		d.onSpin(Spin{Piece: tr.Lock.LockedPiece, Lines: len(tr.Lock.ClearedRows)})
	}
	return spun
}
