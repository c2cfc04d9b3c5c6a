package state

import (
	"slices"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

// Kind classifies a transition record.
type Kind int

const (
	KindMoveLeft Kind = iota
	KindMoveRight
	KindSoftDrop
	KindRotateCw
	KindRotateCcw
	KindHold
	KindGravityFall
	KindTimeLock
	KindHardDropLock
	KindGameOver
)

var kindNames = [...]string{
	KindMoveLeft:     "MOVE_LEFT",
	KindMoveRight:    "MOVE_RIGHT",
	KindSoftDrop:     "SOFT_DROP",
	KindRotateCw:     "ROTATE_CW",
	KindRotateCcw:    "ROTATE_CCW",
	KindHold:         "HOLD",
	KindGravityFall:  "GRAVITY_FALL",
	KindTimeLock:     "TIME_LOCK",
	KindHardDropLock: "HARD_DROP_LOCK",
	KindGameOver:     "GAME_OVER",
}

// String returns the string representation of a kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "UNKNOWN"
	}
	return kindNames[k]
}

// IsLock reports whether k locks the falling piece.
func (k Kind) IsLock() bool {
	return k == KindTimeLock || k == KindHardDropLock
}

// IsRotation reports whether k is a rotation.
func (k Kind) IsRotation() bool {
	return k == KindRotateCw || k == KindRotateCcw
}

// IsPieceChange reports whether k changed the falling piece without
// locking it or ending the game.
func (k Kind) IsPieceChange() bool {
	return !k.IsLock() && k != KindGameOver
}

// LockDetail describes a lock: the boards on either side, the piece as it
// was locked and the rows that cleared.
type LockDetail struct {
	PrevBoard   core.Board
	NewBoard    core.Board
	LockedPiece core.Piece
	ClearedRows []int
}

// Transition records one committed state change. Before and After are
// snapshots with empty transition logs.
type Transition struct {
	Before State
	After  State
	Kind   Kind
	Lock   *LockDetail // set for lock kinds only
}

func newTransition(before, after State, kind Kind) Transition {
	return Transition{Before: snapshot(before), After: snapshot(after), Kind: kind}
}

// snapshot copies st with an empty log, so later edits to a state under
// construction never reach a record.
func snapshot(st State) State {
	switch v := st.(type) {
	case *FallingState:
		c := *v
		c.log = nil
		return &c
	case *DelayState:
		c := *v
		c.log = nil
		return &c
	case *GameOverState:
		return &GameOverState{sim: v.sim, props: v.props}
	default:
		return st
	}
}

// appendLog returns a fresh log; states never share a backing array.
func appendLog(log []Transition, records ...Transition) []Transition {
	return append(slices.Clip(log), records...)
}
