package engine

import (
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/state"
)

// tSlot is a 3x3 board with only the T-shaped pocket open.
func tSlot() (core.Board, core.Piece) {
	board := core.NewBoard(3, 3, core.RC(1, 1),
		core.Cell{Pos: core.RC(0, 0)}, core.Cell{Pos: core.RC(0, 2)},
		core.Cell{Pos: core.RC(2, 0)}, core.Cell{Pos: core.RC(2, 2)},
	)
	piece := core.Piece{Proto: core.SRST, Orientation: 2, Pos: core.RC(1, 1)}
	return board, piece
}

func lockRecord(board core.Board, piece core.Piece) state.Transition {
	return state.Transition{
		Kind: state.KindTimeLock,
		Lock: &state.LockDetail{PrevBoard: board, NewBoard: board, LockedPiece: piece, ClearedRows: []int{0, 1}},
	}
}

func TestSpinDetector(t *testing.T) {
	board, wedged := tSlot()
	open := core.NewBoard(20, 10, core.RC(18, 4))
	free := core.NewPiece(core.SRST, core.RC(0, 4))

	tests := []struct {
		name     string
		history  []state.Kind
		board    core.Board
		piece    core.Piece
		expected bool
	}{
		{"rotated into slot", []state.Kind{state.KindMoveLeft, state.KindRotateCw}, board, wedged, true},
		{"ccw rotation", []state.Kind{state.KindRotateCcw}, board, wedged, true},
		{"moved last", []state.Kind{state.KindRotateCw, state.KindSoftDrop}, board, wedged, false},
		{"no history", nil, board, wedged, false},
		{"rotated but free", []state.Kind{state.KindRotateCw}, open, free, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var spins []Spin
			d := NewSpinDetector(func(s Spin) { spins = append(spins, s) })
			for _, k := range tt.history {
				d.Observe(state.Transition{Kind: k})
			}
			got := d.Observe(lockRecord(tt.board, tt.piece))
			if got != tt.expected {
				t.Errorf("Observe() = %v, expected %v", got, tt.expected)
			}
			if tt.expected && (len(spins) != 1 || spins[0].Lines != 2) {
				t.Errorf("spins = %v, expected one with 2 lines", spins)
			}
		})
	}
}

func TestSpinDetectorResetsAfterLock(t *testing.T) {
	board, wedged := tSlot()
	d := NewSpinDetector(nil)
	d.Observe(state.Transition{Kind: state.KindRotateCw})
	d.Observe(lockRecord(board, wedged))

	if d.Observe(lockRecord(board, wedged)) {
		t.Error("a lock without a new rotation should not be a spin")
	}
}
