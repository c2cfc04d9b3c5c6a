package core

import (
	"cmp"
	"maps"
	"slices"
)

// Default board geometry. Rows above VisibleRows form the spawn buffer.
const (
	DefaultRows        = 40
	DefaultCols        = 10
	DefaultVisibleRows = 20
)

// DefaultSpawn is where new pieces appear on a default board.
var DefaultSpawn = Coord{Row: 19, Col: 4}

// Board is the matrix of locked blocks. It is immutable: LockPiece returns
// a new board. Every stored cell is within bounds.
type Board struct {
	rows  int
	cols  int
	cells map[Coord]Block
	spawn Coord
}

// LockResult is the outcome of locking a piece into a board.
type LockResult struct {
	Board       Board
	ClearedRows []int // ascending
}

// NewBoard creates a board with the given geometry and initial cells.
// Cells outside the board are dropped.
func NewBoard(rows, cols int, spawn Coord, cells ...Cell) Board {
	b := Board{rows: rows, cols: cols, spawn: spawn, cells: make(map[Coord]Block, len(cells))}
	for _, c := range cells {
		if b.InBounds(c.Pos) {
			b.cells[c.Pos] = c.Block
		}
	}
	return b
}

// NewDefaultBoard creates an empty 40x10 board spawning at (19, 4).
func NewDefaultBoard() Board {
	return NewBoard(DefaultRows, DefaultCols, DefaultSpawn)
}

// Rows returns the number of rows.
func (b Board) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b Board) Cols() int { return b.cols }

// Spawn returns the spawn position for new pieces.
func (b Board) Spawn() Coord { return b.spawn }

// Len returns the number of occupied cells.
func (b Board) Len() int { return len(b.cells) }

// InBounds reports whether pos lies on the board.
func (b Board) InBounds(pos Coord) bool {
	return pos.Row >= 0 && pos.Row < b.rows && pos.Col >= 0 && pos.Col < b.cols
}

// Block returns the block at pos, if any.
func (b Board) Block(pos Coord) (Block, bool) {
	blk, ok := b.cells[pos]
	return blk, ok
}

// IsCellEmpty reports whether pos is in bounds and unoccupied.
func (b Board) IsCellEmpty(pos Coord) bool {
	if !b.InBounds(pos) {
		return false
	}
	_, occupied := b.cells[pos]
	return !occupied
}

// IsPieceValid reports whether every cell of p is in bounds and empty.
func (b Board) IsPieceValid(p Piece) bool {
	cells := p.AbsoluteCells()
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if !b.IsCellEmpty(c.Pos) {
			return false
		}
	}
	return true
}

// Cells returns the occupied cells ordered by row, then column.
func (b Board) Cells() []Cell {
	out := make([]Cell, 0, len(b.cells))
	for pos, blk := range b.cells {
		out = append(out, Cell{Pos: pos, Block: blk})
	}
	slices.SortFunc(out, func(x, y Cell) int {
		if c := cmp.Compare(x.Pos.Row, y.Pos.Row); c != 0 {
			return c
		}
		return cmp.Compare(x.Pos.Col, y.Pos.Col)
	})
	return out
}

// IsEmpty reports whether the board has no locked blocks.
func (b Board) IsEmpty() bool {
	return len(b.cells) == 0
}

// LockPiece writes p into the board and clears every full row it touched.
// Rows above a cleared row drop by the number of cleared rows below them.
// Locking an invalid piece is a no-op.
func (b Board) LockPiece(p Piece) LockResult {
	if !b.IsPieceValid(p) {
		return LockResult{Board: b}
	}

	cells := maps.Clone(b.cells)
	touched := make(map[int]struct{}, 4)
	for _, c := range p.AbsoluteCells() {
		cells[c.Pos] = c.Block
		touched[c.Pos.Row] = struct{}{}
	}

	var cleared []int
	for row := range touched {
		if b.rowFull(cells, row) {
			cleared = append(cleared, row)
		}
	}
	next := Board{rows: b.rows, cols: b.cols, spawn: b.spawn, cells: cells}
	if len(cleared) == 0 {
		return LockResult{Board: next}
	}
	slices.Sort(cleared)

	compacted := make(map[Coord]Block, len(cells))
	for pos, blk := range cells {
		idx, found := slices.BinarySearch(cleared, pos.Row)
		if found {
			continue
		}
		// idx is the number of cleared rows strictly below pos.Row.
		compacted[Coord{Row: pos.Row - idx, Col: pos.Col}] = blk
	}
	next.cells = compacted
	return LockResult{Board: next, ClearedRows: cleared}
}

func (b Board) rowFull(cells map[Coord]Block, row int) bool {
	for col := range b.cols {
		if _, ok := cells[Coord{Row: row, Col: col}]; !ok {
			return false
		}
	}
	return true
}
