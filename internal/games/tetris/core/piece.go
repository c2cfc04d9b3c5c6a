package core

import "fmt"

// Piece is a live tetromino: a prototype in one orientation at a board position.
// Pieces are comparable values; two pieces are the same placement iff ==.
type Piece struct {
	Proto       *PiecePrototype
	Orientation int
	Pos         Coord
}

// NewPiece creates a piece in orientation 0 at pos.
func NewPiece(proto *PiecePrototype, pos Coord) Piece {
	return Piece{Proto: proto, Orientation: 0, Pos: pos}
}

// String implements fmt.Stringer.
func (p Piece) String() string {
	return fmt.Sprintf("%s/%d@%s", p.Proto, p.Orientation, p.Pos)
}

// IsZero reports whether p has no prototype.
func (p Piece) IsZero() bool {
	return p.Proto == nil
}

// RelativeCells returns the piece-local cells of the current orientation.
// A piece with no prototype or an out-of-range orientation has no cells.
func (p Piece) RelativeCells() []Cell {
	if p.Proto == nil {
		return nil
	}
	o, ok := p.Proto.Orientation(p.Orientation)
	if !ok {
		return nil
	}
	return o.Cells()
}

// AbsoluteCells returns the board cells covered by the piece.
func (p Piece) AbsoluteCells() []Cell {
	cells := p.RelativeCells()
	for i := range cells {
		cells[i].Pos = cells[i].Pos.Add(p.Pos)
	}
	return cells
}

// Translated returns the piece moved by delta without any validity check.
func (p Piece) Translated(delta Coord) Piece {
	p.Pos = p.Pos.Add(delta)
	return p
}

// MaybeTranslated returns the piece moved by delta if the result satisfies
// valid, and p unchanged otherwise.
func (p Piece) MaybeTranslated(delta Coord, valid func(Piece) bool) Piece {
	candidate := p.Translated(delta)
	if valid(candidate) {
		return candidate
	}
	return p
}

// MaybeRotated tries the rotation candidates for dir in table order and
// returns the first one that satisfies valid. When every candidate is
// blocked, p is returned unchanged.
func (p Piece) MaybeRotated(dir RotationDir, valid func(Piece) bool) Piece {
	if p.Proto == nil {
		return p
	}
	for _, t := range p.Proto.Transitions(p.Orientation, dir) {
		candidate := Piece{Proto: p.Proto, Orientation: t.Target, Pos: p.Pos.Add(t.Offset)}
		if valid(candidate) {
			return candidate
		}
	}
	return p
}
