// Package core provides the rules primitives for the falling-block game:
// coordinates, blocks, piece prototypes, the board, pieces, the piece
// sequence generators and the immutable Sim that composes them.
// Everything here is a value; operations return new values and never
// mutate their receivers. The package is UI-agnostic and deterministic.
package core

import "fmt"

// Coord is a cell position on the board.
// Row 0 is the bottom row and rows grow upward; Col 0 is the leftmost column.
type Coord struct {
	Row int
	Col int
}

// RC is a convenience constructor for Coord.
func RC(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Add returns the coordinate translated by delta.
func (c Coord) Add(delta Coord) Coord {
	return Coord{Row: c.Row + delta.Row, Col: c.Col + delta.Col}
}

// Sub returns the componentwise difference c - other.
func (c Coord) Sub(other Coord) Coord {
	return Coord{Row: c.Row - other.Row, Col: c.Col - other.Col}
}

// rotate4 rotates c by k quarter turns clockwise around the origin.
// One quarter turn maps (r, c) to (-c, r).
func (c Coord) rotate4(k int) Coord {
	k %= 4
	if k < 0 {
		k += 4
	}
	for range k {
		c = Coord{Row: -c.Col, Col: c.Row}
	}
	return c
}

// Unit translations. Gravity pulls toward row 0.
var (
	DirUp    = Coord{Row: 1, Col: 0}
	DirDown  = Coord{Row: -1, Col: 0}
	DirLeft  = Coord{Row: 0, Col: -1}
	DirRight = Coord{Row: 0, Col: 1}
)

// AllDirections lists the four cardinal translations.
var AllDirections = []Coord{DirUp, DirDown, DirLeft, DirRight}
