package core

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
)

// Configuration errors raised while building piece prototypes or generators.
var (
	ErrEmptyPool             = errors.New("core: piece pool is empty")
	ErrMissingOrientation    = errors.New("core: missing orientation")
	ErrMissingTransitions    = errors.New("core: missing transition table entry")
	ErrOrientationCountUnset = errors.New("core: prototype has no orientations")
)

// logger receives diagnostics from table construction.
var logger = log.WithPrefix("tetris")

// SetLogger replaces the logger used for table-construction diagnostics.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Orientation is one rotational state of a piece: a set of piece-relative
// cells, each carrying its block.
type Orientation struct {
	cells []Cell
}

// NewOrientation creates an orientation from piece-relative cells.
func NewOrientation(cells []Cell) Orientation {
	return Orientation{cells: slices.Clone(cells)}
}

// Cells returns a copy of the orientation's piece-relative cells.
func (o Orientation) Cells() []Cell {
	return slices.Clone(o.cells)
}

// Len returns the number of cells in the orientation.
func (o Orientation) Len() int {
	return len(o.cells)
}

// Transition is one rotation candidate: the destination orientation and
// the offset to apply to the piece position when moving there.
type Transition struct {
	Target int
	Offset Coord
}

// KickTable holds per-orientation offset rows, indexed [state][trial].
// The candidate offset for rotating from state A to state B on trial n is
// table[A][n] - table[B][n], tried in order n = 0..N-1.
type KickTable [][]Coord

// RotationDir selects the rotation direction.
type RotationDir int

const (
	Clockwise RotationDir = iota
	CounterClockwise
)

// String returns the string representation of a rotation direction.
func (d RotationDir) String() string {
	if d == CounterClockwise {
		return "ccw"
	}
	return "cw"
}

// PiecePrototype describes one tetromino kind: its orientations and the
// ordered rotation candidates for every orientation in both directions.
// Prototypes are shared by pointer and never mutated after construction.
type PiecePrototype struct {
	name         string
	orientations []Orientation
	cw           [][]Transition
	ccw          [][]Transition
}

// NewPiecePrototype validates and assembles a prototype.
// Every orientation needs a clockwise and a counterclockwise transition list
// and every transition must target an existing orientation.
func NewPiecePrototype(name string, orientations []Orientation, cw, ccw [][]Transition) (*PiecePrototype, error) {
	if len(orientations) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrOrientationCountUnset, name)
	}
	if len(cw) != len(orientations) || len(ccw) != len(orientations) {
		return nil, fmt.Errorf("%w: %s has %d orientations, %d cw and %d ccw lists",
			ErrMissingTransitions, name, len(orientations), len(cw), len(ccw))
	}
	for _, table := range [][][]Transition{cw, ccw} {
		for state, list := range table {
			for _, t := range list {
				if t.Target < 0 || t.Target >= len(orientations) {
					return nil, fmt.Errorf("%w: %s state %d targets %d",
						ErrMissingOrientation, name, state, t.Target)
				}
			}
		}
	}

	return &PiecePrototype{
		name:         name,
		orientations: slices.Clone(orientations),
		cw:           cloneTransitions(cw),
		ccw:          cloneTransitions(ccw),
	}, nil
}

// NewPrototypeFromTables builds a prototype by rotating base cells through
// four quarter turns and deriving both rotation tables from kicks.
func NewPrototypeFromTables(name string, base []Coord, color Color, kicks KickTable) (*PiecePrototype, error) {
	orientations := OrientationsFromCells(base, Block{Color: color})
	if len(kicks) != len(orientations) {
		return nil, fmt.Errorf("%w: %s kick table has %d states, want %d",
			ErrMissingTransitions, name, len(kicks), len(orientations))
	}
	return NewPiecePrototype(name, orientations,
		TransitionsFromKickTable(kicks, Clockwise),
		TransitionsFromKickTable(kicks, CounterClockwise))
}

// Name returns the prototype's kind name (I, J, L, O, S, T or Z).
func (p *PiecePrototype) Name() string {
	return p.name
}

// String implements fmt.Stringer.
func (p *PiecePrototype) String() string {
	if p == nil {
		return "<none>"
	}
	return p.name
}

// NumOrientations returns the number of rotational states.
func (p *PiecePrototype) NumOrientations() int {
	return len(p.orientations)
}

// Orientation returns the orientation with the given id.
// The boolean is false for out-of-range ids.
func (p *PiecePrototype) Orientation(id int) (Orientation, bool) {
	if id < 0 || id >= len(p.orientations) {
		return Orientation{}, false
	}
	return p.orientations[id], true
}

// Transitions returns the ordered rotation candidates for leaving
// orientation id in direction dir. Out-of-range ids yield nil.
func (p *PiecePrototype) Transitions(id int, dir RotationDir) []Transition {
	table := p.cw
	if dir == CounterClockwise {
		table = p.ccw
	}
	if id < 0 || id >= len(table) {
		return nil
	}
	return table[id]
}

// Color returns the color of the prototype's blocks.
func (p *PiecePrototype) Color() Color {
	if len(p.orientations) == 0 || len(p.orientations[0].cells) == 0 {
		return ColorUnknown
	}
	return p.orientations[0].cells[0].Block.Color
}

// OrientationsFromCells rotates base by 0, 90, 180 and 270 degrees
// clockwise, producing four orientations that all use block.
func OrientationsFromCells(base []Coord, block Block) []Orientation {
	orientations := make([]Orientation, 4)
	for k := range orientations {
		cells := make([]Cell, len(base))
		for i, pos := range base {
			cells[i] = Cell{Pos: pos.rotate4(k), Block: block}
		}
		orientations[k] = Orientation{cells: cells}
	}
	return orientations
}

// TransitionsFromKickTable derives the ordered transitions of every state
// for the given direction. When the rows of two adjacent states differ in
// length, a warning is logged and the shorter length is used.
func TransitionsFromKickTable(kicks KickTable, dir RotationDir) [][]Transition {
	numStates := len(kicks)
	step := 1
	if dir == CounterClockwise {
		step = -1
	}

	result := make([][]Transition, numStates)
	for state := range numStates {
		next := ((state+step)%numStates + numStates) % numStates
		cur, dst := kicks[state], kicks[next]

		n := min(len(cur), len(dst))
		if len(cur) != len(dst) {
			logger.Warn("kick table row lengths mismatched",
				"from", state, "to", next, "using", n, "lengths", []int{len(cur), len(dst)})
		}

		transitions := make([]Transition, n)
		for trial := range n {
			transitions[trial] = Transition{Target: next, Offset: cur[trial].Sub(dst[trial])}
		}
		result[state] = transitions
	}
	return result
}

func cloneTransitions(table [][]Transition) [][]Transition {
	out := make([][]Transition, len(table))
	for i, list := range table {
		out[i] = slices.Clone(list)
	}
	return out
}
