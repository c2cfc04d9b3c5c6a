package core

// Base cells of each tetromino in orientation 0, as (row, col) pairs around
// the rotation pivot.
var (
	cellsI = []Coord{{0, -1}, {0, 0}, {0, 1}, {0, 2}}
	cellsJ = []Coord{{1, -1}, {0, -1}, {0, 0}, {0, 1}}
	cellsL = []Coord{{1, 1}, {0, -1}, {0, 0}, {0, 1}}
	cellsO = []Coord{{1, 0}, {1, 1}, {0, 0}, {0, 1}}
	cellsS = []Coord{{1, 0}, {1, 1}, {0, -1}, {0, 0}}
	cellsT = []Coord{{1, 0}, {0, -1}, {0, 0}, {0, 1}}
	cellsZ = []Coord{{1, -1}, {1, 0}, {0, 0}, {0, 1}}
)

// Super Rotation System offset tables.
var (
	kicksSRSO = KickTable{
		{{0, 0}},
		{{-1, 0}},
		{{-1, -1}},
		{{0, -1}},
	}
	kicksSRSI = KickTable{
		{{0, 0}, {0, -1}, {0, 2}, {0, -1}, {0, 2}},
		{{0, -1}, {0, 0}, {0, 0}, {1, 0}, {-2, 0}},
		{{1, -1}, {1, 1}, {1, -2}, {0, 1}, {0, -2}},
		{{1, 0}, {1, 0}, {1, 0}, {-1, 0}, {2, 0}},
	}
	kicksSRSJLSTZ = KickTable{
		{{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},
		{{0, 0}, {0, 1}, {-1, 1}, {2, 0}, {2, 1}},
		{{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},
		{{0, 0}, {0, -1}, {-1, -1}, {2, 0}, {2, -1}},
	}
	// NES rotation has no kicks: a blocked rotation simply fails.
	kicksNES = KickTable{{{0, 0}}, {{0, 0}}, {{0, 0}}, {{0, 0}}}
)

// SRS prototypes.
var (
	SRSI = mustPrototype("I", cellsI, ColorCyan, kicksSRSI)
	SRSJ = mustPrototype("J", cellsJ, ColorBlue, kicksSRSJLSTZ)
	SRSL = mustPrototype("L", cellsL, ColorOrange, kicksSRSJLSTZ)
	SRSO = mustPrototype("O", cellsO, ColorYellow, kicksSRSO)
	SRSS = mustPrototype("S", cellsS, ColorGreen, kicksSRSJLSTZ)
	SRST = mustPrototype("T", cellsT, ColorPurple, kicksSRSJLSTZ)
	SRSZ = mustPrototype("Z", cellsZ, ColorRed, kicksSRSJLSTZ)
)

// NES prototypes share shapes with SRS but never kick.
var (
	NESI = mustPrototype("I", cellsI, ColorCyan, kicksNES)
	NESJ = mustPrototype("J", cellsJ, ColorBlue, kicksNES)
	NESL = mustPrototype("L", cellsL, ColorOrange, kicksNES)
	NESO = mustPrototype("O", cellsO, ColorYellow, kicksNES)
	NESS = mustPrototype("S", cellsS, ColorGreen, kicksNES)
	NEST = mustPrototype("T", cellsT, ColorPurple, kicksNES)
	NESZ = mustPrototype("Z", cellsZ, ColorRed, kicksNES)
)

// AllSRS returns the seven SRS prototypes in I, J, L, O, S, T, Z order.
func AllSRS() []*PiecePrototype {
	return []*PiecePrototype{SRSI, SRSJ, SRSL, SRSO, SRSS, SRST, SRSZ}
}

// AllNES returns the seven NES prototypes in I, J, L, O, S, T, Z order.
func AllNES() []*PiecePrototype {
	return []*PiecePrototype{NESI, NESJ, NESL, NESO, NESS, NEST, NESZ}
}

// PrototypesFor returns the prototype pool for a rotation system name
// ("srs" or "nes"). The boolean is false for unknown names.
func PrototypesFor(rotation string) ([]*PiecePrototype, bool) {
	switch rotation {
	case "srs":
		return AllSRS(), true
	case "nes":
		return AllNES(), true
	default:
		return nil, false
	}
}

func mustPrototype(name string, base []Coord, color Color, kicks KickTable) *PiecePrototype {
	p, err := NewPrototypeFromTables(name, base, color, kicks)
	if err != nil {
		panic(err)
	}
	return p
}
