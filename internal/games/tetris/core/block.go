package core

// Color identifies the color of a block. Each tetromino kind has its own color.
type Color uint8

const (
	ColorUnknown Color = iota
	ColorCyan          // I
	ColorBlue          // J
	ColorOrange        // L
	ColorYellow        // O
	ColorGreen         // S
	ColorPurple        // T
	ColorRed           // Z
)

// String returns the string representation of a color.
func (c Color) String() string {
	switch c {
	case ColorCyan:
		return "cyan"
	case ColorBlue:
		return "blue"
	case ColorOrange:
		return "orange"
	case ColorYellow:
		return "yellow"
	case ColorGreen:
		return "green"
	case ColorPurple:
		return "purple"
	case ColorRed:
		return "red"
	default:
		return "unknown"
	}
}

// Block is a single colored cell, either part of a piece or locked into the board.
type Block struct {
	Color Color
}

// Cell pairs a position with the block occupying it.
type Cell struct {
	Pos   Coord
	Block Block
}
