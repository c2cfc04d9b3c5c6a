package core

// Sim composes the board, the falling piece, the held prototype and the
// piece generator. Every operation returns a new Sim; mutators other than
// spawning never commit an invalid falling piece.
type Sim struct {
	board   Board
	falling Piece
	held    *PiecePrototype
	gen     PieceGenerator
}

// NewSim creates a Sim and spawns the generator's current piece.
// The spawned piece is not validated.
func NewSim(board Board, gen PieceGenerator) Sim {
	return Sim{
		board:   board,
		falling: NewPiece(gen.Current(), board.Spawn()),
		gen:     gen.Advance(),
	}
}

// Board returns the locked blocks.
func (s Sim) Board() Board { return s.board }

// Falling returns the active piece.
func (s Sim) Falling() Piece { return s.falling }

// Held returns the held prototype, or nil when nothing is held.
func (s Sim) Held() *PiecePrototype { return s.held }

// Generator returns the generator positioned at the next piece to spawn.
func (s Sim) Generator() PieceGenerator { return s.gen }

// Preview returns the next n prototypes to spawn.
func (s Sim) Preview(n int) []*PiecePrototype {
	return Peek(s.gen, n)
}

// IsFallingValid reports whether the active piece fits the board.
func (s Sim) IsFallingValid() bool {
	return s.board.IsPieceValid(s.falling)
}

// IsFallingOnGround reports whether the active piece is resting.
func (s Sim) IsFallingOnGround() bool {
	return IsPieceOnGround(s.falling, s.board)
}

// GhostPiece returns the landing position of the active piece.
func (s Sim) GhostPiece() Piece {
	return GhostPiece(s.falling, s.board)
}

// Move translates the active piece by delta if the result is valid.
func (s Sim) Move(delta Coord) Sim {
	s.falling = s.falling.MaybeTranslated(delta, s.board.IsPieceValid)
	return s
}

// HardDrop moves the active piece to its ghost position.
func (s Sim) HardDrop() Sim {
	s.falling = s.GhostPiece()
	return s
}

// Rotate rotates the active piece with kick resolution.
func (s Sim) Rotate(dir RotationDir) Sim {
	s.falling = s.falling.MaybeRotated(dir, s.board.IsPieceValid)
	return s
}

// RotateCw rotates the active piece clockwise.
func (s Sim) RotateCw() Sim { return s.Rotate(Clockwise) }

// RotateCcw rotates the active piece counterclockwise.
func (s Sim) RotateCcw() Sim { return s.Rotate(CounterClockwise) }

// LockAndSpawnNext locks the active piece into the board and spawns the
// generator's current piece at the spawn position. The new piece may be
// invalid; callers treat that as game over.
func (s Sim) LockAndSpawnNext() (Sim, LockResult) {
	res := s.board.LockPiece(s.falling)
	s.board = res.Board
	s.falling = NewPiece(s.gen.Current(), s.board.Spawn())
	s.gen = s.gen.Advance()
	return s, res
}

// SwapHold stashes the active prototype. With an empty hold the next
// generator piece spawns; otherwise the previously held prototype does and
// the generator is left untouched.
func (s Sim) SwapHold() Sim {
	current := s.falling.Proto
	if s.held == nil {
		s.falling = NewPiece(s.gen.Current(), s.board.Spawn())
		s.gen = s.gen.Advance()
	} else {
		s.falling = NewPiece(s.held, s.board.Spawn())
	}
	s.held = current
	return s
}
