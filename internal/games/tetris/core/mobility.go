package core

// IsPieceOnGround reports whether p is a valid placement that cannot move
// one row down.
func IsPieceOnGround(p Piece, b Board) bool {
	return b.IsPieceValid(p) && !b.IsPieceValid(p.Translated(DirDown))
}

// CanPieceMove reports whether p can be translated one cell in any of the
// four cardinal directions.
func CanPieceMove(p Piece, b Board) bool {
	for _, d := range AllDirections {
		if b.IsPieceValid(p.Translated(d)) {
			return true
		}
	}
	return false
}

// GhostPiece returns the lowest position p reaches by dropping straight down.
// An invalid piece is returned unchanged.
func GhostPiece(p Piece, b Board) Piece {
	if !b.IsPieceValid(p) {
		return p
	}
	for {
		next := p.Translated(DirDown)
		if !b.IsPieceValid(next) {
			return p
		}
		p = next
	}
}

// IsAllClear reports whether a lock cleared rows and left the board empty.
func IsAllClear(r LockResult) bool {
	return len(r.ClearedRows) > 0 && r.Board.IsEmpty()
}
