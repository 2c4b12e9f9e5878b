package chess

// Status is the terminal status of a position as reported by the rules engine.
type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
)

// Position is an immutable board snapshot. Two positions are the same game
// state exactly when their FEN strings are equal.
type Position struct {
	FEN     string
	Turn    Color
	InCheck bool
	Status  Status
	Board   [64]Piece
}

// PieceAt returns the piece on sq; the zero Piece means empty.
func (p Position) PieceAt(sq Square) Piece {
	if !sq.Valid() {
		return Piece{}
	}
	return p.Board[sq.Index()]
}

// KingSquare returns the square of c's king.
func (p Position) KingSquare(c Color) (Square, bool) {
	for i, pc := range p.Board {
		if pc.Kind == King && pc.Color == c {
			return SquareAt(i%8, i/8), true
		}
	}
	return "", false
}

// CheckedKing returns the king square of the side to move when that side is
// in check.
func (p Position) CheckedKing() (Square, bool) {
	if !p.InCheck {
		return "", false
	}
	return p.KingSquare(p.Turn)
}

// Equal compares by FEN.
func (p Position) Equal(other Position) bool { return p.FEN == other.FEN }
