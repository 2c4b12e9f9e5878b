package rules

import (
	nchess "github.com/corentings/chess/v2"

	"github.com/palemoky/chess-arena/internal/chess"
)

func fromGame(game *nchess.Game) chess.Position {
	p := game.Position()
	pos := chess.Position{
		FEN:  game.FEN(),
		Turn: fromColor(p.Turn()),
	}

	board := p.Board()
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			piece := board.Piece(nchess.NewSquare(nchess.File(f), nchess.Rank(r)))
			if piece == nchess.NoPiece {
				continue
			}
			pos.Board[r*8+f] = chess.Piece{
				Color: fromColor(piece.Color()),
				Kind:  fromPieceType(piece.Type()),
			}
		}
	}

	switch game.Method() {
	case nchess.Checkmate:
		pos.Status = chess.Checkmate
	case nchess.Stalemate:
		pos.Status = chess.Stalemate
	}
	return pos
}

// loaded converts a position that has no last move to carry a check tag,
// such as a FEN from the server, and derives InCheck from the board.
func loaded(game *nchess.Game) chess.Position {
	pos := fromGame(game)
	pos.InCheck = inCheck(pos.Board, pos.Turn)
	return pos
}

func fromColor(c nchess.Color) chess.Color {
	switch c {
	case nchess.White:
		return chess.White
	case nchess.Black:
		return chess.Black
	}
	return chess.NoColor
}

func fromPieceType(t nchess.PieceType) chess.PieceKind {
	switch t {
	case nchess.King:
		return chess.King
	case nchess.Queen:
		return chess.Queen
	case nchess.Rook:
		return chess.Rook
	case nchess.Bishop:
		return chess.Bishop
	case nchess.Knight:
		return chess.Knight
	case nchess.Pawn:
		return chess.Pawn
	}
	return chess.NoKind
}

func toPieceType(k chess.PieceKind) nchess.PieceType {
	switch k {
	case chess.Queen:
		return nchess.Queen
	case chess.Rook:
		return nchess.Rook
	case chess.Bishop:
		return nchess.Bishop
	case chess.Knight:
		return nchess.Knight
	}
	return nchess.NoPieceType
}

func toSquare(sq chess.Square) nchess.Square {
	return nchess.NewSquare(nchess.File(sq.File()), nchess.Rank(sq.Rank()))
}
