package rules

import "github.com/palemoky/chess-arena/internal/chess"

var (
	knightJumps = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps   = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	diagonals   = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	orthogonals = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
)

// inCheck reports whether side's king is attacked. A FEN supplied by the
// server has no move to carry a check tag, so it is derived from the board.
func inCheck(board [64]chess.Piece, side chess.Color) bool {
	for i, pc := range board {
		if pc.Kind == chess.King && pc.Color == side {
			return attacked(board, i%8, i/8, side.Opposite())
		}
	}
	return false
}

func attacked(board [64]chess.Piece, file, rank int, by chess.Color) bool {
	at := func(f, r int) (chess.Piece, bool) {
		if f < 0 || f > 7 || r < 0 || r > 7 {
			return chess.Piece{}, false
		}
		return board[r*8+f], true
	}
	is := func(pc chess.Piece, kinds ...chess.PieceKind) bool {
		if pc.Color != by {
			return false
		}
		for _, k := range kinds {
			if pc.Kind == k {
				return true
			}
		}
		return false
	}

	// pawns attack toward the opponent
	dir := -1
	if by == chess.Black {
		dir = 1
	}
	for _, df := range []int{-1, 1} {
		if pc, ok := at(file+df, rank+dir); ok && is(pc, chess.Pawn) {
			return true
		}
	}

	for _, j := range knightJumps {
		if pc, ok := at(file+j[0], rank+j[1]); ok && is(pc, chess.Knight) {
			return true
		}
	}
	for _, s := range kingSteps {
		if pc, ok := at(file+s[0], rank+s[1]); ok && is(pc, chess.King) {
			return true
		}
	}

	slide := func(dirs [4][2]int, kinds ...chess.PieceKind) bool {
		for _, d := range dirs {
			for f, r := file+d[0], rank+d[1]; ; f, r = f+d[0], r+d[1] {
				pc, ok := at(f, r)
				if !ok {
					break
				}
				if pc.IsEmpty() {
					continue
				}
				if is(pc, kinds...) {
					return true
				}
				break
			}
		}
		return false
	}
	return slide(diagonals, chess.Bishop, chess.Queen) || slide(orthogonals, chess.Rook, chess.Queen)
}
