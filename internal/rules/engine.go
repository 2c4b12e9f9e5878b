// Package rules adapts github.com/corentings/chess/v2 to the narrow rules
// contract the session core depends on.
package rules

import (
	"errors"
	"fmt"

	nchess "github.com/corentings/chess/v2"

	"github.com/palemoky/chess-arena/internal/chess"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var (
	ErrIllegalMove = errors.New("rules: illegal move")
	ErrInvalidFEN  = errors.New("rules: invalid position")
)

// Engine validates and applies moves. Implementations must not mutate the
// positions they are given.
type Engine interface {
	Initial() chess.Position
	ApplyMove(pos chess.Position, mv chess.Move) (Applied, error)
	LoadPosition(fen string) (chess.Position, error)
	SideToMove(pos chess.Position) chess.Color
}

// Applied is the outcome of a successful ApplyMove.
type Applied struct {
	Position    chess.Position
	SAN         string
	Mover       chess.Color
	IsCheck     bool
	IsCheckmate bool
	IsStalemate bool
}

// ChessEngine implements Engine on top of corentings/chess.
type ChessEngine struct {
	initial chess.Position
}

// NewEngine returns a ready engine.
func NewEngine() *ChessEngine {
	return &ChessEngine{initial: loaded(nchess.NewGame())}
}

// Initial returns the standard starting position.
func (e *ChessEngine) Initial() chess.Position { return e.initial }

// SideToMove returns the color whose turn it is in pos.
func (e *ChessEngine) SideToMove(pos chess.Position) chess.Color { return pos.Turn }

// LoadPosition parses a FEN string.
func (e *ChessEngine) LoadPosition(fen string) (chess.Position, error) {
	game, err := gameFromFEN(fen)
	if err != nil {
		return chess.Position{}, err
	}
	return loaded(game), nil
}

// ApplyMove plays mv on pos. A pawn reaching the last rank without an
// explicit promotion becomes a queen.
func (e *ChessEngine) ApplyMove(pos chess.Position, mv chess.Move) (Applied, error) {
	mv, err := normalize(mv)
	if err != nil {
		return Applied{}, err
	}

	game, err := gameFromFEN(pos.FEN)
	if err != nil {
		return Applied{}, err
	}
	before := game.Position()

	if mv.Promotion == chess.NoKind && isPromotionSquare(pos, mv) {
		mv.Promotion = chess.Queen
	}

	legal, ok := findValidMove(game, mv)
	if !ok {
		return Applied{}, fmt.Errorf("%w: %s", ErrIllegalMove, mv)
	}

	san := nchess.AlgebraicNotation{}.Encode(before, legal)
	if err := game.Move(legal, nil); err != nil {
		return Applied{}, fmt.Errorf("%w: %s: %v", ErrIllegalMove, mv, err)
	}

	next := fromGame(game)
	next.InCheck = legal.HasTag(nchess.Check)
	return Applied{
		Position:    next,
		SAN:         san,
		Mover:       e.SideToMove(pos),
		IsCheck:     next.InCheck,
		IsCheckmate: next.Status == chess.Checkmate,
		IsStalemate: next.Status == chess.Stalemate,
	}, nil
}

// normalize lowercases both squares; anything off the board is illegal.
func normalize(mv chess.Move) (chess.Move, error) {
	from, err := chess.ParseSquare(string(mv.From))
	if err != nil {
		return chess.Move{}, fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	to, err := chess.ParseSquare(string(mv.To))
	if err != nil {
		return chess.Move{}, fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	mv.From, mv.To = from, to
	return mv, nil
}

func gameFromFEN(fen string) (*nchess.Game, error) {
	if fen == "" {
		return nil, fmt.Errorf("%w: empty FEN", ErrInvalidFEN)
	}
	opt, err := nchess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	return nchess.NewGame(opt), nil
}

// findValidMove returns the engine's own move value so its tags (check,
// capture, castling) are populated for SAN encoding.
func findValidMove(game *nchess.Game, mv chess.Move) (*nchess.Move, bool) {
	from := toSquare(mv.From)
	to := toSquare(mv.To)
	promo := toPieceType(mv.Promotion)

	valid := game.ValidMoves()
	for i := range valid {
		candidate := &valid[i]
		if candidate.S1() == from && candidate.S2() == to && candidate.Promo() == promo {
			return candidate, true
		}
	}
	return nil, false
}

func isPromotionSquare(pos chess.Position, mv chess.Move) bool {
	piece := pos.PieceAt(mv.From)
	if piece.Kind != chess.Pawn {
		return false
	}
	switch piece.Color {
	case chess.White:
		return mv.To.Rank() == 7
	case chess.Black:
		return mv.To.Rank() == 0
	}
	return false
}
