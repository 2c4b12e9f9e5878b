// Package chess holds the value types shared by the session core, the rules
// adapter and the renderer. Nothing here knows about legality.
package chess

import (
	"errors"
	"fmt"
	"strings"
)

// Color identifies a side.
type Color int

const (
	NoColor Color = iota
	White
	Black
)

// ParseColor accepts "white"/"black" (any case) and the short "w"/"b".
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	}
	return NoColor, fmt.Errorf("chess: invalid color %q", s)
}

// Opposite returns the other side; NoColor stays NoColor.
func (c Color) Opposite() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

// String returns the lowercase wire name.
func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return ""
}

// Title returns the capitalised name used in status lines.
func (c Color) Title() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return ""
}

// PieceKind is the type of a piece regardless of color.
type PieceKind int

const (
	NoKind PieceKind = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

var kindLetters = map[PieceKind]string{
	King: "k", Queen: "q", Rook: "r", Bishop: "b", Knight: "n", Pawn: "p",
}

// ParsePromotion parses a promotion letter (q, r, b, n in any case). The
// empty string yields NoKind.
func ParsePromotion(s string) (PieceKind, error) {
	switch strings.ToLower(s) {
	case "":
		return NoKind, nil
	case "q":
		return Queen, nil
	case "r":
		return Rook, nil
	case "b":
		return Bishop, nil
	case "n":
		return Knight, nil
	}
	return NoKind, fmt.Errorf("chess: invalid promotion %q", s)
}

// Letter returns the lowercase letter of the kind, or "" for NoKind.
func (k PieceKind) Letter() string { return kindLetters[k] }

// Piece is a colored piece. The zero value is an empty square.
type Piece struct {
	Color Color
	Kind  PieceKind
}

// IsEmpty reports whether p is the zero Piece.
func (p Piece) IsEmpty() bool { return p.Kind == NoKind }

// Square is a board coordinate, always stored lowercase ("e4").
type Square string

// ErrInvalidSquare is returned by ParseSquare.
var ErrInvalidSquare = errors.New("chess: invalid square")

// ParseSquare normalises a case-insensitive algebraic coordinate.
func ParseSquare(s string) (Square, error) {
	sq := Square(strings.ToLower(strings.TrimSpace(s)))
	if !sq.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return sq, nil
}

// SquareAt builds the square for a 0-based file and rank.
func SquareAt(file, rank int) Square {
	return Square([]byte{byte('a' + file), byte('1' + rank)})
}

// Valid reports whether s is a lowercase square between a1 and h8. File, Rank
// and Index are only meaningful for valid squares.
func (s Square) Valid() bool {
	return len(s) == 2 && s[0] >= 'a' && s[0] <= 'h' && s[1] >= '1' && s[1] <= '8'
}

// File returns the 0-based file index.
func (s Square) File() int { return int(s[0] - 'a') }

// Rank returns the 0-based rank index.
func (s Square) Rank() int { return int(s[1] - '1') }

// Index returns the 0..63 board index, a1 = 0, h8 = 63.
func (s Square) Index() int { return s.Rank()*8 + s.File() }

func (s Square) String() string { return string(s) }

// Move is an immutable (from, to, promotion) triple.
type Move struct {
	From      Square
	To        Square
	Promotion PieceKind
}

// NewMove parses both squares and the optional promotion letter.
func NewMove(from, to, promotion string) (Move, error) {
	f, err := ParseSquare(from)
	if err != nil {
		return Move{}, err
	}
	t, err := ParseSquare(to)
	if err != nil {
		return Move{}, err
	}
	p, err := ParsePromotion(promotion)
	if err != nil {
		return Move{}, err
	}
	return Move{From: f, To: t, Promotion: p}, nil
}

// String renders the move in UCI form, e.g. "e7e8q".
func (m Move) String() string {
	return string(m.From) + string(m.To) + m.Promotion.Letter()
}
