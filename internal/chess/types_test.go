package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSquare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Square
		wantErr bool
	}{
		{"lowercase", "e4", "e4", false},
		{"uppercase normalised", "E4", "e4", false},
		{"padded", " h8 ", "h8", false},
		{"file out of range", "i4", "", true},
		{"rank out of range", "a9", "", true},
		{"too long", "e44", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSquare(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSquare)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSquare_Index(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Square("a1").Index())
	assert.Equal(t, 63, Square("h8").Index())
	assert.Equal(t, 28, Square("e4").Index())
	assert.Equal(t, Square("e4"), SquareAt(4, 3))
}

func TestParseColor(t *testing.T) {
	t.Parallel()

	c, err := ParseColor("White")
	require.NoError(t, err)
	assert.Equal(t, White, c)

	c, err = ParseColor("b")
	require.NoError(t, err)
	assert.Equal(t, Black, c)

	_, err = ParseColor("green")
	assert.Error(t, err)

	assert.Equal(t, Black, White.Opposite())
	assert.Equal(t, NoColor, NoColor.Opposite())
	assert.Equal(t, "white", White.String())
	assert.Equal(t, "Black", Black.Title())
}

func TestNewMove(t *testing.T) {
	t.Parallel()

	mv, err := NewMove("E7", "e8", "Q")
	require.NoError(t, err)
	assert.Equal(t, Move{From: "e7", To: "e8", Promotion: Queen}, mv)
	assert.Equal(t, "e7e8q", mv.String())

	_, err = NewMove("e7", "e9", "")
	assert.Error(t, err)

	_, err = NewMove("e7", "e8", "k")
	assert.Error(t, err)
}

func TestPosition_CheckedKing(t *testing.T) {
	t.Parallel()

	var pos Position
	pos.Board[Square("e1").Index()] = Piece{Color: White, Kind: King}
	pos.Board[Square("e8").Index()] = Piece{Color: Black, Kind: King}
	pos.Turn = Black

	_, ok := pos.CheckedKing()
	assert.False(t, ok, "not in check")

	pos.InCheck = true
	sq, ok := pos.CheckedKing()
	require.True(t, ok)
	assert.Equal(t, Square("e8"), sq)

	assert.True(t, pos.PieceAt("d4").IsEmpty())
	assert.Equal(t, Piece{Color: White, Kind: King}, pos.PieceAt("e1"))
}

func TestPosition_PieceAt_OffBoard(t *testing.T) {
	t.Parallel()

	var pos Position
	pos.Board[Square("e2").Index()] = Piece{Color: White, Kind: Pawn}

	tests := []struct {
		name  string
		sq    Square
		want  Piece
		valid bool
	}{
		{"valid square", "e2", Piece{Color: White, Kind: Pawn}, true},
		{"uppercase", "E2", Piece{}, false},
		{"file past h", "i1", Piece{}, false},
		{"rank zero", "a0", Piece{}, false},
		{"rank nine", "h9", Piece{}, false},
		{"empty", "", Piece{}, false},
		{"too long", "e22", Piece{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.valid, tt.sq.Valid())
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.want, pos.PieceAt(tt.sq))
			})
		})
	}
}
