package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/chess-arena/internal/chess"
)

func mustMove(t *testing.T, from, to string) chess.Move {
	t.Helper()
	mv, err := chess.NewMove(from, to, "")
	require.NoError(t, err)
	return mv
}

// play applies uci moves in order and returns the last Applied.
func play(t *testing.T, e *ChessEngine, pos chess.Position, moves ...string) (chess.Position, Applied) {
	t.Helper()
	var last Applied
	for _, m := range moves {
		applied, err := e.ApplyMove(pos, mustMove(t, m[:2], m[2:4]))
		require.NoError(t, err, "move %s", m)
		pos = applied.Position
		last = applied
	}
	return pos, last
}

func TestEngine_Initial(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	pos := e.Initial()

	assert.Equal(t, StartFEN, pos.FEN)
	assert.Equal(t, chess.White, e.SideToMove(pos))
	assert.False(t, pos.InCheck)
	assert.Equal(t, chess.Piece{Color: chess.White, Kind: chess.King}, pos.PieceAt("e1"))
	assert.Equal(t, chess.Piece{Color: chess.Black, Kind: chess.Pawn}, pos.PieceAt("e7"))
	assert.True(t, pos.PieceAt("e4").IsEmpty())
}

func TestEngine_ApplyMove(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		fen       string
		moves     []string
		wantSAN   string
		wantMover chess.Color
		wantCheck bool
		wantMate  bool
		wantStale bool
	}{
		{name: "king pawn", moves: []string{"e2e4"}, wantSAN: "e4", wantMover: chess.White},
		{name: "black reply", moves: []string{"e2e4", "e7e5"}, wantSAN: "e5", wantMover: chess.Black},
		{name: "knight", moves: []string{"g1f3"}, wantSAN: "Nf3", wantMover: chess.White},
		{name: "check not mate", moves: []string{"e2e4", "f7f6", "d1h5"}, wantSAN: "Qh5+", wantMover: chess.White, wantCheck: true},
		{name: "fool's mate", moves: []string{"f2f3", "e7e5", "g2g4", "d8h4"}, wantSAN: "Qh4#", wantMover: chess.Black, wantCheck: true, wantMate: true},
		{name: "castle", fen: "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", moves: []string{"e1g1"}, wantSAN: "O-O", wantMover: chess.White},
		{name: "auto queen", fen: "8/4P3/8/8/8/8/k7/4K3 w - - 0 1", moves: []string{"e7e8"}, wantSAN: "e8=Q", wantMover: chess.White},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := NewEngine()
			start := e.Initial()
			if tt.fen != "" {
				var err error
				start, err = e.LoadPosition(tt.fen)
				require.NoError(t, err)
			}

			_, applied := play(t, e, start, tt.moves...)
			assert.Equal(t, tt.wantSAN, applied.SAN)
			assert.Equal(t, tt.wantMover, applied.Mover)
			assert.Equal(t, tt.wantCheck, applied.IsCheck)
			assert.Equal(t, tt.wantMate, applied.IsCheckmate)
			assert.Equal(t, tt.wantStale, applied.IsStalemate)
		})
	}
}

func TestEngine_ApplyMove_Promotion(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	pos, err := e.LoadPosition("8/4P3/8/8/8/8/k7/4K3 w - - 0 1")
	require.NoError(t, err)

	mv, err := chess.NewMove("e7", "e8", "n")
	require.NoError(t, err)
	applied, err := e.ApplyMove(pos, mv)
	require.NoError(t, err)
	assert.Equal(t, "e8=N", applied.SAN)
	assert.Equal(t, chess.Piece{Color: chess.White, Kind: chess.Knight}, applied.Position.PieceAt("e8"))
}

func TestEngine_ApplyMove_Rejected(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	pos := e.Initial()

	tests := []struct {
		name string
		move chess.Move
	}{
		{"pawn three squares", mustMove(t, "e2", "e5")},
		{"empty source", mustMove(t, "e4", "e5")},
		{"wrong side", mustMove(t, "e7", "e5")},
		{"knight blocked target", mustMove(t, "g1", "e2")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := e.ApplyMove(pos, tt.move)
			assert.ErrorIs(t, err, ErrIllegalMove)
		})
	}

	assert.Equal(t, StartFEN, pos.FEN, "input position must not change")
}

func TestEngine_LoadPosition(t *testing.T) {
	t.Parallel()

	e := NewEngine()

	stale, err := e.LoadPosition("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, chess.Stalemate, stale.Status)
	assert.False(t, stale.InCheck)
	assert.Equal(t, chess.Black, e.SideToMove(stale))

	checked, err := e.LoadPosition("rnbqkbnr/ppppp2p/5p2/6pQ/4P3/8/PPPP1PPP/RNB1KBNR b KQkq - 1 3")
	require.NoError(t, err)
	assert.True(t, checked.InCheck)
	sq, ok := checked.CheckedKing()
	require.True(t, ok)
	assert.Equal(t, chess.Square("e8"), sq)

	_, err = e.LoadPosition("")
	assert.ErrorIs(t, err, ErrInvalidFEN)

	_, err = e.LoadPosition("not a fen")
	assert.ErrorIs(t, err, ErrInvalidFEN)
}

func TestEngine_LoadPosition_RoundTrip(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	pos, _ := play(t, e, e.Initial(), "e2e4", "c7c5", "g1f3")

	loaded, err := e.LoadPosition(pos.FEN)
	require.NoError(t, err)
	assert.True(t, pos.Equal(loaded))
	assert.Equal(t, pos.Board, loaded.Board)
}

func TestEngine_ApplyMove_SquareNormalisation(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	pos := e.Initial()

	applied, err := e.ApplyMove(pos, chess.Move{From: "E2", To: "E4"})
	require.NoError(t, err)
	assert.Equal(t, "e4", applied.SAN)
	assert.Equal(t, chess.White, applied.Mover)

	tests := []struct {
		name string
		move chess.Move
	}{
		{"file out of range", chess.Move{From: "i2", To: "e4"}},
		{"rank out of range", chess.Move{From: "e2", To: "e9"}},
		{"empty squares", chess.Move{}},
		{"garbage", chess.Move{From: "\xff\xff", To: "e4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.NotPanics(t, func() {
				_, err := e.ApplyMove(pos, tt.move)
				assert.ErrorIs(t, err, ErrIllegalMove)
			})
		})
	}
}
