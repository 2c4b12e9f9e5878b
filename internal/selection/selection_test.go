package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/chess-arena/internal/chess"
	"github.com/palemoky/chess-arena/internal/rules"
	"github.com/palemoky/chess-arena/internal/session"
)

var (
	start   = rules.NewEngine().Initial()
	playing = session.Phase{Kind: session.PhasePlaying}
)

func TestOnSquareClicked_FirstClick(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		square chess.Square
		player chess.Color
		armed  bool
	}{
		{"own piece", "e2", chess.White, true},
		{"opponent piece", "e7", chess.White, false},
		{"empty square", "e4", chess.White, false},
		{"black own piece", "g8", chess.Black, true},
		{"no color yet", "e7", chess.NoColor, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := New()
			mv, ok := c.OnSquareClicked(tt.square, start, tt.player, playing)
			assert.False(t, ok)
			assert.Zero(t, mv)

			sq, armed := c.Selected()
			assert.Equal(t, tt.armed, armed)
			if tt.armed {
				assert.Equal(t, tt.square, sq)
				assert.Equal(t, Armed, c.State())
			} else {
				assert.Equal(t, Empty, c.State())
			}
		})
	}
}

func TestOnSquareClicked_SecondClickAlwaysClears(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		to   chess.Square
	}{
		{"legal target", "e4"},
		{"illegal target", "h5"},
		{"own piece", "d2"},
		{"same square", "e2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := New()
			_, _ = c.OnSquareClicked("e2", start, chess.White, playing)

			mv, ok := c.OnSquareClicked(tt.to, start, chess.White, playing)
			require.True(t, ok)
			assert.Equal(t, chess.Move{From: "e2", To: tt.to}, mv)
			assert.Equal(t, Empty, c.State())
		})
	}
}

func TestOnSquareClicked_TerminalPhase(t *testing.T) {
	t.Parallel()

	for _, kind := range []session.PhaseKind{
		session.PhaseGameOver,
		session.PhaseOpponentDisconnected,
		session.PhaseConnectionLost,
	} {
		t.Run(kind.String(), func(t *testing.T) {
			t.Parallel()

			c := New()
			_, ok := c.OnSquareClicked("e2", start, chess.White, session.Phase{Kind: kind})
			assert.False(t, ok)
			assert.Equal(t, Empty, c.State())
		})
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	c := New()
	_, _ = c.OnSquareClicked("b1", start, chess.White, playing)
	require.Equal(t, Armed, c.State())

	c.Clear()
	assert.Equal(t, Empty, c.State())
	assert.Equal(t, "empty", c.State().String())
}

func TestOnSquareClicked_SquareNormalisation(t *testing.T) {
	t.Parallel()

	t.Run("uppercase arms and completes", func(t *testing.T) {
		t.Parallel()

		c := New()
		_, ok := c.OnSquareClicked("E2", start, chess.White, playing)
		assert.False(t, ok)
		sq, armed := c.Selected()
		require.True(t, armed)
		assert.Equal(t, chess.Square("e2"), sq)

		mv, ok := c.OnSquareClicked("E4", start, chess.White, playing)
		require.True(t, ok)
		assert.Equal(t, chess.Move{From: "e2", To: "e4"}, mv)
	})

	tests := []struct {
		name   string
		square chess.Square
	}{
		{"file out of range", "i2"},
		{"rank out of range", "e9"},
		{"empty", ""},
		{"too long", "e22"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := New()
			assert.NotPanics(t, func() {
				_, ok := c.OnSquareClicked(tt.square, start, chess.White, playing)
				assert.False(t, ok)
			})
			assert.Equal(t, Empty, c.State())

			// 已选中时的非法点击不会产生走子，也不清除选择
			_, _ = c.OnSquareClicked("e2", start, chess.White, playing)
			mv, ok := c.OnSquareClicked(tt.square, start, chess.White, playing)
			assert.False(t, ok)
			assert.Zero(t, mv)
			assert.Equal(t, Armed, c.State())
		})
	}
}
