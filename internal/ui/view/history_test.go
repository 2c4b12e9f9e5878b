package view

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/chess-arena/internal/archive"
	"github.com/palemoky/chess-arena/internal/ledger"
)

func TestRenderHistory(t *testing.T) {
	t.Parallel()

	rows := []ledger.Row{
		{Number: 1, White: "e4", Black: "e5"},
		{Number: 2, White: "Nf3", Black: "Nc6"},
		{Number: 3, White: "Bb5"},
	}

	tests := []struct {
		name     string
		rows     []ledger.Row
		maxRows  int
		contains []string
		absent   []string
	}{
		{"empty", nil, 0, []string{"White", "Black", noMovesText}, nil},
		{"all rows", rows, 0, []string{"1.", "e4", "e5", "Nc6", "3.", "Bb5"}, []string{noMovesText}},
		{"scrolled to newest", rows, 2, []string{"2.", "Nf3", "Bb5"}, []string{"e5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := RenderHistory(tt.rows, len(tt.rows)-1, tt.maxRows)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRenderRecent(t *testing.T) {
	t.Parallel()

	assert.Contains(t, RenderRecent(nil), "No finished games")

	records := []archive.Record{
		{Color: "white", Result: "checkmate", PlayedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), Rows: make([]ledger.Row, 4)},
		{Color: "black", Result: "opponent disconnected", PlayedAt: time.Now()},
	}
	out := RenderRecent(records)
	assert.Contains(t, out, "Recent games")
	assert.Contains(t, out, "checkmate")
	assert.Contains(t, out, fmt.Sprintf("%d moves", 4))
	assert.Contains(t, out, "opponent di…")
}
