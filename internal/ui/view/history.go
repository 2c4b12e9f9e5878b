package view

import (
	"fmt"
	"strings"

	"github.com/palemoky/chess-arena/internal/archive"
	"github.com/palemoky/chess-arena/internal/ledger"
	"github.com/palemoky/chess-arena/internal/ui/common"
)

const noMovesText = "No moves yet"

// RenderHistory renders the move table, keeping only the newest maxRows rows
// when maxRows > 0. The row at index lastRow is highlighted.
func RenderHistory(rows []ledger.Row, lastRow, maxRows int) string {
	var sb strings.Builder
	sb.WriteString(common.LabelStyle.Render(fmt.Sprintf("%-4s %-8s %-8s", "#", "White", "Black")))

	if len(rows) == 0 {
		sb.WriteString("\n" + common.HintStyle.Render(noMovesText))
		return common.BoxStyle.Render(sb.String())
	}

	start := 0
	if maxRows > 0 && len(rows) > maxRows {
		start = len(rows) - maxRows
	}
	for i := start; i < len(rows); i++ {
		r := rows[i]
		line := fmt.Sprintf("%-4s %-8s %-8s", fmt.Sprintf("%d.", r.Number), r.White, r.Black)
		if i == lastRow {
			line = common.LastRowStyle.Render(line)
		}
		sb.WriteString("\n" + line)
	}
	return common.BoxStyle.Render(sb.String())
}

// RenderRecent renders archived games, newest first.
func RenderRecent(records []archive.Record) string {
	var sb strings.Builder
	sb.WriteString(common.TitleStyle("Recent games"))
	if len(records) == 0 {
		sb.WriteString("\n" + common.HintStyle.Render("No finished games"))
		return common.BoxStyle.Render(sb.String())
	}
	for _, r := range records {
		sb.WriteString(fmt.Sprintf("\n%s  %-5s  %-12s  %d moves",
			r.PlayedAt.Local().Format("01-02 15:04"),
			r.Color,
			common.TruncateText(r.Result, 12),
			len(r.Rows),
		))
	}
	return common.BoxStyle.Render(sb.String())
}
