package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/chess-arena/internal/archive"
	"github.com/palemoky/chess-arena/internal/chess"
	"github.com/palemoky/chess-arena/internal/session"
	"github.com/palemoky/chess-arena/internal/ui/common"
)

// HeaderLines is the number of lines GameView prints above the board.
const HeaderLines = 2

// Screen carries everything GameView draws.
type Screen struct {
	Snapshot   session.Snapshot
	Selected   chess.Square
	Board      BoardOptions
	Spinner    string
	Input      string
	Error      string
	ShowRecent bool
	Recent     []archive.Record
	RecentErr  string
}

// GameView renders the title, board, move table, status line and prompt.
func GameView(s Screen) string {
	snap := s.Snapshot

	var sb strings.Builder
	sb.WriteString(common.TitleStyle(title(snap)))
	sb.WriteString("\n\n")

	opts := s.Board
	opts.Selected = s.Selected
	opts.Check = snap.CheckSquare
	board := RenderBoard(snap.Position, opts)
	history := RenderHistory(snap.Rows, snap.LastRow, BoardRows-1)
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, board, "   ", history))
	sb.WriteString("\n\n")

	status := snap.Status
	if waiting(snap) && s.Spinner != "" {
		status = s.Spinner + " " + status
	}
	sb.WriteString(status)
	if snap.Notice != "" {
		sb.WriteString("\n" + common.ErrorStyle.Render("⚠ "+snap.Notice))
	}

	if s.Error != "" {
		sb.WriteString("\n" + common.ErrorStyle.Render(s.Error))
	}

	sb.WriteString(common.PromptStyle.Render(s.Input))
	sb.WriteString("\n" + common.HintStyle.Render(hint(snap)))

	if s.ShowRecent {
		sb.WriteString("\n\n")
		if s.RecentErr != "" {
			sb.WriteString(common.ErrorStyle.Render(s.RecentErr))
		} else {
			sb.WriteString(RenderRecent(s.Recent))
		}
	}
	return sb.String()
}

func title(snap session.Snapshot) string {
	switch snap.Color {
	case chess.White:
		return common.WhiteIcon + " Chess Arena"
	case chess.Black:
		return common.BlackIcon + " Chess Arena"
	}
	return "Chess Arena"
}

func waiting(snap session.Snapshot) bool {
	return snap.Phase.Kind == session.PhaseWaitingForOpponent ||
		(snap.Phase.Kind == session.PhaseIdle && !snap.Connected)
}

func hint(snap session.Snapshot) string {
	parts := []string{"click or type squares (e2e4)"}
	if snap.CanStart {
		parts = append(parts, "n: play now")
	}
	parts = append(parts, "r: recent games", "q: quit")
	return strings.Join(parts, " · ")
}
