package session

import (
	"fmt"

	"github.com/palemoky/chess-arena/internal/chess"
)

// StatusText returns the human-readable line for the current phase. It never
// contains raw error details.
func (m *Machine) StatusText() string {
	switch m.phase.Kind {
	case PhaseIdle:
		if !m.connected {
			return "Connecting to server..."
		}
		return `Click "Play Now" to start a game`
	case PhaseWaitingForOpponent:
		return "Waiting for opponent..."
	case PhasePlaying:
		if m.color == chess.NoColor {
			return ""
		}
		return "You are playing as " + m.color.String()
	case PhaseCheck:
		return m.phase.Side.Title() + " is in check!"
	case PhaseGameOver:
		return gameOverText(m.phase.Result)
	case PhaseOpponentDisconnected:
		return "opponent disconnected"
	case PhaseConnectionLost:
		return "connection lost"
	}
	return ""
}

func gameOverText(r *Result) string {
	if r == nil {
		return "Game over"
	}
	switch r.Kind {
	case ResultCheckmate:
		return fmt.Sprintf("Game over - Checkmate! %s wins!", r.Winner)
	case ResultStalemate:
		return "Game over - Stalemate! It's a draw."
	}
	return "Game over - " + r.Raw
}
