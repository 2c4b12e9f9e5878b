// Package archive stores finished games.
package archive

import (
	"errors"
	"fmt"
	"strings"
	"time"

	nchess "github.com/corentings/chess/v2"
	"github.com/google/uuid"

	"github.com/palemoky/chess-arena/internal/chess"
	"github.com/palemoky/chess-arena/internal/ledger"
	"github.com/palemoky/chess-arena/internal/session"
)

// ErrNotFinished is returned by NewRecord for a game without a result.
var ErrNotFinished = errors.New("archive: game has no result")

// Record 一局已结束的对局
type Record struct {
	ID       string       `json:"id"`
	PlayedAt time.Time    `json:"played_at"`
	PlayerID string       `json:"player_id,omitempty"`
	Color    string       `json:"color"`
	Result   string       `json:"result"`
	Winner   string       `json:"winner,omitempty"`
	FEN      string       `json:"fen"`
	Rows     []ledger.Row `json:"rows"`
	PGN      string       `json:"pgn"`
}

// NewRecord captures a finished game from its final snapshot.
func NewRecord(snap session.Snapshot, playerID string, now time.Time) (Record, error) {
	if snap.Result == nil {
		return Record{}, ErrNotFinished
	}
	r := Record{
		ID:       uuid.NewString(),
		PlayedAt: now.UTC(),
		PlayerID: playerID,
		Color:    snap.Color.String(),
		Result:   snap.Result.Raw,
		Winner:   snap.Result.Winner.String(),
		FEN:      snap.Position.FEN,
		Rows:     snap.Rows,
	}
	r.PGN = PGN(r.Rows, *snap.Result, snap.Color, r.PlayedAt)
	return r, nil
}

// PGN renders rows as a PGN document. The moves are replayed from the
// standard start; when that fails (the server replaced the position mid
// game) the movetext is written as recorded.
func PGN(rows []ledger.Row, result session.Result, player chess.Color, date time.Time) string {
	game := nchess.NewGame()
	game.AddTagPair("Event", "Chess Arena")
	game.AddTagPair("Date", date.Format("2006.01.02"))
	game.AddTagPair("White", seat(player, chess.White))
	game.AddTagPair("Black", seat(player, chess.Black))
	game.AddTagPair("Result", resultToken(result))

	for _, row := range rows {
		for _, san := range []string{row.White, row.Black} {
			if san == "" {
				continue
			}
			if err := game.PushMove(san, nil); err != nil {
				return plainPGN(rows, result, player, date)
			}
		}
	}

	// a replayed mate or stalemate already carries its outcome
	if game.Outcome() == nchess.NoOutcome {
		switch {
		case result.Kind == session.ResultDraw || result.Kind == session.ResultStalemate:
			_ = game.Draw(nchess.DrawOffer)
		case result.Winner != chess.NoColor:
			game.Resign(toColor(result.Winner.Opposite()))
		}
	}
	return game.String()
}

func plainPGN(rows []ledger.Row, result session.Result, player chess.Color, date time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[Event \"Chess Arena\"]\n[Date \"%s\"]\n", date.Format("2006.01.02"))
	fmt.Fprintf(&sb, "[White \"%s\"]\n[Black \"%s\"]\n", seat(player, chess.White), seat(player, chess.Black))
	fmt.Fprintf(&sb, "[Result \"%s\"]\n\n", resultToken(result))
	for _, row := range rows {
		fmt.Fprintf(&sb, "%d. %s ", row.Number, row.White)
		if row.Black != "" {
			sb.WriteString(row.Black + " ")
		}
	}
	sb.WriteString(resultToken(result))
	return sb.String()
}

func resultToken(r session.Result) string {
	switch {
	case r.Kind == session.ResultStalemate || r.Kind == session.ResultDraw:
		return "1/2-1/2"
	case r.Winner == chess.White:
		return "1-0"
	case r.Winner == chess.Black:
		return "0-1"
	}
	return "*"
}

func seat(player, side chess.Color) string {
	if player == side {
		return "You"
	}
	return "Opponent"
}

func toColor(c chess.Color) nchess.Color {
	if c == chess.Black {
		return nchess.Black
	}
	return nchess.White
}
