// Package ledger keeps the numbered move history of one game.
package ledger

import (
	"fmt"

	"github.com/palemoky/chess-arena/internal/apperrors"
	"github.com/palemoky/chess-arena/internal/chess"
)

// Row 一个完整回合：白方一步 + 黑方一步
type Row struct {
	Number int    `json:"number"`
	White  string `json:"white,omitempty"`
	Black  string `json:"black,omitempty"`
}

// HasBlack reports whether the black half of the row is filled.
func (r Row) HasBlack() bool { return r.Black != "" }

// Ledger is append-only. The zero value is ready to use.
type Ledger struct {
	rows []Row
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Record appends san for the given side. A white move opens a new row; a
// black move fills the last row. A black move with no pending white row is
// dropped and reported as an ordering anomaly.
func (l *Ledger) Record(side chess.Color, san string) error {
	switch side {
	case chess.White:
		l.rows = append(l.rows, Row{Number: len(l.rows) + 1, White: san})
		return nil
	case chess.Black:
		if len(l.rows) == 0 || l.rows[len(l.rows)-1].HasBlack() {
			return apperrors.Wrap(apperrors.ErrOrderingAnomaly, fmt.Errorf("black %s", san))
		}
		l.rows[len(l.rows)-1].Black = san
		return nil
	}
	return apperrors.Wrap(apperrors.ErrOrderingAnomaly, fmt.Errorf("no side for %s", san))
}

// Rows returns a copy of the rows in move-number order.
func (l *Ledger) Rows() []Row {
	out := make([]Row, len(l.rows))
	copy(out, l.rows)
	return out
}

// Len 行数
func (l *Ledger) Len() int { return len(l.rows) }

// Last returns the latest row.
func (l *Ledger) Last() (Row, bool) {
	if len(l.rows) == 0 {
		return Row{}, false
	}
	return l.rows[len(l.rows)-1], true
}

// Reset 清空棋谱，开始新对局时调用
func (l *Ledger) Reset() {
	l.rows = nil
}
