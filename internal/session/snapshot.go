package session

import (
	"github.com/palemoky/chess-arena/internal/chess"
	"github.com/palemoky/chess-arena/internal/ledger"
)

// Snapshot is a render-ready copy of the machine state. Holding one never
// aliases machine internals.
type Snapshot struct {
	Phase       Phase
	Color       chess.Color
	Position    chess.Position
	Rows        []ledger.Row
	LastRow     int          // index into Rows of the latest row, -1 when empty
	CheckSquare chess.Square // king square of the side in check, "" otherwise
	Result      *Result
	Status      string
	Notice      string
	Connected   bool
	CanStart    bool
}

// Snapshot builds a Snapshot of the current state.
func (m *Machine) Snapshot() Snapshot {
	rows := m.ledger.Rows()
	s := Snapshot{
		Phase:     m.phase,
		Color:     m.color,
		Position:  m.position,
		Rows:      rows,
		LastRow:   len(rows) - 1,
		Result:    m.Result(),
		Status:    m.StatusText(),
		Notice:    m.notice,
		Connected: m.connected,
		CanStart:  m.CanStart(),
	}
	s.Phase.Result = s.Result
	if sq, ok := m.position.CheckedKing(); ok {
		s.CheckSquare = sq
	}
	return s
}
