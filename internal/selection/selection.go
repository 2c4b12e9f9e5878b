// Package selection turns two board clicks into one move intent.
package selection

import (
	"github.com/palemoky/chess-arena/internal/chess"
	"github.com/palemoky/chess-arena/internal/session"
)

// State 选择状态
type State int

const (
	Empty State = iota // 未选中
	Armed              // 已选中起始格
)

func (s State) String() string {
	if s == Armed {
		return "armed"
	}
	return "empty"
}

// Controller is the single writer of the selected square. The zero value is
// an empty controller.
type Controller struct {
	selected chess.Square
}

// New creates an empty controller.
func New() *Controller {
	return &Controller{}
}

// OnSquareClicked advances the two-click cycle. The second click always
// yields a move intent and clears the selection, legal or not; legality is
// decided by the server. Squares are case-insensitive; a click off the
// board is ignored and keeps the current state.
func (c *Controller) OnSquareClicked(sq chess.Square, pos chess.Position, player chess.Color, phase session.Phase) (chess.Move, bool) {
	if phase.IsTerminal() {
		return chess.Move{}, false
	}
	// 非法坐标的点击直接忽略
	sq, err := chess.ParseSquare(string(sq))
	if err != nil {
		return chess.Move{}, false
	}

	if c.selected == "" {
		piece := pos.PieceAt(sq)
		if piece.IsEmpty() {
			return chess.Move{}, false
		}
		if player != chess.NoColor && piece.Color != player {
			return chess.Move{}, false
		}
		c.selected = sq
		return chess.Move{}, false
	}

	mv := chess.Move{From: c.selected, To: sq}
	c.selected = ""
	return mv, true
}

// Selected returns the armed square.
func (c *Controller) Selected() (chess.Square, bool) {
	return c.selected, c.selected != ""
}

// State 当前状态
func (c *Controller) State() State {
	if c.selected == "" {
		return Empty
	}
	return Armed
}

// Clear drops any pending selection.
func (c *Controller) Clear() {
	c.selected = ""
}
