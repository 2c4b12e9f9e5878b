// Package view provides UI rendering functions.
package view

import (
	"strings"

	"github.com/palemoky/chess-arena/internal/chess"
	"github.com/palemoky/chess-arena/internal/ui/common"
)

// Board geometry in terminal cells.
const (
	RankLabelWidth = 2
	CellWidth      = 3
	BoardRows      = 8
)

var unicodeGlyphs = map[chess.Color]map[chess.PieceKind]string{
	chess.White: {chess.King: "♔", chess.Queen: "♕", chess.Rook: "♖", chess.Bishop: "♗", chess.Knight: "♘", chess.Pawn: "♙"},
	chess.Black: {chess.King: "♚", chess.Queen: "♛", chess.Rook: "♜", chess.Bishop: "♝", chess.Knight: "♞", chess.Pawn: "♟"},
}

// BoardOptions 棋盘渲染选项
type BoardOptions struct {
	Flipped  bool         // 黑方在下
	Unicode  bool         // 使用 Unicode 棋子
	Selected chess.Square // 已选中的起点格
	Check    chess.Square // 被将军的王所在格
}

// RenderBoard renders pos as eight rank lines followed by a file legend.
func RenderBoard(pos chess.Position, opts BoardOptions) string {
	var sb strings.Builder
	for row := 0; row < BoardRows; row++ {
		rank := rankForRow(row, opts.Flipped)
		sb.WriteString(common.LabelStyle.Render(string(rune('1'+rank)) + " "))
		for col := 0; col < 8; col++ {
			sq := chess.SquareAt(fileForCol(col, opts.Flipped), rank)
			sb.WriteString(renderCell(sq, pos.PieceAt(sq), opts))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat(" ", RankLabelWidth))
	for col := 0; col < 8; col++ {
		sb.WriteString(common.LabelStyle.Render(" " + string(rune('a'+fileForCol(col, opts.Flipped))) + " "))
	}
	return sb.String()
}

// SquareAt maps a cell offset relative to the board's top-left corner to a
// square. ok is false outside the playing area.
func SquareAt(x, y int, flipped bool) (sq chess.Square, ok bool) {
	x -= RankLabelWidth
	if x < 0 || y < 0 || y >= BoardRows || x >= 8*CellWidth {
		return "", false
	}
	return chess.SquareAt(fileForCol(x/CellWidth, flipped), rankForRow(y, flipped)), true
}

func rankForRow(row int, flipped bool) int {
	if flipped {
		return row
	}
	return 7 - row
}

func fileForCol(col int, flipped bool) int {
	if flipped {
		return 7 - col
	}
	return col
}

func renderCell(sq chess.Square, p chess.Piece, opts BoardOptions) string {
	style := common.LightSquare
	if (sq.File()+sq.Rank())%2 == 0 {
		style = common.DarkSquare
	}
	switch sq {
	case opts.Check:
		style = common.CheckStyle
	case opts.Selected:
		style = common.SelectedStyle
	}

	glyph := " "
	if !p.IsEmpty() {
		glyph = pieceGlyph(p, opts.Unicode)
		if p.Color == chess.White {
			style = style.Inherit(common.WhitePiece)
		} else {
			style = style.Inherit(common.BlackPiece)
		}
	}
	return style.Render(" " + glyph + " ")
}

func pieceGlyph(p chess.Piece, unicode bool) string {
	if unicode {
		return unicodeGlyphs[p.Color][p.Kind]
	}
	if p.Color == chess.White {
		return strings.ToUpper(p.Kind.Letter())
	}
	return p.Kind.Letter()
}
