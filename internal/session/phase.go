// Package session implements the client-side game session state machine.
// All state changes go through Machine.HandleEvent.
package session

import (
	"strings"

	"github.com/palemoky/chess-arena/internal/chess"
)

// PhaseKind 会话阶段
type PhaseKind int

const (
	PhaseIdle                 PhaseKind = iota // 未开始，可发起对局
	PhaseWaitingForOpponent                    // 已请求，等待匹配
	PhasePlaying                               // 对局中
	PhaseCheck                                 // 对局中，某方被将军
	PhaseGameOver                              // 对局结束，可再来一局
	PhaseOpponentDisconnected                  // 对手掉线，不可继续
	PhaseConnectionLost                        // 本端连接断开
)

func (k PhaseKind) String() string {
	switch k {
	case PhaseIdle:
		return "idle"
	case PhaseWaitingForOpponent:
		return "waiting-for-opponent"
	case PhasePlaying:
		return "playing"
	case PhaseCheck:
		return "check"
	case PhaseGameOver:
		return "game-over"
	case PhaseOpponentDisconnected:
		return "opponent-disconnected"
	case PhaseConnectionLost:
		return "connection-lost"
	default:
		return "unknown"
	}
}

// Phase is a tagged variant: Side is set only for PhaseCheck and Result only
// for PhaseGameOver.
type Phase struct {
	Kind   PhaseKind
	Side   chess.Color
	Result *Result
}

func idle() Phase    { return Phase{Kind: PhaseIdle} }
func playing() Phase { return Phase{Kind: PhasePlaying} }

func check(side chess.Color) Phase { return Phase{Kind: PhaseCheck, Side: side} }

func gameOver(r Result) Phase { return Phase{Kind: PhaseGameOver, Result: &r} }

// InGame reports whether moves are being exchanged.
func (p Phase) InGame() bool {
	return p.Kind == PhasePlaying || p.Kind == PhaseCheck
}

// IsTerminal reports whether the board is frozen: no selection, no moves.
func (p Phase) IsTerminal() bool {
	switch p.Kind {
	case PhaseGameOver, PhaseOpponentDisconnected, PhaseConnectionLost:
		return true
	}
	return false
}

func (p Phase) String() string {
	if p.Kind == PhaseCheck {
		return p.Kind.String() + "(" + p.Side.String() + ")"
	}
	return p.Kind.String()
}

// ResultKind 终局类型
type ResultKind int

const (
	ResultOther ResultKind = iota
	ResultCheckmate
	ResultStalemate
	ResultResignation
	ResultDisconnect
	ResultDraw
)

var resultKinds = map[string]ResultKind{
	"checkmate":   ResultCheckmate,
	"stalemate":   ResultStalemate,
	"resignation": ResultResignation,
	"resign":      ResultResignation,
	"disconnect":  ResultDisconnect,
	"draw":        ResultDraw,
}

// Result is the immutable outcome of a game. Raw keeps the server's result
// string so unknown kinds can still be shown.
type Result struct {
	Kind   ResultKind
	Raw    string
	Winner chess.Color
}

// NewResult classifies a server result string.
func NewResult(raw string, winner chess.Color) Result {
	return Result{
		Kind:   resultKinds[strings.ToLower(strings.TrimSpace(raw))],
		Raw:    raw,
		Winner: winner,
	}
}
