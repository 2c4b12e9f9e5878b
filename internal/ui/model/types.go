// Package model contains the bubbletea model of the terminal client.
package model

import (
	"github.com/palemoky/chess-arena/internal/archive"
	"github.com/palemoky/chess-arena/internal/client"
)

// Options 界面选项
type Options struct {
	FlipForBlack  bool // 执黑时翻转棋盘
	UnicodePieces bool
	RecentLimit   int
}

// --- Tea Messages ---

// InboundMsg carries one queued server message or transport event.
type InboundMsg struct {
	In client.Inbound
}

// StartedMsg reports the end of the initial dial.
type StartedMsg struct {
	Err error
}

// ClosedMsg is returned once the client stops delivering.
type ClosedMsg struct{}

// RecentGamesMsg carries the archive listing.
type RecentGamesMsg struct {
	Records []archive.Record
	Err     error
}
