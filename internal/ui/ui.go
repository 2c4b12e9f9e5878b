// Package ui provides the main entry point for the UI.
package ui

import (
	"github.com/palemoky/chess-arena/internal/client"
	"github.com/palemoky/chess-arena/internal/ui/input"
	"github.com/palemoky/chess-arena/internal/ui/model"
)

// Options re-exports the model options.
type Options = model.Options

// NewModel creates the terminal model for c with keyboard handling wired in.
func NewModel(c *client.Client, opts Options) *model.Model {
	m := model.NewModel(c, opts)
	m.SetKeyHandler(input.HandleKeyPress)
	return m
}
