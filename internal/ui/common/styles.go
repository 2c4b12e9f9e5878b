// Package common provides shared styles and utilities for the UI.
package common

import "github.com/charmbracelet/lipgloss"

// Icon constants
const (
	WhiteIcon = "♔"
	BlackIcon = "♚"
)

// Lipgloss Styles
var (
	DocStyle      = lipgloss.NewStyle().Margin(1, 2)
	TitleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	BoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	PromptStyle   = lipgloss.NewStyle().MarginTop(1)
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	HintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	LastRowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("228"))
	LabelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	LightSquare   = lipgloss.NewStyle().Background(lipgloss.Color("#EEEED2"))
	DarkSquare    = lipgloss.NewStyle().Background(lipgloss.Color("#769656"))
	SelectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("#F6F669"))
	CheckStyle    = lipgloss.NewStyle().Background(lipgloss.Color("#E84F4F"))
	WhitePiece    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	BlackPiece    = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Bold(true)
)
