// Package input handles keyboard input processing.
package input

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/chess-arena/internal/ui/model"
)

// HandleKeyPress handles keyboard input and returns whether it was handled.
// Keys it does not handle go to the move input.
func HandleKeyPress(m *model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	in := m.Input()

	switch msg.Type {
	case tea.KeyCtrlC:
		return true, tea.Quit

	case tea.KeyEsc:
		switch {
		case m.ShowingRecent():
			return true, m.ToggleRecent()
		case in.Value() != "":
			in.Reset()
			return true, nil
		}
		return true, tea.Quit

	case tea.KeyEnter:
		text := in.Value()
		in.Reset()
		if text == "" {
			m.NewGame()
		} else {
			m.SubmitText(text)
		}
		return true, nil
	}

	// 输入框为空时单字母作为快捷键
	if msg.Type == tea.KeyRunes && in.Value() == "" {
		switch msg.String() {
		case "n", "N":
			m.NewGame()
			return true, nil
		case "r", "R":
			return true, m.ToggleRecent()
		case "q", "Q":
			return true, tea.Quit
		}
	}
	return false, nil
}
