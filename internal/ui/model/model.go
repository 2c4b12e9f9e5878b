package model

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/palemoky/chess-arena/internal/apperrors"
	"github.com/palemoky/chess-arena/internal/archive"
	"github.com/palemoky/chess-arena/internal/chess"
	"github.com/palemoky/chess-arena/internal/client"
	"github.com/palemoky/chess-arena/internal/logger"
	"github.com/palemoky/chess-arena/internal/ui/common"
	"github.com/palemoky/chess-arena/internal/ui/view"
)

// Offsets of the board inside the rendered document.
const (
	docMarginTop  = 1
	docMarginLeft = 2
)

const defaultRecentLimit = 10

// Model is the bubbletea model. All client calls happen inside Update, so
// the session state is only ever touched from the program's event loop.
type Model struct {
	client *client.Client
	opts   Options
	log    *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	input   textinput.Model
	spinner spinner.Model
	width   int
	height  int
	err     string

	showRecent bool
	recent     []archive.Record
	recentErr  string

	// Key handler (injected to break circular import)
	keyHandler func(*Model, tea.KeyMsg) (bool, tea.Cmd)
}

// NewModel creates the model around c.
func NewModel(c *client.Client, opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = "e2e4"
	ti.CharLimit = 8
	ti.Width = 12
	ti.Prompt = "move> "
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	if opts.RecentLimit <= 0 {
		opts.RecentLimit = defaultRecentLimit
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Model{
		client:  c,
		opts:    opts,
		log:     logger.L().Named("ui"),
		ctx:     ctx,
		cancel:  cancel,
		input:   ti,
		spinner: sp,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.start(),
		m.listen(),
		m.spinner.Tick,
		textinput.Blink,
	)
}

func (m *Model) start() tea.Cmd {
	return func() tea.Msg {
		return StartedMsg{Err: m.client.Start(m.ctx)}
	}
}

func (m *Model) listen() tea.Cmd {
	return func() tea.Msg {
		in, ok := m.client.Next(m.ctx)
		if !ok {
			return ClosedMsg{}
		}
		return InboundMsg{In: in}
	}
}

// Update handles tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case StartedMsg:
		if msg.Err != nil {
			m.log.Warn("connect failed", zap.Error(msg.Err))
		}

	case InboundMsg:
		if err := m.client.Deliver(msg.In); err != nil {
			m.log.Debug("inbound dropped", zap.Error(err))
		}
		cmds = append(cmds, m.listen())

	case ClosedMsg:
		// 不再监听

	case RecentGamesMsg:
		m.recent = msg.Records
		m.recentErr = ""
		if msg.Err != nil {
			m.log.Error("load recent games", zap.Error(msg.Err))
			m.recentErr = "Recent games unavailable"
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.ClickAt(msg.X, msg.Y)
		}

	case tea.KeyMsg:
		if m.keyHandler != nil {
			handled, cmd := m.keyHandler(m, msg)
			if handled {
				return m, cmd
			}
			cmds = append(cmds, cmd)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the model.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	selected, _ := m.client.Selection()
	screen := view.Screen{
		Snapshot: m.client.Snapshot(),
		Selected: selected,
		Board: view.BoardOptions{
			Flipped: m.flipped(),
			Unicode: m.opts.UnicodePieces,
		},
		Spinner:    m.spinner.View(),
		Input:      m.input.View(),
		Error:      m.err,
		ShowRecent: m.showRecent,
		Recent:     m.recent,
		RecentErr:  m.recentErr,
	}
	return common.DocStyle.Render(view.GameView(screen))
}

// SetKeyHandler sets the keyboard event handler function.
func (m *Model) SetKeyHandler(fn func(*Model, tea.KeyMsg) (bool, tea.Cmd)) {
	m.keyHandler = fn
}

// Close stops listening for inbound traffic.
func (m *Model) Close() { m.cancel() }

func (m *Model) Input() *textinput.Model { return &m.input }
func (m *Model) Error() string           { return m.err }
func (m *Model) ShowingRecent() bool     { return m.showRecent }

func (m *Model) flipped() bool {
	return m.opts.FlipForBlack && m.client.Snapshot().Color == chess.Black
}

// ClickAt handles a left click at terminal cell (x, y).
func (m *Model) ClickAt(x, y int) {
	sq, ok := view.SquareAt(x-docMarginLeft, y-docMarginTop-view.HeaderLines, m.flipped())
	if !ok {
		return
	}
	m.report(m.client.ClickSquare(sq.String()))
}

// NewGame asks the server for a new game.
func (m *Model) NewGame() {
	m.report(m.client.NewGame())
}

// SubmitText feeds typed squares ("e2", "e2e4", "e2 e4", "e2-e4") to the
// selection controller one at a time.
func (m *Model) SubmitText(text string) {
	text = strings.ToLower(strings.NewReplacer(" ", "", "-", "").Replace(text))
	if text == "" || len(text)%2 != 0 || len(text) > 4 {
		m.err = "Type a square like e2 or a move like e2e4"
		return
	}
	for i := 0; i < len(text); i += 2 {
		if err := m.client.ClickSquare(text[i : i+2]); err != nil {
			m.report(err)
			return
		}
	}
	m.report(nil)
}

// ToggleRecent shows or hides the archive panel, loading it when shown.
func (m *Model) ToggleRecent() tea.Cmd {
	m.showRecent = !m.showRecent
	if !m.showRecent {
		return nil
	}
	limit := m.opts.RecentLimit
	return func() tea.Msg {
		records, err := m.client.RecentGames(m.ctx, limit)
		return RecentGamesMsg{Records: records, Err: err}
	}
}

// report turns an action error into a short user-facing line.
func (m *Model) report(err error) {
	m.err = ""
	if err == nil {
		return
	}
	m.log.Debug("action rejected", zap.Error(err))
	switch {
	case errors.Is(err, chess.ErrInvalidSquare):
		m.err = "Not a square"
	case errors.Is(err, apperrors.ErrNotPlaying):
		m.err = "No game in progress"
	case errors.Is(err, apperrors.ErrUnexpectedEvent):
		m.err = "A game cannot be started now"
	case errors.Is(err, apperrors.ErrConnectionClosed):
		m.err = "Not connected to the server"
	default:
		m.err = "Action failed"
	}
}
