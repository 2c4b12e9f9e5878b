package session

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/palemoky/chess-arena/internal/apperrors"
	"github.com/palemoky/chess-arena/internal/chess"
	"github.com/palemoky/chess-arena/internal/ledger"
	"github.com/palemoky/chess-arena/internal/logger"
	"github.com/palemoky/chess-arena/internal/protocol"
	"github.com/palemoky/chess-arena/internal/rules"
)

// Sender is the outbound half of the transport. The machine only borrows it;
// opening and closing the connection belong to the caller.
type Sender interface {
	Send(msg *protocol.Message) error
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger replaces the package logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) { m.log = l }
}

// Machine is the single writer of phase, color, position and ledger. It is
// not safe for concurrent use; callers serialise events on one goroutine.
type Machine struct {
	engine rules.Engine
	sender Sender
	log    *zap.Logger

	phase     Phase
	color     chess.Color
	position  chess.Position
	ledger    *ledger.Ledger
	connected bool
	playerID  string
	notice    string
}

// New creates a machine in PhaseIdle showing the initial position.
func New(engine rules.Engine, sender Sender, opts ...Option) *Machine {
	m := &Machine{
		engine:   engine,
		sender:   sender,
		log:      logger.L().Named("session"),
		phase:    idle(),
		position: engine.Initial(),
		ledger:   ledger.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// HandleMessage decodes msg and feeds it to HandleEvent. A message that
// cannot be decoded is logged and leaves the machine untouched.
func (m *Machine) HandleMessage(msg *protocol.Message) error {
	ev, err := EventFromMessage(msg)
	if err != nil {
		m.log.Warn("dropping inbound message", zap.Stringer("phase", m.phase), zap.Error(err))
		return err
	}
	return m.HandleEvent(ev)
}

// HandleEvent applies ev in full or not at all. Returned errors are
// *apperrors.AppError values describing why an event was dropped; none of
// them leave the machine in a broken state.
func (m *Machine) HandleEvent(ev Event) error {
	var err error
	switch ev := ev.(type) {
	case StartRequested:
		err = m.onStartRequested()
	case Connected:
		m.connected = true
		if ev.PlayerID != "" {
			m.playerID = ev.PlayerID
		}
		m.log.Info("connected", zap.String("player_id", ev.PlayerID))
	case WaitingForOpponent:
		err = m.onWaiting()
	case ColorAssigned:
		err = m.onColorAssigned(ev)
	case MoveConfirmed:
		err = m.onMoveConfirmed(ev)
	case GameOver:
		err = m.onGameOver(ev)
	case OpponentDisconnected:
		err = m.onOpponentDisconnected()
	case ConnectionLost:
		m.onConnectionLost(ev)
	case ServerError:
		m.onServerError(ev)
	default:
		err = apperrors.Wrap(apperrors.ErrUnknownMessage, fmt.Errorf("event %T", ev))
	}

	if err != nil {
		m.log.Warn("event dropped",
			zap.String("event", eventName(ev)),
			zap.Stringer("phase", m.phase),
			zap.Stringer("kind", apperrors.KindOf(err)),
			zap.Error(err))
	}
	return err
}

func (m *Machine) onStartRequested() error {
	if !m.CanStart() {
		return m.unexpected("start-request")
	}
	if err := m.sender.Send(protocol.NewStartRequest()); err != nil {
		return apperrors.Wrap(apperrors.ErrConnectionClosed, err)
	}

	m.ledger.Reset()
	m.color = chess.NoColor
	m.position = m.engine.Initial()
	m.notice = ""
	m.phase = Phase{Kind: PhaseWaitingForOpponent}
	return nil
}

func (m *Machine) onWaiting() error {
	if m.phase.Kind != PhaseWaitingForOpponent {
		return m.unexpected(string(protocol.MsgWaitingForOpponent))
	}
	return nil
}

func (m *Machine) onColorAssigned(ev ColorAssigned) error {
	if m.phase.Kind != PhaseWaitingForOpponent {
		return m.unexpected(string(protocol.MsgColorAssigned))
	}
	if ev.Color == chess.NoColor {
		return apperrors.Wrap(apperrors.ErrMalformedPayload, fmt.Errorf("no color"))
	}

	m.color = ev.Color
	m.position = m.engine.Initial()
	m.phase = playing()
	m.log.Info("game started", zap.Stringer("color", m.color))
	return nil
}

func (m *Machine) onMoveConfirmed(ev MoveConfirmed) error {
	if !m.phase.InGame() {
		return m.unexpected(string(protocol.MsgMoveConfirmed))
	}

	mover := m.engine.SideToMove(m.position)
	applied, err := m.engine.ApplyMove(m.position, ev.Move)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrMoveRejected, err)
	}

	next := applied.Position
	if ev.Board != "" {
		canonical, err := m.engine.LoadPosition(ev.Board)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrMalformedPayload, err)
		}
		if !canonical.Equal(next) {
			m.log.Debug("server position overrides local",
				zap.String("local", next.FEN), zap.String("server", canonical.FEN))
		}
		next = canonical
	}

	// Everything below commits. A ledger ordering anomaly drops only the
	// history entry.
	ledgerErr := m.ledger.Record(mover, applied.SAN)

	m.position = next
	m.notice = ""
	if next.InCheck && next.Status != chess.Checkmate {
		m.phase = check(m.engine.SideToMove(next))
	} else {
		m.phase = playing()
	}

	m.log.Debug("move confirmed",
		zap.Stringer("move", ev.Move),
		zap.String("san", applied.SAN),
		zap.Stringer("phase", m.phase))
	return ledgerErr
}

func (m *Machine) onGameOver(ev GameOver) error {
	if !m.phase.InGame() {
		return m.unexpected(string(protocol.MsgGameOver))
	}

	pos := m.position
	if ev.FEN != "" {
		final, err := m.engine.LoadPosition(ev.FEN)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrMalformedPayload, err)
		}
		pos = final
	}

	m.position = pos
	m.phase = gameOver(NewResult(ev.Result, ev.Winner))
	m.log.Info("game over", zap.String("result", ev.Result), zap.Stringer("winner", ev.Winner))
	return nil
}

func (m *Machine) onOpponentDisconnected() error {
	if !m.phase.InGame() {
		return m.unexpected(string(protocol.MsgOpponentDisconnected))
	}
	m.phase = Phase{Kind: PhaseOpponentDisconnected}
	return nil
}

func (m *Machine) onConnectionLost(ev ConnectionLost) {
	m.connected = false
	if m.phase.Kind == PhaseConnectionLost {
		return
	}
	m.phase = Phase{Kind: PhaseConnectionLost}
	m.log.Warn("connection lost", zap.Error(ev.Err))
}

func (m *Machine) onServerError(ev ServerError) {
	m.notice = ev.Message
	if m.notice == "" {
		m.notice = protocol.ErrorText(ev.Code)
	}
	m.log.Warn("server error", zap.Int("code", ev.Code), zap.String("message", ev.Message))
}

func (m *Machine) unexpected(event string) error {
	return apperrors.Wrap(apperrors.ErrUnexpectedEvent, fmt.Errorf("%s in phase %s", event, m.phase))
}

// Submit forwards a move intent to the server. The position is not touched
// until the matching move-confirmed arrives.
func (m *Machine) Submit(mv chess.Move) error {
	if !m.phase.InGame() {
		return apperrors.ErrNotPlaying
	}
	msg := protocol.NewMoveMessage(mv.From.String(), mv.To.String(), mv.Promotion.Letter())
	if err := m.sender.Send(msg); err != nil {
		return apperrors.Wrap(apperrors.ErrConnectionClosed, err)
	}
	m.log.Debug("move submitted", zap.Stringer("move", mv))
	return nil
}

// CanStart reports whether a new game may be requested.
func (m *Machine) CanStart() bool {
	return m.phase.Kind == PhaseIdle || m.phase.Kind == PhaseGameOver
}

// Phase 当前阶段
func (m *Machine) Phase() Phase { return m.phase }

// Color is NoColor until the server assigns one.
func (m *Machine) Color() chess.Color { return m.color }

// Position 当前局面
func (m *Machine) Position() chess.Position { return m.position }

// Rows returns a copy of the move history.
func (m *Machine) Rows() []ledger.Row { return m.ledger.Rows() }

// Result is nil until the game is over.
func (m *Machine) Result() *Result {
	if m.phase.Result == nil {
		return nil
	}
	r := *m.phase.Result
	return &r
}

// Connected reports whether the server has acknowledged the connection and
// it has not been lost since.
func (m *Machine) Connected() bool { return m.connected }

// PlayerID 服务端分配的玩家 ID
func (m *Machine) PlayerID() string { return m.playerID }

func eventName(ev Event) string {
	if ev == nil {
		return "nil"
	}
	return ev.eventName()
}
