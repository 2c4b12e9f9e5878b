package session

import (
	"fmt"

	"github.com/palemoky/chess-arena/internal/apperrors"
	"github.com/palemoky/chess-arena/internal/chess"
	"github.com/palemoky/chess-arena/internal/protocol"
)

// Event is anything that drives the machine: a decoded server message, a
// user request or a transport notification.
type Event interface {
	eventName() string
}

// StartRequested is the user asking for a new game.
type StartRequested struct{}

// Connected 服务端确认连接
type Connected struct {
	PlayerID string
}

// WaitingForOpponent 服务端已受理，等待对手
type WaitingForOpponent struct{}

// ColorAssigned 分配执子颜色，对局开始
type ColorAssigned struct {
	Color chess.Color
}

// MoveConfirmed is a server-validated move with an optional canonical FEN.
type MoveConfirmed struct {
	Move  chess.Move
	Board string
}

// GameOver 对局结束
type GameOver struct {
	Result string
	Winner chess.Color
	FEN    string
}

// OpponentDisconnected 对手掉线
type OpponentDisconnected struct{}

// ConnectionLost is raised by the transport when the socket closes.
type ConnectionLost struct {
	Err error
}

// ServerError carries an error message sent by the server.
type ServerError struct {
	Code    int
	Message string
}

func (StartRequested) eventName() string       { return "start-request" }
func (Connected) eventName() string            { return string(protocol.MsgConnected) }
func (WaitingForOpponent) eventName() string   { return string(protocol.MsgWaitingForOpponent) }
func (ColorAssigned) eventName() string        { return string(protocol.MsgColorAssigned) }
func (MoveConfirmed) eventName() string        { return string(protocol.MsgMoveConfirmed) }
func (GameOver) eventName() string             { return string(protocol.MsgGameOver) }
func (OpponentDisconnected) eventName() string { return string(protocol.MsgOpponentDisconnected) }
func (ConnectionLost) eventName() string       { return "connection-lost" }
func (ServerError) eventName() string          { return string(protocol.MsgError) }

// EventFromMessage decodes and validates an inbound envelope. Unknown types
// and malformed payloads come back as protocol-kind AppErrors.
func EventFromMessage(msg *protocol.Message) (Event, error) {
	if msg == nil {
		return nil, apperrors.Wrap(apperrors.ErrMalformedPayload, fmt.Errorf("nil message"))
	}
	if !msg.Type.IsInbound() {
		switch msg.Type {
		case protocol.MsgStartRequest, protocol.MsgMove:
			return nil, apperrors.Wrap(apperrors.ErrOutboundMessage, fmt.Errorf("type %q", msg.Type))
		}
		return nil, apperrors.Wrap(apperrors.ErrUnknownMessage, fmt.Errorf("type %q", msg.Type))
	}

	switch msg.Type {
	case protocol.MsgConnected:
		p, err := parse[protocol.ConnectedPayload](msg)
		if err != nil {
			return nil, err
		}
		return Connected{PlayerID: p.PlayerID}, nil

	case protocol.MsgWaitingForOpponent:
		return WaitingForOpponent{}, nil

	case protocol.MsgColorAssigned:
		p, err := parse[protocol.ColorAssignedPayload](msg)
		if err != nil {
			return nil, err
		}
		color, err := chess.ParseColor(p.Color)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrMalformedPayload, err)
		}
		return ColorAssigned{Color: color}, nil

	case protocol.MsgMoveConfirmed:
		p, err := parse[protocol.MoveConfirmedPayload](msg)
		if err != nil {
			return nil, err
		}
		mv, err := chess.NewMove(p.Move.From, p.Move.To, p.Move.Promotion)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrMalformedPayload, err)
		}
		return MoveConfirmed{Move: mv, Board: p.Board}, nil

	case protocol.MsgGameOver:
		p, err := parse[protocol.GameOverPayload](msg)
		if err != nil {
			return nil, err
		}
		var winner chess.Color
		if p.Winner != "" {
			if winner, err = chess.ParseColor(p.Winner); err != nil {
				return nil, apperrors.Wrap(apperrors.ErrMalformedPayload, err)
			}
		}
		return GameOver{Result: p.Result, Winner: winner, FEN: p.FEN}, nil

	case protocol.MsgOpponentDisconnected:
		return OpponentDisconnected{}, nil

	case protocol.MsgError:
		p, err := parse[protocol.ErrorPayload](msg)
		if err != nil {
			return nil, err
		}
		return ServerError{Code: p.Code, Message: p.Message}, nil
	}

	return nil, apperrors.Wrap(apperrors.ErrUnknownMessage, fmt.Errorf("type %q", msg.Type))
}

func parse[T any](msg *protocol.Message) (*T, error) {
	p, err := protocol.ParsePayload[T](msg)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrMalformedPayload, err)
	}
	return p, nil
}
