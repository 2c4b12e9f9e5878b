package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/chess-arena/internal/apperrors"
	"github.com/palemoky/chess-arena/internal/chess"
	"github.com/palemoky/chess-arena/internal/protocol"
)

func TestEventFromMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		msgType protocol.MessageType
		payload string
		want    Event
		wantErr error
	}{
		{"connected", protocol.MsgConnected, `{"player_id":"p1"}`, Connected{PlayerID: "p1"}, nil},
		{"connected without payload", protocol.MsgConnected, ``, Connected{}, nil},
		{"waiting", protocol.MsgWaitingForOpponent, `{}`, WaitingForOpponent{}, nil},
		{"color", protocol.MsgColorAssigned, `{"color":"White"}`, ColorAssigned{Color: chess.White}, nil},
		{"color missing", protocol.MsgColorAssigned, `{}`, nil, apperrors.ErrMalformedPayload},
		{"color invalid", protocol.MsgColorAssigned, `{"color":"red"}`, nil, apperrors.ErrMalformedPayload},
		{
			"move with board", protocol.MsgMoveConfirmed,
			`{"move":{"from":"E7","to":"e8","promotion":"N"},"board":"fen"}`,
			MoveConfirmed{Move: chess.Move{From: "e7", To: "e8", Promotion: chess.Knight}, Board: "fen"}, nil,
		},
		{
			"flat move", protocol.MsgMoveConfirmed, `{"from":"e2","to":"E4"}`,
			MoveConfirmed{Move: chess.Move{From: "e2", To: "e4"}}, nil,
		},
		{
			"flat move with board", protocol.MsgMoveConfirmed, `{"from":"e7","to":"e8","promotion":"q","board":"fen"}`,
			MoveConfirmed{Move: chess.Move{From: "e7", To: "e8", Promotion: chess.Queen}, Board: "fen"}, nil,
		},
		{"flat move missing target", protocol.MsgMoveConfirmed, `{"from":"e2"}`, nil, apperrors.ErrMalformedPayload},
		{"move missing squares", protocol.MsgMoveConfirmed, `{"move":{}}`, nil, apperrors.ErrMalformedPayload},
		{"move bad promotion", protocol.MsgMoveConfirmed, `{"move":{"from":"e7","to":"e8","promotion":"k"}}`, nil, apperrors.ErrMalformedPayload},
		{"move not json", protocol.MsgMoveConfirmed, `[1,2]`, nil, apperrors.ErrMalformedPayload},
		{
			"game over", protocol.MsgGameOver, `{"result":"checkmate","winner":"black","fen":"x"}`,
			GameOver{Result: "checkmate", Winner: chess.Black, FEN: "x"}, nil,
		},
		{"game over no winner", protocol.MsgGameOver, `{"result":"stalemate"}`, GameOver{Result: "stalemate"}, nil},
		{"game over no result", protocol.MsgGameOver, `{}`, nil, apperrors.ErrMalformedPayload},
		{"opponent gone", protocol.MsgOpponentDisconnected, ``, OpponentDisconnected{}, nil},
		{"server error", protocol.MsgError, `{"code":3001,"message":"not your turn"}`, ServerError{Code: 3001, Message: "not your turn"}, nil},
		{"unknown", "resign", `{}`, nil, apperrors.ErrUnknownMessage},
		{"outbound move", protocol.MsgMove, `{}`, nil, apperrors.ErrOutboundMessage},
		{"outbound start request", protocol.MsgStartRequest, `{}`, nil, apperrors.ErrOutboundMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msg := &protocol.Message{Type: tt.msgType}
			if tt.payload != "" {
				msg.Payload = json.RawMessage(tt.payload)
			}

			ev, err := EventFromMessage(msg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, ev)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev)
		})
	}
}

func TestEventFromMessage_Nil(t *testing.T) {
	t.Parallel()

	_, err := EventFromMessage(nil)
	assert.ErrorIs(t, err, apperrors.ErrMalformedPayload)
}

func TestPhase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		phase    Phase
		inGame   bool
		terminal bool
		str      string
	}{
		{idle(), false, false, "idle"},
		{Phase{Kind: PhaseWaitingForOpponent}, false, false, "waiting-for-opponent"},
		{playing(), true, false, "playing"},
		{check(chess.White), true, false, "check(white)"},
		{gameOver(NewResult("draw", chess.NoColor)), false, true, "game-over"},
		{Phase{Kind: PhaseOpponentDisconnected}, false, true, "opponent-disconnected"},
		{Phase{Kind: PhaseConnectionLost}, false, true, "connection-lost"},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.inGame, tt.phase.InGame())
			assert.Equal(t, tt.terminal, tt.phase.IsTerminal())
			assert.Equal(t, tt.str, tt.phase.String())
		})
	}
}

func TestNewResult(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ResultCheckmate, NewResult("Checkmate", chess.White).Kind)
	assert.Equal(t, ResultDraw, NewResult(" draw ", chess.NoColor).Kind)
	assert.Equal(t, ResultDisconnect, NewResult("disconnect", chess.Black).Kind)

	r := NewResult("timeout", chess.Black)
	assert.Equal(t, ResultOther, r.Kind)
	assert.Equal(t, "timeout", r.Raw)
	assert.Equal(t, chess.Black, r.Winner)
}
