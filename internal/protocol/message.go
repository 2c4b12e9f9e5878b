// Package protocol defines the JSON envelope exchanged with the chess server.
package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	MsgStartRequest MessageType = "start-request" // 请求开始新对局
	MsgMove         MessageType = "move"          // 提交走子意图
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected MessageType = "connected" // 连接成功

	// 对局流程
	MsgWaitingForOpponent   MessageType = "waiting-for-opponent"  // 等待对手
	MsgColorAssigned        MessageType = "color-assigned"        // 分配执子颜色
	MsgMoveConfirmed        MessageType = "move-confirmed"        // 服务端确认走子
	MsgGameOver             MessageType = "game-over"             // 对局结束
	MsgOpponentDisconnected MessageType = "opponent-disconnected" // 对手掉线

	// 错误
	MsgError MessageType = "error"
)

// IsInbound reports whether t is a type the server sends to the client.
func (t MessageType) IsInbound() bool {
	switch t {
	case MsgConnected, MsgWaitingForOpponent, MsgColorAssigned, MsgMoveConfirmed,
		MsgGameOver, MsgOpponentDisconnected, MsgError:
		return true
	}
	return false
}

// --- 客户端请求 Payloads ---

// StartRequestPayload 开始对局请求（空）
type StartRequestPayload struct{}

// MovePayload 走子请求
type MovePayload struct {
	Move MoveInfo `json:"move"`
}

// --- 服务端响应 Payloads ---

// MoveInfo 走子信息，坐标为代数记谱（如 e2）
type MoveInfo struct {
	From      string `json:"from" validate:"required,square"`
	To        string `json:"to" validate:"required,square"`
	Promotion string `json:"promotion,omitempty" validate:"omitempty,oneof=q r b n Q R B N"`
}

// ConnectedPayload 连接成功
type ConnectedPayload struct {
	PlayerID string `json:"player_id,omitempty"`
}

// ColorAssignedPayload 分配颜色
type ColorAssignedPayload struct {
	Color string `json:"color" validate:"required,color"`
}

// MoveConfirmedPayload 服务端确认的走子，可附带完整 FEN
type MoveConfirmedPayload struct {
	Move  MoveInfo `json:"move"`
	Board string   `json:"board,omitempty"`
}

// UnmarshalJSON accepts both {"move":{"from","to"}} and the flat
// {"from","to"} form some servers send.
func (p *MoveConfirmedPayload) UnmarshalJSON(data []byte) error {
	type nested MoveConfirmedPayload
	var n nested
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if n.Move == (MoveInfo{}) {
		if err := json.Unmarshal(data, &n.Move); err != nil {
			return err
		}
	}
	*p = MoveConfirmedPayload(n)
	return nil
}

// GameOverPayload 对局结束
type GameOverPayload struct {
	Result string `json:"result" validate:"required"`
	Winner string `json:"winner,omitempty" validate:"omitempty,color"`
	FEN    string `json:"fen,omitempty"`
}

// ErrorPayload 错误消息
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
