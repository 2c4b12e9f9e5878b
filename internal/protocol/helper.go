package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyType is returned by Decode for envelopes without a type.
var ErrEmptyType = errors.New("message type is empty")

// NewMessage 创建一个新消息
func NewMessage(msgType MessageType, payload any) (*Message, error) {
	var data json.RawMessage
	if payload != nil {
		var err error
		data, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return &Message{
		Type:    msgType,
		Payload: data,
	}, nil
}

// MustNewMessage 创建消息，失败时 panic
func MustNewMessage(msgType MessageType, payload any) *Message {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

// NewStartRequest builds the outbound start-request envelope with an empty
// payload object.
func NewStartRequest() *Message {
	return MustNewMessage(MsgStartRequest, StartRequestPayload{})
}

// NewMoveMessage builds the outbound move envelope. Squares are lowercased
// before transmission.
func NewMoveMessage(from, to, promotion string) *Message {
	return MustNewMessage(MsgMove, MovePayload{
		Move: MoveInfo{
			From:      strings.ToLower(from),
			To:        strings.ToLower(to),
			Promotion: strings.ToLower(promotion),
		},
	})
}

// Encode 将消息编码为 JSON 字节
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode 从 JSON 字节解码消息
func Decode(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Type == "" {
		return nil, ErrEmptyType
	}
	return &msg, nil
}

// ParsePayload 解析消息的 Payload 到指定类型并校验
func ParsePayload[T any](msg *Message) (*T, error) {
	var payload T
	if len(msg.Payload) > 0 && string(msg.Payload) != "null" {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", msg.Type, err)
		}
	}
	if err := Validate(&payload); err != nil {
		return nil, fmt.Errorf("validate %s payload: %w", msg.Type, err)
	}
	return &payload, nil
}
