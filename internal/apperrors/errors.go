// Package apperrors classifies the recoverable failures of a game session.
package apperrors

import (
	"github.com/palemoky/chess-arena/internal/protocol"
)

// Kind 错误类别，全部可在本地恢复
type Kind int

const (
	KindProtocol     Kind = iota + 1 // 未知消息类型或畸形 payload
	KindRules                        // 规则引擎拒绝走子
	KindOrdering                     // 棋谱缺少前序行
	KindConnectivity                 // 连接关闭或出错
	KindState                        // 当前阶段不接受该事件
)

func (k Kind) String() string {
	switch k {
	case KindProtocol:
		return "protocol"
	case KindRules:
		return "rules"
	case KindOrdering:
		return "ordering"
	case KindConnectivity:
		return "connectivity"
	case KindState:
		return "state"
	default:
		return "unknown"
	}
}

// AppError 会话错误
type AppError struct {
	Kind    Kind
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Is matches any *AppError of the same kind and code, so a wrapped instance
// still satisfies errors.Is against the sentinel it was built from.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// 预定义错误
var (
	ErrUnknownMessage   = &AppError{Kind: KindProtocol, Code: protocol.ErrCodeUnknownType, Message: "unknown message type"}
	ErrOutboundMessage  = &AppError{Kind: KindProtocol, Code: protocol.ErrCodeWrongDirection, Message: "outbound message type received"}
	ErrMalformedPayload = &AppError{Kind: KindProtocol, Code: protocol.ErrCodeInvalidMsg, Message: "malformed payload"}
	ErrMoveRejected     = &AppError{Kind: KindRules, Code: protocol.ErrCodeIllegalMove, Message: "move rejected by rules engine"}
	ErrOrderingAnomaly  = &AppError{Kind: KindOrdering, Code: protocol.ErrCodeOrdering, Message: "black move without a pending white row"}
	ErrConnectionClosed = &AppError{Kind: KindConnectivity, Code: protocol.ErrCodeConnectionClosed, Message: "connection closed"}
	ErrUnexpectedEvent  = &AppError{Kind: KindState, Code: protocol.ErrCodeGameStarted, Message: "event not accepted in current phase"}
	ErrNotPlaying       = &AppError{Kind: KindState, Code: protocol.ErrCodeNotInGame, Message: "no game in progress"}
)

// Wrap returns a copy of sentinel carrying cause.
func Wrap(sentinel *AppError, cause error) *AppError {
	return &AppError{
		Kind:    sentinel.Kind,
		Code:    sentinel.Code,
		Message: sentinel.Message,
		Err:     cause,
	}
}

// KindOf returns the Kind of err, or 0 when err is not an *AppError.
func KindOf(err error) Kind {
	for err != nil {
		if ae, ok := err.(*AppError); ok {
			return ae.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return 0
		}
		err = u.Unwrap()
	}
	return 0
}
