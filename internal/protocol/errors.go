package protocol

// 错误码
const (
	ErrCodeUnknown          = 1000
	ErrCodeInvalidMsg       = 1001 // 无效消息
	ErrCodeUnknownType      = 1002 // 未知消息类型
	ErrCodeWrongDirection   = 1003 // 收到客户端方向的消息类型
	ErrCodeNotInGame        = 2001
	ErrCodeGameStarted      = 2002
	ErrCodeNotYourTurn      = 3001
	ErrCodeIllegalMove      = 3002 // 非法走子
	ErrCodeOrdering         = 3003 // 棋谱顺序异常
	ErrCodeConnectionClosed = 4001
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:          "unknown error",
	ErrCodeInvalidMsg:       "invalid message format",
	ErrCodeUnknownType:      "unknown message type",
	ErrCodeWrongDirection:   "client message type received from server",
	ErrCodeNotInGame:        "you are not in a game",
	ErrCodeGameStarted:      "game already started",
	ErrCodeNotYourTurn:      "not your turn",
	ErrCodeIllegalMove:      "illegal move",
	ErrCodeOrdering:         "move history out of order",
	ErrCodeConnectionClosed: "connection closed",
}

// ErrorText returns the human-readable text for code, falling back to the
// generic unknown error text.
func ErrorText(code int) string {
	if text, ok := ErrorMessages[code]; ok {
		return text
	}
	return ErrorMessages[ErrCodeUnknown]
}
