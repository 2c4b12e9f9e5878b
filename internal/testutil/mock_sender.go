//go:build !production

package testutil

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/chess-arena/internal/protocol"
)

// MockSender 基于 testify/mock 的发送端
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(msg *protocol.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

// RecordingSender 记录所有发出的消息，不做断言
type RecordingSender struct {
	mu       sync.Mutex
	Messages []*protocol.Message
	Err      error
}

func (s *RecordingSender) Send(msg *protocol.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Messages = append(s.Messages, msg)
	return nil
}

// Types returns the types of the recorded messages in send order.
func (s *RecordingSender) Types() []protocol.MessageType {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]protocol.MessageType, len(s.Messages))
	for i, m := range s.Messages {
		out[i] = m.Type
	}
	return out
}
