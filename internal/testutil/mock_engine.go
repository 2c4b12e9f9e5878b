//go:build !production

package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/palemoky/chess-arena/internal/chess"
	"github.com/palemoky/chess-arena/internal/rules"
)

// MockEngine 实现 rules.Engine 的 mock
type MockEngine struct {
	mock.Mock
}

var _ rules.Engine = (*MockEngine)(nil)

func (m *MockEngine) Initial() chess.Position {
	args := m.Called()
	return args.Get(0).(chess.Position)
}

func (m *MockEngine) ApplyMove(pos chess.Position, mv chess.Move) (rules.Applied, error) {
	args := m.Called(pos, mv)
	return args.Get(0).(rules.Applied), args.Error(1)
}

func (m *MockEngine) LoadPosition(fen string) (chess.Position, error) {
	args := m.Called(fen)
	return args.Get(0).(chess.Position), args.Error(1)
}

func (m *MockEngine) SideToMove(pos chess.Position) chess.Color {
	args := m.Called(pos)
	return args.Get(0).(chess.Color)
}
