//go:build !production

package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/chess-arena/internal/protocol"
)

// WSServer is a scripted websocket peer for transport and client tests. It
// accepts one connection at a time and records every message it receives.
type WSServer struct {
	*httptest.Server

	mu       sync.Mutex
	conn     *websocket.Conn
	received []*protocol.Message
	ready    chan struct{}
	once     sync.Once
	got      chan *protocol.Message
}

// NewWSServer starts a server that is closed with t's cleanup. onConnect,
// when set, runs right after the upgrade and may push greeting messages.
func NewWSServer(t *testing.T, onConnect func(s *WSServer)) *WSServer {
	t.Helper()

	s := &WSServer{
		ready: make(chan struct{}),
		got:   make(chan *protocol.Message, 64),
	}
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		s.mu.Lock()
		s.conn = conn
		s.mu.Unlock()
		s.once.Do(func() { close(s.ready) })

		if onConnect != nil {
			onConnect(s)
		}

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			msg, err := protocol.Decode(data)
			if err != nil {
				continue
			}
			s.mu.Lock()
			s.received = append(s.received, msg)
			s.mu.Unlock()
			s.got <- msg
		}
	}))
	t.Cleanup(s.Close)
	t.Cleanup(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.conn != nil {
			_ = s.conn.Close()
		}
	})
	return s
}

// WSURL returns the ws:// address of the server.
func (s *WSServer) WSURL() string {
	return "ws" + strings.TrimPrefix(s.Server.URL, "http")
}

// Push sends msg to the connected client.
func (s *WSServer) Push(t *testing.T, msg *protocol.Message) {
	t.Helper()
	s.WaitConnected(t)
	if err := s.Send(msg); err != nil {
		t.Fatalf("push: %v", err)
	}
}

// Send writes msg to the current connection. It is meant for onConnect
// callbacks, which run before any test helper can wait.
func (s *WSServer) Send(msg *protocol.Message) error {
	data, err := msg.Encode()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// PushRaw sends a raw text frame.
func (s *WSServer) PushRaw(t *testing.T, data []byte) {
	t.Helper()
	s.WaitConnected(t)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.Fatalf("push: %v", err)
	}
}

// WaitConnected blocks until a client has connected.
func (s *WSServer) WaitConnected(t *testing.T) {
	t.Helper()
	select {
	case <-s.ready:
	case <-time.After(2 * time.Second):
		t.Fatal("no client connected")
	}
}

// Next waits for the next message sent by the client.
func (s *WSServer) Next(t *testing.T) *protocol.Message {
	t.Helper()
	select {
	case msg := <-s.got:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message from client")
		return nil
	}
}

// Drop closes the server side of the connection.
func (s *WSServer) Drop(t *testing.T) {
	t.Helper()
	s.WaitConnected(t)

	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.Close()
}

// Received returns everything the client has sent so far.
func (s *WSServer) Received() []*protocol.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*protocol.Message, len(s.received))
	copy(out, s.received)
	return out
}
