// Package transport is the websocket channel to the game server. It delivers
// decoded envelopes to subscribed handlers and never reconnects on its own.
package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/palemoky/chess-arena/internal/apperrors"
	"github.com/palemoky/chess-arena/internal/logger"
	"github.com/palemoky/chess-arena/internal/protocol"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	sendBufferSize = 256
)

var (
	ErrAlreadyConnected = errors.New("transport: already connected")
	ErrSendBufferFull   = errors.New("transport: send buffer full")
)

// Handler receives inbound traffic. Both methods run on the read goroutine
// and must not block.
type Handler interface {
	HandleMessage(msg *protocol.Message)
	// HandleClose is called once when the connection ends. err is nil when
	// Close was called locally.
	HandleClose(err error)
}

type subscription struct {
	id string
	h  Handler
}

// Option configures a Client.
type Option func(*Client)

// WithHandshakeTimeout 设置握手超时
func WithHandshakeTimeout(d time.Duration) Option {
	return func(c *Client) { c.handshakeTimeout = d }
}

// WithLogger replaces the package logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// Client WebSocket 客户端
type Client struct {
	url              string
	handshakeTimeout time.Duration
	log              *zap.Logger

	conn *websocket.Conn
	send chan []byte
	done chan struct{}

	mu        sync.RWMutex
	subs      []subscription
	connected bool
	closed    bool
	closeOnce sync.Once
}

// NewClient 创建客户端，不会立即连接
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:              url,
		handshakeTimeout: 10 * time.Second,
		log:              logger.L().Named("transport"),
		send:             make(chan []byte, sendBufferSize),
		done:             make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect dials the server and starts the read and write pumps. A client
// connects at most once; after Close a new Client is needed.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return apperrors.ErrConnectionClosed
	}
	if c.connected {
		return ErrAlreadyConnected
	}

	dialer := websocket.Dialer{HandshakeTimeout: c.handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrConnectionClosed, fmt.Errorf("dial %s: %w", c.url, err))
	}

	c.conn = conn
	c.connected = true
	c.log.Info("connected", zap.String("url", c.url))

	go c.readPump()
	go c.writePump()
	return nil
}

// Send queues msg for the write pump.
func (c *Client) Send(msg *protocol.Message) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed || !c.connected {
		return apperrors.ErrConnectionClosed
	}

	data, err := msg.Encode()
	if err != nil {
		return err
	}

	select {
	case c.send <- data:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Subscribe registers h and returns the function that removes it. After
// unsubscribe returns, h receives nothing more. Calling it twice is safe.
func (c *Client) Subscribe(h Handler) (unsubscribe func()) {
	id := uuid.NewString()

	c.mu.Lock()
	c.subs = append(c.subs, subscription{id: id, h: h})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// Close ends the connection and notifies remaining handlers with a nil error.
func (c *Client) Close() {
	c.shutdown(nil)
}

// IsConnected 是否已连接
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected && !c.closed
}

func (c *Client) shutdown(cause error) {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.done)
		if c.conn != nil {
			if cause == nil {
				_ = c.conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(writeWait))
			}
			_ = c.conn.Close()
		}
		subs := c.handlersLocked()
		c.mu.Unlock()

		var err error
		if cause != nil {
			err = apperrors.Wrap(apperrors.ErrConnectionClosed, cause)
			c.log.Warn("connection closed", zap.Error(cause))
		}
		for _, h := range subs {
			h.HandleClose(err)
		}
	})
}

func (c *Client) handlers() []Handler {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.handlersLocked()
}

func (c *Client) handlersLocked() []Handler {
	out := make([]Handler, len(c.subs))
	for i, s := range c.subs {
		out[i] = s.h
	}
	return out
}
