package transport

import (
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/palemoky/chess-arena/internal/logger"
	"github.com/palemoky/chess-arena/internal/protocol"
)

// readPump 从服务器读取消息
func (c *Client) readPump() {
	var cause error
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			cause = errors.New("read pump panic")
		}
		c.shutdown(cause)
	}()

	c.setupPongHandler()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			cause = c.readError(err)
			return
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			c.log.Warn("undecodable frame", zap.Error(err), zap.Int("bytes", len(data)))
			continue
		}

		for _, h := range c.handlers() {
			h.HandleMessage(msg)
		}
	}
}

func (c *Client) setupPongHandler() {
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
}

// readError returns nil for a read that failed because Close was called.
func (c *Client) readError(err error) error {
	select {
	case <-c.done:
		return nil
	default:
	}
	if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		c.log.Error("unexpected close", zap.Error(err))
	}
	return err
}

// writePump 向服务器写入消息
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.log.Warn("write failed", zap.Error(err))
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}
