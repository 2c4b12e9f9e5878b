package transport

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/chess-arena/internal/apperrors"
	"github.com/palemoky/chess-arena/internal/protocol"
	"github.com/palemoky/chess-arena/internal/testutil"
)

type recorder struct {
	msgs   chan *protocol.Message
	closed chan error
}

func newRecorder() *recorder {
	return &recorder{
		msgs:   make(chan *protocol.Message, 16),
		closed: make(chan error, 1),
	}
}

func (r *recorder) HandleMessage(msg *protocol.Message) { r.msgs <- msg }
func (r *recorder) HandleClose(err error)               { r.closed <- err }

func (r *recorder) next(t *testing.T) *protocol.Message {
	t.Helper()
	select {
	case msg := <-r.msgs:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message delivered")
		return nil
	}
}

func (r *recorder) waitClose(t *testing.T) error {
	t.Helper()
	select {
	case err := <-r.closed:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("HandleClose not called")
		return nil
	}
}

func connect(t *testing.T, srv *testutil.WSServer) *Client {
	t.Helper()
	c := NewClient(srv.WSURL(), WithHandshakeTimeout(time.Second))
	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(c.Close)
	return c
}

func TestClient_SendAndReceive(t *testing.T) {
	t.Parallel()

	srv := testutil.NewWSServer(t, nil)
	c := connect(t, srv)
	rec := newRecorder()
	c.Subscribe(rec)

	require.True(t, c.IsConnected())
	require.NoError(t, c.Send(protocol.NewStartRequest()))
	assert.Equal(t, protocol.MsgStartRequest, srv.Next(t).Type)

	srv.Push(t, protocol.MustNewMessage(protocol.MsgColorAssigned, protocol.ColorAssignedPayload{Color: "white"}))
	got := rec.next(t)
	assert.Equal(t, protocol.MsgColorAssigned, got.Type)
	assert.JSONEq(t, `{"color":"white"}`, string(got.Payload))
}

func TestClient_UnsubscribeStopsDelivery(t *testing.T) {
	t.Parallel()

	srv := testutil.NewWSServer(t, nil)
	c := connect(t, srv)

	gone := newRecorder()
	stay := newRecorder()
	unsubscribe := c.Subscribe(gone)
	c.Subscribe(stay)

	srv.Push(t, protocol.MustNewMessage(protocol.MsgWaitingForOpponent, nil))
	gone.next(t)
	stay.next(t)

	unsubscribe()
	unsubscribe()

	srv.Push(t, protocol.MustNewMessage(protocol.MsgOpponentDisconnected, nil))
	assert.Equal(t, protocol.MsgOpponentDisconnected, stay.next(t).Type)
	assert.Empty(t, gone.msgs)

	c.Close()
	assert.NoError(t, stay.waitClose(t))
	assert.Empty(t, gone.closed)
}

func TestClient_SkipsUndecodableFrames(t *testing.T) {
	t.Parallel()

	srv := testutil.NewWSServer(t, nil)
	c := connect(t, srv)
	rec := newRecorder()
	c.Subscribe(rec)

	srv.PushRaw(t, []byte("not json"))
	srv.PushRaw(t, []byte(`{"payload":{}}`))
	srv.Push(t, protocol.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{PlayerID: "p"}))

	assert.Equal(t, protocol.MsgConnected, rec.next(t).Type)
	assert.True(t, c.IsConnected())
}

func TestClient_ServerDrop(t *testing.T) {
	t.Parallel()

	srv := testutil.NewWSServer(t, nil)
	c := connect(t, srv)
	rec := newRecorder()
	c.Subscribe(rec)

	srv.Drop(t)

	err := rec.waitClose(t)
	assert.ErrorIs(t, err, apperrors.ErrConnectionClosed)
	assert.False(t, c.IsConnected())
	assert.ErrorIs(t, c.Send(protocol.NewStartRequest()), apperrors.ErrConnectionClosed)
}

func TestClient_LocalClose(t *testing.T) {
	t.Parallel()

	srv := testutil.NewWSServer(t, nil)
	c := connect(t, srv)
	rec := newRecorder()
	c.Subscribe(rec)

	c.Close()
	c.Close()

	assert.NoError(t, rec.waitClose(t))
	assert.False(t, c.IsConnected())
	assert.ErrorIs(t, c.Connect(context.Background()), apperrors.ErrConnectionClosed)
}

func TestClient_ConnectErrors(t *testing.T) {
	t.Parallel()

	c := NewClient("ws://127.0.0.1:1/none", WithHandshakeTimeout(200*time.Millisecond))
	err := c.Connect(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrConnectionClosed)
	assert.False(t, c.IsConnected())
	assert.ErrorIs(t, c.Send(protocol.NewStartRequest()), apperrors.ErrConnectionClosed)

	srv := testutil.NewWSServer(t, nil)
	ok := connect(t, srv)
	assert.ErrorIs(t, ok.Connect(context.Background()), ErrAlreadyConnected)
}
