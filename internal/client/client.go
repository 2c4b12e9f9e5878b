// Package client is the enclosing session context: it owns the transport
// reference and the listener registration, and drives the session machine
// and the selection controller from a single goroutine.
package client

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/palemoky/chess-arena/internal/archive"
	"github.com/palemoky/chess-arena/internal/chess"
	"github.com/palemoky/chess-arena/internal/logger"
	"github.com/palemoky/chess-arena/internal/protocol"
	"github.com/palemoky/chess-arena/internal/rules"
	"github.com/palemoky/chess-arena/internal/selection"
	"github.com/palemoky/chess-arena/internal/session"
	"github.com/palemoky/chess-arena/internal/sound"
	"github.com/palemoky/chess-arena/internal/transport"
)

const (
	inboundBuffer  = 64
	archiveTimeout = 5 * time.Second
)

// Transport is the part of transport.Client the session context uses.
type Transport interface {
	Connect(ctx context.Context) error
	Send(msg *protocol.Message) error
	Subscribe(h transport.Handler) (unsubscribe func())
	Close()
}

// SoundPlayer plays a named cue.
type SoundPlayer interface {
	Play(name string)
}

// Option configures a Client.
type Option func(*Client)

// WithEngine replaces the default rules engine.
func WithEngine(e rules.Engine) Option {
	return func(c *Client) { c.engine = e }
}

// WithArchive stores every finished game in s.
func WithArchive(s archive.Store) Option {
	return func(c *Client) { c.archive = s }
}

// WithSound plays cues on p.
func WithSound(p SoundPlayer) Option {
	return func(c *Client) { c.sound = p }
}

// WithLogger replaces the package logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// Inbound is one item waiting to be applied by Deliver: either a raw server
// message or an event raised by the transport.
type Inbound struct {
	msg *protocol.Message
	ev  session.Event
}

// Client 会话上下文
type Client struct {
	transport Transport
	engine    rules.Engine
	archive   archive.Store
	sound     SoundPlayer
	log       *zap.Logger

	machine  *session.Machine
	selector *selection.Controller

	inbound     chan Inbound
	done        chan struct{}
	unsubscribe func()
	closeOnce   sync.Once
	pending     sync.WaitGroup
}

// New builds the session context around t. Nothing is dialled until Start.
func New(t Transport, opts ...Option) *Client {
	c := &Client{
		transport: t,
		engine:    rules.NewEngine(),
		sound:     sound.NewSoundManager(""),
		log:       logger.L().Named("client"),
		selector:  selection.New(),
		inbound:   make(chan Inbound, inboundBuffer),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.machine = session.New(c.engine, t, session.WithLogger(c.log.Named("session")))
	return c
}

// Start registers the listener and connects. It may run off the event loop;
// it only touches the inbound queue.
func (c *Client) Start(ctx context.Context) error {
	c.unsubscribe = c.transport.Subscribe(c)
	if err := c.transport.Connect(ctx); err != nil {
		c.enqueue(Inbound{ev: session.ConnectionLost{Err: err}})
		return err
	}
	c.enqueue(Inbound{ev: session.Connected{}})
	return nil
}

// HandleMessage implements transport.Handler.
func (c *Client) HandleMessage(msg *protocol.Message) {
	c.enqueue(Inbound{msg: msg})
}

// HandleClose implements transport.Handler. A local close is not an event.
func (c *Client) HandleClose(err error) {
	if err == nil {
		return
	}
	c.enqueue(Inbound{ev: session.ConnectionLost{Err: err}})
}

func (c *Client) enqueue(in Inbound) {
	select {
	case c.inbound <- in:
	case <-c.done:
	}
}

// Next blocks until an inbound item is available. ok is false once the
// client is closed or ctx is done.
func (c *Client) Next(ctx context.Context) (in Inbound, ok bool) {
	select {
	case in = <-c.inbound:
		return in, true
	case <-c.done:
		return Inbound{}, false
	case <-ctx.Done():
		return Inbound{}, false
	}
}

// Deliver applies in to the machine and runs the side effects of the
// resulting transition. Must be called on the event loop.
func (c *Client) Deliver(in Inbound) error {
	before := c.machine.Snapshot()

	var err error
	switch {
	case in.msg != nil:
		err = c.machine.HandleMessage(in.msg)
	case in.ev != nil:
		err = c.machine.HandleEvent(in.ev)
	default:
		return nil
	}

	c.afterTransition(before, c.machine.Snapshot())
	return err
}

// NewGame asks the server for a new game.
func (c *Client) NewGame() error {
	before := c.machine.Snapshot()
	if err := c.machine.HandleEvent(session.StartRequested{}); err != nil {
		return err
	}
	c.selector.Clear()
	c.afterTransition(before, c.machine.Snapshot())
	return nil
}

// ClickSquare feeds a board click to the selection controller and submits
// the resulting move intent, if any.
func (c *Client) ClickSquare(square string) error {
	sq, err := chess.ParseSquare(square)
	if err != nil {
		return err
	}
	mv, ok := c.selector.OnSquareClicked(sq, c.machine.Position(), c.machine.Color(), c.machine.Phase())
	if !ok {
		return nil
	}
	return c.machine.Submit(mv)
}

// Snapshot returns the render-ready session state.
func (c *Client) Snapshot() session.Snapshot {
	return c.machine.Snapshot()
}

// Selection returns the armed source square, if any.
func (c *Client) Selection() (chess.Square, bool) {
	return c.selector.Selected()
}

// RecentGames lists archived games, newest first. It returns nil when no
// archive is configured.
func (c *Client) RecentGames(ctx context.Context, n int) ([]archive.Record, error) {
	if c.archive == nil {
		return nil, nil
	}
	return c.archive.Recent(ctx, n)
}

// Close deregisters the listener before closing the transport so that no
// late message reaches a torn-down machine, then waits for pending archive
// writes.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		if c.unsubscribe != nil {
			c.unsubscribe()
		}
		close(c.done)
		c.transport.Close()
		c.pending.Wait()
	})
}

func (c *Client) afterTransition(before, after session.Snapshot) {
	if after.Phase.IsTerminal() || before.Phase.Kind != after.Phase.Kind {
		c.selector.Clear()
	}

	switch {
	case after.Phase.Kind == session.PhaseGameOver && before.Phase.Kind != session.PhaseGameOver:
		c.play(sound.CueGameOver)
		c.archiveGame(after)
	case after.Phase.Kind == session.PhasePlaying && before.Phase.Kind == session.PhaseWaitingForOpponent:
		c.play(sound.CueStart)
	case after.Position.FEN != before.Position.FEN && after.Phase.InGame():
		if after.Phase.Kind == session.PhaseCheck {
			c.play(sound.CueCheck)
		} else {
			c.play(sound.CueMove)
		}
	case after.Phase.Kind != before.Phase.Kind &&
		(after.Phase.Kind == session.PhaseOpponentDisconnected || after.Phase.Kind == session.PhaseConnectionLost):
		c.play(sound.CueNotify)
	}
}

func (c *Client) play(cue string) {
	if c.sound != nil {
		c.sound.Play(cue)
	}
}

func (c *Client) archiveGame(snap session.Snapshot) {
	if c.archive == nil {
		return
	}
	rec, err := archive.NewRecord(snap, c.machine.PlayerID(), time.Now())
	if err != nil {
		c.log.Warn("archive skipped", zap.Error(err))
		return
	}

	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		defer func() {
			if r := recover(); r != nil {
				logger.LogPanic(r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
		defer cancel()
		if err := c.archive.Save(ctx, rec); err != nil {
			c.log.Error("archive save failed", zap.String("id", rec.ID), zap.Error(err))
			return
		}
		c.log.Info("game archived", zap.String("id", rec.ID), zap.String("result", rec.Result))
	}()
}
