package fastview

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"
)

const (
	// writeWait bounds a single write to the peer.
	writeWait = time.Second
	// pingInterval is the liveness check rate; pongWait is how long the
	// peer may stay silent before it is presumed gone.
	pingInterval = 250 * time.Millisecond
	pongWait     = 4 * pingInterval
	// opWait bounds how long a read or write may queue behind another.
	opWait = time.Second
	// closeGrace gives the close frame time to flush before teardown.
	closeGrace = 250 * time.Millisecond
)

var (
	// ErrPongTimeout reports a peer that stopped answering pings.
	ErrPongTimeout = errors.New("pong deadline exceeded, peer presumed gone")
	// ErrSockContended reports a socket operation that timed out waiting
	// for its turn.
	ErrSockContended = errors.New("socket operation timed out awaiting its turn")
)

var upgrader = websocket.Upgrader{}

// Client pushes a stream of updates to one browser over a websocket. Every
// item received is written; pacing is the producer's concern, which suits
// replay streams whose cadence is part of their meaning.
type Client[T any] struct {
	updates <-chan T
	sock    *sock
	reqCtx  context.Context
}

// NewClient upgrades the request to a websocket and returns a publisher for
// it. On upgrade failure the error has already been written to w.
func NewClient[T any](
	updates <-chan T,
	w http.ResponseWriter,
	r *http.Request,
) (*Client[T], error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket upgrade: %w", err)
	}

	return &Client[T]{
		updates: updates,
		sock:    newSock(conn),
		reqCtx:  r.Context(),
	}, nil
}

// Sync pumps updates to the peer until the update channel closes, the
// request context ends, or the connection dies. A clean peer disconnect
// returns nil.
func (cli *Client[T]) Sync() error {
	group, ctx := errgroup.WithContext(cli.reqCtx)
	group.Go(func() error { return cli.drainReads(ctx) })
	group.Go(func() error { return cli.pingPong(ctx) })
	group.Go(func() error { return cli.publish(ctx) })
	return group.Wait()
}

// Close sends a close frame and tears the connection down. Call it after
// Sync has returned.
func (cli *Client[T]) Close() {
	cli.sock.close()
}

func (cli *Client[T]) publish(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case updates, ok := <-cli.updates:
			if !ok {
				return nil
			}

			err := cli.sock.write(ctx, func(conn *websocket.Conn) error {
				if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
					return fmt.Errorf("set write deadline: %w", err)
				}
				return conn.WriteJSON(updates)
			})
			switch {
			case isClosure(err):
				return nil
			case err != nil:
				return fmt.Errorf("publish: %w", err)
			}
		}
	}
}

// drainReads keeps the read side serviced; gorilla only invokes control
// handlers, the pong handler included, from within a read call.
func (cli *Client[T]) drainReads(ctx context.Context) error {
	for {
		err := cli.sock.read(ctx, func(conn *websocket.Conn) error {
			_, _, readErr := conn.ReadMessage()
			return readErr
		})
		switch {
		case isClosure(err):
			return nil
		case err != nil:
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (cli *Client[T]) pingPong(ctx context.Context) error {
	pong := make(chan struct{}, 1)
	cli.sock.raw().SetPongHandler(func(string) error {
		select {
		case pong <- struct{}{}:
		default:
		}
		return nil
	})

	lastPong := time.Now()
	pinger := channerics.NewTicker(ctx.Done(), pingInterval)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pong:
			lastPong = time.Now()
		case <-pinger:
			if time.Since(lastPong) > pongWait {
				return ErrPongTimeout
			}
			err := cli.sock.write(ctx, func(conn *websocket.Conn) error {
				return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			})
			switch {
			case isClosure(err):
				return nil
			case err != nil:
				return fmt.Errorf("ping: %w", err)
			}
		}
	}
}

// isClosure reports errors that merely mean the connection is winding down
// on purpose: the peer announced a clean closure, or our own close frame is
// already on the wire.
func isClosure(err error) bool {
	if errors.Is(err, websocket.ErrCloseSent) {
		return true
	}
	return err != nil && websocket.IsCloseError(
		err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway)
}

// sock serializes access to a websocket connection, which tolerates only one
// concurrent reader and one concurrent writer.
type sock struct {
	readSem  chan struct{}
	writeSem chan struct{}
	conn     *websocket.Conn
}

func newSock(conn *websocket.Conn) *sock {
	return &sock{
		readSem:  make(chan struct{}, 1),
		writeSem: make(chan struct{}, 1),
		conn:     conn,
	}
}

// raw exposes the underlying connection for non-concurrent setup such as
// registering handlers.
func (s *sock) raw() *websocket.Conn {
	return s.conn
}

func (s *sock) read(ctx context.Context, fn func(*websocket.Conn) error) error {
	select {
	case <-ctx.Done():
		return nil
	case s.readSem <- struct{}{}:
		defer func() { <-s.readSem }()
		return fn(s.conn)
	case <-time.After(opWait):
		return ErrSockContended
	}
}

func (s *sock) write(ctx context.Context, fn func(*websocket.Conn) error) error {
	select {
	case <-ctx.Done():
		return nil
	case s.writeSem <- struct{}{}:
		defer func() { <-s.writeSem }()
		return fn(s.conn)
	case <-time.After(opWait):
		return ErrSockContended
	}
}

// close acquires both semaphores so in-flight operations finish, announces
// closure to the peer, and drops the connection.
func (s *sock) close() {
	s.readSem <- struct{}{}
	s.writeSem <- struct{}{}

	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = s.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	time.Sleep(closeGrace)
	s.conn.Close()
}
