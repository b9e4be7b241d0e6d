package solver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/richoux/microPhantom/ipc"
)

// connTimeout bounds a single served exchange.
const connTimeout = 5 * time.Second

// Handler answers one production request.
type Handler func(Request) (Response, error)

// Serve accepts connections on ln and answers one request per connection
// until ctx is cancelled. It is the solver side of the contract and backs
// the transport tests and local stand-in solvers.
func Serve(ctx context.Context, ln net.Listener, h Handler) error {
	g, ctx := errgroup.WithContext(ctx)
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	g.Go(func() error {
		for {
			conn, err := ln.Accept()
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
					return nil
				}
				return fmt.Errorf("accept: %w", err)
			}
			g.Go(func() error {
				defer conn.Close()
				_ = conn.SetDeadline(time.Now().Add(connTimeout))
				// A bad client must not stop the server.
				_ = ServeConn(conn, h)
				return nil
			})
		}
	})

	return g.Wait()
}

// ServeConn reads one request from conn, calls h and writes the response.
func ServeConn(conn net.Conn, h Handler) error {
	frame, err := ipc.ReadFrame(conn, MaxMessage)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	req, err := UnmarshalRequest(frame)
	if err != nil {
		return err
	}
	resp, err := h(req)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}
	payload, err := MarshalResponse(resp)
	if err != nil {
		return err
	}
	return ipc.WriteFrame(conn, payload, MaxMessage)
}
