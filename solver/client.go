package solver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/richoux/microPhantom/ipc"
)

//go:generate go tool mockgen -destination=./mocks/client_mock.go -package=mocks . Client

// Client performs one request/response round trip with the solver. The
// context deadline bounds the whole exchange.
type Client interface {
	Solve(ctx context.Context, req Request) (Response, error)
}

// AddrEnv tells a spawned solver where to connect back to.
const AddrEnv = "PHANTOM_SOLVER_ADDR"

// DialClient talks to a solver that is already listening.
type DialClient struct {
	Address string
	dialer  net.Dialer
}

func NewDialClient(address string) *DialClient {
	return &DialClient{Address: address}
}

func (c *DialClient) Solve(ctx context.Context, req Request) (Response, error) {
	conn, err := c.dialer.DialContext(ctx, "tcp", c.Address)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Response{}, fmt.Errorf("%w: dial %s: %w", ErrTimeout, c.Address, err)
		}
		return Response{}, fmt.Errorf("%w: dial %s: %w", ErrUnreachable, c.Address, err)
	}
	defer conn.Close()
	return exchange(ctx, conn, req)
}

// ProcessClient starts the solver binary for every request and waits for it
// to connect back to a listener bound once up front. Exchanges are serialized
// so a connection is always answered by the process spawned for it.
type ProcessClient struct {
	mu      sync.Mutex
	ln      Listener
	command string
	args    []string
	log     *slog.Logger
}

// Listener is a net.Listener whose pending Accept can be interrupted.
type Listener interface {
	net.Listener
	SetDeadline(t time.Time) error
}

// ListenProcessClient binds address and returns a client spawning command.
func ListenProcessClient(address, command string, args []string, log *slog.Logger) (*ProcessClient, error) {
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", address, err)
	}
	return NewProcessClient(ln.(*net.TCPListener), command, args, log), nil
}

func NewProcessClient(ln Listener, command string, args []string, log *slog.Logger) *ProcessClient {
	if log == nil {
		log = slog.Default()
	}
	return &ProcessClient{ln: ln, command: command, args: args, log: log}
}

func (c *ProcessClient) Addr() net.Addr { return c.ln.Addr() }

func (c *ProcessClient) Close() error { return c.ln.Close() }

func (c *ProcessClient) Solve(ctx context.Context, req Request) (Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return Response{}, contextFailure(err)
	}

	cmd := exec.CommandContext(ctx, c.command, c.args...)
	cmd.Env = append(os.Environ(), AddrEnv+"="+c.ln.Addr().String())
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return Response{}, fmt.Errorf("%w: %s: %w", ErrSpawn, c.command, err)
	}

	var waitErr error
	exited := make(chan struct{})
	go func() {
		waitErr = cmd.Wait()
		close(exited)
	}()
	defer func() {
		_ = cmd.Process.Kill()
		<-exited
		if waitErr != nil {
			c.log.Debug("solver process exited", "error", waitErr)
		}
	}()

	conn, err := c.accept(ctx, exited)
	if err != nil {
		return Response{}, err
	}
	defer conn.Close()
	return exchange(ctx, conn, req)
}

type accepted struct {
	conn net.Conn
	err  error
}

// accept waits for the spawned solver to connect. It gives up as soon as
// ctx ends or the process exits without connecting.
func (c *ProcessClient) accept(ctx context.Context, exited <-chan struct{}) (net.Conn, error) {
	result := make(chan accepted, 1)
	go func() {
		conn, err := c.ln.Accept()
		result <- accepted{conn, err}
	}()

	var failure error
	select {
	case r := <-result:
		if r.err != nil {
			return nil, classify(fmt.Errorf("accept: %w", r.err))
		}
		return r.conn, nil
	case <-ctx.Done():
		failure = contextFailure(ctx.Err())
	case <-exited:
		failure = fmt.Errorf("%w: %s exited before connecting", ErrSpawn, c.command)
		if err := ctx.Err(); err != nil {
			// The process was killed because ctx ended.
			failure = contextFailure(err)
		}
	}

	// Interrupt the pending Accept so it cannot take the next solver's
	// connection; one that raced in is dropped.
	_ = c.ln.SetDeadline(time.Now())
	r := <-result
	_ = c.ln.SetDeadline(time.Time{})
	if r.err == nil {
		r.conn.Close()
	}
	return nil, failure
}

// exchange writes one request frame and reads one response frame.
func exchange(ctx context.Context, conn net.Conn, req Request) (Response, error) {
	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(dl)
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	payload, err := MarshalRequest(req)
	if err != nil {
		return Response{}, err
	}
	if err := ipc.WriteFrame(conn, payload, MaxMessage); err != nil {
		return Response{}, classify(err)
	}
	frame, err := ipc.ReadFrame(conn, MaxMessage)
	if err != nil {
		return Response{}, classify(err)
	}
	return UnmarshalResponse(frame)
}

func contextFailure(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrUnreachable, err)
}

// classify maps transport errors onto the solver failure kinds.
func classify(err error) error {
	var ne net.Error
	switch {
	case errors.Is(err, ipc.ErrFrameSize):
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	case errors.Is(err, os.ErrDeadlineExceeded), errors.As(err, &ne) && ne.Timeout():
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	default:
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
}
