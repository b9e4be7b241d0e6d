package ipc

import (
	"log/slog"
	"net"
	"sync"
)

// Handler processes a received envelope. Return nil to send no reply.
type Handler func(env Envelope) (*Envelope, error)

// Connection represents a single host bridge instance talking to the sidecar.
// Each game player gets its own connection, identified after the hello handshake.
type Connection struct {
	conn     net.Conn
	handlers map[string]Handler
	log      *slog.Logger
	writeMu  sync.Mutex
}

func NewConnection(conn net.Conn, handlers map[string]Handler, log *slog.Logger) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Connection{
		conn:     conn,
		handlers: handlers,
		log:      log,
	}
}

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

// Send writes one envelope. Satisfies rules.Sender.
func (c *Connection) Send(msgType string, data any) error {
	env, err := NewEnvelope(msgType, data)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return WriteEnvelope(c.conn, env)
}

// Close closes the underlying connection, unblocking ReadLoop.
func (c *Connection) Close() error { return c.conn.Close() }

// ReadLoop serves envelopes until the peer closes or a reply cannot be
// written. It closes the conn on return.
func (c *Connection) ReadLoop() {
	defer c.conn.Close()

	for {
		env, err := ReadEnvelope(c.conn)
		if err != nil {
			c.log.Info("connection read ended", "error", err)
			return
		}

		resp := c.dispatch(env)
		if resp == nil {
			continue
		}
		c.writeMu.Lock()
		err = WriteEnvelope(c.conn, *resp)
		c.writeMu.Unlock()
		if err != nil {
			c.log.Error("failed to send response", "type", resp.Type, "error", err)
			return
		}
		c.log.Debug("sent response", "type", resp.Type)
	}
}

func (c *Connection) dispatch(env Envelope) *Envelope {
	handler, ok := c.handlers[env.Type]
	if !ok {
		c.log.Warn("no handler for message type", "type", env.Type)
		return nil
	}

	resp, err := handler(env)
	if err == nil {
		return resp
	}
	c.log.Error("handler error", "type", env.Type, "error", err)
	reply, encErr := NewEnvelope(TypeError, ErrorMessage{Type: env.Type, Message: err.Error()})
	if encErr != nil {
		return nil
	}
	return &reply
}
