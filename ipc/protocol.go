package ipc

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// MaxEnvelope bounds a single host envelope. A full game state on a large
// map stays well below it.
const MaxEnvelope = 1 << 20

// ErrFrameSize is returned for empty frames and frames above the limit.
var ErrFrameSize = errors.New("invalid frame length")

// Envelope is the wire format shared with the host bridge.
// Data is kept as RawMessage so handlers can defer deserialization to the concrete type.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func NewEnvelope(msgType string, data any) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal data: %w", err)
	}
	return Envelope{Type: msgType, Data: raw}, nil
}

// ReadFrame reads one 4-byte little-endian length-prefixed payload of at most
// limit bytes.
func ReadFrame(r io.Reader, limit int) ([]byte, error) {
	var length uint32
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return nil, fmt.Errorf("read length: %w", err)
	}

	// Guard against corrupted frames or malicious payloads.
	if length == 0 || int64(length) > int64(limit) {
		return nil, fmt.Errorf("%w: %d", ErrFrameSize, length)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return payload, nil
}

// WriteFrame writes payload behind its length prefix. Payloads above limit
// are refused before anything reaches the wire.
func WriteFrame(w io.Writer, payload []byte, limit int) error {
	if len(payload) == 0 || len(payload) > limit {
		return fmt.Errorf("%w: %d", ErrFrameSize, len(payload))
	}

	buf := make([]byte, 4+len(payload))
	binary.LittleEndian.PutUint32(buf, uint32(len(payload)))
	copy(buf[4:], payload)
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// ReadEnvelope reads a single length-prefixed JSON envelope.
func ReadEnvelope(r io.Reader) (Envelope, error) {
	payload, err := ReadFrame(r, MaxEnvelope)
	if err != nil {
		return Envelope{}, err
	}

	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return Envelope{}, fmt.Errorf("unmarshal envelope: %w", err)
	}

	return env, nil
}

func WriteEnvelope(w io.Writer, env Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	return WriteFrame(w, payload, MaxEnvelope)
}
