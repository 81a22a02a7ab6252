// Package stdio runs a line-delimited JSON-RPC server over a byte stream,
// normally stdin/stdout. Input arrives in arbitrarily sized chunks; the
// server reassembles newline-terminated messages, hands each one to the
// injected handler, and writes exactly one newline-terminated JSON response
// per message, in input order.
//
// The output stream carries only JSON-RPC lines. Anything else (status,
// logging) must go to stderr, because MCP clients parse stdout strictly.
package stdio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/headlessly/hly/internal/jsonrpc"
)

// readChunkSize is the size of a single read from the input stream.
const readChunkSize = 64 * 1024

// Handler processes one complete JSON-RPC message and returns the encoded
// response. The input is valid JSON (the server rejects anything else with
// a parse-error envelope before the handler sees it). A nil return means
// the message was a notification and no response line is written.
type Handler interface {
	Handle(ctx context.Context, request []byte) []byte
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, request []byte) []byte

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, request []byte) []byte {
	return f(ctx, request)
}

// Server is a line-delimited JSON-RPC server. It owns a single buffer of
// not-yet-terminated input; there is no other state and no locking, because
// messages are processed strictly one at a time.
type Server struct {
	handler Handler
	reader  io.Reader
	writer  io.Writer
	pending []byte
}

// Option configures a Server.
type Option func(*Server)

// WithReader overrides the input stream (tests).
func WithReader(r io.Reader) Option {
	return func(s *Server) { s.reader = r }
}

// WithWriter overrides the output stream (tests).
func WithWriter(w io.Writer) Option {
	return func(s *Server) { s.writer = w }
}

// New creates a Server reading stdin and writing stdout.
func New(handler Handler, opts ...Option) *Server {
	s := &Server{
		handler: handler,
		reader:  os.Stdin,
		writer:  os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run reads the input stream until end-of-input or context cancellation.
// It returns nil on clean EOF; a trailing fragment without a newline is
// discarded, never processed as a message.
func (s *Server) Run(ctx context.Context) error {
	buf := make([]byte, readChunkSize)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := s.reader.Read(buf)
		if n > 0 {
			if werr := s.feed(ctx, buf[:n]); werr != nil {
				return werr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// feed appends a chunk to the pending buffer and processes every complete
// line it now contains. The final unterminated fragment stays pending for
// the next chunk.
func (s *Server) feed(ctx context.Context, chunk []byte) error {
	s.pending = append(s.pending, chunk...)

	for {
		i := bytes.IndexByte(s.pending, '\n')
		if i < 0 {
			return nil
		}
		line := bytes.TrimSpace(s.pending[:i])
		if err := s.process(ctx, line); err != nil {
			return err
		}
		s.pending = s.pending[i+1:]
	}
}

// process handles one complete line. Blank lines are skipped without a
// response; malformed JSON yields a parse-error envelope; everything else
// goes to the handler. A malformed line never affects later lines.
func (s *Server) process(ctx context.Context, line []byte) error {
	if len(line) == 0 {
		return nil
	}

	if !json.Valid(line) {
		return s.writeLine(encodeParseError(line))
	}

	resp := s.dispatch(ctx, line)
	if resp == nil {
		return nil
	}
	return s.writeLine(resp)
}

// dispatch invokes the handler, converting a panic into an internal-error
// envelope rather than tearing down the stream.
func (s *Server) dispatch(ctx context.Context, line []byte) (resp []byte) {
	defer func() {
		if r := recover(); r != nil {
			resp = encodeInternalError(line, fmt.Sprintf("handler panic: %v", r))
		}
	}()
	return s.handler.Handle(ctx, line)
}

func (s *Server) writeLine(resp []byte) error {
	if _, err := s.writer.Write(resp); err != nil {
		return err
	}
	_, err := s.writer.Write([]byte{'\n'})
	return err
}

func encodeParseError(line []byte) []byte {
	detail := fmt.Sprintf("invalid JSON: %s", truncate(line, 120))
	b, _ := json.Marshal(jsonrpc.NewParseError(detail))
	return b
}

func encodeInternalError(line []byte, message string) []byte {
	// Best-effort ID recovery so the client can correlate the failure.
	var probe struct {
		ID any `json:"id"`
	}
	_ = json.Unmarshal(line, &probe)

	b, _ := json.Marshal(jsonrpc.NewInternalError(probe.ID, message))
	return b
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
