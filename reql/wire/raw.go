// Package wire implements the framed TCP transport underneath the query
// builder: handshake, length-prefixed request/response framing, and token
// allocation. It has no notion of queries, cursors, or term trees - those
// live in reql and reql/cursor respectively; this package only knows how
// to move bytes across one TCP connection.
package wire

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/rethinkdb-go/rethinkdriver/reql/rqerr"
	"github.com/rethinkdb-go/rethinkdriver/reql/rqlog"
)

// Token is a per-request 64-bit identifier used to correlate responses to
// requests on one connection, monotonically increasing from 1.
type Token uint64

const (
	connectTimeout = 5 * time.Second
	messageTimeout = 30 * time.Second

	requestHeaderSize   = 12
	requestLengthOffset = 8
)

var handshakeRequest = [12]byte{0x20, 0x2d, 0x0c, 0x40, 0x00, 0x00, 0x00, 0x00, 0xc7, 0x70, 0x69, 0x7e}

var handshakeSuccess = [8]byte{'S', 'U', 'C', 'C', 'E', 'S', 'S', 0}

var continueRequestTemplate = [15]byte{0, 0, 0, 0, 0, 0, 0, 0, 3, 0, 0, 0, '[', '2', ']'}
var stopRequestTemplate = [15]byte{0, 0, 0, 0, 0, 0, 0, 0, 3, 0, 0, 0, '[', '3', ']'}

// Query type codes for the request body's leading element.
const (
	QueryStart       = 1
	QueryContinue    = 2
	QueryStop        = 3
	QueryNoreplyWait = 4
	QueryServerInfo  = 5
)

// Wait selects how long Recv blocks for the next frame.
type Wait struct {
	kind waitKind
	dur  time.Duration
}

type waitKind int

const (
	waitYes waitKind = iota
	waitNo
	waitFor
)

// WaitYes blocks until a frame arrives or the connection's default
// message timeout fires.
func WaitYes() Wait { return Wait{kind: waitYes} }

// WaitNo performs a one-shot non-blocking read: returns immediately with
// (0, false, nil) if nothing is available yet.
func WaitNo() Wait { return Wait{kind: waitNo} }

// WaitForDuration blocks up to d, then behaves like WaitNo.
func WaitForDuration(d time.Duration) Wait { return Wait{kind: waitFor, dur: d} }

// IsTimed reports whether the wait has a finite budget (WaitForDuration),
// as opposed to WaitYes (bounded only by the connection's message timeout)
// or WaitNo (effectively zero).
func (w Wait) IsTimed() bool { return w.kind == waitFor }

// Remaining returns the wait's configured duration; zero for WaitNo,
// the connection's message timeout for WaitYes.
func (w Wait) Remaining() time.Duration {
	switch w.kind {
	case waitFor:
		return w.dur
	case waitYes:
		return messageTimeout
	default:
		return 0
	}
}

// RawConnection is a single TCP connection speaking the handshake/framing
// protocol. It is not safe for concurrent use - exactly one goroutine may
// own it at a time, matching spec's single-threaded-cooperative model;
// concurrency across workers comes from holding multiple RawConnections in
// reql/rqpool.
type RawConnection struct {
	conn      net.Conn
	nextToken uint64
	writeBuf  []byte
	log       *zap.Logger
}

// Option configures Connect.
type Option func(*RawConnection)

// WithLogger attaches a zap logger for handshake/reset tracing; the
// default is a no-op logger so the driver never forces logging on a
// caller that didn't ask for it.
func WithLogger(l *zap.Logger) Option {
	return func(c *RawConnection) { c.log = l }
}

// Connect dials address, performs the handshake, and returns a ready
// connection. Any handshake mismatch or I/O error is a Connection error.
func Connect(address string, opts ...Option) (*RawConnection, error) {
	c := &RawConnection{nextToken: 1, writeBuf: make([]byte, 0, 4096), log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.dialAndHandshake(address); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *RawConnection) dialAndHandshake(address string) error {
	conn, err := net.DialTimeout("tcp", address, connectTimeout)
	if err != nil {
		return rqerr.Wrap(rqerr.Connection, "dial "+address, err)
	}
	if tc, ok := conn.(*net.TCPConn); ok {
		_ = tc.SetNoDelay(true)
	}
	if err := handshake(conn); err != nil {
		_ = conn.Close()
		return err
	}
	c.conn = conn
	c.log.Debug("handshake complete", rqlog.Address(address))
	return nil
}

// handshake performs the 12-byte magic request / 8-byte "SUCCESS\0"
// response exchange against an already-open conn. Factored out of
// dialAndHandshake so it can be exercised directly against an in-process
// pipe, without a real dial.
func handshake(conn net.Conn) error {
	if err := conn.SetDeadline(time.Now().Add(messageTimeout)); err != nil {
		return rqerr.Wrap(rqerr.Connection, "set handshake deadline", err)
	}
	if _, err := conn.Write(handshakeRequest[:]); err != nil {
		return rqerr.Wrap(rqerr.Connection, "write handshake request", err)
	}
	var resp [8]byte
	if _, err := readFull(conn, resp[:]); err != nil {
		return rqerr.Wrap(rqerr.Connection, "read handshake response", err)
	}
	if resp != handshakeSuccess {
		return rqerr.New(rqerr.Connection, fmt.Sprintf("handshake failed: %v", resp))
	}
	if err := conn.SetDeadline(time.Time{}); err != nil {
		return rqerr.Wrap(rqerr.Connection, "clear handshake deadline", err)
	}
	return nil
}

func readFull(r net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Close performs a graceful shutdown, treating "not connected" as success.
func (c *RawConnection) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	if err != nil && errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// IsOpen performs a non-blocking zero-byte read probe.
func (c *RawConnection) IsOpen() bool {
	if c.conn == nil {
		return false
	}
	if err := c.conn.SetReadDeadline(time.Now().Add(time.Millisecond)); err != nil {
		return false
	}
	defer c.conn.SetReadDeadline(time.Time{})
	one := make([]byte, 1)
	_, err := c.conn.Read(one)
	if err == nil {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return false
}

// Reset re-runs the handshake against the same address, as if freshly
// connected, and restarts token allocation at 1.
func (c *RawConnection) Reset(address string) error {
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.nextToken = 1
	return c.dialAndHandshake(address)
}

// StartRequest allocates the next token, serializes [QueryStart, ast,
// options], transmits the frame, and returns the token.
func (c *RawConnection) StartRequest(ast json.Marshaler, options json.Marshaler) (Token, error) {
	token := Token(c.nextToken)
	c.nextToken++

	body, err := json.Marshal([]any{QueryStart, ast, options})
	if err != nil {
		return 0, rqerr.Wrap(rqerr.QueryLogic, "marshal query", err)
	}
	if err := c.writeFrame(token, body); err != nil {
		return 0, err
	}
	c.log.Debug("start request", rqlog.Token(uint64(token)))
	return token, nil
}

func (c *RawConnection) writeFrame(token Token, body []byte) error {
	c.writeBuf = c.writeBuf[:0]
	var header [requestHeaderSize]byte
	binary.BigEndian.PutUint64(header[:8], uint64(token))
	binary.LittleEndian.PutUint32(header[8:12], uint32(len(body)))
	c.writeBuf = append(c.writeBuf, header[:]...)
	c.writeBuf = append(c.writeBuf, body...)
	if _, err := c.conn.Write(c.writeBuf); err != nil {
		return rqerr.Wrap(rqerr.Connection, "write request frame", err)
	}
	return nil
}

// ContinueRequest sends the fixed 15-byte CONTINUE frame for token.
func (c *RawConnection) ContinueRequest(token Token) error {
	return c.sendFixedFrame(token, continueRequestTemplate)
}

// StopRequest sends the fixed 15-byte STOP frame for token, discarding any
// further batches the server would otherwise produce.
func (c *RawConnection) StopRequest(token Token) error {
	return c.sendFixedFrame(token, stopRequestTemplate)
}

func (c *RawConnection) sendFixedFrame(token Token, template [15]byte) error {
	request := template
	binary.BigEndian.PutUint64(request[:requestLengthOffset], uint64(token))
	if _, err := c.conn.Write(request[:]); err != nil {
		return rqerr.Wrap(rqerr.Connection, "write fixed frame", err)
	}
	return nil
}

// Recv reads one response header+body respecting wait, then appends the
// body - prefixed by its own 4-byte big-endian size so the cursor layer
// can later split a concatenated buffer back into sub-records - into the
// buffer returned by pickBuffer(token). Returns the observed token, or
// (0, false, nil) on a legitimate timeout/would-block.
func (c *RawConnection) Recv(wait Wait, pickBuffer func(Token) *[]byte) (Token, bool, error) {
	var header [requestHeaderSize]byte
	n, err := c.readHeader(wait, header[:])
	if err != nil {
		if isTimeout(err) {
			return 0, false, nil
		}
		return 0, false, rqerr.Wrap(rqerr.Connection, "read response header", err)
	}
	if n < requestHeaderSize {
		return 0, false, rqerr.New(rqerr.Connection, "short header read")
	}

	token := Token(binary.BigEndian.Uint64(header[:8]))
	size := binary.LittleEndian.Uint32(header[8:12])

	buf := pickBuffer(token)
	offset := len(*buf)
	*buf = append(*buf, make([]byte, 4+int(size))...)
	binary.BigEndian.PutUint32((*buf)[offset:], size)
	if _, err := readFull(c.conn, (*buf)[offset+4:]); err != nil {
		return 0, false, rqerr.Wrap(rqerr.Connection, "read response body", err)
	}
	return token, true, nil
}

func (c *RawConnection) readHeader(wait Wait, header []byte) (int, error) {
	switch wait.kind {
	case waitYes:
		if err := c.conn.SetReadDeadline(time.Now().Add(messageTimeout)); err != nil {
			return 0, err
		}
	case waitNo:
		if err := c.conn.SetReadDeadline(time.Now().Add(time.Millisecond)); err != nil {
			return 0, err
		}
	case waitFor:
		if err := c.conn.SetReadDeadline(time.Now().Add(wait.dur)); err != nil {
			return 0, err
		}
	}
	defer c.conn.SetReadDeadline(time.Time{})
	return readFull(c.conn, header)
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
