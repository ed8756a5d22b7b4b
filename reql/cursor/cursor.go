// Package cursor implements the response demultiplexer sitting on top of
// reql/wire: it stashes out-of-order response bodies by token, reassembles
// a cursor's batches out of possibly-concatenated sub-records, and decodes
// the {"t":...,"r":...} envelope into either a batch of JSON values or a
// structured server error.
package cursor

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"strconv"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/rethinkdb-go/rethinkdriver/reql/rqerr"
	"github.com/rethinkdb-go/rethinkdriver/reql/rqlog"
	"github.com/rethinkdb-go/rethinkdriver/reql/wire"
)

// Response type codes, the value of a response envelope's "t" field.
const (
	successAtom     = 1
	successSequence = 2
	successPartial  = 3
	waitComplete    = 4
	clientError     = 16
	compileError    = 17
	runtimeError    = 18
)

const (
	maxBufferCapacity = 4096
	maxNumBuffers     = 32
)

var connectionIDSeq uint64

// Connection wraps one reql/wire.RawConnection with the per-token stash,
// buffer free-list, and generation counter that let multiple concurrent
// cursors share it safely from a single cooperative goroutine, the same
// division of labor as the original connection.rs/raw.rs split.
type Connection struct {
	raw        *wire.RawConnection
	id         uint64
	generation uint64
	responses  map[wire.Token][]byte
	buffers    [][]byte
	log        *zap.Logger
}

// New wraps raw with a fresh connection identity.
func New(raw *wire.RawConnection, log *zap.Logger) *Connection {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Connection{
		raw:       raw,
		id:        atomic.AddUint64(&connectionIDSeq, 1),
		responses: make(map[wire.Token][]byte),
		log:       log,
	}
	c.log.Debug("connection opened", rqlog.ConnectionID(c.id))
	return c
}

// Generation reports the connection's current reset generation; a Cursor
// captures this at creation time (not hardcoded to 0, unlike the reference
// implementation's Connection::run) so a later Reset correctly invalidates
// every cursor opened against the prior incarnation.
func (c *Connection) Generation() uint64 { return c.generation }

// Reset tears down and re-handshakes the underlying raw connection,
// discarding all stashed bytes and bumping the generation so every
// outstanding Cursor's next call fails with ReadFromClosedCursor.
func (c *Connection) Reset(address string) error {
	err := c.raw.Reset(address)
	c.responses = make(map[wire.Token][]byte)
	c.buffers = nil
	c.generation++
	c.log.Debug("connection reset", rqlog.ConnectionID(c.id), rqlog.Generation(c.generation))
	return err
}

// IsOpen reports whether the underlying raw connection still looks alive.
func (c *Connection) IsOpen() bool { return c.raw.IsOpen() }

// Close shuts down the underlying raw connection.
func (c *Connection) Close() error { return c.raw.Close() }

func (c *Connection) allocBuffer() []byte {
	if n := len(c.buffers); n > 0 {
		buf := c.buffers[n-1]
		c.buffers = c.buffers[:n-1]
		return buf[:0]
	}
	return make([]byte, 0, maxBufferCapacity)
}

func (c *Connection) reclaim(buf []byte) {
	if cap(buf) > maxBufferCapacity || len(c.buffers) >= maxNumBuffers {
		return
	}
	c.buffers = append(c.buffers, buf[:0])
}

func (c *Connection) onIOError() {
	c.generation++
	for token, buf := range c.responses {
		c.reclaim(buf)
		delete(c.responses, token)
	}
}

// recvOnce reads exactly one frame from the wire and appends it to the
// stash for whichever token it belonged to, returning that token.
func (c *Connection) recvOnce(wait wire.Wait) (wire.Token, bool, error) {
	var grown *[]byte
	token, ok, err := c.raw.Recv(wait, func(tok wire.Token) *[]byte {
		buf, exists := c.responses[tok]
		if !exists {
			buf = c.allocBuffer()
		}
		grown = new([]byte)
		*grown = buf
		c.responses[tok] = buf
		return grown
	})
	if err != nil {
		c.onIOError()
		return 0, false, err
	}
	if !ok {
		return 0, false, nil
	}
	c.responses[token] = *grown
	return token, true, nil
}

// Cursor walks the accumulated sub-records for one token, issuing CONTINUE
// requests as needed when the previous batch was a SUCCESS_PARTIAL and the
// local buffer has been fully consumed.
type Cursor struct {
	conn       *Connection
	token      wire.Token
	generation uint64
	exhausted  bool
	lastKind   int
	buffer     []byte
	position   int
}

// Run starts ast/opts as a new query and returns its Cursor.
func Run(conn *Connection, ast json.Marshaler, opts json.Marshaler) (*Cursor, error) {
	token, err := conn.raw.StartRequest(ast, opts)
	if err != nil {
		return nil, err
	}
	return &Cursor{conn: conn, token: token, generation: conn.generation}, nil
}

// Batch is one decoded SUCCESS_ATOM/SUCCESS_SEQUENCE/SUCCESS_PARTIAL
// envelope's payload: a slice of raw JSON values and whether more batches
// follow.
type Batch struct {
	Values []json.RawMessage
	More   bool
}

// Next blocks (per wait) until the cursor's next batch is available,
// issuing a CONTINUE automatically when the previous batch was partial.
// Returns (nil, nil) on a legitimate non-blocking timeout with no data.
func (cur *Cursor) Next(wait wire.Wait) (*Batch, error) {
	if cur.conn.generation != cur.generation || cur.exhausted {
		return nil, rqerr.New(rqerr.ReadFromClosedCursor, "cursor read after reset or exhaustion")
	}

	if cur.lastKind == successPartial && cur.position >= len(cur.buffer) {
		if err := cur.conn.raw.ContinueRequest(cur.token); err != nil {
			return nil, err
		}
		cur.lastKind = 0
	}

	deadline := time.Time{}
	if wait.IsTimed() {
		deadline = time.Now().Add(wait.Remaining())
	}

	for cur.position >= len(cur.buffer) {
		if buf, ok := cur.conn.responses[cur.token]; ok && len(buf) > 0 {
			cur.buffer = buf
			cur.position = 0
			break
		}

		perCallWait := wait
		if !deadline.IsZero() {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				return nil, nil
			}
			perCallWait = wire.WaitForDuration(remaining)
		}

		token, ok, err := cur.conn.recvOnce(perCallWait)
		if err != nil {
			return nil, err
		}
		if !ok {
			if deadline.IsZero() {
				return nil, nil
			}
			continue
		}
		if token == cur.token {
			cur.buffer = cur.conn.responses[cur.token]
			cur.position = 0
			break
		}
		// Frame belonged to another in-flight cursor on this connection;
		// it's already stashed under its own token, so just loop again.
	}

	record, next, err := readSizePrefixed(cur.buffer, cur.position)
	if err != nil {
		return nil, err
	}
	cur.position = next
	if cur.position >= len(cur.buffer) {
		cur.conn.reclaim(cur.buffer)
		cur.buffer = nil
		cur.position = 0
		delete(cur.conn.responses, cur.token)
	} else {
		cur.conn.responses[cur.token] = cur.buffer
	}

	batch, kind, err := decodeEnvelope(record)
	if err != nil {
		return nil, err
	}
	cur.lastKind = kind
	if kind == successPartial {
		batch.More = true
	} else {
		cur.exhausted = true
		batch.More = false
	}
	return batch, nil
}

// NextOrNone is Next under its spec name (next_batch_or_none): returns
// (nil, nil) on a legitimate timed-out wait with no data yet, as opposed
// to an error.
func (cur *Cursor) NextOrNone(wait wire.Wait) (*Batch, error) { return cur.Next(wait) }

// NextBatch is next_batch's Result-only form: a nil batch from Next (wait
// elapsed with nothing received) is surfaced as IteratorTimeout instead of
// being handed back as "no data".
func (cur *Cursor) NextBatch(wait wire.Wait) (*Batch, error) {
	batch, err := cur.Next(wait)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, rqerr.New(rqerr.IteratorTimeout, "next_batch: no data received before deadline")
	}
	return batch, nil
}

// RunOne implements Connection::run: submits ast/opts as a new query and
// drives the resulting cursor to completion, expecting exactly one atom
// response. A Wait::For deadline elapsing before any data arrives surfaces
// as IteratorTimeout; a non-atom response (a sequence, a partial that
// needs further batches, or a second batch at all) surfaces as
// UnexpectedResponse, per §7's "no data" vs. "data of the wrong shape"
// distinction.
func RunOne(conn *Connection, ast json.Marshaler, opts json.Marshaler, wait wire.Wait) (*Batch, error) {
	cur, err := Run(conn, ast, opts)
	if err != nil {
		return nil, err
	}
	batch, err := cur.Next(wait)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, rqerr.New(rqerr.IteratorTimeout, "run: no data received before deadline")
	}
	if !cur.exhausted || cur.lastKind != successAtom {
		return nil, rqerr.New(rqerr.UnexpectedResponse, "run: expected exactly one atom response")
	}
	return batch, nil
}

// Close stops the server-side query for this token; idempotent.
func (cur *Cursor) Close() error {
	if cur.exhausted {
		return nil
	}
	cur.exhausted = true
	return cur.conn.raw.StopRequest(cur.token)
}

func readSizePrefixed(buf []byte, pos int) ([]byte, int, error) {
	if pos+4 > len(buf) {
		return nil, 0, rqerr.New(rqerr.UnexpectedResponse, "truncated size prefix")
	}
	size := int(binary.BigEndian.Uint32(buf[pos : pos+4]))
	start := pos + 4
	if start+size > len(buf) {
		return nil, 0, rqerr.New(rqerr.UnexpectedResponse, "truncated response body")
	}
	return buf[start : start+size], start + size, nil
}

var responsePrefix = []byte(`{"t":`)

// decodeEnvelope parses one {"t":N,"r":[...], ...} response body.
func decodeEnvelope(body []byte) (*Batch, int, error) {
	if !bytes.HasPrefix(body, responsePrefix) {
		return nil, 0, rqerr.New(rqerr.UnexpectedResponse, "response missing t-prefix")
	}
	rest := body[len(responsePrefix):]
	comma := bytes.IndexByte(rest, ',')
	if comma < 0 {
		return nil, 0, rqerr.New(rqerr.UnexpectedResponse, "response missing type field")
	}
	kind, err := strconv.Atoi(string(rest[:comma]))
	if err != nil {
		return nil, 0, rqerr.Wrap(rqerr.UnexpectedResponse, "parse response type", err)
	}

	switch kind {
	case successAtom, successSequence, successPartial:
		var envelope struct {
			R []json.RawMessage `json:"r"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, 0, rqerr.Wrap(rqerr.UnexpectedResponse, "decode response body", err)
		}
		return &Batch{Values: envelope.R}, kind, nil
	case clientError, compileError, runtimeError:
		var envelope struct {
			R []string `json:"r"`
			B []uint32 `json:"b"`
			E *int     `json:"e"`
		}
		_ = json.Unmarshal(body, &envelope)
		message := ""
		if len(envelope.R) > 0 {
			message = envelope.R[0]
		}
		code := -1
		if envelope.E != nil {
			code = *envelope.E
		}
		return nil, kind, rqerr.NewServerError(serverErrorKind(kind), code, envelope.B, message)
	case waitComplete:
		return nil, kind, rqerr.New(rqerr.UnexpectedResponse, "wait-complete response not supported")
	default:
		return nil, kind, rqerr.New(rqerr.UnexpectedResponse, "unrecognized response type "+strconv.Itoa(kind))
	}
}

func serverErrorKind(code int) rqerr.ServerErrorKind {
	switch code {
	case runtimeError:
		return rqerr.ServerRuntime
	case compileError:
		return rqerr.ServerCompile
	case clientError:
		return rqerr.ServerClient
	default:
		return rqerr.ServerUnknown
	}
}
