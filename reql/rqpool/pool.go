// Package rqpool adapts a set of server endpoints into a round-robin pool
// of reql/cursor.Connections, the Go counterpart of original_source's
// pool.rs/manager.rs built on r2d2. No r2d2-equivalent connection-pool
// library appears anywhere in the example pack (grounding noted in
// DESIGN.md), so the pool itself is a small channel-backed free list in
// the idiom every other pack repo uses for bounded worker/resource pools;
// observability on top of it is real third-party wiring via
// prometheus/client_golang.
package rqpool

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/rethinkdb-go/rethinkdriver/reql/cursor"
	"github.com/rethinkdb-go/rethinkdriver/reql/rqerr"
	"github.com/rethinkdb-go/rethinkdriver/reql/wire"
)

// Options mirrors pool.rs's PoolOptions: MaxSize bounds live connections,
// MinIdle is the number eagerly opened at construction time.
type Options struct {
	MaxSize  int
	MinIdle  int
	Logger   *zap.Logger
	Registry prometheus.Registerer
}

// DefaultOptions matches the reference implementation's Default impl.
func DefaultOptions() Options {
	return Options{MaxSize: 32, MinIdle: 8}
}

// Pool round-robins across a fixed endpoint list, handing out
// *cursor.Connection values from a bounded free list and validating each
// one on acquire the same way ConnectionManager::is_valid does: run a
// trivial query with a short wait and treat any error as broken.
type Pool struct {
	endpoints []string
	nextIndex uint64
	opts      Options
	idle      chan *cursor.Connection
	slots     chan struct{} // one token per connection not yet opened, up to MaxSize
	log       *zap.Logger

	acquired prometheus.Counter
	broken   prometheus.Counter
}

// New builds a pool over endpoints, eagerly opening MinIdle connections.
// Returns NoEndpoints if endpoints is empty.
func New(endpoints []string, opts Options) (*Pool, error) {
	if len(endpoints) == 0 {
		return nil, rqerr.New(rqerr.NoEndpoints, "pool requires at least one endpoint")
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = DefaultOptions().MaxSize
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	p := &Pool{
		endpoints: endpoints,
		opts:      opts,
		idle:      make(chan *cursor.Connection, opts.MaxSize),
		slots:     make(chan struct{}, opts.MaxSize),
		log:       opts.Logger,
	}
	for i := 0; i < opts.MaxSize; i++ {
		p.slots <- struct{}{}
	}

	if opts.Registry != nil {
		p.acquired = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rethinkdriver_pool_acquired_total",
			Help: "Connections handed out by the pool.",
		})
		p.broken = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rethinkdriver_pool_broken_total",
			Help: "Connections discarded as broken on acquire.",
		})
		opts.Registry.MustRegister(p.acquired, p.broken)
	}

	for i := 0; i < opts.MinIdle && i < opts.MaxSize; i++ {
		<-p.slots
		conn, err := p.dial()
		if err != nil {
			return nil, err
		}
		p.idle <- conn
	}
	return p, nil
}

func (p *Pool) dial() (*cursor.Connection, error) {
	index := atomic.AddUint64(&p.nextIndex, 1) - 1
	address := p.endpoints[index%uint64(len(p.endpoints))]
	raw, err := wire.Connect(address, wire.WithLogger(p.log))
	if err != nil {
		return nil, err
	}
	return cursor.New(raw, p.log), nil
}

// isValid runs Null as a trivial liveness probe, mirroring
// ConnectionManager::is_valid's expr(Null) with a 1s wait.
func isValid(conn *cursor.Connection, nullAst nullMarshaler) bool {
	cur, err := cursor.Run(conn, nullAst, emptyOptions{})
	if err != nil {
		return false
	}
	_, err = cur.Next(wire.WaitForDuration(time.Second))
	return err == nil
}

type nullMarshaler interface{ MarshalJSON() ([]byte, error) }

type emptyOptions struct{}

func (emptyOptions) MarshalJSON() ([]byte, error) { return []byte("{}"), nil }

// Conn is a pooled connection returned by Acquire; Release must be called
// exactly once to return it to the pool (or drop it, if broken).
type Conn struct {
	*cursor.Connection
	pool   *Pool
	broken bool
}

// Acquire returns an idle connection if one is available, dialing a new
// one (round-robin) otherwise, subject to ctx's deadline. nullAst is the
// caller-supplied `Null` literal AST used for the liveness probe - rqpool
// has no dependency on the reql package, so it cannot construct one
// itself.
func (p *Pool) Acquire(ctx context.Context, nullAst nullMarshaler) (*Conn, error) {
	select {
	case conn := <-p.idle:
		return p.acquireIdle(conn, nullAst)
	default:
	}

	select {
	case <-p.slots:
		fresh, err := p.dial()
		if err != nil {
			p.slots <- struct{}{}
			return nil, err
		}
		if p.acquired != nil {
			p.acquired.Inc()
		}
		return &Conn{Connection: fresh, pool: p}, nil
	case conn := <-p.idle:
		return p.acquireIdle(conn, nullAst)
	case <-ctx.Done():
		return nil, rqerr.Wrap(rqerr.Connection, "acquire", ctx.Err())
	}
}

func (p *Pool) acquireIdle(conn *cursor.Connection, nullAst nullMarshaler) (*Conn, error) {
	if p.acquired != nil {
		p.acquired.Inc()
	}
	if !isValid(conn, nullAst) {
		if p.broken != nil {
			p.broken.Inc()
		}
		fresh, err := p.dial() // reuses the slot the broken connection held
		if err != nil {
			p.slots <- struct{}{}
			return nil, err
		}
		return &Conn{Connection: fresh, pool: p}, nil
	}
	return &Conn{Connection: conn, pool: p}, nil
}

// Close drains the idle set, closing every connection currently sitting
// in it. Connections checked out at the time of the call are not closed:
// a later Release returns them to the idle set as usual, and the pool
// stays usable after Close.
func (p *Pool) Close() error {
	var firstErr error
	for {
		select {
		case conn := <-p.idle:
			if err := conn.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		default:
			return firstErr
		}
	}
}

// MarkBroken flags this connection so Release discards it instead of
// returning it to the idle set - the caller's equivalent of r2d2's
// has_broken/ConnectionCustomizer.on_acquire invalidate() path.
func (c *Conn) MarkBroken() { c.broken = true }

// Release returns the connection to the pool's idle set, or drops it and
// frees its slot if MarkBroken was called.
func (c *Conn) Release() {
	if c.broken {
		c.pool.slots <- struct{}{}
		return
	}
	select {
	case c.pool.idle <- c.Connection:
	default:
		// Idle set is at capacity; drop the connection and free its slot
		// rather than block.
		c.pool.slots <- struct{}{}
	}
}

// markBrokenOnConnErr flags c broken when err is a Connection-kind error -
// the only failure class that means the underlying socket itself is no
// longer trustworthy, as opposed to a query-level/timeout failure that
// leaves the connection reusable.
func markBrokenOnConnErr(c *Conn, err error) {
	var rerr *rqerr.Error
	if errors.As(err, &rerr) && rerr.Kind == rqerr.Connection {
		c.MarkBroken()
	}
}

// Run is Pool::run: acquires a connection, submits ast/opts, returns its
// single atom result via cursor.RunOne, and releases the connection back
// to the pool (marking it broken first if the failure was connection-
// level) before returning.
func (p *Pool) Run(ctx context.Context, nullAst nullMarshaler, ast, opts json.Marshaler, wait wire.Wait) (*cursor.Batch, error) {
	conn, err := p.Acquire(ctx, nullAst)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	batch, err := cursor.RunOne(conn.Connection, ast, opts, wait)
	if err != nil {
		markBrokenOnConnErr(conn, err)
		return nil, err
	}
	return batch, nil
}

// Iter is the iterator run_iter hands back: it walks one cursor's batches,
// buffering each received Batch.Values and yielding one item at a time,
// re-fetching (Cursor.Next already issues the implied CONTINUE for a
// partial batch) whenever the local buffer drains, until the cursor is
// exhausted.
type Iter struct {
	conn    *Conn
	cur     *cursor.Cursor
	wait    wire.Wait
	pending []json.RawMessage
	done    bool
	err     error
}

// RunIter is Pool::run_iter: acquires a connection, submits ast/opts as a
// new query, and returns an Iter that lazily pulls batches from the
// resulting cursor, releasing the connection back to the pool once the
// iterator is exhausted, errors, or is closed early.
func (p *Pool) RunIter(ctx context.Context, nullAst nullMarshaler, ast, opts json.Marshaler, wait wire.Wait) (*Iter, error) {
	conn, err := p.Acquire(ctx, nullAst)
	if err != nil {
		return nil, err
	}
	cur, err := cursor.Run(conn.Connection, ast, opts)
	if err != nil {
		markBrokenOnConnErr(conn, err)
		conn.Release()
		return nil, err
	}
	return &Iter{conn: conn, cur: cur, wait: wait}, nil
}

// Next returns the next raw item. (item, true, nil) is a real item;
// (nil, false, nil) means no item is available right now - check Done to
// tell "the cursor is exhausted, stop calling Next" from "the wait
// elapsed with nothing received yet, the iterator is still usable" (the
// S6 scenario: a Wait::For(d) against a server that never answers leaves
// the iterator usable for a later retry, it is not an error).
func (it *Iter) Next() (json.RawMessage, bool, error) {
	if it.err != nil {
		return nil, false, it.err
	}
	for len(it.pending) == 0 && !it.done {
		batch, err := it.cur.Next(it.wait)
		if err != nil {
			it.err = err
			markBrokenOnConnErr(it.conn, err)
			it.release()
			return nil, false, err
		}
		if batch == nil {
			return nil, false, nil
		}
		it.pending = batch.Values
		if !batch.More {
			it.done = true
		}
	}
	if len(it.pending) == 0 {
		it.release()
		return nil, false, nil
	}
	item := it.pending[0]
	it.pending = it.pending[1:]
	if len(it.pending) == 0 && it.done {
		it.release()
	}
	return item, true, nil
}

// Done reports whether the cursor is exhausted and every buffered item has
// already been handed out.
func (it *Iter) Done() bool { return it.done && len(it.pending) == 0 }

func (it *Iter) release() {
	if it.conn != nil {
		it.conn.Release()
		it.conn = nil
	}
}

// Close stops the underlying cursor's query and releases the connection
// early, for a caller that abandons iteration before exhaustion.
func (it *Iter) Close() error {
	defer it.release()
	if it.cur == nil {
		return nil
	}
	return it.cur.Close()
}
