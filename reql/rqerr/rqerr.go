// Package rqerr defines the structured error taxonomy shared by the wire,
// cursor, and query-builder layers. It replaces the Rust original's
// failure::Context cause-chain/backtrace machinery with Go's native
// %w-wrapping: every Error satisfies Unwrap() error so callers can use
// errors.Is/errors.As against a Kind or a *ServerError without caring how
// deep the wrap chain runs.
package rqerr

import "fmt"

// Kind identifies the taxonomy of a non-server error.
type Kind int

const (
	// NoEndpoints means a pool was constructed with zero addresses.
	NoEndpoints Kind = iota
	// AddressResolution means a hostname failed to resolve to any address.
	AddressResolution
	// ReadFromClosedCursor means a cursor was advanced after its
	// connection's generation moved past the one it was created under.
	ReadFromClosedCursor
	// UnexpectedResponse means a response envelope parsed as the wrong
	// shape for its declared type, or failed to parse at all.
	UnexpectedResponse
	// IteratorTimeout means a Wait::For deadline elapsed with no data for
	// the awaited token, distinct from UnexpectedResponse ("no data" vs.
	// "data of the wrong shape").
	IteratorTimeout
	// Connection covers socket I/O and wire-framing failures: dial and
	// handshake errors, a short response header, a failed read or write.
	// A truncated size prefix or a malformed envelope found by the cursor
	// layer is reported as UnexpectedResponse instead, and does not
	// invalidate the connection.
	Connection
	// QueryLogic means the query builder rejected the tree before it was
	// ever sent - e.g. the same option slot was set twice. This is the
	// runtime stand-in for what a phantom-typed builder would instead
	// reject at compile time.
	QueryLogic
)

func (k Kind) String() string {
	switch k {
	case NoEndpoints:
		return "no endpoints"
	case AddressResolution:
		return "address resolution"
	case ReadFromClosedCursor:
		return "read from closed cursor"
	case UnexpectedResponse:
		return "unexpected response"
	case IteratorTimeout:
		return "iterator timeout"
	case Connection:
		return "connection"
	case QueryLogic:
		return "query logic"
	default:
		return "unknown"
	}
}

// Error is a Kind paired with a message and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rethinkdriver: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	if e.Message != "" {
		return fmt.Sprintf("rethinkdriver: %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("rethinkdriver: %s", e.Kind)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, SomeKind) work by comparing against a bare Kind
// value wrapped as an error via New(kind, "").
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind && other.Message == "" || other == e
}

// New constructs an Error of the given kind with a message and no cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs an Error of the given kind carrying cause as its Unwrap
// target.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// ServerErrorKind distinguishes the three flavors of server-rejected query.
type ServerErrorKind int

const (
	ServerUnknown ServerErrorKind = iota
	ServerRuntime
	ServerCompile
	ServerClient
)

func (k ServerErrorKind) String() string {
	switch k {
	case ServerRuntime:
		return "Runtime"
	case ServerCompile:
		return "Compile"
	case ServerClient:
		return "Client"
	default:
		return "Unknown server"
	}
}

// ServerError is the structured form of a server-rejected query: §4.E's
// Server{kind, code, span, message} variant.
type ServerError struct {
	Kind    ServerErrorKind
	Code    int
	Span    []uint32
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("rethinkdriver: %s error code=%d span=%v: %s", e.Kind, e.Code, e.Span, e.Message)
}

// NewServerError builds a ServerError from a decoded response envelope.
func NewServerError(kind ServerErrorKind, code int, span []uint32, message string) *ServerError {
	return &ServerError{Kind: kind, Code: code, Span: span, Message: message}
}

// Is allows errors.Is(err, &ServerError{}) to match any ServerError
// regardless of field values, and errors.As to recover the concrete value.
func (e *ServerError) Is(target error) bool {
	_, ok := target.(*ServerError)
	return ok
}
