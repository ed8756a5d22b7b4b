package reql

import (
	"encoding/json"

	"github.com/rethinkdb-go/rethinkdriver/reql/rqerr"
)

// Term is the wire-level node: (tag, args, opts). It corresponds to
// SPEC_FULL's Term triple. Args holds child ASTs in order - each element is
// either another Term, a raw JSON-marshalable datum, or one of the special
// marker values (nullDatum, minvalDatum, maxvalDatum). Opts holds the
// term's named option values; the opts slot is omitted entirely from the
// wire when empty, not emitted as `{}`.
//
// err carries a deferred query-construction failure - e.g. the same option
// slot set twice - forward through every further builder call, the same
// way teacher's session.go recovers a panic from buildProtobuf into an err
// returned by Run. There is no panic/recover here: the error just rides
// along on the value until MarshalJSON (or cursor.Run, which marshals the
// query) surfaces it.
type Term struct {
	Tag  int
	Args []any
	Opts map[string]any
	err  error
}

func newTerm(tag int, args ...any) Term {
	return Term{Tag: tag, Args: args}
}

// withOption returns a copy of t with opts[name] = value set, failing with
// a QueryLogic error if name was already set - the runtime stand-in for the
// compile-time option-slot type-refinement trick described in SPEC_FULL.
func (t Term) withOption(name string, value any) Term {
	if t.err != nil {
		return t
	}
	if _, already := t.Opts[name]; already {
		t.err = rqerr.New(rqerr.QueryLogic, "option "+name+" set twice on the same term")
		return t
	}
	opts := make(map[string]any, len(t.Opts)+1)
	for k, v := range t.Opts {
		opts[k] = v
	}
	opts[name] = value
	t.Opts = opts
	return t
}

// firstErr walks a term tree looking for the first deferred build error, so
// that MarshalJSON/Run can report it instead of silently sending a
// truncated query.
func (t Term) firstErr() error {
	if t.err != nil {
		return t.err
	}
	for _, a := range t.Args {
		if sub, ok := a.(Term); ok {
			if err := sub.firstErr(); err != nil {
				return err
			}
		}
	}
	return nil
}

// MarshalJSON emits [tag, args] or [tag, args, opts] (opts omitted when
// empty - not even an empty object is emitted).
func (t Term) MarshalJSON() ([]byte, error) {
	if err := t.firstErr(); err != nil {
		return nil, err
	}
	args := t.Args
	if args == nil {
		args = []any{}
	}
	if len(t.Opts) == 0 {
		return json.Marshal([]any{t.Tag, args})
	}
	return json.Marshal([]any{t.Tag, args, t.Opts})
}

// minvalDatum / maxvalDatum serialize as the bare one-element array [tag],
// per spec - distinct from a normal Term's [tag, args] shape because
// MinVal/MaxVal carry no args at all.
type minvalDatum struct{}

func (minvalDatum) MarshalJSON() ([]byte, error) { return json.Marshal([1]int{tagMinval}) }

type maxvalDatum struct{}

func (maxvalDatum) MarshalJSON() ([]byte, error) { return json.Marshal([1]int{tagMaxval}) }

// nullDatum serializes as the JSON literal null, never as a Term.
type nullDatum struct{}

func (nullDatum) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Expr is a built query node paired with a phantom output category C. C
// never appears at runtime - no Expr ever stores one as a value - it only
// selects which of the free generic functions in this package accept the
// value as an argument or receiver. An Any expression is built exactly the
// same way as any other category; "coercion" is purely a matter of which
// functions declare Any as an accepted instantiation of their type
// parameter (see the any*() constructors below).
type Expr[C any] struct {
	ast any
}

func exprOf[C any](ast any) Expr[C] { return Expr[C]{ast: ast} }

// astOf extracts the built AST node from an Expr for use as a child of a
// new Term. A free function rather than a method because Go cannot declare
// a method with its own additional type parameter distinct from the
// receiver's.
func astOf[C any](e Expr[C]) any { return e.ast }

func (e Expr[C]) buildError() error {
	if t, ok := e.ast.(Term); ok {
		return t.firstErr()
	}
	return nil
}

// MarshalJSON lets Expr values sit directly as Term.Args elements and be
// handed straight to encoding/json at the top level.
func (e Expr[C]) MarshalJSON() ([]byte, error) {
	if err := e.buildError(); err != nil {
		return nil, err
	}
	return json.Marshal(e.ast)
}

// Literal constructors. Go has no implicit-conversion story equivalent to
// Rust's blanket `impl<T: Datum<Out>> IntoExpr<Out> for T`, so literals are
// wrapped explicitly - idiomatic Go favors this over a magic "accepts
// anything" parameter anyway, and it keeps every operator's signature
// honest about what categories it accepts.

func Str(s string) Expr[String] { return exprOf[String](s) }
func Num[T ~int | ~int32 | ~int64 | ~float32 | ~float64](n T) Expr[Number] {
	return exprOf[Number](float64(n))
}
func BoolVal(b bool) Expr[Bool] { return exprOf[Bool](b) }

// NullVal is the Null-categorized expression; named NullVal because Null
// already names the category marker type.
func NullVal() Expr[Null] { return exprOf[Null](nullDatum{}) }

// MinVal / MaxVal are the ReQL range-scan sentinels; IsKey so they compose
// with get_all/between's key parameters like any other scalar.
func MinValExpr() Expr[Any] { return exprOf[Any](minvalDatum{}) }
func MaxValExpr() Expr[Any] { return exprOf[Any](maxvalDatum{}) }

// Arr builds a fixed-size array datum, serializing as [MAKE_ARRAY, items].
func Arr[C any](items ...Expr[C]) Expr[Array[C]] {
	args := make([]any, len(items))
	for i, it := range items {
		args[i] = astOf(it)
	}
	return exprOf[Array[C]](newTerm(tagMakeArr, args...))
}

// Obj builds an object datum from a Go map of string keys to Any-coerced
// values, serializing as [MAKE_OBJ, [], {k: v, ...}]: an object term takes
// its fields as the opts map with no positional args, per the server's
// MAKE_OBJ encoding.
func Obj(fields map[string]Expr[Any]) Expr[Object] {
	opts := make(map[string]any, len(fields))
	for k, v := range fields {
		opts[k] = astOf(v)
	}
	return exprOf[Object](Term{Tag: tagMakeObj, Args: []any{}, Opts: opts})
}

// AnyOf widens any category into Any, the one coercion the type system
// performs implicitly in the original; Go requires it spelled out.
func AnyOf[C any](e Expr[C]) Expr[Any] { return exprOf[Any](astOf(e)) }
