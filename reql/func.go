package reql

import "sync/atomic"

// nextVarID is the process-wide monotonic counter backing every fresh Var.
// A process-global atomic counter is sufficient (32 bits suffice for any
// realistic program, per SPEC_FULL's design notes); nothing in this package
// or its tests resets it.
var nextVarID uint64

// Var is a free variable inside a function body, typed with the category
// its value will hold when the function runs.
type Var[C any] struct {
	id uint64
}

func freshVar[C any]() Var[C] {
	return Var[C]{id: atomic.AddUint64(&nextVarID, 1)}
}

// Expr lifts a Var into an Expr so it can be used as an operand anywhere
// its category is accepted - the Var serializes as [VAR, [id]], a plain
// Term like any other.
func (v Var[C]) Expr() Expr[C] {
	return exprOf[C](newTerm(tagVar, v.id))
}

// Func1 lowers a one-argument Go closure into the [FUNC, [[MAKE_ARRAY,
// [id]], body]] form every predicate/projection/reduction operator below
// expects, minting a fresh Var for the closure's parameter and invoking it
// immediately at build time to obtain the body AST. This is the Go
// translation of IntoExpr<FunctionOut<(Arg1T,), ReturnOutT>> for
// FnOnce(Var<Arg1T>) -> ReturnT: the original's trait impl performs the
// same "call the closure with a fresh Var, take its .ast" step, it just
// does so invisibly, rather than the explicit FUNC/MAKE_ARRAY wrapping
// this driver builds.
func Func1[In, Out any](body func(Expr[In]) Expr[Out]) Expr[Function[In, Out]] {
	v := freshVar[In]()
	result := body(v.Expr())
	argsTerm := newTerm(tagMakeArr, v.id)
	return exprOf[Function[In, Out]](newTerm(tagFunc, argsTerm, astOf(result)))
}

// Func2 is Func1's two-argument counterpart, used by eq_join/reduce-style
// operators that pass two row variables to their body.
func Func2[A, B, Out any](body func(Expr[A], Expr[B]) Expr[Out]) Expr[Function[[2]any, Out]] {
	va := freshVar[A]()
	vb := freshVar[B]()
	result := body(va.Expr(), vb.Expr())
	argsTerm := newTerm(tagMakeArr, va.id, vb.id)
	return exprOf[Function[[2]any, Out]](newTerm(tagFunc, argsTerm, astOf(result)))
}
