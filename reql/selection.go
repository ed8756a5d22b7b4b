package reql

// Get looks a single row up by primary key; SingleSelection<Object> so that
// the usual row operators (update/replace/delete) but not sequence
// operators (filter/map) are available on the result.
func Get[C isTable, K isKey](self Expr[C], key Expr[K]) Expr[SingleSelection[Object]] {
	return exprOf[SingleSelection[Object]](newTerm(tagGet, astOf(self), astOf(key)))
}

// GetAll looks rows up by a (possibly secondary) index, returning a
// Selection since more than one row can share an index value. The keys
// argument is spliced into the positional args directly after self - the
// Go translation of the Rust Concatenator serializer trick (the "eager
// pre-flattening" option) is simply building one flat []any,
// since Term.Args is already a concrete slice with no custom Serializer in
// the way.
func GetAll[C isTable, K isKey](self Expr[C], keys ...Expr[K]) Expr[Selection[Object]] {
	args := make([]any, 0, len(keys)+1)
	args = append(args, astOf(self))
	for _, k := range keys {
		args = append(args, astOf(k))
	}
	return exprOf[Selection[Object]](Term{Tag: tagGetAll, Args: args})
}

// Args wraps a computed array so it can be spliced as a variadic operand
// list into any operator that accepts one (get_all, insert-many, and so
// on), rather than passing one positional argument per element. Named
// directly in spec.md's "Special values" section; serializes as
// [ARGS, [seq_ast]].
func Args[K any](seq Expr[Array[K]]) Expr[Array[K]] {
	return exprOf[Array[K]](newTerm(tagArgs, astOf(seq)))
}

// GetAllArgs is GetAll's variadic-via-runtime-computed-array form, the
// direct translation of `get_all(args(seq))`: args(keys) produces
// [ARGS, [keys_ast]], which GET_ALL then receives as its sole trailing
// positional argument instead of one argument per key.
func GetAllArgs[C isTable, K isKey](self Expr[C], keys Expr[Array[K]]) Expr[Selection[Object]] {
	return exprOf[Selection[Object]](newTerm(tagGetAll, astOf(self), astOf(Args(keys))))
}

// Between returns every row whose index value falls in [min, max) (subject
// to with_left_bound/with_right_bound refinement below). min/max may be
// MinValExpr()/MaxValExpr() for an open-ended bound.
func Between[C isTable, K isKey](self Expr[C], min, max Expr[K]) Expr[Selection[Object]] {
	return exprOf[Selection[Object]](newTerm(tagBetween, astOf(self), astOf(min), astOf(max)))
}

// withOptionTerm applies an option to the Term underlying any Expr
// category - the free-function equivalent of query.rs's generic
// `Expr::in_index`/`left_bound`/`right_bound` methods, which all reduce to
// the same AstT::WithOption call against whichever options struct the
// term happens to carry. Each public option setter below is a thin,
// category-specific wrapper over this so that the output category is
// preserved rather than erased to `any`.
func withOptionTerm[C any](self Expr[C], name string, value any) Expr[C] {
	t, ok := self.ast.(Term)
	if !ok {
		// A non-Term ast (raw datum, Var) never carries an options slot;
		// this is a programmer error in a hand-built AST, not reachable
		// through this package's own constructors.
		return self
	}
	return exprOf[C](t.withOption(name, value))
}

// InIndex names the secondary index get_all/between should use.
func InIndex[C any](self Expr[C], index Expr[String]) Expr[C] {
	return withOptionTerm(self, "index", astOf(index))
}

// WithLeftBound refines a between()'s lower-bound inclusivity ("open" or
// "closed").
func WithLeftBound[C any](self Expr[C], bound Expr[String]) Expr[C] {
	return withOptionTerm(self, "left_bound", astOf(bound))
}

// WithRightBound refines a between()'s upper-bound inclusivity.
func WithRightBound[C any](self Expr[C], bound Expr[String]) Expr[C] {
	return withOptionTerm(self, "right_bound", astOf(bound))
}

// AssertNotNull narrows a NullOr<X> expression to X; the server raises a
// runtime error if the value actually is null. Grounded on
// original_source/src/typed_query.rs's assert_not_null, the one
// contribution of the earlier builder revision not superseded by the
// later query.rs.
func AssertNotNull[X any](self Expr[NullOr[X]]) Expr[X] {
	return exprOf[X](astOf(self))
}

// NullOr marks an expression whose value may legitimately be null - the
// output category of, e.g., get_field on an optional attribute.
type NullOr[X any] struct{ _ [0]X }

// Bracket indexes into an object/table/array/string by field name or
// position, mirroring typed_query.rs's `.i()`/IsIndexFor. Exposed as a
// free function family rather than an overloaded operator since Go has no
// operator overloading to begin with, so there is no fluency lost relative
// to any other Bracket-shaped call here.
func Bracket[C isObjectOrObjectSequence](self Expr[C], field Expr[String]) Expr[Any] {
	return exprOf[Any](newTerm(tagBracket, astOf(self), astOf(field)))
}

// BracketAt indexes an Array<Item> by a numeric position.
func BracketAt[Item any](self Expr[Array[Item]], index Expr[Number]) Expr[Item] {
	return exprOf[Item](newTerm(tagBracket, astOf(self), astOf(index)))
}
