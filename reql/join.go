package reql

// Join family - supplemented from original_source/, kept from teacher's
// query_joins.go method set and re-pointed at the new term tags and the
// Expr[C]/free-function builder.

// InnerJoin pairs each element of self with each element of other for
// which predicate holds, yielding {left, right} objects.
func InnerJoin[L, R any, SL SequenceOf[L], SR SequenceOf[R]](self Expr[SL], other Expr[SR], predicate Expr[Function[[2]any, Bool]]) Expr[Stream[Object]] {
	return exprOf[Stream[Object]](newTerm(tagInnerJoin, astOf(self), astOf(other), astOf(predicate)))
}

// OuterJoin is InnerJoin plus a null-right row for every left element with
// no match.
func OuterJoin[L, R any, SL SequenceOf[L], SR SequenceOf[R]](self Expr[SL], other Expr[SR], predicate Expr[Function[[2]any, Bool]]) Expr[Stream[Object]] {
	return exprOf[Stream[Object]](newTerm(tagOuterJoin, astOf(self), astOf(other), astOf(predicate)))
}

// EqJoin joins self's leftField against other's primary (or secondary, via
// InIndex) key.
func EqJoin[L any, SL SequenceOf[L]](self Expr[SL], leftField Expr[String], other Expr[Table]) Expr[Stream[Object]] {
	return exprOf[Stream[Object]](newTerm(tagEqJoin, astOf(self), astOf(leftField), astOf(other)))
}

// Zip merges each {left, right} row produced by a join into one flat
// object, right's fields winning on conflict.
func Zip[Item any, S SequenceOf[Item]](self Expr[S]) Expr[Stream[Object]] {
	return exprOf[Stream[Object]](newTerm(tagZip, astOf(self)))
}
