package reql

// Sequence operators are expressed as free generic functions parameterized
// over the element category, constrained with SequenceOf[Item] (Stream,
// Array, Selection). Table cannot join that union - its element category
// is always Object, not a free type parameter - so Table gets its own
// non-generic overload of each operator, named with a Table suffix,
// exactly mirroring the original's separate
// `impl IsSequence for TableOut { type SequenceItem = ObjectOut; }` arm.
//
// This split - and the fact that these are free functions rather than
// methods on Expr[C] - is the direct consequence of Go generics lacking
// per-instantiation method specialization: a method on Expr[C] cannot add
// "where C: IsSequence" the way a Rust impl block can, so any operator
// gated by a capability predicate has to live outside the Expr[C] method
// set.

// Filter keeps only the sequence elements for which predicate returns
// true, preserving the receiver's category (same-category output, per
// spec.md's operator table - not SequenceItem, which is what the
// superseded query.rs snippet actually returns; see SPEC_FULL §4 for that
// discrepancy).
func Filter[Item any, S SequenceOf[Item]](self Expr[S], predicate Expr[Function[Item, Bool]]) Expr[S] {
	return exprOf[S](newTerm(tagFilter, astOf(self), astOf(predicate)))
}

// FilterTable is Filter's Table-receiver overload.
func FilterTable(self Expr[Table], predicate Expr[Function[Object, Bool]]) Expr[Selection[Object]] {
	return exprOf[Selection[Object]](newTerm(tagFilter, astOf(self), astOf(predicate)))
}

// Map transforms every element, rebinding the sequence's item category to
// whatever the projection returns. The result is a Stream for every
// receiver Map accepts, Array included; MapArray is the overload that keeps
// an Array receiver an Array, and MapTable covers Table.
func Map[Item, Out any, S SequenceOf[Item]](self Expr[S], project Expr[Function[Item, Out]]) Expr[Stream[Out]] {
	return exprOf[Stream[Out]](newTerm(tagMap, astOf(self), astOf(project)))
}

// MapArray is Map's Array-receiver overload, which rebinds to Array<Out>
// rather than Stream<Out> (an Array stays an Array under map, per
// Rebind<To>'s Array<X> -> Array<To> arm).
func MapArray[Item, Out any](self Expr[Array[Item]], project Expr[Function[Item, Out]]) Expr[Array[Out]] {
	return exprOf[Array[Out]](newTerm(tagMap, astOf(self), astOf(project)))
}

// MapTable is Map's Table-receiver overload.
func MapTable[Out any](self Expr[Table], project Expr[Function[Object, Out]]) Expr[Stream[Out]] {
	return exprOf[Stream[Out]](newTerm(tagMap, astOf(self), astOf(project)))
}

// ConcatMap is like Map but flattens: the body itself returns a sequence,
// and those sequences are concatenated into one Stream<Out>.
func ConcatMap[Item, Out, BodySeq any, S SequenceOf[Item]](self Expr[S], body Expr[Function[Item, BodySeq]]) Expr[Stream[Out]] {
	return exprOf[Stream[Out]](newTerm(tagConcatMap, astOf(self), astOf(body)))
}

// Skip drops the first n elements, preserving category.
func Skip[Item any, S SequenceOf[Item]](self Expr[S], n Expr[Number]) Expr[S] {
	return exprOf[S](newTerm(tagSkip, astOf(self), astOf(n)))
}

// SkipTable is Skip's Table-receiver overload.
func SkipTable(self Expr[Table], n Expr[Number]) Expr[Selection[Object]] {
	return exprOf[Selection[Object]](newTerm(tagSkip, astOf(self), astOf(n)))
}

// Limit caps a sequence to at most n elements, preserving category.
func Limit[Item any, S SequenceOf[Item]](self Expr[S], n Expr[Number]) Expr[S] {
	return exprOf[S](newTerm(tagLimit, astOf(self), astOf(n)))
}

// LimitTable is Limit's Table-receiver overload.
func LimitTable(self Expr[Table], n Expr[Number]) Expr[Selection[Object]] {
	return exprOf[Selection[Object]](newTerm(tagLimit, astOf(self), astOf(n)))
}

// Slice returns the half-open range [start, end) of a sequence.
func Slice[Item any, S SequenceOf[Item]](self Expr[S], start, end Expr[Number]) Expr[S] {
	return exprOf[S](newTerm(tagSlice, astOf(self), astOf(start), astOf(end)))
}

// Nth returns the element at a fixed position.
func Nth[Item any, S SequenceOf[Item]](self Expr[S], index Expr[Number]) Expr[Item] {
	return exprOf[Item](newTerm(tagNth, astOf(self), astOf(index)))
}

// OrderBy sorts a sequence by one or more field-order expressions (built
// with Asc/Desc), preserving category.
func OrderBy[Item any, S SequenceOf[Item]](self Expr[S], keys ...Expr[Any]) Expr[S] {
	args := make([]any, 0, len(keys)+1)
	args = append(args, astOf(self))
	for _, k := range keys {
		args = append(args, astOf(k))
	}
	return exprOf[S](Term{Tag: tagOrderBy, Args: args})
}

// Asc/Desc wrap a field-name expression to describe sort direction for
// OrderBy.
func Asc(field Expr[String]) Expr[Any]  { return exprOf[Any](newTerm(tagAsc, astOf(field))) }
func Desc(field Expr[String]) Expr[Any] { return exprOf[Any](newTerm(tagDesc, astOf(field))) }

// Distinct removes duplicate elements, preserving category.
func Distinct[Item any, S SequenceOf[Item]](self Expr[S]) Expr[S] {
	return exprOf[S](newTerm(tagDistinct, astOf(self)))
}

// Count returns the number of elements in a sequence.
func Count[Item any, S SequenceOf[Item]](self Expr[S]) Expr[Number] {
	return exprOf[Number](newTerm(tagCount, astOf(self)))
}

// CountTable is Count's Table-receiver overload.
func CountTable(self Expr[Table]) Expr[Number] {
	return exprOf[Number](newTerm(tagCount, astOf(self)))
}

// IsEmpty reports whether a sequence has zero elements.
func IsEmpty[Item any, S SequenceOf[Item]](self Expr[S]) Expr[Bool] {
	return exprOf[Bool](newTerm(tagIsEmpty, astOf(self)))
}

// Contains reports whether any element equals value.
func Contains[Item any, S SequenceOf[Item]](self Expr[S], value Expr[Item]) Expr[Bool] {
	return exprOf[Bool](newTerm(tagContains, astOf(self), astOf(value)))
}

// Union concatenates two sequences of the same item category.
func Union[Item any, S SequenceOf[Item]](self, other Expr[S]) Expr[Stream[Item]] {
	return exprOf[Stream[Item]](newTerm(tagUnion, astOf(self), astOf(other)))
}
