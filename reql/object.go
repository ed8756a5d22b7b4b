package reql

// GetField projects a single named field out of an object (or every
// element of an object-shaped sequence). The result is always Any, whether
// or not the field is known to be present; it is not typed NullOr.
func GetField[C isObjectOrObjectSequence](self Expr[C], key Expr[String]) Expr[Any] {
	return exprOf[Any](newTerm(tagGetField, astOf(self), astOf(key)))
}

// G is GetField's short alias, matching teacher's `.Attr`/`.g` convention.
func G[C isObjectOrObjectSequence](self Expr[C], key Expr[String]) Expr[Any] {
	return GetField(self, key)
}

// Pluck returns a new object/sequence-of-objects containing only the named
// fields.
func Pluck[C isObjectOrObjectSequence](self Expr[C], fields ...Expr[String]) Expr[C] {
	args := make([]any, 0, len(fields)+1)
	args = append(args, astOf(self))
	for _, f := range fields {
		args = append(args, astOf(f))
	}
	return exprOf[C](Term{Tag: tagPluck, Args: args})
}

// WithFields is Pluck that, on a sequence, filters out elements that are
// missing any of the named fields entirely rather than returning a partial
// object for them. It accepts the same receivers as Pluck, single objects
// included.
func WithFields[C isObjectOrObjectSequence](self Expr[C], fields ...Expr[String]) Expr[C] {
	args := make([]any, 0, len(fields)+1)
	args = append(args, astOf(self))
	for _, f := range fields {
		args = append(args, astOf(f))
	}
	return exprOf[C](Term{Tag: tagWithFields, Args: args})
}

// Without returns a new object/sequence-of-objects with the named fields
// removed.
func Without[C isObjectOrObjectSequence](self Expr[C], fields ...Expr[String]) Expr[C] {
	args := make([]any, 0, len(fields)+1)
	args = append(args, astOf(self))
	for _, f := range fields {
		args = append(args, astOf(f))
	}
	return exprOf[C](Term{Tag: tagWithout, Args: args})
}

// HasFields reports whether an object has every named field.
func HasFields[C isObjectOrObjectSequence](self Expr[C], fields ...Expr[String]) Expr[Bool] {
	args := make([]any, 0, len(fields)+1)
	args = append(args, astOf(self))
	for _, f := range fields {
		args = append(args, astOf(f))
	}
	return exprOf[Bool](Term{Tag: tagHasFields, Args: args})
}

// Merge shallow-merges other's fields into self, other's values winning on
// conflict.
func Merge(self, other Expr[Object]) Expr[Object] {
	return exprOf[Object](newTerm(tagMerge, astOf(self), astOf(other)))
}

// Keys returns the field names of an object as an array of strings.
func Keys(self Expr[Object]) Expr[Array[String]] {
	return exprOf[Array[String]](newTerm(tagKeys, astOf(self)))
}

// Values returns the field values of an object as an array.
func Values(self Expr[Object]) Expr[Array[Any]] {
	return exprOf[Array[Any]](newTerm(tagValues, astOf(self)))
}
