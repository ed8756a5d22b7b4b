package reql

// Secondary index management - supplemented from original_source/ per
// SPEC_FULL §4: spec.md's component table names "secondary indexes" as an
// in-scope family, but its non-exhaustive §4.B table doesn't spell out
// these operators. Grounded on enums.rs's tag table and typed_query.rs's
// IsTable-gated method style.

// IndexCreate creates a secondary index. If fn is nil the index is built
// from the attribute named by name directly; otherwise fn computes the
// indexed value from each row, mirroring teacher's
// `IndexCreate(name string, function interface{})` nil-checked signature.
func IndexCreate(self Expr[Table], name Expr[String], fn *Expr[Function[Object, Any]]) Expr[Object] {
	if fn == nil {
		return exprOf[Object](newTerm(tagIndexCreate, astOf(self), astOf(name)))
	}
	return exprOf[Object](newTerm(tagIndexCreate, astOf(self), astOf(name), astOf(*fn)))
}

// IndexDrop removes a secondary index.
func IndexDrop(self Expr[Table], name Expr[String]) Expr[Object] {
	return exprOf[Object](newTerm(tagIndexDrop, astOf(self), astOf(name)))
}

// IndexList lists every secondary index on a table.
func IndexList(self Expr[Table]) Expr[Array[String]] {
	return exprOf[Array[String]](newTerm(tagIndexList, astOf(self)))
}

// IndexStatus reports build status for the named indexes (all of them if
// none given).
func IndexStatus(self Expr[Table], names ...Expr[String]) Expr[Array[Object]] {
	args := make([]any, 0, len(names)+1)
	args = append(args, astOf(self))
	for _, n := range names {
		args = append(args, astOf(n))
	}
	return exprOf[Array[Object]](Term{Tag: tagIndexStatus, Args: args})
}

// IndexWait blocks until the named indexes (all of them if none given)
// finish building.
func IndexWait(self Expr[Table], names ...Expr[String]) Expr[Array[Object]] {
	args := make([]any, 0, len(names)+1)
	args = append(args, astOf(self))
	for _, n := range names {
		args = append(args, astOf(n))
	}
	return exprOf[Array[Object]](Term{Tag: tagIndexWait, Args: args})
}

// IndexRename renames a secondary index.
func IndexRename(self Expr[Table], oldName, newName Expr[String]) Expr[Object] {
	return exprOf[Object](newTerm(tagIndexRename, astOf(self), astOf(oldName), astOf(newName)))
}
