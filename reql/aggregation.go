package reql

// Aggregation family - kept from teacher's query_aggregation.go, re-pointed
// at the newer group/reduce tags. The deprecated GROUPED_MAP_REDUCE tag
// from the old protocol has no entry in enums.rs at all, confirming the
// server itself has dropped it; we do not carry it forward.

// Group partitions a sequence by the value of one or more field-name
// expressions, for use with Reduce/Sum/Avg/Min/Max below.
func Group[Item any, S SequenceOf[Item]](self Expr[S], fields ...Expr[String]) Expr[Any] {
	args := make([]any, 0, len(fields)+1)
	args = append(args, astOf(self))
	for _, f := range fields {
		args = append(args, astOf(f))
	}
	return exprOf[Any](Term{Tag: tagGroup, Args: args})
}

// Reduce folds a sequence down to a single value with a two-argument
// accumulator function.
func Reduce[Item any, S SequenceOf[Item]](self Expr[S], fn Expr[Function[[2]any, Item]]) Expr[Item] {
	return exprOf[Item](newTerm(tagReduce, astOf(self), astOf(fn)))
}

// Sum / Avg / Min / Max aggregate a sequence's numeric field (or the
// elements themselves, if fieldOrNil is nil).
func Sum[Item any, S SequenceOf[Item]](self Expr[S], fieldOrNil *Expr[String]) Expr[Number] {
	return aggregateNumeric(tagSum, self, fieldOrNil)
}

func Avg[Item any, S SequenceOf[Item]](self Expr[S], fieldOrNil *Expr[String]) Expr[Number] {
	return aggregateNumeric(tagAvg, self, fieldOrNil)
}

func Min[Item any, S SequenceOf[Item]](self Expr[S], fieldOrNil *Expr[String]) Expr[Number] {
	return aggregateNumeric(tagMin, self, fieldOrNil)
}

func Max[Item any, S SequenceOf[Item]](self Expr[S], fieldOrNil *Expr[String]) Expr[Number] {
	return aggregateNumeric(tagMax, self, fieldOrNil)
}

func aggregateNumeric[Item any, S SequenceOf[Item]](tag int, self Expr[S], fieldOrNil *Expr[String]) Expr[Number] {
	if fieldOrNil == nil {
		return exprOf[Number](newTerm(tag, astOf(self)))
	}
	return exprOf[Number](newTerm(tag, astOf(self), astOf(*fieldOrNil)))
}
