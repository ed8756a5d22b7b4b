package reql

// String family - kept from teacher's query_string.go/query.go string
// helpers, re-pointed at the new tags. Not named in spec.md's
// non-exhaustive table but not excluded by any Non-goal either.

// Match tests self against a regular expression, returning an object with
// match details or Null on no match.
func Match(self Expr[String], pattern Expr[String]) Expr[Any] {
	return exprOf[Any](newTerm(tagMatch, astOf(self), astOf(pattern)))
}

// Upcase returns self with every character upper-cased.
func Upcase(self Expr[String]) Expr[String] {
	return exprOf[String](newTerm(tagUpcase, astOf(self)))
}

// Downcase returns self with every character lower-cased.
func Downcase(self Expr[String]) Expr[String] {
	return exprOf[String](newTerm(tagDowncase, astOf(self)))
}
