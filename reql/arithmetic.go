package reql

// CanAdd mirrors spec.md's CanAdd<Other> capability: Number+Number->Number,
// String+String->String, Array+Array->Array<Any>, Any+_->Any. Go cannot
// express "output category depends on which two concrete types
// instantiated this constraint" as a single generic function signature the
// way Rust's associated-type trick does, so each legal pairing gets its own
// named function instead of one overloaded `Add`.

func AddNumber(a, b Expr[Number]) Expr[Number] {
	return exprOf[Number](newTerm(tagAdd, astOf(a), astOf(b)))
}

func AddString(a, b Expr[String]) Expr[String] {
	return exprOf[String](newTerm(tagAdd, astOf(a), astOf(b)))
}

func AddArray[Item any](a, b Expr[Array[Item]]) Expr[Array[Any]] {
	return exprOf[Array[Any]](newTerm(tagAdd, astOf(a), astOf(b)))
}

func AddAny[C any](a Expr[Any], b Expr[C]) Expr[Any] {
	return exprOf[Any](newTerm(tagAdd, astOf(a), astOf(b)))
}

func SubNumber(a, b Expr[Number]) Expr[Number] {
	return exprOf[Number](newTerm(tagSub, astOf(a), astOf(b)))
}

func MulNumber(a, b Expr[Number]) Expr[Number] {
	return exprOf[Number](newTerm(tagMul, astOf(a), astOf(b)))
}

func DivNumber(a, b Expr[Number]) Expr[Number] {
	return exprOf[Number](newTerm(tagDiv, astOf(a), astOf(b)))
}

func ModNumber(a, b Expr[Number]) Expr[Number] {
	return exprOf[Number](newTerm(tagMod, astOf(a), astOf(b)))
}

// Eq / Ne are gated by isEqualComparable and take two operands of the same
// category, so an Any operand pairs only with another Any operand; an Any
// compared with, say, a String does not compile.
func Eq[C isEqualComparable](a, b Expr[C]) Expr[Bool] {
	return exprOf[Bool](newTerm(tagEq, astOf(a), astOf(b)))
}

func Ne[C isEqualComparable](a, b Expr[C]) Expr[Bool] {
	return exprOf[Bool](newTerm(tagNe, astOf(a), astOf(b)))
}

func Lt(a, b Expr[Number]) Expr[Bool] { return exprOf[Bool](newTerm(tagLt, astOf(a), astOf(b))) }
func Le(a, b Expr[Number]) Expr[Bool] { return exprOf[Bool](newTerm(tagLe, astOf(a), astOf(b))) }
func Gt(a, b Expr[Number]) Expr[Bool] { return exprOf[Bool](newTerm(tagGt, astOf(a), astOf(b))) }
func Ge(a, b Expr[Number]) Expr[Bool] { return exprOf[Bool](newTerm(tagGe, astOf(a), astOf(b))) }

func Not(a Expr[Bool]) Expr[Bool] { return exprOf[Bool](newTerm(tagNot, astOf(a))) }
func And(a, b Expr[Bool]) Expr[Bool] {
	return exprOf[Bool](newTerm(tagAnd, astOf(a), astOf(b)))
}
func Or(a, b Expr[Bool]) Expr[Bool] {
	return exprOf[Bool](newTerm(tagOr, astOf(a), astOf(b)))
}
