package reql

// DbOf references a database by name, the root of almost every query
// tree. Named DbOf rather than Db because the Db category type already
// owns that identifier.
//
// Example usage:
//
//	q := reql.TableOf(reql.DbOf(reql.Str("marvel")), reql.Str("heroes"))
func DbOf(name Expr[String]) Expr[Db] {
	return exprOf[Db](newTerm(tagDB, astOf(name)))
}

// DbCreate creates a database with the given name.
func DbCreate(name Expr[String]) Expr[Object] {
	return exprOf[Object](newTerm(tagDBCreate, astOf(name)))
}

// DbDrop deletes the given database.
func DbDrop(name Expr[String]) Expr[Object] {
	return exprOf[Object](newTerm(tagDBDrop, astOf(name)))
}

// DbList lists every database on the server.
func DbList() Expr[Array[String]] {
	return exprOf[Array[String]](newTerm(tagDBList))
}

// TableOf selects a table from a database. Named TableOf rather than
// Table because the Table category type already owns that identifier -
// Go has no separate type/value namespaces the way Rust's trait-and-impl
// split does. Gated on isDb so it cannot be called on, say, a Table or
// Object expression.
func TableOf[C isDb](self Expr[C], name Expr[String]) Expr[Table] {
	return exprOf[Table](newTerm(tagTable, astOf(self), astOf(name)))
}

// TableCreate creates a table in the given database.
func TableCreate[C isDb](self Expr[C], name Expr[String]) Expr[Object] {
	return exprOf[Object](newTerm(tagTableCreate, astOf(self), astOf(name)))
}

// TableDrop removes a table from the given database.
func TableDrop[C isDb](self Expr[C], name Expr[String]) Expr[Object] {
	return exprOf[Object](newTerm(tagTableDrop, astOf(self), astOf(name)))
}

// TableList lists every table in the given database.
func TableList[C isDb](self Expr[C]) Expr[Array[String]] {
	return exprOf[Array[String]](newTerm(tagTableList, astOf(self)))
}
