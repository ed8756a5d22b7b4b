// Package reql implements the query-expression builder for a ReQL-style
// document database client: a statically-typed tree of query terms whose
// input/output categories are checked at build time.
//
// Queries are built from free functions rather than chained methods,
// because Go's generics cannot express "this method is only available when
// the receiver's type parameter satisfies trait X" the way the original
// phantom-typed builder does - there is no method-level `where C: IsDb`.
// The result reads like this instead of a fluent chain:
//
//	q := reql.GetAll(
//		reql.TableOf(reql.DbOf(reql.Str("marvel")), reql.Str("heroes")),
//		reql.Str("speedster"),
//	)
//	q = reql.InIndex(q, reql.Str("power"))
//
// Every category (Db, Table, Object, String, Number, Bool, Null, Any,
// Array[T], Stream[T], Selection[T], SingleSelection[T], Function[Args,Ret])
// only exists at the type level - an Expr[C] never stores C as a runtime
// value. Capability predicates (isDb, isTable, isKey, ...) are unexported
// marker-method interfaces; SequenceOf[Item] is the union-constraint
// stand-in for the associated-type relationship IsSequence::SequenceItem
// used to have.
package reql
