package reql

// WriteOptions mirrors teacher's Insert/Update option shape (durability,
// return_changes, conflict strategy) - the one piece of query_control.go's
// write-query surface worth carrying forward verbatim, since the new
// option-slot refinement mechanism (Term.withOption) works identically
// whether the term is get_all/between or an insert/update.
type WriteOptions struct {
	Durability     string // "soft" or "hard"; empty means server default
	ReturnChanges  bool
	Conflict       string // "error" (default), "replace", or "update"
}

func (o WriteOptions) apply(t Term) Term {
	if o.Durability != "" {
		t = t.withOption("durability", o.Durability)
	}
	if o.ReturnChanges {
		t = t.withOption("return_changes", true)
	}
	if o.Conflict != "" {
		t = t.withOption("conflict", o.Conflict)
	}
	return t
}

// Insert writes one document into a table; InsertMany takes an
// Array<Object> of documents.
func Insert(self Expr[Table], obj Expr[Object], opts WriteOptions) Expr[Object] {
	t := newTerm(tagInsert, astOf(self), astOf(obj))
	return exprOf[Object](opts.apply(t))
}

// InsertMany is Insert's sequence-of-objects overload.
func InsertMany(self Expr[Table], objs Expr[Array[Object]], opts WriteOptions) Expr[Object] {
	t := newTerm(tagInsert, astOf(self), astOf(objs))
	return exprOf[Object](opts.apply(t))
}

// Update applies a static merge-patch object to every row of a selection;
// UpdateWith takes a function computing the patch instead.
func Update[Sel any](self Expr[Sel], patch Expr[Object], opts WriteOptions) Expr[Object] {
	t := newTerm(tagUpdate, astOf(self), astOf(patch))
	return exprOf[Object](opts.apply(t))
}

// UpdateWith applies a per-row transformation function instead of a static
// patch.
func UpdateWith[Sel any](self Expr[Sel], fn Expr[Function[Object, Object]], opts WriteOptions) Expr[Object] {
	t := newTerm(tagUpdate, astOf(self), astOf(fn))
	return exprOf[Object](opts.apply(t))
}

// Replace overwrites every row of a selection with a new document.
func Replace[Sel any](self Expr[Sel], replacement Expr[Object], opts WriteOptions) Expr[Object] {
	t := newTerm(tagReplace, astOf(self), astOf(replacement))
	return exprOf[Object](opts.apply(t))
}

// Delete removes every row of a selection.
func Delete[Sel any](self Expr[Sel], opts WriteOptions) Expr[Object] {
	t := newTerm(tagDelete, astOf(self))
	return exprOf[Object](opts.apply(t))
}

// ForEach runs fn (a write query) once per element of a sequence, folding
// the per-row write-stats objects together - teacher's query_control.go
// ForEach, re-pointed at the new term tag.
func ForEach[Item any, S SequenceOf[Item]](self Expr[S], fn Expr[Function[Item, Object]]) Expr[Object] {
	return exprOf[Object](newTerm(tagForEach, astOf(self), astOf(fn)))
}
