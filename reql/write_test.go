package reql

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertManyTakesArrayOperand(t *testing.T) {
	table := TableOf(DbOf(Str("marvel")), Str("heroes"))
	docs := Arr(
		Obj(map[string]Expr[Any]{"id": AnyOf(Str("flash"))}),
		Obj(map[string]Expr[Any]{"id": AnyOf(Str("quicksilver"))}),
	)
	q := InsertMany(table, docs, WriteOptions{Conflict: "replace"})

	b, err := json.Marshal(q)
	require.NoError(t, err)
	assert.Equal(t, tagInsert, tagOf(t, b))

	var decoded []json.RawMessage
	require.NoError(t, json.Unmarshal(b, &decoded))
	var opts map[string]any
	require.NoError(t, json.Unmarshal(decoded[2], &opts))
	assert.Equal(t, "replace", opts["conflict"])
}

func TestUpdateUsesUpdateTag(t *testing.T) {
	table := TableOf(DbOf(Str("marvel")), Str("heroes"))
	row := Get(table, Str("flash"))
	patch := Obj(map[string]Expr[Any]{"team": AnyOf(Str("justice league"))})
	q := Update(row, patch, WriteOptions{})

	b, err := json.Marshal(q)
	require.NoError(t, err)
	assert.Equal(t, tagUpdate, tagOf(t, b))
}

func TestUpdateWithUsesUpdateTagWithFunctionBody(t *testing.T) {
	table := TableOf(DbOf(Str("marvel")), Str("heroes"))
	row := Get(table, Str("flash"))
	fn := Func1(func(doc Expr[Object]) Expr[Object] {
		return doc
	})
	q := UpdateWith(row, fn, WriteOptions{})

	b, err := json.Marshal(q)
	require.NoError(t, err)
	assert.Equal(t, tagUpdate, tagOf(t, b))
}

func TestReplaceUsesReplaceTag(t *testing.T) {
	table := TableOf(DbOf(Str("marvel")), Str("heroes"))
	row := Get(table, Str("flash"))
	replacement := Obj(map[string]Expr[Any]{"id": AnyOf(Str("flash"))})
	q := Replace(row, replacement, WriteOptions{})

	b, err := json.Marshal(q)
	require.NoError(t, err)
	assert.Equal(t, tagReplace, tagOf(t, b))
}

func TestDeleteUsesDeleteTagAndAppliesReturnChanges(t *testing.T) {
	table := TableOf(DbOf(Str("marvel")), Str("heroes"))
	row := Get(table, Str("flash"))
	q := Delete(row, WriteOptions{ReturnChanges: true})

	b, err := json.Marshal(q)
	require.NoError(t, err)
	assert.Equal(t, tagDelete, tagOf(t, b))

	var decoded []json.RawMessage
	require.NoError(t, json.Unmarshal(b, &decoded))
	var opts map[string]any
	require.NoError(t, json.Unmarshal(decoded[2], &opts))
	assert.Equal(t, true, opts["return_changes"])
}

func TestForEachUsesForEachTag(t *testing.T) {
	table := TableOf(DbOf(Str("marvel")), Str("heroes"))
	selection := GetAll(table, Str("flash"))
	fn := Func1(func(row Expr[Object]) Expr[Object] {
		return row
	})
	q := ForEach(selection, fn)

	b, err := json.Marshal(q)
	require.NoError(t, err)
	assert.Equal(t, tagForEach, tagOf(t, b))
}
