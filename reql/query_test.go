package reql

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableOfSerializesDbThenTable(t *testing.T) {
	q := TableOf(DbOf(Str("marvel")), Str("heroes"))
	b, err := json.Marshal(q)
	require.NoError(t, err)
	assert.JSONEq(t, `[15, [[14, ["marvel"]], "heroes"]]`, string(b))
}

func TestGetAllSplicesKeysIntoPositionalArgs(t *testing.T) {
	table := TableOf(DbOf(Str("marvel")), Str("heroes"))
	q := GetAll(table, Str("flash"), Str("quicksilver"))
	b, err := json.Marshal(q)
	require.NoError(t, err)

	var decoded []json.RawMessage
	require.NoError(t, json.Unmarshal(b, &decoded))
	var tag int
	require.NoError(t, json.Unmarshal(decoded[0], &tag))
	assert.Equal(t, tagGetAll, tag)

	var args []json.RawMessage
	require.NoError(t, json.Unmarshal(decoded[1], &args))
	require.Len(t, args, 3)
	assert.JSONEq(t, `"flash"`, string(args[1]))
	assert.JSONEq(t, `"quicksilver"`, string(args[2]))
}

func TestGetAllArgsFormUsesArgsTagAsSoleTrailingOperand(t *testing.T) {
	table := TableOf(DbOf(Str("marvel")), Str("heroes"))
	keys := Arr(Str("flash"), Str("quicksilver"))
	q := GetAllArgs(table, keys)
	b, err := json.Marshal(q)
	require.NoError(t, err)

	var decoded []json.RawMessage
	require.NoError(t, json.Unmarshal(b, &decoded))
	var args []json.RawMessage
	require.NoError(t, json.Unmarshal(decoded[1], &args))
	require.Len(t, args, 2)

	var argsTerm []json.RawMessage
	require.NoError(t, json.Unmarshal(args[1], &argsTerm))
	var argsTag int
	require.NoError(t, json.Unmarshal(argsTerm[0], &argsTag))
	assert.Equal(t, tagArgs, argsTag)
}

func TestInIndexSetsIndexOptionOnGetAll(t *testing.T) {
	table := TableOf(DbOf(Str("marvel")), Str("heroes"))
	q := InIndex(GetAll(table, Str("flash")), Str("power"))
	b, err := json.Marshal(q)
	require.NoError(t, err)

	var decoded []json.RawMessage
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Len(t, decoded, 3)
	var opts map[string]string
	require.NoError(t, json.Unmarshal(decoded[2], &opts))
	assert.Equal(t, "power", opts["index"])
}

func TestBetweenAcceptsMinMaxSentinels(t *testing.T) {
	table := TableOf(DbOf(Str("marvel")), Str("heroes"))
	q := Between(table, MinValExpr(), MaxValExpr())
	b, err := json.Marshal(q)
	require.NoError(t, err)

	var decoded []json.RawMessage
	require.NoError(t, json.Unmarshal(b, &decoded))
	var tag int
	require.NoError(t, json.Unmarshal(decoded[0], &tag))
	assert.Equal(t, tagBetween, tag)
}

func TestFilterUsesFilterTagAndSameCategoryAsReceiver(t *testing.T) {
	table := TableOf(DbOf(Str("marvel")), Str("heroes"))
	selection := GetAll(table, Str("flash"))
	predicate := Func1(func(row Expr[Object]) Expr[Bool] {
		return Eq(AnyOf(GetField(row, Str("team"))), AnyOf(Str("justice league")))
	})
	filtered := Filter(selection, predicate)

	b, err := json.Marshal(filtered)
	require.NoError(t, err)
	var decoded []json.RawMessage
	require.NoError(t, json.Unmarshal(b, &decoded))
	var tag int
	require.NoError(t, json.Unmarshal(decoded[0], &tag))
	assert.Equal(t, tagFilter, tag)
}

func TestInsertAppliesWriteOptions(t *testing.T) {
	table := TableOf(DbOf(Str("marvel")), Str("heroes"))
	doc := Obj(map[string]Expr[Any]{"id": AnyOf(Str("flash"))})
	q := Insert(table, doc, WriteOptions{Durability: "soft", ReturnChanges: true})

	b, err := json.Marshal(q)
	require.NoError(t, err)
	var decoded []json.RawMessage
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Len(t, decoded, 3)
	var opts map[string]any
	require.NoError(t, json.Unmarshal(decoded[2], &opts))
	assert.Equal(t, "soft", opts["durability"])
	assert.Equal(t, true, opts["return_changes"])
}
