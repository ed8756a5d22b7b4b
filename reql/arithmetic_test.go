package reql

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddVariantsShareTheAddTag(t *testing.T) {
	numB, err := json.Marshal(AddNumber(Num(1), Num(2)))
	require.NoError(t, err)
	assert.Equal(t, tagAdd, tagOf(t, numB))

	strB, err := json.Marshal(AddString(Str("a"), Str("b")))
	require.NoError(t, err)
	assert.Equal(t, tagAdd, tagOf(t, strB))

	arrB, err := json.Marshal(AddArray(Arr(Num(1)), Arr(Num(2))))
	require.NoError(t, err)
	assert.Equal(t, tagAdd, tagOf(t, arrB))

	anyB, err := json.Marshal(AddAny(AnyOf(Num(1)), Str("b")))
	require.NoError(t, err)
	assert.Equal(t, tagAdd, tagOf(t, anyB))
}

func TestSubMulDivModUseDistinctTags(t *testing.T) {
	subB, err := json.Marshal(SubNumber(Num(5), Num(2)))
	require.NoError(t, err)
	assert.Equal(t, tagSub, tagOf(t, subB))

	mulB, err := json.Marshal(MulNumber(Num(5), Num(2)))
	require.NoError(t, err)
	assert.Equal(t, tagMul, tagOf(t, mulB))

	divB, err := json.Marshal(DivNumber(Num(5), Num(2)))
	require.NoError(t, err)
	assert.Equal(t, tagDiv, tagOf(t, divB))

	modB, err := json.Marshal(ModNumber(Num(5), Num(2)))
	require.NoError(t, err)
	assert.Equal(t, tagMod, tagOf(t, modB))
}

func TestEqAndNeAcceptSameCategoryOrAnyOnBothSides(t *testing.T) {
	eqB, err := json.Marshal(Eq(Str("a"), Str("a")))
	require.NoError(t, err)
	assert.Equal(t, tagEq, tagOf(t, eqB))

	neB, err := json.Marshal(Ne(AnyOf(Str("a")), AnyOf(Num(1))))
	require.NoError(t, err)
	assert.Equal(t, tagNe, tagOf(t, neB))
}

func TestOrderingComparisonsUseDistinctTags(t *testing.T) {
	ltB, err := json.Marshal(Lt(Num(1), Num(2)))
	require.NoError(t, err)
	assert.Equal(t, tagLt, tagOf(t, ltB))

	leB, err := json.Marshal(Le(Num(1), Num(2)))
	require.NoError(t, err)
	assert.Equal(t, tagLe, tagOf(t, leB))

	gtB, err := json.Marshal(Gt(Num(2), Num(1)))
	require.NoError(t, err)
	assert.Equal(t, tagGt, tagOf(t, gtB))

	geB, err := json.Marshal(Ge(Num(2), Num(1)))
	require.NoError(t, err)
	assert.Equal(t, tagGe, tagOf(t, geB))
}

func TestNotAndOrUseDistinctTags(t *testing.T) {
	notB, err := json.Marshal(Not(BoolVal(true)))
	require.NoError(t, err)
	assert.Equal(t, tagNot, tagOf(t, notB))

	andB, err := json.Marshal(And(BoolVal(true), BoolVal(false)))
	require.NoError(t, err)
	assert.Equal(t, tagAnd, tagOf(t, andB))

	orB, err := json.Marshal(Or(BoolVal(true), BoolVal(false)))
	require.NoError(t, err)
	assert.Equal(t, tagOr, tagOf(t, orB))
}
