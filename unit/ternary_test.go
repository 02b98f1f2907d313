package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanet-platform/matchtable/key"
)

const fieldTernaryDst key.FieldID = 200

func ternaryFields() []key.FieldSpec {
	return []key.FieldSpec{
		{ID: fieldTernaryDst, Nbytes: 4},
	}
}

func ternaryPHV(dst []byte) fakePHV {
	return fakePHV{
		valid: map[key.FieldID]bool{},
		bytes: map[key.FieldID][]byte{fieldTernaryDst: dst},
	}
}

func Test_TernaryUnitMatchesMaskedField(t *testing.T) {
	u := NewTernaryUnit[intValue](4, ternaryFields(), nil)

	_, err := u.AddEntry([]key.Param{
		{Kind: key.Ternary, Key: []byte{10, 0, 0, 0}, Mask: []byte{255, 0, 0, 0}},
	}, intValue(1), 0)
	require.NoError(t, err)

	_, value, ok := u.Lookup(ternaryPHV([]byte{10, 99, 99, 99}))
	require.True(t, ok)
	assert.EqualValues(t, 1, *value)

	_, _, ok = u.Lookup(ternaryPHV([]byte{11, 0, 0, 0}))
	assert.False(t, ok)
}

func Test_TernaryUnitHigherPriorityWinsOnOverlap(t *testing.T) {
	u := NewTernaryUnit[intValue](4, ternaryFields(), nil)

	_, err := u.AddEntry([]key.Param{
		{Kind: key.Ternary, Key: []byte{10, 0, 0, 0}, Mask: []byte{255, 0, 0, 0}},
	}, intValue(1), 5)
	require.NoError(t, err)
	_, err = u.AddEntry([]key.Param{
		{Kind: key.Ternary, Key: []byte{10, 20, 0, 0}, Mask: []byte{255, 255, 0, 0}},
	}, intValue(2), 10)
	require.NoError(t, err)

	_, value, ok := u.Lookup(ternaryPHV([]byte{10, 20, 5, 5}))
	require.True(t, ok)
	assert.EqualValues(t, 2, *value)
}

func Test_TernaryUnitPriorityZeroEntryStillMatches(t *testing.T) {
	u := NewTernaryUnit[intValue](4, ternaryFields(), nil)

	_, err := u.AddEntry([]key.Param{
		{Kind: key.Ternary, Key: []byte{10, 0, 0, 0}, Mask: []byte{255, 0, 0, 0}},
	}, intValue(7), 0)
	require.NoError(t, err)

	_, value, ok := u.Lookup(ternaryPHV([]byte{10, 1, 1, 1}))
	require.True(t, ok)
	assert.EqualValues(t, 7, *value)
}

func Test_TernaryUnitTieBreaksToFirstEncountered(t *testing.T) {
	u := NewTernaryUnit[intValue](4, ternaryFields(), nil)

	h1, err := u.AddEntry([]key.Param{
		{Kind: key.Ternary, Key: []byte{10, 0, 0, 0}, Mask: []byte{255, 0, 0, 0}},
	}, intValue(1), 3)
	require.NoError(t, err)
	_, err = u.AddEntry([]key.Param{
		{Kind: key.Ternary, Key: []byte{0, 0, 0, 0}, Mask: []byte{0, 0, 0, 0}},
	}, intValue(2), 3)
	require.NoError(t, err)

	got, _, ok := u.Lookup(ternaryPHV([]byte{10, 0, 0, 0}))
	require.True(t, ok)
	assert.Equal(t, h1, got)
}

func Test_TernaryUnitCanonicalizesKeyAgainstMaskOnInsert(t *testing.T) {
	u := NewTernaryUnit[intValue](4, ternaryFields(), nil)

	// The key's low byte carries a bit the mask does not cover; it must be
	// cleared rather than leak into the stored entry.
	h, err := u.AddEntry([]key.Param{
		{Kind: key.Ternary, Key: []byte{10, 0, 0, 0xff}, Mask: []byte{255, 0, 0, 0}},
	}, intValue(1), 0)
	require.NoError(t, err)

	v, err := u.GetValue(h)
	require.NoError(t, err)
	assert.EqualValues(t, 1, *v)

	_, _, ok := u.Lookup(ternaryPHV([]byte{10, 5, 5, 5}))
	assert.True(t, ok)
}

func Test_TernaryUnitRejectsMaskWidthMismatch(t *testing.T) {
	u := NewTernaryUnit[intValue](4, ternaryFields(), nil)
	_, err := u.AddEntry([]key.Param{
		{Kind: key.Ternary, Key: []byte{10, 0, 0, 0}, Mask: []byte{255}},
	}, intValue(1), 0)
	assert.ErrorIs(t, err, ErrBadMatchKey)
}

func Test_TernaryUnitDeleteThenLookupMisses(t *testing.T) {
	u := NewTernaryUnit[intValue](4, ternaryFields(), nil)
	h, err := u.AddEntry([]key.Param{
		{Kind: key.Ternary, Key: []byte{10, 0, 0, 0}, Mask: []byte{255, 0, 0, 0}},
	}, intValue(1), 0)
	require.NoError(t, err)

	require.NoError(t, u.DeleteEntry(h))

	_, _, ok := u.Lookup(ternaryPHV([]byte{10, 0, 0, 0}))
	assert.False(t, ok)
}

func Test_TernaryUnitLPMParamProducesPrefixMask(t *testing.T) {
	u := NewTernaryUnit[intValue](4, ternaryFields(), nil)
	_, err := u.AddEntry([]key.Param{
		{Kind: key.LPM, Key: []byte{10, 0, 0, 0}, PrefixLength: 8},
	}, intValue(1), 0)
	require.NoError(t, err)

	_, _, ok := u.Lookup(ternaryPHV([]byte{10, 255, 255, 255}))
	assert.True(t, ok)
	_, _, ok = u.Lookup(ternaryPHV([]byte{11, 0, 0, 0}))
	assert.False(t, ok)
}
