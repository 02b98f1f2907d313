package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanet-platform/matchtable/container"
)

type fakePHV struct {
	valid  map[FieldID]bool
	bytes  map[FieldID][]byte
}

func (p fakePHV) Valid(field FieldID) bool    { return p.valid[field] }
func (p fakePHV) Bytes(field FieldID) []byte { return p.bytes[field] }

const (
	fieldV1 FieldID = iota
	fieldF1
	fieldV2
	fieldF2
)

func Test_BuilderValidFieldsFirstThenOthersInDeclarationOrder(t *testing.T) {
	b := NewBuilder([]FieldSpec{
		{ID: fieldV1, IsValid: true},
		{ID: fieldF1, Nbytes: 1},
		{ID: fieldV2, IsValid: true},
		{ID: fieldF2, Nbytes: 1},
	})
	require.Equal(t, 4, b.NBytesKey())

	phv := fakePHV{
		valid: map[FieldID]bool{fieldV1: true, fieldV2: false},
		bytes: map[FieldID][]byte{
			fieldF1: {0xf1},
			fieldF2: {0xf2},
		},
	}

	out := container.New(4)
	require.NoError(t, b.Build(phv, out))

	assert.Equal(t, []byte{1, 0, 0xf1, 0xf2}, out.Bytes())
}

func Test_BuilderResetsOutBetweenCalls(t *testing.T) {
	b := NewBuilder([]FieldSpec{{ID: fieldF1, Nbytes: 2}})
	phv := fakePHV{bytes: map[FieldID][]byte{fieldF1: {1, 2}}}

	out := container.New(2)
	require.NoError(t, b.Build(phv, out))
	require.NoError(t, b.Build(phv, out))

	assert.Equal(t, []byte{1, 2}, out.Bytes())
}

func Test_KindString(t *testing.T) {
	assert.Equal(t, "EXACT", Exact.String())
	assert.Equal(t, "LPM", LPM.String())
	assert.Equal(t, "TERNARY", Ternary.String())
	assert.Equal(t, "VALID", Valid.String())
}
