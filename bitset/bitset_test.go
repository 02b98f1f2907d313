package bitset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_BitsetSetIsSet(t *testing.T) {
	b := New(128)

	assert.False(t, b.IsSet(0))
	b.Set(0)
	b.Set(42)
	assert.True(t, b.IsSet(0))
	assert.True(t, b.IsSet(42))
	assert.False(t, b.IsSet(1))
	assert.Equal(t, uint32(2), b.Count())
}

func Test_BitsetClear(t *testing.T) {
	b := New(128)
	b.Set(5)
	b.Clear(5)
	assert.False(t, b.IsSet(5))
	assert.Equal(t, uint32(0), b.Count())
}

func Test_BitsetTraverse(t *testing.T) {
	b := New(600)
	b.Set(0)
	b.Set(42)
	b.Set(512)

	var bits []uint32
	b.Traverse(func(idx uint32) bool {
		bits = append(bits, idx)
		return true
	})

	assert.Equal(t, []uint32{0, 42, 512}, bits)
}

func Test_BitsetTraverseStopsEarly(t *testing.T) {
	b := New(600)
	b.Set(42)
	b.Set(84)
	b.Set(512)

	var bits []uint32
	b.Traverse(func(idx uint32) bool {
		bits = append(bits, idx)
		return false
	})

	assert.Equal(t, []uint32{42}, bits)
}

func Test_BitsetPanicsOutOfRange(t *testing.T) {
	b := New(64)

	assert.NotPanics(t, func() { b.Set(63) })
	assert.Panics(t, func() { b.Set(64) })
}
