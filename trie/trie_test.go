package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_TrieInsertLookupExact(t *testing.T) {
	tr := New()
	key := []byte{0xc0, 0xa8, 0x00, 0x00}

	_, had := tr.Insert(key, 32, 1)
	require.False(t, had)

	got, ok := tr.Lookup(key)
	require.True(t, ok)
	assert.Equal(t, uint32(1), got)
}

func Test_TrieLongestPrefixWins(t *testing.T) {
	tr := New()
	// 10.0.0.0/8 -> A (100), 10.1.0.0/16 -> B (200)
	_, _ = tr.Insert([]byte{10, 0, 0, 0}, 8, 100)
	_, _ = tr.Insert([]byte{10, 1, 0, 0}, 16, 200)

	got, ok := tr.Lookup([]byte{10, 1, 2, 3})
	require.True(t, ok)
	assert.Equal(t, uint32(200), got)

	got, ok = tr.Lookup([]byte{10, 2, 0, 0})
	require.True(t, ok)
	assert.Equal(t, uint32(100), got)

	_, ok = tr.Lookup([]byte{11, 0, 0, 0})
	assert.False(t, ok)
}

func Test_TrieDefaultRouteZeroBits(t *testing.T) {
	tr := New()
	_, _ = tr.Insert([]byte{0, 0, 0, 0}, 0, 7)

	got, ok := tr.Lookup([]byte{203, 0, 113, 1})
	require.True(t, ok)
	assert.Equal(t, uint32(7), got)
}

func Test_TrieInsertOverwriteReturnsPrevious(t *testing.T) {
	tr := New()
	_, had := tr.Insert([]byte{1, 2}, 16, 10)
	require.False(t, had)

	prev, had := tr.Insert([]byte{1, 2}, 16, 20)
	require.True(t, had)
	assert.Equal(t, uint32(10), prev)

	got, ok := tr.Lookup([]byte{1, 2})
	require.True(t, ok)
	assert.Equal(t, uint32(20), got)
}

func Test_TrieDelete(t *testing.T) {
	tr := New()
	_, _ = tr.Insert([]byte{1, 2, 3, 4}, 32, 5)

	require.True(t, tr.Delete([]byte{1, 2, 3, 4}, 32))
	_, ok := tr.Lookup([]byte{1, 2, 3, 4})
	assert.False(t, ok)

	assert.False(t, tr.Delete([]byte{1, 2, 3, 4}, 32))
}

func Test_TrieTrailingBitsDoNotInfluenceMatch(t *testing.T) {
	tr := New()
	_, _ = tr.Insert([]byte{0b10100000}, 3, 42)

	got, ok := tr.Lookup([]byte{0b10111111})
	require.True(t, ok)
	assert.Equal(t, uint32(42), got)
}

func Test_TrieDeleteNonexistent(t *testing.T) {
	tr := New()
	assert.False(t, tr.Delete([]byte{1}, 8))
}
