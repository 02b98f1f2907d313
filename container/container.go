// Package container implements ByteContainer: an owned, growable sequence of
// octets used as the canonical match-table key and mask representation.
package container

import (
	"bytes"
	"encoding/hex"
	"hash/maphash"
)

var seed = maphash.MakeSeed()

// ByteContainer is an owned, growable byte buffer.
type ByteContainer struct {
	buf []byte
}

// New returns an empty ByteContainer with capacity preallocated.
func New(capacity int) *ByteContainer {
	return &ByteContainer{buf: make([]byte, 0, capacity)}
}

// FromBytes returns a ByteContainer that owns a copy of p.
func FromBytes(p []byte) *ByteContainer {
	c := &ByteContainer{buf: make([]byte, len(p))}
	copy(c.buf, p)
	return c
}

// Reset truncates the container to length zero without releasing capacity.
func (c *ByteContainer) Reset() {
	c.buf = c.buf[:0]
}

// Append appends p's bytes to the container.
func (c *ByteContainer) Append(p []byte) {
	c.buf = append(c.buf, p...)
}

// AppendByte appends a single byte to the container.
func (c *ByteContainer) AppendByte(b byte) {
	c.buf = append(c.buf, b)
}

// Len returns the number of bytes currently stored.
func (c *ByteContainer) Len() int {
	return len(c.buf)
}

// Bytes returns the underlying byte slice. Callers must not retain it past
// the next mutating call.
func (c *ByteContainer) Bytes() []byte {
	return c.buf
}

// At returns the byte at index i.
func (c *ByteContainer) At(i int) byte {
	return c.buf[i]
}

// Equal reports whether c and other hold identical bytes.
func (c *ByteContainer) Equal(other *ByteContainer) bool {
	return bytes.Equal(c.buf, other.buf)
}

// Hash returns a hash of the container's current contents, suitable for use
// in hash tables that cannot use Key's string projection directly.
func (c *ByteContainer) Hash() uint64 {
	return maphash.Bytes(seed, c.buf)
}

// Key returns a copy of the container's bytes as a string, suitable for use
// as a Go map key.
func (c *ByteContainer) Key() string {
	return string(c.buf)
}

// Hex renders the container's bytes as lowercase hexadecimal.
func (c *ByteContainer) Hex() string {
	return hex.EncodeToString(c.buf)
}

// Clone returns a deep copy of c.
func (c *ByteContainer) Clone() *ByteContainer {
	return FromBytes(c.buf)
}
