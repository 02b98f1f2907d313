// Package handle implements the HandleAllocator described in the match-table
// engine's design: a dense, amortized-O(1) allocator of small unsigned
// integers over [0, size).
package handle

import (
	"errors"

	"github.com/yanet-platform/matchtable/bitset"
)

// ErrFull is returned by Acquire when every index in [0, size) is live.
var ErrFull = errors.New("handle: allocator full")

// ErrInvalid is returned by Release when the given index is not currently
// live.
var ErrInvalid = errors.New("handle: index not live")

// Allocator hands out and reclaims indices in [0, size), backed by a dense
// bitmap for O(1) validity checks and a LIFO free-list for O(1) reuse.
type Allocator struct {
	size  uint32
	live  *bitset.Bitset
	free  []uint32
	next  uint32
	count uint32
}

// New returns an Allocator over [0, size).
func New(size uint32) *Allocator {
	return &Allocator{
		size: size,
		live: bitset.New(size),
	}
}

// Size returns the allocator's configured capacity.
func (a *Allocator) Size() uint32 {
	return a.size
}

// Len returns the number of currently live indices.
func (a *Allocator) Len() uint32 {
	return a.count
}

// Acquire reserves and returns a fresh index, reusing a released one when
// available.
func (a *Allocator) Acquire() (uint32, error) {
	var idx uint32

	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		if a.next >= a.size {
			return 0, ErrFull
		}
		idx = a.next
		a.next++
	}

	a.live.Set(idx)
	a.count++
	return idx, nil
}

// Release returns idx to the free pool. It fails if idx is not currently
// live.
func (a *Allocator) Release(idx uint32) error {
	if !a.IsValid(idx) {
		return ErrInvalid
	}

	a.live.Clear(idx)
	a.count--
	a.free = append(a.free, idx)
	return nil
}

// IsValid reports whether idx is currently live.
func (a *Allocator) IsValid(idx uint32) bool {
	if idx >= a.size {
		return false
	}
	return a.live.IsSet(idx)
}

// Traverse calls fn for every live index, in ascending order, stopping early
// if fn returns false.
//
// Ascending order is a stable, deterministic refinement of the spec's
// "unspecified but stable between mutations" requirement.
func (a *Allocator) Traverse(fn func(uint32) bool) {
	a.live.Traverse(fn)
}
