// Package stats reports the static memory footprint of a match unit's
// dense entry array, as the read-only diagnostic of SPEC_FULL.md §4.9 for
// sizing tables against a memory budget.
package stats

import (
	"fmt"

	"github.com/c2h5oh/datasize"
)

// Footprint is a read-only report of how much memory a unit's backing
// array occupies, independent of how many of its slots are currently live.
type Footprint struct {
	Entries    uint32
	EntrySize  uint64
	TotalBytes datasize.ByteSize
}

// ForEntryArray computes the Footprint of a dense array of n entries, each
// entrySize bytes wide.
func ForEntryArray(n uint32, entrySize uint64) Footprint {
	return Footprint{
		Entries:    n,
		EntrySize:  entrySize,
		TotalBytes: datasize.ByteSize(uint64(n) * entrySize),
	}
}

// String renders the footprint the way a capacity log line would: entry
// count, per-entry width, and a human-readable total.
func (f Footprint) String() string {
	return fmt.Sprintf("%s (%s/entry x %d)", f.TotalBytes, datasize.ByteSize(f.EntrySize), f.Entries)
}
