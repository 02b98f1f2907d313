package unit

import (
	"io"

	"github.com/yanet-platform/matchtable/key"
)

// MatchUnit is the shared contract of §4.4, implemented by ExactUnit,
// LPMUnit, and TernaryUnit. V is the caller's opaque payload type.
type MatchUnit[V Dumpable] interface {
	// Lookup builds the canonical key from phv and dispatches to the
	// discipline-specific lookup. It returns the matching entry's external
	// handle and a pointer to its value, or ok == false if nothing matched.
	Lookup(phv key.PHV) (h uint64, value *V, ok bool)

	// AddEntry builds a canonical key from params (whose admissible Kinds
	// and assembly order are discipline-specific) and inserts value at
	// priority. It returns the new entry's external handle.
	AddEntry(params []key.Param, value V, priority uint32) (uint64, error)

	// DeleteEntry consumes the slot identified by h.
	DeleteEntry(h uint64) error

	// ModifyEntry overwrites the value stored at h in place.
	ModifyEntry(h uint64, value V) error

	// GetValue returns a pointer to the value stored at h.
	GetValue(h uint64) (*V, error)

	// Dump writes one line per live entry to w, in the format of §6.
	Dump(w io.Writer) error

	// NumEntries returns the number of currently live entries.
	NumEntries() uint32
}
