package unit

import (
	"fmt"
	"io"

	"github.com/yanet-platform/matchtable/key"
)

// intValue is the Dumpable payload used across this package's tests.
type intValue int

func (v intValue) Dump(w io.Writer) {
	fmt.Fprintf(w, "%d", int(v))
}

// fakePHV is a minimal key.PHV for tests: field presence and bytes are
// supplied directly rather than parsed from a real packet.
type fakePHV struct {
	valid map[key.FieldID]bool
	bytes map[key.FieldID][]byte
}

func (p fakePHV) Valid(field key.FieldID) bool {
	return p.valid[field]
}

func (p fakePHV) Bytes(field key.FieldID) []byte {
	return p.bytes[field]
}
