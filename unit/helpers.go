package unit

import (
	"encoding/hex"
	"io"
	"os"
	"unsafe"

	"golang.org/x/term"

	"github.com/yanet-platform/matchtable/container"
)

// newScratch allocates a fresh, stack-friendly key buffer for a single
// Lookup call. Allocating per call (rather than caching a shared buffer on
// the unit) means concurrent or reentrant lookups from different goroutines
// never alias a buffer; see SPEC_FULL.md §5 and §9.
func newScratch(capacity int) *container.ByteContainer {
	return container.New(capacity)
}

// hexString renders key bytes the way §6's dump format requires.
func hexString(key []byte) string {
	return hex.EncodeToString(key)
}

const hexColor = "\x1b[36m" // cyan, matching zapcore's own cosmetic level colors
const colorReset = "\x1b[0m"

// colorizeHex wraps hex rendering in an ANSI color when w is a terminal;
// this is purely cosmetic dump formatting, not part of the §6 wire format.
func colorizeHex(w io.Writer, hexStr string) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return hexColor + hexStr + colorReset
	}
	return hexStr
}

func exactEntrySize[V Dumpable]() uint64 {
	return uint64(unsafe.Sizeof(exactEntry[V]{}))
}

func lpmEntrySize[V Dumpable]() uint64 {
	return uint64(unsafe.Sizeof(lpmEntry[V]{}))
}

func ternaryEntrySize[V Dumpable]() uint64 {
	return uint64(unsafe.Sizeof(ternaryEntry[V]{}))
}
