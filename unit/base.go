// Package unit implements MatchUnitBase (§4.4) and the three concrete match
// units — ExactUnit, LPMUnit, TernaryUnit — built on top of it.
package unit

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/yanet-platform/matchtable/handle"
)

// handleMask isolates the internal-handle half of an external handle. The
// source this engine is extracted from used "&&" here, a boolean-and typo
// for the bitwise "&" a mask extraction requires; this implementation uses
// a true bitwise AND.
const handleMask = 0xffffffff

// joinHandle packs a slot's version and internal index into the external
// handle callers hold: (version << 32) | internal.
func joinHandle(internal, version uint32) uint64 {
	return (uint64(version) << 32) | uint64(internal)
}

// splitHandle unpacks an external handle into its internal index and
// embedded version.
func splitHandle(h uint64) (internal, version uint32) {
	internal = uint32(h & handleMask)
	version = uint32(h >> 32)
	return internal, version
}

// Base holds the state and protocol common to every match unit: capacity,
// canonical key width, handle allocation, and versioned handle
// encoding/decoding. It does not know about any particular matching
// discipline.
type Base struct {
	size      uint32
	nbytesKey int
	handles   *handle.Allocator
	log       *zap.SugaredLogger
}

// NewBase returns a Base configured for size entries of nbytesKey canonical
// bytes each. A nil logger is replaced with a no-op logger.
func NewBase(size uint32, nbytesKey int, log *zap.SugaredLogger) Base {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return Base{
		size:      size,
		nbytesKey: nbytesKey,
		handles:   handle.New(size),
		log:       log,
	}
}

// Size returns the unit's configured capacity.
func (b *Base) Size() uint32 {
	return b.size
}

// NBytesKey returns the canonical key width in bytes.
func (b *Base) NBytesKey() int {
	return b.nbytesKey
}

// NumEntries returns the number of currently live entries.
func (b *Base) NumEntries() uint32 {
	return b.handles.Len()
}

// acquire reserves a fresh internal handle, translating allocator exhaustion
// into ErrTableFull.
func (b *Base) acquire() (uint32, error) {
	internal, err := b.handles.Acquire()
	if err != nil {
		b.log.Debugw("add_entry failed: table full", "size", b.size)
		return 0, ErrTableFull
	}
	return internal, nil
}

// release returns an internal handle to the free pool, translating an
// already-free index into ErrInternal (this should only happen on an
// internal bookkeeping bug, since callers check validity before calling
// release).
func (b *Base) release(internal uint32) error {
	if err := b.handles.Release(internal); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}

// Traverse calls fn for every live internal handle, in a stable,
// deterministic order, stopping early if fn returns false.
func (b *Base) Traverse(fn func(uint32) bool) {
	b.handles.Traverse(fn)
}

// Logger returns the unit's logger.
func (b *Base) Logger() *zap.SugaredLogger {
	return b.log
}
