package unit

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/yanet-platform/matchtable/key"
	"github.com/yanet-platform/matchtable/stats"
)

type exactEntry[V Dumpable] struct {
	key     []byte
	value   V
	version uint32
}

// ExactUnit is the hash-indexed match unit of §4.5: a map from canonical key
// to internal handle, plus a dense array of entries.
type ExactUnit[V Dumpable] struct {
	base    Base
	builder *key.Builder
	index   map[string]uint32
	entries []exactEntry[V]
}

// NewExactUnit returns an ExactUnit of the given capacity, whose canonical
// key layout is described by fields.
func NewExactUnit[V Dumpable](size uint32, fields []key.FieldSpec, log *zap.SugaredLogger) *ExactUnit[V] {
	builder := key.NewBuilder(fields)
	if log != nil {
		log = log.Named("exact").With(zap.String("unit", "exact"))
	}
	return &ExactUnit[V]{
		base:    NewBase(size, builder.NBytesKey(), log),
		builder: builder,
		index:   make(map[string]uint32, size),
		entries: make([]exactEntry[V], size),
	}
}

func (u *ExactUnit[V]) buildEntryKey(params []key.Param) ([]byte, error) {
	var problems []error
	out := make([]byte, 0, u.base.NBytesKey())

	for _, p := range params {
		if p.Kind == key.Valid {
			out = append(out, p.Key...)
		}
	}
	for _, p := range params {
		switch p.Kind {
		case key.Exact:
			out = append(out, p.Key...)
		case key.Valid:
			// already handled above.
		default:
			problems = append(problems, fmt.Errorf("exact unit does not admit %s params", p.Kind))
		}
	}

	if len(problems) > 0 {
		return nil, newBadMatchKey(problems...)
	}
	if len(out) != u.base.NBytesKey() {
		return nil, newBadMatchKey(fmt.Errorf("assembled key has %d bytes, want %d", len(out), u.base.NBytesKey()))
	}
	return out, nil
}

// Lookup implements MatchUnit.
func (u *ExactUnit[V]) Lookup(phv key.PHV) (uint64, *V, bool) {
	scratch := newScratch(u.base.NBytesKey())
	if err := u.builder.Build(phv, scratch); err != nil {
		return 0, nil, false
	}

	internal, ok := u.index[scratch.Key()]
	if !ok {
		return 0, nil, false
	}

	entry := &u.entries[internal]
	return joinHandle(internal, entry.version), &entry.value, true
}

// AddEntry implements MatchUnit. Adding a key that already exists in the
// index succeeds and overwrites the index's mapping: the earlier entry's
// slot remains live (reachable via its own handle through GetValue and
// ModifyEntry) but is no longer reachable via Lookup. See SPEC_FULL.md §9.
func (u *ExactUnit[V]) AddEntry(params []key.Param, value V, priority uint32) (uint64, error) {
	newKey, err := u.buildEntryKey(params)
	if err != nil {
		return 0, err
	}

	internal, err := u.base.acquire()
	if err != nil {
		return 0, err
	}

	version := u.entries[internal].version
	u.entries[internal] = exactEntry[V]{key: newKey, value: value, version: version}
	u.index[string(newKey)] = internal

	return joinHandle(internal, version), nil
}

// DeleteEntry implements MatchUnit.
func (u *ExactUnit[V]) DeleteEntry(h uint64) error {
	internal, version := splitHandle(h)
	if !u.base.handles.IsValid(internal) {
		return ErrInvalidHandle
	}
	entry := &u.entries[internal]
	if version != entry.version {
		return ErrExpiredHandle
	}

	// Only clear the index mapping if it still points at this handle: a
	// duplicate key added after this one has already overwritten the
	// mapping, and unconditionally erasing by key here would break that
	// newer, live entry's reachability. See SPEC_FULL.md §9.
	if cur, ok := u.index[string(entry.key)]; ok && cur == internal {
		delete(u.index, string(entry.key))
	}

	entry.version++
	return u.base.release(internal)
}

// ModifyEntry implements MatchUnit.
func (u *ExactUnit[V]) ModifyEntry(h uint64, value V) error {
	internal, version := splitHandle(h)
	if !u.base.handles.IsValid(internal) {
		return ErrInvalidHandle
	}
	entry := &u.entries[internal]
	if version != entry.version {
		return ErrExpiredHandle
	}
	entry.value = value
	return nil
}

// GetValue implements MatchUnit.
func (u *ExactUnit[V]) GetValue(h uint64) (*V, error) {
	internal, version := splitHandle(h)
	if !u.base.handles.IsValid(internal) {
		return nil, ErrInvalidHandle
	}
	entry := &u.entries[internal]
	if version != entry.version {
		return nil, ErrExpiredHandle
	}
	return &entry.value, nil
}

// Dump implements MatchUnit.
func (u *ExactUnit[V]) Dump(w io.Writer) error {
	var outerErr error
	u.base.Traverse(func(internal uint32) bool {
		entry := &u.entries[internal]
		if _, err := fmt.Fprintf(w, "%d: %s => ", internal, colorizeHex(w, hexString(entry.key))); err != nil {
			outerErr = err
			return false
		}
		entry.value.Dump(w)
		if _, err := fmt.Fprint(w, "\n"); err != nil {
			outerErr = err
			return false
		}
		return true
	})
	return outerErr
}

// NumEntries implements MatchUnit.
func (u *ExactUnit[V]) NumEntries() uint32 {
	return u.base.NumEntries()
}

// Footprint reports the static memory occupied by this unit's dense entry
// array.
func (u *ExactUnit[V]) Footprint() stats.Footprint {
	return stats.ForEntryArray(u.base.Size(), exactEntrySize[V]())
}
