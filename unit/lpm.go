package unit

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/yanet-platform/matchtable/key"
	"github.com/yanet-platform/matchtable/stats"
	"github.com/yanet-platform/matchtable/trie"
)

type lpmEntry[V Dumpable] struct {
	key      []byte
	walkBits int    // bits the trie actually walked: VALID+EXACT framing plus the LPM prefix
	prefLen  uint32 // displayed prefix length: EXACT bytes x 8 + the LPM param's own prefix_length
	value    V
	version  uint32
}

// LPMUnit is the trie-indexed match unit of §4.6: VALID and EXACT params
// contribute fixed, always-significant framing bits; exactly one LPM param
// contributes the variable-length suffix the trie actually branches on.
type LPMUnit[V Dumpable] struct {
	base    Base
	builder *key.Builder
	trie    *trie.Trie
	entries []lpmEntry[V]
}

// NewLPMUnit returns an LPMUnit of the given capacity. fields must declare
// the unit's single LPM field last among its non-VALID fields, matching the
// forced key-assembly order add_entry uses.
func NewLPMUnit[V Dumpable](size uint32, fields []key.FieldSpec, log *zap.SugaredLogger) *LPMUnit[V] {
	builder := key.NewBuilder(fields)
	if log != nil {
		log = log.Named("lpm").With(zap.String("unit", "lpm"))
	}
	return &LPMUnit[V]{
		base:    NewBase(size, builder.NBytesKey(), log),
		builder: builder,
		trie:    trie.New(),
		entries: make([]lpmEntry[V], size),
	}
}

// buildEntryKey assembles VALID bytes, then EXACT bytes (caller's listed
// order), then the single LPM param's bytes last, regardless of where the
// caller listed it. It returns the full canonical key, the number of bits
// the trie should walk (VALID+EXACT framing plus the LPM prefix), and the
// displayed prefix length (EXACT framing plus the LPM prefix, excluding
// VALID bytes per §4.6).
func (u *LPMUnit[V]) buildEntryKey(params []key.Param) (full []byte, walkBits int, displayLen uint32, err error) {
	var problems []error
	var valid, exact []byte
	var lpmParams []key.Param

	for _, p := range params {
		switch p.Kind {
		case key.Valid:
			valid = append(valid, p.Key...)
		case key.Exact:
			exact = append(exact, p.Key...)
		case key.LPM:
			lpmParams = append(lpmParams, p)
		default:
			problems = append(problems, fmt.Errorf("lpm unit does not admit %s params", p.Kind))
		}
	}

	if len(lpmParams) != 1 {
		problems = append(problems, fmt.Errorf("lpm unit requires exactly one LPM param, got %d", len(lpmParams)))
	}

	if len(problems) > 0 {
		return nil, 0, 0, newBadMatchKey(problems...)
	}

	lp := lpmParams[0]
	if lp.PrefixLength > uint32(8*len(lp.Key)) {
		return nil, 0, 0, newBadMatchKey(fmt.Errorf("lpm prefix_length %d exceeds field width %d bits", lp.PrefixLength, 8*len(lp.Key)))
	}

	full = make([]byte, 0, u.base.NBytesKey())
	full = append(full, valid...)
	full = append(full, exact...)
	full = append(full, lp.Key...)

	if len(full) != u.base.NBytesKey() {
		return nil, 0, 0, newBadMatchKey(fmt.Errorf("assembled key has %d bytes, want %d", len(full), u.base.NBytesKey()))
	}

	walkBits = len(valid)*8 + len(exact)*8 + int(lp.PrefixLength)
	displayLen = uint32(len(exact)*8) + lp.PrefixLength
	return full, walkBits, displayLen, nil
}

// Lookup implements MatchUnit.
func (u *LPMUnit[V]) Lookup(phv key.PHV) (uint64, *V, bool) {
	scratch := newScratch(u.base.NBytesKey())
	if err := u.builder.Build(phv, scratch); err != nil {
		return 0, nil, false
	}

	internal, ok := u.trie.Lookup(scratch.Bytes())
	if !ok {
		return 0, nil, false
	}

	entry := &u.entries[internal]
	return joinHandle(internal, entry.version), &entry.value, true
}

// AddEntry implements MatchUnit.
func (u *LPMUnit[V]) AddEntry(params []key.Param, value V, priority uint32) (uint64, error) {
	full, walkBits, displayLen, err := u.buildEntryKey(params)
	if err != nil {
		return 0, err
	}

	internal, err := u.base.acquire()
	if err != nil {
		return 0, err
	}

	version := u.entries[internal].version
	u.entries[internal] = lpmEntry[V]{key: full, walkBits: walkBits, prefLen: displayLen, value: value, version: version}
	u.trie.Insert(full, walkBits, internal)

	return joinHandle(internal, version), nil
}

// DeleteEntry implements MatchUnit.
func (u *LPMUnit[V]) DeleteEntry(h uint64) error {
	internal, version := splitHandle(h)
	if !u.base.handles.IsValid(internal) {
		return ErrInvalidHandle
	}
	entry := &u.entries[internal]
	if version != entry.version {
		return ErrExpiredHandle
	}

	u.trie.Delete(entry.key, entry.walkBits)
	entry.version++
	return u.base.release(internal)
}

// ModifyEntry implements MatchUnit.
func (u *LPMUnit[V]) ModifyEntry(h uint64, value V) error {
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
func (u *LPMUnit[V]) GetValue(h uint64) (*V, error) {
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

// Dump implements MatchUnit, in the §6 LPM format:
// "<internal_handle>: <key_hex>/<prefix_length> => <value_dump>".
func (u *LPMUnit[V]) Dump(w io.Writer) error {
	var outerErr error
	u.base.Traverse(func(internal uint32) bool {
		entry := &u.entries[internal]
		if _, err := fmt.Fprintf(w, "%d: %s/%d => ", internal, colorizeHex(w, hexString(entry.key)), entry.prefLen); err != nil {
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
func (u *LPMUnit[V]) NumEntries() uint32 {
	return u.base.NumEntries()
}

// Footprint reports the static memory occupied by this unit's dense entry
// array.
func (u *LPMUnit[V]) Footprint() stats.Footprint {
	return stats.ForEntryArray(u.base.Size(), lpmEntrySize[V]())
}
