package unit

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/yanet-platform/matchtable/key"
	"github.com/yanet-platform/matchtable/stats"
)

type ternaryEntry[V Dumpable] struct {
	key      []byte
	mask     []byte
	priority uint32
	value    V
	version  uint32
}

// TernaryUnit is the linearly scanned match unit of §4.7: VALID params
// contribute their key and mask bytes first, then every other param
// contributes its bytes in the order the caller listed it; unlike LPMUnit,
// an LPM param is not moved to the end.
type TernaryUnit[V Dumpable] struct {
	base    Base
	builder *key.Builder
	entries []ternaryEntry[V]
}

// NewTernaryUnit returns a TernaryUnit of the given capacity.
func NewTernaryUnit[V Dumpable](size uint32, fields []key.FieldSpec, log *zap.SugaredLogger) *TernaryUnit[V] {
	builder := key.NewBuilder(fields)
	if log != nil {
		log = log.Named("ternary").With(zap.String("unit", "ternary"))
	}
	return &TernaryUnit[V]{
		base:    NewBase(size, builder.NBytesKey(), log),
		builder: builder,
		entries: make([]ternaryEntry[V], size),
	}
}

// lpmMaskBytes renders the mask byte slice for an LPM param: the top
// prefixBits bits set, MSB first, byte-aligned fill then a partial byte.
func lpmMaskBytes(width int, prefixBits uint32) []byte {
	mask := make([]byte, width)
	full := int(prefixBits) / 8
	rem := int(prefixBits) % 8
	for i := 0; i < full && i < width; i++ {
		mask[i] = 0xff
	}
	if full < width && rem > 0 {
		mask[full] = byte(0xff << (8 - rem))
	}
	return mask
}

// buildEntryKeyAndMask assembles VALID bytes/mask first, then every other
// param's key and mask bytes in the order the caller listed them.
func (u *TernaryUnit[V]) buildEntryKeyAndMask(params []key.Param) (entryKey, mask []byte, err error) {
	var problems []error
	entryKey = make([]byte, 0, u.base.NBytesKey())
	mask = make([]byte, 0, u.base.NBytesKey())

	for _, p := range params {
		if p.Kind == key.Valid {
			entryKey = append(entryKey, p.Key...)
			mask = append(mask, 0xff)
		}
	}
	for _, p := range params {
		switch p.Kind {
		case key.Valid:
			// already handled above.
		case key.Exact:
			entryKey = append(entryKey, p.Key...)
			for range p.Key {
				mask = append(mask, 0xff)
			}
		case key.LPM:
			entryKey = append(entryKey, p.Key...)
			mask = append(mask, lpmMaskBytes(len(p.Key), p.PrefixLength)...)
		case key.Ternary:
			if len(p.Mask) != len(p.Key) {
				problems = append(problems, fmt.Errorf("ternary param mask width %d != key width %d", len(p.Mask), len(p.Key)))
				continue
			}
			entryKey = append(entryKey, p.Key...)
			mask = append(mask, p.Mask...)
		default:
			problems = append(problems, fmt.Errorf("ternary unit does not admit %s params", p.Kind))
		}
	}

	if len(problems) > 0 {
		return nil, nil, newBadMatchKey(problems...)
	}
	if len(entryKey) != u.base.NBytesKey() {
		return nil, nil, newBadMatchKey(fmt.Errorf("assembled key has %d bytes, want %d", len(entryKey), u.base.NBytesKey()))
	}

	// Canonicalize: clear any key bits the mask does not cover, so invariant
	// 5 (entry.key[i] & ~entry.mask[i] == 0) holds regardless of what the
	// caller actually passed in masked-off bit positions.
	for i := range entryKey {
		entryKey[i] &= mask[i]
	}

	return entryKey, mask, nil
}

// Lookup implements MatchUnit. It scans every live entry and returns the
// one with the strictly greatest priority among those that match; ties
// resolve to the first encountered in handle-allocator iteration order.
func (u *TernaryUnit[V]) Lookup(phv key.PHV) (uint64, *V, bool) {
	scratch := newScratch(u.base.NBytesKey())
	if err := u.builder.Build(phv, scratch); err != nil {
		return 0, nil, false
	}
	packetKey := scratch.Bytes()

	var (
		bestInternal uint32
		bestPriority uint32
		found        bool
	)

	u.base.Traverse(func(internal uint32) bool {
		entry := &u.entries[internal]
		if !ternaryMatches(entry.key, entry.mask, packetKey) {
			return true
		}
		if !found || entry.priority > bestPriority {
			bestInternal, bestPriority, found = internal, entry.priority, true
		}
		return true
	})

	if !found {
		return 0, nil, false
	}
	entry := &u.entries[bestInternal]
	return joinHandle(bestInternal, entry.version), &entry.value, true
}

func ternaryMatches(entryKey, entryMask, packetKey []byte) bool {
	for i := range entryKey {
		if entryKey[i] != packetKey[i]&entryMask[i] {
			return false
		}
	}
	return true
}

// AddEntry implements MatchUnit.
func (u *TernaryUnit[V]) AddEntry(params []key.Param, value V, priority uint32) (uint64, error) {
	entryKey, mask, err := u.buildEntryKeyAndMask(params)
	if err != nil {
		return 0, err
	}

	internal, err := u.base.acquire()
	if err != nil {
		return 0, err
	}

	version := u.entries[internal].version
	u.entries[internal] = ternaryEntry[V]{key: entryKey, mask: mask, priority: priority, value: value, version: version}

	return joinHandle(internal, version), nil
}

// DeleteEntry implements MatchUnit.
func (u *TernaryUnit[V]) DeleteEntry(h uint64) error {
	internal, version := splitHandle(h)
	if !u.base.handles.IsValid(internal) {
		return ErrInvalidHandle
	}
	entry := &u.entries[internal]
	if version != entry.version {
		return ErrExpiredHandle
	}
	entry.version++
	return u.base.release(internal)
}

// ModifyEntry implements MatchUnit.
func (u *TernaryUnit[V]) ModifyEntry(h uint64, value V) error {
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
func (u *TernaryUnit[V]) GetValue(h uint64) (*V, error) {
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

// Dump implements MatchUnit, in the §6 ternary format:
// "<internal_handle>: <key_hex> &&& <mask_hex> => <value_dump>".
func (u *TernaryUnit[V]) Dump(w io.Writer) error {
	var outerErr error
	u.base.Traverse(func(internal uint32) bool {
		entry := &u.entries[internal]
		if _, err := fmt.Fprintf(w, "%d: %s &&& %s => ", internal, colorizeHex(w, hexString(entry.key)), colorizeHex(w, hexString(entry.mask))); err != nil {
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
func (u *TernaryUnit[V]) NumEntries() uint32 {
	return u.base.NumEntries()
}

// Footprint reports the static memory occupied by this unit's dense entry
// array.
func (u *TernaryUnit[V]) Footprint() stats.Footprint {
	return stats.ForEntryArray(u.base.Size(), ternaryEntrySize[V]())
}
