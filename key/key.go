// Package key implements the KeyBuilder of the match-table engine (§4.3) and
// the match-key parameter tagged union used by add_entry (§6).
package key

import (
	"fmt"

	"github.com/yanet-platform/matchtable/container"
)

// FieldID identifies a header field within a packet header vector. The PHV
// itself is an external collaborator; the engine only depends on this ID
// space and the PHV interface below.
type FieldID int

// PHV is the minimal read-only view of a packet header vector KeyBuilder
// needs. The full PHV representation (parsing, header validity tracking,
// byte storage) lives outside this module.
type PHV interface {
	// Valid reports whether the header containing field is present.
	Valid(field FieldID) bool
	// Bytes returns field's current raw value. Only meaningful when Valid
	// reports the owning header is present; KeyBuilder calls it
	// unconditionally for every non-VALID field regardless, matching the
	// source's behavior of reading whatever bytes are there.
	Bytes(field FieldID) []byte
}

// FieldSpec describes one column of a match table's canonical key, in
// declaration order. IsValid fields contribute exactly one byte (a header
// validity flag); all others contribute Nbytes bytes read from the PHV.
type FieldSpec struct {
	ID      FieldID
	IsValid bool
	Nbytes  int
}

// width returns how many bytes this field contributes to the canonical key.
func (f FieldSpec) width() int {
	if f.IsValid {
		return 1
	}
	return f.Nbytes
}

// Builder renders a packet's PHV into the canonical key layout for a table:
// every VALID field's byte (in declaration order), then every non-VALID
// field's bytes (in declaration order).
type Builder struct {
	fields    []FieldSpec
	nbytesKey int
}

// NewBuilder returns a Builder for the given field declaration order.
func NewBuilder(fields []FieldSpec) *Builder {
	total := 0
	for _, f := range fields {
		total += f.width()
	}
	return &Builder{fields: fields, nbytesKey: total}
}

// NBytesKey returns the canonical key width in bytes.
func (b *Builder) NBytesKey() int {
	return b.nbytesKey
}

// Build renders phv's fields into out, clearing out first. It returns an
// error if the rendered key does not have length NBytesKey(); this should
// only happen if the PHV disagrees with the field spec it was built against.
func (b *Builder) Build(phv PHV, out *container.ByteContainer) error {
	out.Reset()

	for _, f := range b.fields {
		if f.IsValid {
			if phv.Valid(f.ID) {
				out.AppendByte(1)
			} else {
				out.AppendByte(0)
			}
		}
	}
	for _, f := range b.fields {
		if !f.IsValid {
			out.Append(phv.Bytes(f.ID))
		}
	}

	if out.Len() != b.nbytesKey {
		return fmt.Errorf("key: built key has %d bytes, want %d", out.Len(), b.nbytesKey)
	}
	return nil
}

// Kind tags the discipline a match-key parameter participates in when an
// entry is added.
type Kind int

const (
	// Exact requires byte-for-byte equality on this field.
	Exact Kind = iota
	// Valid contributes a single header-presence byte.
	Valid
	// LPM requires the field's first PrefixLength bits to match.
	LPM
	// Ternary requires (packet & Mask) == Key on this field.
	Ternary
)

func (k Kind) String() string {
	switch k {
	case Exact:
		return "EXACT"
	case Valid:
		return "VALID"
	case LPM:
		return "LPM"
	case Ternary:
		return "TERNARY"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Param is one entry of the caller-supplied match_key list passed to
// add_entry. Which Kinds are admissible, and in what order their bytes are
// assembled into the canonical key, is defined per unit (§4.5-§4.7).
type Param struct {
	Kind Kind
	// Key holds the field's key bytes for EXACT, VALID (exactly one byte),
	// LPM, and TERNARY params.
	Key []byte
	// Mask holds the field's mask bytes; only meaningful for TERNARY, where
	// it must have the same length as Key.
	Mask []byte
	// PrefixLength is the number of significant bits from the MSB; only
	// meaningful for LPM, where it must be <= 8*len(Key).
	PrefixLength uint32
}
