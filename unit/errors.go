package unit

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Sentinel errors for the taxonomy of §7. Every mutating operation either
// succeeds or returns one of these (optionally wrapped with more detail via
// fmt.Errorf's %w), and the unit is left exactly as it was before the call.
var (
	// ErrTableFull is returned by AddEntry when num_entries == size.
	ErrTableFull = errors.New("match: table full")
	// ErrInvalidHandle is returned when an external handle's internal index
	// is not currently live.
	ErrInvalidHandle = errors.New("match: invalid handle")
	// ErrExpiredHandle is returned when an external handle's embedded
	// version does not match the slot's current version.
	ErrExpiredHandle = errors.New("match: handle expired")
	// ErrBadMatchKey is returned when a match_key parameter list cannot
	// produce a valid canonical key for this unit.
	ErrBadMatchKey = errors.New("match: bad match key")
	// ErrInternal is the generic fallback, reserved for handle-allocator
	// failures that should not occur in steady state.
	ErrInternal = errors.New("match: internal error")
)

// newBadMatchKey collects one or more validation problems into a single
// BAD_MATCH_KEY error, so a caller sees every problem in one report instead
// of only the first one found.
func newBadMatchKey(problems ...error) error {
	var merr *multierror.Error
	for _, p := range problems {
		if p != nil {
			merr = multierror.Append(merr, p)
		}
	}
	if merr == nil {
		return ErrBadMatchKey
	}
	return fmt.Errorf("%w: %v", ErrBadMatchKey, merr.ErrorOrNil())
}
