// Package guard provides one concrete way to satisfy the external-locking
// half of the engine's concurrency contract: a sync.RWMutex wrapped around
// any MatchUnit. It is a convenience, not the only valid strategy — a
// reader-writer lock, an RCU-style epoch scheme, or a single-threaded
// control loop are all equally valid external synchronization choices.
package guard

import (
	"io"
	"sync"

	"github.com/yanet-platform/matchtable/key"
	"github.com/yanet-platform/matchtable/unit"
)

// Guarded wraps a unit.MatchUnit[V] behind a sync.RWMutex: lookups take the
// read lock, every mutating operation takes the write lock.
type Guarded[V unit.Dumpable] struct {
	mu   sync.RWMutex
	unit unit.MatchUnit[V]
}

// New wraps u for concurrent access.
func New[V unit.Dumpable](u unit.MatchUnit[V]) *Guarded[V] {
	return &Guarded[V]{unit: u}
}

// Lookup implements unit.MatchUnit.
func (g *Guarded[V]) Lookup(phv key.PHV) (uint64, *V, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.unit.Lookup(phv)
}

// AddEntry implements unit.MatchUnit.
func (g *Guarded[V]) AddEntry(params []key.Param, value V, priority uint32) (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.unit.AddEntry(params, value, priority)
}

// DeleteEntry implements unit.MatchUnit.
func (g *Guarded[V]) DeleteEntry(h uint64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.unit.DeleteEntry(h)
}

// ModifyEntry implements unit.MatchUnit.
func (g *Guarded[V]) ModifyEntry(h uint64, value V) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.unit.ModifyEntry(h, value)
}

// GetValue implements unit.MatchUnit. It takes the read lock: concurrent
// GetValue/Lookup calls from multiple readers may proceed together.
func (g *Guarded[V]) GetValue(h uint64) (*V, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.unit.GetValue(h)
}

// Dump implements unit.MatchUnit.
func (g *Guarded[V]) Dump(w io.Writer) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.unit.Dump(w)
}

// NumEntries implements unit.MatchUnit.
func (g *Guarded[V]) NumEntries() uint32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.unit.NumEntries()
}
