package unit

import "io"

// Dumpable is the capability bound on a unit's value type V: the payload is
// opaque to the unit everywhere except dump, which needs a way to render it.
type Dumpable interface {
	// Dump writes a human-readable rendering of the value to w.
	Dump(w io.Writer)
}
