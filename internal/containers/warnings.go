// Package containers holds small ordered-accumulator types shared across
// the composition core.
package containers

// Warnings is an append-only, order-preserving collection of non-fatal
// notices. The sizing engine attaches one per SizedItem; the pipeline
// driver flattens every item's Warnings, in picklist_position order, onto
// the manifest (spec §4.5, §5 "Sizing warnings are ordered by
// picklist_position").
type Warnings struct {
	list []string
}

// Add appends a single warning.
func (w *Warnings) Add(msg string) *Warnings {
	w.list = append(w.list, msg)
	return w
}

// AddList appends multiple warnings.
func (w *Warnings) AddList(msgs []string) *Warnings {
	w.list = append(w.list, msgs...)
	return w
}

// List returns the accumulated warnings in insertion order. The returned
// slice is owned by the caller's read; mutating it does not affect w.
func (w *Warnings) List() []string {
	out := make([]string, len(w.list))
	copy(out, w.list)
	return out
}

// Count returns the number of accumulated warnings.
func (w *Warnings) Count() int { return len(w.list) }

// Empty reports whether no warnings have been recorded.
func (w *Warnings) Empty() bool { return len(w.list) == 0 }
