// Package reactive provides the small cell primitives form controls are built
// from. A Cell holds a mutable value, a Derived recomputes from an explicit
// list of dependencies when one of them has been written since the last read,
// and a Linked cell is recomputed from the write history of a source cell.
//
// There is no ambient tracking context: every derived cell names the sources
// it depends on when it is constructed. Reads are pull-based and synchronous,
// so a read that follows a write on the same goroutine always observes the
// post-write state.
//
// The type guards IsSignal, IsWritable and IsDerived let generic code accept
// either a plain value or a reactive handle and normalize both through
// ReadableOf.
package reactive
