package reactive

import "sync"

// Derived is a read-only cell computed from explicit dependencies. The
// computation runs lazily on read and only when a dependency was written
// since the previous computation.
type Derived[T any] struct {
	mu       sync.Mutex
	compute  func() T
	deps     []Source
	seen     []uint64
	value    T
	computed bool
	version  uint64
}

// Computed builds a Derived cell. deps must list every Source that compute
// reads; a source missing from the list will not invalidate the cached value.
func Computed[T any](compute func() T, deps ...Source) *Derived[T] {
	filtered := make([]Source, 0, len(deps))
	for _, dep := range deps {
		if dep != nil {
			filtered = append(filtered, dep)
		}
	}
	return &Derived[T]{
		compute: compute,
		deps:    filtered,
		seen:    make([]uint64, len(filtered)),
	}
}

// Get returns the current derived value, recomputing when stale.
func (d *Derived[T]) Get() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.refreshLocked()
	return d.value
}

// Version grows every time the value is recomputed. Reading the version
// refreshes the cell first so chained derived cells see upstream writes.
func (d *Derived[T]) Version() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.refreshLocked()
	return d.version
}

func (d *Derived[T]) refreshLocked() {
	if d.computed && !d.staleLocked() {
		return
	}
	// Versions are captured before computing: a write that races the
	// computation leaves the cell stale for the next read.
	for i, dep := range d.deps {
		d.seen[i] = dep.Version()
	}
	if d.compute != nil {
		d.value = d.compute()
	}
	d.computed = true
	d.version++
}

func (d *Derived[T]) staleLocked() bool {
	for i, dep := range d.deps {
		if dep.Version() != d.seen[i] {
			return true
		}
	}
	return false
}

func (d *Derived[T]) signalKind() Kind { return KindDerived }
