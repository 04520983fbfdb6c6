package reactive

import "sync"

// Previous carries the prior source value and the value computed from it.
type Previous[S, T any] struct {
	Source S
	Value  T
}

// LinkedFunc computes a linked value from the newest source write. prev is nil
// for the first computation.
type LinkedFunc[S, T any] func(next S, prev *Previous[S, T]) T

// Linked is a writable cell recomputed on every write to its source. A manual
// Set overrides the value until the source is written again.
type Linked[S, T any] struct {
	mu      sync.RWMutex
	compute LinkedFunc[S, T]
	prev    *Previous[S, T]
	value   T
	version uint64
	cancel  func()
}

// NewLinked computes the initial value from the source's current value and
// subscribes to subsequent writes. Call Stop to release the subscription.
func NewLinked[S, T any](source Subscribable[S], compute LinkedFunc[S, T]) *Linked[S, T] {
	l := &Linked[S, T]{compute: compute}
	if source == nil {
		return l
	}
	l.apply(source.Get())
	l.cancel = source.Subscribe(l.apply)
	return l
}

func (l *Linked[S, T]) apply(next S) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var value T
	if l.compute != nil {
		value = l.compute(next, l.prev)
	}
	l.value = value
	l.prev = &Previous[S, T]{Source: next, Value: value}
	l.version++
}

// Get returns the current value.
func (l *Linked[S, T]) Get() T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.value
}

// Version grows on every recomputation and manual write.
func (l *Linked[S, T]) Version() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.version
}

// Set overrides the linked value.
func (l *Linked[S, T]) Set(value T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setLocked(value)
}

// Update applies fn to the current value. The result is stored only if no
// other write (manual or from the source) happened while fn ran; otherwise
// fn is applied again to the newer value.
func (l *Linked[S, T]) Update(fn func(T) T) {
	if fn == nil {
		return
	}
	for {
		l.mu.RLock()
		current, version := l.value, l.version
		l.mu.RUnlock()

		next := fn(current)

		l.mu.Lock()
		if l.version == version {
			l.setLocked(next)
			l.mu.Unlock()
			return
		}
		l.mu.Unlock()
	}
}

func (l *Linked[S, T]) setLocked(value T) {
	l.value = value
	if l.prev != nil {
		l.prev.Value = value
	}
	l.version++
}

// Stop detaches the cell from its source. The last value stays readable.
func (l *Linked[S, T]) Stop() {
	l.mu.Lock()
	cancel := l.cancel
	l.cancel = nil
	l.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (l *Linked[S, T]) signalKind() Kind { return KindLinked }
