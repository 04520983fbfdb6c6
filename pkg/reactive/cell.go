package reactive

import "sync"

// Source reports a version that grows on every write. Derived cells compare
// versions to decide whether they are stale.
type Source interface {
	Version() uint64
}

// Readable is a reactive handle whose current value can be read.
type Readable[T any] interface {
	Source
	Get() T
}

// Writable is a Readable that accepts writes.
type Writable[T any] interface {
	Readable[T]
	Set(value T)
	Update(fn func(T) T)
}

// Subscribable is a Readable that pushes every write to listeners.
type Subscribable[T any] interface {
	Readable[T]
	Subscribe(fn func(T)) (cancel func())
}

// Cell is a mutable reactive value. Every Set counts as a write, including a
// write of an equal value.
type Cell[T any] struct {
	mu      sync.RWMutex
	value   T
	version uint64
	subs    map[uint64]func(T)
	nextSub uint64
}

// NewCell returns a cell seeded with initial.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Snapshot returns the value together with the version it was written at.
func (c *Cell[T]) Snapshot() (T, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value, c.version
}

// Version reports the number of writes seen by the cell.
func (c *Cell[T]) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Set stores value and notifies subscribers synchronously.
func (c *Cell[T]) Set(value T) {
	c.mu.Lock()
	c.value = value
	c.version++
	listeners := c.listenersLocked()
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(value)
	}
}

// Update applies fn to the current value and stores the result. fn runs
// without the lock held, so it may read the cell; when another write lands
// in between, fn is applied again to the newer value. fn must not write the
// cell itself.
func (c *Cell[T]) Update(fn func(T) T) {
	if fn == nil {
		return
	}
	var (
		next      T
		listeners []func(T)
	)
	for {
		c.mu.RLock()
		current, version := c.value, c.version
		c.mu.RUnlock()

		next = fn(current)

		c.mu.Lock()
		if c.version != version {
			c.mu.Unlock()
			continue
		}
		c.value = next
		c.version++
		listeners = c.listenersLocked()
		c.mu.Unlock()
		break
	}

	for _, listener := range listeners {
		listener(next)
	}
}

// Subscribe registers fn for every subsequent write. The returned function
// removes the subscription and is safe to call more than once.
func (c *Cell[T]) Subscribe(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	if c.subs == nil {
		c.subs = make(map[uint64]func(T))
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// listenersLocked copies subscribers in registration order so callbacks run
// without holding the lock.
func (c *Cell[T]) listenersLocked() []func(T) {
	if len(c.subs) == 0 {
		return nil
	}
	out := make([]func(T), 0, len(c.subs))
	for id := uint64(0); id < c.nextSub; id++ {
		if fn, ok := c.subs[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func (c *Cell[T]) signalKind() Kind { return KindWritable }

// Const is a read-only handle around a fixed value. It never changes version.
type Const[T any] struct {
	value T
}

// NewConst wraps value in a Const.
func NewConst[T any](value T) *Const[T] {
	return &Const[T]{value: value}
}

// Get returns the wrapped value.
func (c *Const[T]) Get() T {
	return c.value
}

// Version is always zero.
func (c *Const[T]) Version() uint64 { return 0 }

func (c *Const[T]) signalKind() Kind { return KindConst }
