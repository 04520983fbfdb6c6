package reactive

// Kind identifies the flavour of a reactive handle.
type Kind int

const (
	// KindWritable is a plain mutable Cell.
	KindWritable Kind = iota + 1
	// KindLinked is a writable cell recomputed from a source.
	KindLinked
	// KindDerived is a read-only computed cell.
	KindDerived
	// KindConst wraps a fixed value.
	KindConst
)

func (k Kind) String() string {
	switch k {
	case KindWritable:
		return "writable"
	case KindLinked:
		return "linked"
	case KindDerived:
		return "derived"
	case KindConst:
		return "const"
	default:
		return "unknown"
	}
}

type signal interface {
	signalKind() Kind
}

// KindOf reports the kind of x when x is one of the package's handles.
func KindOf(x any) (Kind, bool) {
	s, ok := x.(signal)
	if !ok {
		return 0, false
	}
	return s.signalKind(), true
}

// IsSignal reports whether x is any reactive handle from this package.
func IsSignal(x any) bool {
	_, ok := x.(signal)
	return ok
}

// IsWritable reports whether x accepts writes (plain or linked cells).
func IsWritable(x any) bool {
	kind, ok := KindOf(x)
	return ok && (kind == KindWritable || kind == KindLinked)
}

// IsDerived reports whether x is a read-only computed cell.
func IsDerived(x any) bool {
	kind, ok := KindOf(x)
	return ok && kind == KindDerived
}

// ReadableOf normalizes x into a Readable[T]. Reactive handles of T are
// returned as-is and plain T values are wrapped in a Const. Any other shape
// reports false.
func ReadableOf[T any](x any) (Readable[T], bool) {
	if x == nil {
		return nil, false
	}
	if r, ok := x.(Readable[T]); ok {
		return r, true
	}
	if v, ok := x.(T); ok {
		return NewConst(v), true
	}
	return nil, false
}
