package schema

import "github.com/goliatone/go-formctl/pkg/reactive"

// Source is either a fixed schema or one recomputed from reactive
// dependencies. The zero Source carries no schema and validates everything.
type Source[T any] struct {
	readable reactive.Readable[Schema[T]]
	dynamic  bool
}

// Static wraps a fixed schema. A nil schema yields the zero Source.
func Static[T any](s Schema[T]) Source[T] {
	if s == nil {
		return Source[T]{}
	}
	return Source[T]{readable: reactive.NewConst(s)}
}

// Reactive builds a schema from build every time one of deps is written.
// build must only read the listed dependencies.
func Reactive[T any](build func() Schema[T], deps ...reactive.Source) Source[T] {
	if build == nil {
		return Source[T]{}
	}
	return Source[T]{
		readable: reactive.Computed(build, deps...),
		dynamic:  true,
	}
}

// SourceOf normalizes x into a Source. It accepts nil, a Source[T], a
// Schema[T], or a reactive handle producing a Schema[T]. Any other shape
// reports false.
func SourceOf[T any](x any) (Source[T], bool) {
	switch v := x.(type) {
	case nil:
		return Source[T]{}, true
	case Source[T]:
		return v, true
	case *Source[T]:
		if v == nil {
			return Source[T]{}, true
		}
		return *v, true
	}
	readable, ok := reactive.ReadableOf[Schema[T]](x)
	if !ok {
		return Source[T]{}, false
	}
	dynamic := reactive.IsDerived(x) || reactive.IsWritable(x)
	return Source[T]{readable: readable, dynamic: dynamic}, true
}

// IsZero reports whether the source carries no schema.
func (s Source[T]) IsZero() bool {
	return s.readable == nil
}

// IsReactive reports whether the schema depends on other cells.
func (s Source[T]) IsReactive() bool {
	return s.dynamic
}

// Readable exposes the schema as a reactive handle so derived cells can list
// it as a dependency. It is nil for the zero Source.
func (s Source[T]) Readable() reactive.Readable[Schema[T]] {
	return s.readable
}

// Resolve returns the effective schema for the current dependency values.
func (s Source[T]) Resolve() Schema[T] {
	if s.readable == nil {
		return nil
	}
	return s.readable.Get()
}

// Validate resolves the schema and validates value against it.
func (s Source[T]) Validate(value T) Result {
	return Validate(s.Resolve(), value)
}
