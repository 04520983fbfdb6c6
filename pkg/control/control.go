package control

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-formctl/pkg/reactive"
	"github.com/goliatone/go-formctl/pkg/schema"
)

// ErrUnsupportedSchema is returned by FromOptions when the schema value is not
// a schema, a schema source, or a reactive handle producing a schema.
var ErrUnsupportedSchema = errors.New("control: unsupported schema value")

// Control is one editable field.
type Control[T comparable] struct {
	id           string
	name         string
	defaultValue T
	schema       schema.Source[T]

	Value    *reactive.Cell[T]
	Touched  *reactive.Cell[bool]
	Disabled *reactive.Cell[bool]
	Focused  *reactive.Cell[bool]
	Pristine *reactive.Cell[bool]
	// Dirty is recomputed on every write to Value: true when the write
	// changed the value relative to the previous write.
	Dirty *reactive.Linked[T, bool]

	errors  *reactive.Derived[schema.Issues]
	isValid *reactive.Derived[bool]
}

// Option configures a Control at construction time.
type Option[T comparable] func(*Control[T])

// WithName sets the field name used for issue paths and form lookups.
func WithName[T comparable](name string) Option[T] {
	return func(c *Control[T]) {
		c.name = strings.TrimSpace(name)
	}
}

// WithID overrides the generated element id.
func WithID[T comparable](id string) Option[T] {
	return func(c *Control[T]) {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			c.id = trimmed
		}
	}
}

// WithSchema attaches a fixed schema.
func WithSchema[T comparable](s schema.Schema[T]) Option[T] {
	return func(c *Control[T]) {
		c.schema = schema.Static(s)
	}
}

// WithSource attaches a static or reactive schema source.
func WithSource[T comparable](src schema.Source[T]) Option[T] {
	return func(c *Control[T]) {
		c.schema = src
	}
}

// WithReactiveSchema attaches a schema rebuilt whenever one of deps is
// written, e.g. a confirmation field reading another control's value.
func WithReactiveSchema[T comparable](build func() schema.Schema[T], deps ...reactive.Source) Option[T] {
	return func(c *Control[T]) {
		c.schema = schema.Reactive(build, deps...)
	}
}

// New creates a control holding defaultValue.
func New[T comparable](defaultValue T, opts ...Option[T]) *Control[T] {
	c := &Control[T]{
		id:           uuid.NewString(),
		defaultValue: defaultValue,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(c)
	}
	c.wire()
	return c
}

// Options is the declarative form of New. Schema may be nil, a
// schema.Schema[T], a schema.Source[T] or a reactive handle producing a
// schema.Schema[T].
type Options[T comparable] struct {
	Name         string
	ID           string
	DefaultValue T
	Schema       any
}

// FromOptions builds a control from Options, normalising the schema value.
func FromOptions[T comparable](opts Options[T]) (*Control[T], error) {
	src, ok := schema.SourceOf[T](opts.Schema)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedSchema, opts.Schema)
	}
	return New(opts.DefaultValue,
		WithName[T](opts.Name),
		WithID[T](opts.ID),
		WithSource(src),
	), nil
}

func (c *Control[T]) wire() {
	c.Value = reactive.NewCell(c.defaultValue)
	c.Touched = reactive.NewCell(false)
	c.Disabled = reactive.NewCell(false)
	c.Focused = reactive.NewCell(false)
	c.Pristine = reactive.NewCell(true)
	c.Dirty = reactive.NewLinked[T, bool](c.Value, dirtyFromHistory[T])

	deps := []reactive.Source{c.Value, c.Touched}
	if readable := c.schema.Readable(); readable != nil {
		deps = append(deps, readable)
	}
	c.errors = reactive.Computed(c.computeErrors, deps...)
	c.isValid = reactive.Computed(func() bool {
		return c.errors.Get() == nil
	}, c.errors)
}

func dirtyFromHistory[T comparable](next T, prev *reactive.Previous[T, bool]) bool {
	if prev == nil {
		return false
	}
	return next != prev.Source
}

func (c *Control[T]) computeErrors() schema.Issues {
	if c.schema.IsZero() {
		return nil
	}
	if !c.Touched.Get() {
		return nil
	}
	res := c.schema.Validate(c.Value.Get())
	if res.Valid {
		return nil
	}
	return res.Issues.WithPath(c.name)
}

// ID returns the element id used by renderers.
func (c *Control[T]) ID() string { return c.id }

// Name returns the field name.
func (c *Control[T]) Name() string { return c.name }

// Default returns the value the control was created with.
func (c *Control[T]) Default() T { return c.defaultValue }

// Schema returns the attached schema source.
func (c *Control[T]) Schema() schema.Source[T] { return c.schema }

// IsValid is true without a schema, before the field is touched, or when the
// current value satisfies the schema.
func (c *Control[T]) IsValid() bool {
	return c.isValid.Get()
}

// Errors returns the visible issues, nil whenever IsValid is true.
func (c *Control[T]) Errors() schema.Issues {
	return c.errors.Get()
}

// Validate runs the schema against the current value regardless of the
// touched flag.
func (c *Control[T]) Validate() schema.Result {
	res := c.schema.Validate(c.Value.Get())
	if !res.Valid {
		res.Issues = res.Issues.WithPath(c.name)
	}
	return res
}

// MarkTouched flags the field as touched so its errors become visible.
func (c *Control[T]) MarkTouched() {
	c.Touched.Set(true)
}

// Raw returns the current value as any.
func (c *Control[T]) Raw() any {
	return c.Value.Get()
}

// Reset restores the default value and the initial interaction flags.
func (c *Control[T]) Reset() {
	c.Value.Set(c.defaultValue)
	c.Dirty.Set(false)
	c.Touched.Set(false)
	c.Focused.Set(false)
	c.Pristine.Set(true)
}

// Dispose detaches the dirty tracker from the value cell. The control stays
// readable but Dirty no longer follows writes.
func (c *Control[T]) Dispose() {
	c.Dirty.Stop()
}

// State is a plain copy of the control's observable state.
type State struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Value    any           `json:"value"`
	Touched  bool          `json:"touched"`
	Dirty    bool          `json:"dirty"`
	Pristine bool          `json:"pristine"`
	Focused  bool          `json:"focused"`
	Disabled bool          `json:"disabled"`
	Valid    bool          `json:"valid"`
	Errors   schema.Issues `json:"errors,omitempty"`
}

// Snapshot reads every cell once.
func (c *Control[T]) Snapshot() State {
	errs := c.Errors()
	return State{
		ID:       c.id,
		Name:     c.name,
		Value:    c.Value.Get(),
		Touched:  c.Touched.Get(),
		Dirty:    c.Dirty.Get(),
		Pristine: c.Pristine.Get(),
		Focused:  c.Focused.Get(),
		Disabled: c.Disabled.Get(),
		Valid:    errs == nil,
		Errors:   errs,
	}
}
