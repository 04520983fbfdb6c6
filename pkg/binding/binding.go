// Package binding connects raw input events to a control.Control. A Directive
// is attached to one control and translates input, focus and blur events into
// writes on the control's cells. It never writes errors: the issues it
// returns are read back from the control's derived state after the event.
package binding

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formctl/pkg/control"
	"github.com/goliatone/go-formctl/pkg/schema"
)

// Event names a UI event the directive understands.
type Event string

const (
	// EventInput fires when the element content changes.
	EventInput Event = "input"
	// EventFocus fires when the element gains focus.
	EventFocus Event = "focus"
	// EventBlur fires when the element loses focus.
	EventBlur Event = "blur"
)

// ErrUnknownEvent is returned by Handle for events other than input, focus
// and blur.
var ErrUnknownEvent = errors.New("binding: unknown event")

// Element is the input element a directive reads content from.
type Element interface {
	Value() string
}

// ElementFunc adapts a function into an Element.
type ElementFunc func() string

// Value calls the function.
func (fn ElementFunc) Value() string {
	if fn == nil {
		return ""
	}
	return fn()
}

// Text is an Element with fixed content.
type Text string

// Value returns the text.
func (t Text) Value() string { return string(t) }

// Validatable is anything whose visible issues can be collected, typically
// another control whose schema depends on the bound one.
type Validatable interface {
	Name() string
	Errors() schema.Issues
}

// Parser converts element content into the control's value type.
type Parser[T any] func(raw string) (T, error)

// Observer is notified after every handled event with the visible issues.
type Observer func(ev Event, issues schema.Issues)

// Option configures a Directive.
type Option[T comparable] func(*Directive[T])

// WithParser sets the content parser. String controls do not need one.
func WithParser[T comparable](parse Parser[T]) Option[T] {
	return func(d *Directive[T]) {
		if parse != nil {
			d.parse = parse
		}
	}
}

// WithDependents links controls whose schemas read the bound control so their
// issues are collected after each event.
func WithDependents[T comparable](deps ...Validatable) Option[T] {
	return func(d *Directive[T]) {
		for _, dep := range deps {
			if dep != nil {
				d.dependents = append(d.dependents, dep)
			}
		}
	}
}

// WithObserver registers a callback run after every handled event.
func WithObserver[T comparable](fn Observer) Option[T] {
	return func(d *Directive[T]) {
		if fn != nil {
			d.observers = append(d.observers, fn)
		}
	}
}

// Directive binds element events to a control.
type Directive[T comparable] struct {
	control    *control.Control[T]
	parse      Parser[T]
	dependents []Validatable
	observers  []Observer
}

// Bind attaches a directive to c.
func Bind[T comparable](c *control.Control[T], opts ...Option[T]) *Directive[T] {
	d := &Directive[T]{control: c}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(d)
	}
	if d.parse == nil {
		d.parse = assertParser[T]
	}
	return d
}

// BindString attaches a directive to a text control.
func BindString(c *control.Control[string], opts ...Option[string]) *Directive[string] {
	return Bind(c, opts...)
}

func assertParser[T any](raw string) (T, error) {
	if v, ok := any(raw).(T); ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("binding: no parser for %T", zero)
}

// Control returns the bound control.
func (d *Directive[T]) Control() *control.Control[T] {
	return d.control
}

// Handle dispatches ev using el as the event target.
func (d *Directive[T]) Handle(ev Event, el Element) (schema.Issues, error) {
	switch ev {
	case EventInput:
		raw := ""
		if el != nil {
			raw = el.Value()
		}
		return d.Input(raw), nil
	case EventFocus:
		return d.Focus(), nil
	case EventBlur:
		return d.Blur(), nil
	default:
		return d.Issues(), fmt.Errorf("%w: %q", ErrUnknownEvent, ev)
	}
}

// Input writes raw into the control and clears the pristine flag. Dirty
// follows from the value write. Content the parser rejects leaves the value
// untouched and is reported as an invalid_type issue ahead of the others.
func (d *Directive[T]) Input(raw string) schema.Issues {
	if d.ignored() {
		return d.Issues()
	}
	value, err := d.parse(raw)
	if err != nil {
		parseIssue := schema.Issue{
			Message: strings.TrimPrefix(err.Error(), "binding: "),
			Code:    schema.CodeInvalidType,
			Path:    d.control.Name(),
		}
		issues := append(schema.Issues{parseIssue}, d.Issues()...)
		d.notify(EventInput, issues)
		return issues
	}
	d.control.Value.Set(value)
	d.control.Pristine.Set(false)
	return d.emit(EventInput)
}

// Focus marks the control focused.
func (d *Directive[T]) Focus() schema.Issues {
	if d.ignored() {
		return d.Issues()
	}
	d.control.Focused.Set(true)
	return d.emit(EventFocus)
}

// Blur marks the control touched, making its errors visible.
func (d *Directive[T]) Blur() schema.Issues {
	if d.ignored() {
		return d.Issues()
	}
	d.control.Touched.Set(true)
	d.control.Focused.Set(false)
	return d.emit(EventBlur)
}

// Issues collects the visible issues of the control followed by those of its
// dependents.
func (d *Directive[T]) Issues() schema.Issues {
	if d == nil || d.control == nil {
		return nil
	}
	var out schema.Issues
	out = append(out, d.control.Errors()...)
	for _, dep := range d.dependents {
		out = append(out, dep.Errors()...)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (d *Directive[T]) ignored() bool {
	return d == nil || d.control == nil || d.control.Disabled.Get()
}

func (d *Directive[T]) emit(ev Event) schema.Issues {
	issues := d.Issues()
	d.notify(ev, issues)
	return issues
}

func (d *Directive[T]) notify(ev Event, issues schema.Issues) {
	for _, fn := range d.observers {
		fn(ev, issues)
	}
}
