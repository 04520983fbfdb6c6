// Package form groups controls of different value types under one ordered
// form. The group answers form-wide questions (is everything valid, which
// fields have errors, what are the submitted values) without knowing each
// control's value type.
package form

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formctl/pkg/control"
	"github.com/goliatone/go-formctl/pkg/schema"
)

var (
	// ErrInvalid is returned by Submit when at least one field fails
	// validation. The returned error also unwraps to schema.Issues.
	ErrInvalid = errors.New("form: invalid submission")
	// ErrDuplicateField is returned when two fields share a name.
	ErrDuplicateField = errors.New("form: duplicate field")
	// ErrUnnamedField is returned when a field has no name.
	ErrUnnamedField = errors.New("form: field name is required")
)

// Field is the type-erased view of a control.Control.
type Field interface {
	ID() string
	Name() string
	IsValid() bool
	Errors() schema.Issues
	Validate() schema.Result
	MarkTouched()
	Raw() any
	Reset()
	Snapshot() control.State
}

var _ Field = (*control.Control[string])(nil)

// Group is an ordered set of named fields.
type Group struct {
	id     string
	fields []Field
	index  map[string]int
}

// NewGroup builds a group from fields, rejecting unnamed and duplicate ones.
func NewGroup(id string, fields ...Field) (*Group, error) {
	g := &Group{
		id:    strings.TrimSpace(id),
		index: make(map[string]int, len(fields)),
	}
	for _, field := range fields {
		if err := g.Add(field); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Add appends a field.
func (g *Group) Add(field Field) error {
	if field == nil {
		return fmt.Errorf("form: field is nil")
	}
	name := strings.TrimSpace(field.Name())
	if name == "" {
		return ErrUnnamedField
	}
	if _, exists := g.index[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateField, name)
	}
	g.index[name] = len(g.fields)
	g.fields = append(g.fields, field)
	return nil
}

// ID returns the form identifier.
func (g *Group) ID() string {
	if g == nil {
		return ""
	}
	return g.id
}

// Fields returns the fields in declaration order.
func (g *Group) Fields() []Field {
	if g == nil {
		return nil
	}
	out := make([]Field, len(g.fields))
	copy(out, g.fields)
	return out
}

// Get looks up a field by name.
func (g *Group) Get(name string) (Field, bool) {
	if g == nil {
		return nil, false
	}
	idx, ok := g.index[strings.TrimSpace(name)]
	if !ok {
		return nil, false
	}
	return g.fields[idx], true
}

// Valid reports whether every enabled field is currently valid. Untouched
// fields count as valid; call TouchAll first to validate everything.
// Disabled fields are never validated.
func (g *Group) Valid() bool {
	if g == nil {
		return true
	}
	for _, field := range g.fields {
		if disabled(field) {
			continue
		}
		if !field.IsValid() {
			return false
		}
	}
	return true
}

// Errors returns the visible messages keyed by field name. Disabled fields
// and fields without errors are omitted; the map is nil when there are none.
func (g *Group) Errors() map[string][]string {
	if g == nil {
		return nil
	}
	out := make(map[string][]string)
	for _, field := range g.fields {
		if disabled(field) {
			continue
		}
		msgs := NormalizeMessages(field.Errors().Messages())
		if len(msgs) == 0 {
			continue
		}
		out[field.Name()] = msgs
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Issues returns every visible issue of the enabled fields in field order.
func (g *Group) Issues() schema.Issues {
	if g == nil {
		return nil
	}
	var out schema.Issues
	for _, field := range g.fields {
		if disabled(field) {
			continue
		}
		out = append(out, field.Errors()...)
	}
	return out
}

// TouchAll marks every field touched, the usual reaction to a submit attempt.
func (g *Group) TouchAll() {
	if g == nil {
		return
	}
	for _, field := range g.fields {
		field.MarkTouched()
	}
}

// Reset restores every field.
func (g *Group) Reset() {
	if g == nil {
		return
	}
	for _, field := range g.fields {
		field.Reset()
	}
}

// Values returns the current raw values of the enabled fields keyed by
// field name. Like disabled HTML inputs, disabled fields are not submitted.
func (g *Group) Values() map[string]any {
	if g == nil {
		return nil
	}
	out := make(map[string]any, len(g.fields))
	for _, field := range g.fields {
		if disabled(field) {
			continue
		}
		out[field.Name()] = field.Raw()
	}
	return out
}

// Snapshots returns every field state in order.
func (g *Group) Snapshots() []control.State {
	if g == nil {
		return nil
	}
	out := make([]control.State, 0, len(g.fields))
	for _, field := range g.fields {
		out = append(out, field.Snapshot())
	}
	return out
}

// Submit touches every field and returns the values when the form is valid.
// Otherwise the error wraps ErrInvalid and the collected issues.
func (g *Group) Submit(ctx context.Context) (map[string]any, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	g.TouchAll()
	if issues := g.Issues(); len(issues) > 0 {
		return nil, &InvalidError{Issues: issues}
	}
	return g.Values(), nil
}

func disabled(field Field) bool {
	return field.Snapshot().Disabled
}

// InvalidError carries the issues that blocked a submission.
type InvalidError struct {
	Issues schema.Issues
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalid.Error(), e.Issues.Error())
}

// Unwrap exposes ErrInvalid and the issues to errors.Is / errors.As.
func (e *InvalidError) Unwrap() []error {
	return []error{ErrInvalid, e.Issues}
}

// NormalizeMessages trims messages and removes empty entries and duplicates
// while preserving order.
func NormalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
