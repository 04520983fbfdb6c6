// Package openapi adapts kin-openapi schemas to the schema.Schema contract so
// field rules can be declared as OpenAPI string constraints and validated by
// kin-openapi.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formctl/pkg/schema"
)

// Option configures an Adapter.
type Option func(*config)

type config struct {
	messages map[string]string
	path     string
}

// WithMessages overrides issue messages per OpenAPI keyword (minLength,
// maxLength, pattern, format, type, enum).
func WithMessages(messages map[string]string) Option {
	return func(cfg *config) {
		if len(messages) == 0 {
			return
		}
		if cfg.messages == nil {
			cfg.messages = make(map[string]string, len(messages))
		}
		for keyword, msg := range messages {
			keyword = strings.TrimSpace(keyword)
			if keyword == "" {
				continue
			}
			cfg.messages[keyword] = strings.TrimSpace(msg)
		}
	}
}

// WithPath sets the path reported on issues.
func WithPath(path string) Option {
	return func(cfg *config) {
		cfg.path = strings.TrimSpace(path)
	}
}

// Adapter validates values against a kin-openapi schema.
type Adapter[T any] struct {
	schema *openapi3.Schema
	cfg    config
}

var _ schema.Schema[string] = (*Adapter[string])(nil)

// New wraps s. A nil schema validates everything.
func New[T any](s *openapi3.Schema, opts ...Option) *Adapter[T] {
	a := &Adapter[T]{schema: s}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&a.cfg)
	}
	return a
}

// Schema returns the wrapped OpenAPI schema.
func (a *Adapter[T]) Schema() *openapi3.Schema {
	if a == nil {
		return nil
	}
	return a.schema
}

// Validate runs kin-openapi validation collecting every failing keyword.
func (a *Adapter[T]) Validate(value T) schema.Result {
	if a == nil || a.schema == nil {
		return schema.Ok()
	}
	err := a.schema.VisitJSON(any(value), openapi3.MultiErrors())
	if err == nil {
		return schema.Ok()
	}
	return schema.Fail(a.issuesFromError(err)...)
}

func (a *Adapter[T]) issuesFromError(err error) []schema.Issue {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []schema.Issue
		for _, inner := range multi {
			out = append(out, a.issuesFromError(inner)...)
		}
		return out
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		keyword := strings.TrimSpace(schemaErr.SchemaField)
		msg := strings.TrimSpace(schemaErr.Reason)
		if custom := a.cfg.messages[keyword]; custom != "" {
			msg = custom
		}
		issue := schema.Issue{
			Message: msg,
			Code:    codeForKeyword(keyword),
			Path:    a.cfg.path,
			Params:  map[string]any{"keyword": keyword},
		}
		return []schema.Issue{issue}
	}

	return []schema.Issue{{
		Message: strings.TrimSpace(err.Error()),
		Code:    schema.CodeCustom,
		Path:    a.cfg.path,
	}}
}

func codeForKeyword(keyword string) string {
	switch keyword {
	case "minLength", "minimum", "minItems":
		return schema.CodeTooSmall
	case "maxLength", "maximum", "maxItems":
		return schema.CodeTooBig
	case "pattern", "format":
		return schema.CodeInvalidString
	case "type", "nullable":
		return schema.CodeInvalidType
	case "enum":
		return schema.CodeInvalidLiteral
	default:
		return schema.CodeCustom
	}
}

// StringRules describes the string constraints a form field can declare.
type StringRules struct {
	MinLength *int
	MaxLength *int
	Pattern   string
	Email     bool
}

// Schema compiles the rules into an OpenAPI string schema. Email is expressed
// as a pattern so validation does not depend on registered string formats.
func (r StringRules) Schema() *openapi3.Schema {
	s := openapi3.NewStringSchema()
	if r.MinLength != nil && *r.MinLength > 0 {
		s = s.WithMinLength(int64(*r.MinLength))
	}
	if r.MaxLength != nil && *r.MaxLength >= 0 {
		s = s.WithMaxLength(int64(*r.MaxLength))
	}
	switch {
	case strings.TrimSpace(r.Pattern) != "":
		s = s.WithPattern(r.Pattern)
	case r.Email:
		s = s.WithPattern(schema.EmailPattern)
	}
	return s
}

// LoadDocument parses and validates an OpenAPI document.
func LoadDocument(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: invalid document: %w", err)
	}
	return doc, nil
}

// Component resolves a component schema by name. When property is set, the
// named property of that component is returned instead.
func Component(doc *openapi3.T, name, property string) (*openapi3.Schema, error) {
	if doc == nil || doc.Components == nil {
		return nil, errors.New("openapi: document has no components")
	}
	ref := doc.Components.Schemas[strings.TrimSpace(name)]
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("openapi: component schema %q not found", name)
	}
	property = strings.TrimSpace(property)
	if property == "" {
		return ref.Value, nil
	}
	prop := ref.Value.Properties[property]
	if prop == nil || prop.Value == nil {
		return nil, fmt.Errorf("openapi: property %q not found on %q", property, name)
	}
	return prop.Value, nil
}
