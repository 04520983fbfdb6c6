package formspec

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formctl/pkg/binding"
	"github.com/goliatone/go-formctl/pkg/control"
	"github.com/goliatone/go-formctl/pkg/credentials"
	"github.com/goliatone/go-formctl/pkg/form"
	"github.com/goliatone/go-formctl/pkg/render"
	"github.com/goliatone/go-formctl/pkg/schema"
	"github.com/goliatone/go-formctl/pkg/schema/openapi"
)

// Message keys besides the OpenAPI keywords accepted by openapi.WithMessages.
const (
	MessageRequired = "required"
	MessageMatches  = "matches"
	MessageFormat   = "format"
)

// Built is a live form created from a definition.
type Built struct {
	Definition Form
	Group      *form.Group
	Controls   map[string]*control.Control[string]
	Inputs     map[string]*binding.Directive[string]
	View       *render.Form
}

// Build creates the controls, directives and render view for form id.
// Submitting the view drops confirmation (`matches`) fields and replaces
// password values with their bcrypt hash. Disabled fields are left out.
func (s *Store) Build(ctx context.Context, id string, hashOpts ...credentials.HashOption) (*Built, error) {
	def, ok := s.Form(id)
	if !ok {
		return nil, fmt.Errorf("formspec: form %q not found", id)
	}

	var component *openapi3.Schema
	if def.Document != "" && def.Component != "" {
		doc, err := s.loadDocument(ctx, def.Document)
		if err != nil {
			return nil, err
		}
		if component, err = openapi.Component(doc, def.Component, ""); err != nil {
			return nil, fmt.Errorf("formspec: form %q: %w", id, err)
		}
	}

	built := &Built{
		Definition: def,
		Controls:   make(map[string]*control.Control[string], len(def.Fields)),
		Inputs:     make(map[string]*binding.Directive[string], len(def.Fields)),
	}

	bases := make(map[string]schema.Schema[string], len(def.Fields))
	for _, field := range def.Fields {
		base, err := compileField(field, component)
		if err != nil {
			return nil, fmt.Errorf("formspec: form %q field %q: %w", id, field.Name, err)
		}
		bases[field.Name] = base
	}

	// A matching field is created after the field it matches.
	for len(built.Controls) < len(def.Fields) {
		progress := false
		for _, field := range def.Fields {
			if _, done := built.Controls[field.Name]; done {
				continue
			}
			opts := []control.Option[string]{control.WithName[string](field.Name)}
			base := bases[field.Name]
			if target := strings.TrimSpace(field.Matches); target != "" {
				other, ok := built.Controls[target]
				if !ok {
					continue
				}
				opts = append(opts, control.WithSource(matchesSource(base, other, field.Messages[MessageMatches])))
			} else if base != nil {
				opts = append(opts, control.WithSchema[string](base))
			}
			c := control.New(field.Default, opts...)
			c.Disabled.Set(field.Disabled)
			built.Controls[field.Name] = c
			progress = true
		}
		if !progress {
			return nil, fmt.Errorf("formspec: form %q: matches form a cycle", id)
		}
	}

	fields := make([]form.Field, 0, len(def.Fields))
	for _, field := range def.Fields {
		fields = append(fields, built.Controls[field.Name])
	}

	dependents := make(map[string][]binding.Validatable)
	for _, field := range def.Fields {
		if target := strings.TrimSpace(field.Matches); target != "" {
			dependents[target] = append(dependents[target], built.Controls[field.Name])
		}
	}

	prompts := make([]render.Prompt, 0, len(def.Fields))
	for _, field := range def.Fields {
		c := built.Controls[field.Name]
		var opts []binding.Option[string]
		if deps := dependents[field.Name]; len(deps) > 0 {
			opts = append(opts, binding.WithDependents[string](deps...))
		}
		input := binding.BindString(c, opts...)
		built.Inputs[field.Name] = input
		prompts = append(prompts, render.Prompt{
			Field: c,
			Input: input,
			Label: field.Label,
			Kind:  render.ParseKind(field.Type),
			Help:  field.Help,
		})
	}

	group, err := form.NewGroup(def.ID, fields...)
	if err != nil {
		return nil, fmt.Errorf("formspec: form %q: %w", id, err)
	}
	built.Group = group

	view, err := render.NewForm(group, built.submit(hashOpts), prompts...)
	if err != nil {
		return nil, fmt.Errorf("formspec: form %q: %w", id, err)
	}
	built.View = view
	return built, nil
}

func (b *Built) submit(hashOpts []credentials.HashOption) render.SubmitFunc {
	return func(ctx context.Context) (any, error) {
		values, err := b.Group.Submit(ctx)
		if err != nil {
			return nil, err
		}
		for _, field := range b.Definition.Fields {
			if field.Matches != "" {
				delete(values, field.Name)
				continue
			}
			if field.Type != TypePassword {
				continue
			}
			raw, ok := values[field.Name]
			if !ok {
				continue
			}
			plain, _ := raw.(string)
			hash, err := credentials.HashPassword(plain, hashOpts...)
			if err != nil {
				return nil, fmt.Errorf("formspec: hash %q: %w", field.Name, err)
			}
			values[field.Name] = hash
		}
		return values, nil
	}
}

func (s *Store) loadDocument(ctx context.Context, name string) (*openapi3.T, error) {
	if s.files == nil {
		return nil, fmt.Errorf("formspec: openapi document %s: no filesystem", name)
	}
	data, err := fs.ReadFile(s.files, name)
	if err != nil {
		return nil, fmt.Errorf("formspec: read %s: %w", name, err)
	}
	doc, err := openapi.LoadDocument(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("formspec: %s: %w", name, err)
	}
	return doc, nil
}

// compileField turns the declared rules (and the referenced OpenAPI property)
// into one schema. A field without rules has no schema.
func compileField(field Field, component *openapi3.Schema) (schema.Schema[string], error) {
	var parts []schema.Schema[string]

	messages := make(map[string]string, len(field.Messages))
	for k, v := range field.Messages {
		messages[k] = v
	}
	email := strings.EqualFold(field.Rules.Format, "email")
	if email && field.Rules.Pattern == "" {
		// email compiles to a pattern
		if msg, ok := messages[MessageFormat]; ok {
			messages["pattern"] = msg
		} else if _, ok := messages["pattern"]; !ok {
			messages["pattern"] = "Invalid email"
		}
	}

	if field.Rules.Required {
		if msg := messages[MessageRequired]; msg != "" {
			parts = append(parts, schema.String().NonEmpty(msg))
		} else {
			parts = append(parts, schema.String().NonEmpty())
		}
	}

	if field.Property != "" {
		prop, err := propertyOf(component, field.Property)
		if err != nil {
			return nil, err
		}
		parts = append(parts, openapi.New[string](prop, openapi.WithMessages(messages), openapi.WithPath(field.Name)))
	}

	rules := openapi.StringRules{
		MinLength: field.Rules.MinLength,
		MaxLength: field.Rules.MaxLength,
		Pattern:   field.Rules.Pattern,
		Email:     email,
	}
	if rules.MinLength != nil || rules.MaxLength != nil || rules.Pattern != "" || rules.Email {
		parts = append(parts, openapi.New[string](rules.Schema(), openapi.WithMessages(messages), openapi.WithPath(field.Name)))
	}

	switch len(parts) {
	case 0:
		return nil, nil
	case 1:
		return parts[0], nil
	default:
		return schema.All(parts...), nil
	}
}

func propertyOf(component *openapi3.Schema, property string) (*openapi3.Schema, error) {
	if component == nil {
		return nil, fmt.Errorf("property %q: no openapi component loaded", property)
	}
	ref := component.Properties[property]
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("openapi: property %q not found", property)
	}
	return ref.Value, nil
}

// matchesSource extends base with an equality check against target's
// current value, rebuilt whenever target is written.
func matchesSource(base schema.Schema[string], target *control.Control[string], message string) schema.Source[string] {
	if strings.TrimSpace(message) == "" {
		message = "Values do not match"
	}
	return schema.Reactive(func() schema.Schema[string] {
		var equal schema.Schema[string] = schema.String().Equals(target.Value.Get(), message)
		if base == nil {
			return equal
		}
		return schema.All(base, equal)
	}, target.Value)
}
