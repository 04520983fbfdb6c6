// Package vanilla renders inline HTML error hints for form fields. A hint is
// only emitted once its field is touched and has errors, so it can be
// swapped into server-rendered pages after each input event.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-formctl/pkg/form"
	"github.com/goliatone/go-formctl/pkg/render"
	rendertemplate "github.com/goliatone/go-formctl/pkg/render/template"
)

// HintClass is the CSS class carried by every hint element.
const HintClass = "x-form-error"

const hintsTemplate = "hints"

type Option func(*config)

type config struct {
	templateFS fs.FS
	class      string
	funcs      map[string]any
}

// WithTemplatesFS supplies an alternate template bundle. It must contain
// hints.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithHintClass overrides HintClass.
func WithHintClass(class string) Option {
	return func(cfg *config) {
		if class = strings.TrimSpace(class); class != "" {
			cfg.class = class
		}
	}
}

// WithTemplateFuncs exposes helpers such as render.TemplateI18nFuncs to
// custom templates.
func WithTemplateFuncs(funcs map[string]any) Option {
	return func(cfg *config) {
		if cfg.funcs == nil {
			cfg.funcs = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			cfg.funcs[name] = fn
		}
	}
}

type Renderer struct {
	templates *rendertemplate.Engine
	class     string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the hint renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{class: HintClass}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	engine, err := rendertemplate.New(
		rendertemplate.WithFS(cfg.templateFS),
		rendertemplate.WithFuncs(cfg.funcs),
	)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
	}
	return &Renderer{templates: engine, class: cfg.class}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render emits one hint element per field with visible errors.
func (r *Renderer) Render(ctx context.Context, f *render.Form, opts render.RenderOptions) ([]byte, error) {
	if f == nil || f.Group == nil {
		return nil, fmt.Errorf("vanilla renderer: form is nil")
	}
	return r.render(ctx, f.Group.Fields(), opts)
}

// Hint renders the hint for a single field; the result is empty while the
// field is untouched or valid.
func (r *Renderer) Hint(ctx context.Context, field form.Field, opts render.RenderOptions) ([]byte, error) {
	if field == nil {
		return nil, nil
	}
	return r.render(ctx, []form.Field{field}, opts)
}

func (r *Renderer) render(ctx context.Context, fields []form.Field, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	items := make([]map[string]any, 0, len(fields))
	for _, field := range fields {
		messages := hintMessages(field, opts)
		if len(messages) == 0 {
			continue
		}
		items = append(items, map[string]any{
			"name":     field.Name(),
			"hint_id":  HintID(field),
			"messages": messages,
		})
	}
	if len(items) == 0 {
		return nil, nil
	}

	result, err := r.templates.RenderTemplate(hintsTemplate, map[string]any{
		"fields": items,
		"class":  r.class,
		"locale": opts.Locale,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func hintMessages(field form.Field, opts render.RenderOptions) []string {
	if field.Snapshot().Disabled {
		return nil
	}
	issues := render.LocalizeIssues(field.Errors(), opts)
	messages := make([]string, 0, len(issues))
	for _, msg := range form.NormalizeMessages(issues.Messages()) {
		if clean := sanitizeMessage(msg); clean != "" {
			messages = append(messages, clean)
		}
	}
	return messages
}

// HintID is the element id of a field's hint, derived from the control id.
func HintID(field form.Field) string {
	return field.ID() + "-error"
}

// Attributes returns the accessibility attributes the field's input element
// should carry for its current state.
func Attributes(field form.Field) map[string]string {
	if field == nil || field.IsValid() {
		return map[string]string{"aria-invalid": "false"}
	}
	return map[string]string{
		"aria-invalid":     "true",
		"aria-describedby": HintID(field),
	}
}
