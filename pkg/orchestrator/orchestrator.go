package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/goliatone/go-formctl/pkg/binding"
	"github.com/goliatone/go-formctl/pkg/credentials"
	"github.com/goliatone/go-formctl/pkg/formspec"
	"github.com/goliatone/go-formctl/pkg/render"
	"github.com/goliatone/go-formctl/pkg/renderers/tui"
	theme "github.com/goliatone/go-theme"
)

const defaultRendererName = "tui"

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRegistry injects the renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		if registry != nil {
			o.registry = registry
		}
	}
}

// WithDefaultRenderer names the renderer used when a request leaves it blank.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		if name = strings.TrimSpace(name); name != "" {
			o.defaultRenderer = name
		}
	}
}

// WithSpecFS loads form definitions from fsys in addition to the built-in
// login and signup forms.
func WithSpecFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.specFS = fsys
	}
}

// WithSpecStore uses an already loaded definition store.
func WithSpecStore(store *formspec.Store) Option {
	return func(o *Orchestrator) {
		o.specs = store
	}
}

// WithHashOptions configures password hashing for submissions.
func WithHashOptions(opts ...credentials.HashOption) Option {
	return func(o *Orchestrator) {
		o.hashOpts = append(o.hashOpts, opts...)
	}
}

// WithThemeSelector resolves Request.ThemeName/ThemeVariant into the
// render options' theme before rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// Orchestrator builds a form and hands it to a renderer.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	specFS          fs.FS
	specs           *formspec.Store
	hashOpts        []credentials.HashOption
	themeSelector   theme.ThemeSelector
	initialiseErr   error
}

// New constructs an Orchestrator. Without a registry, the survey based tui
// renderer is registered.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{defaultRenderer: defaultRendererName}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}
	o.applyDefaults()
	return o
}

// Request describes one form run.
type Request struct {
	// FormID selects a built-in form (login, signup) or a loaded definition.
	FormID string
	// Renderer names the renderer; empty uses the default.
	Renderer string
	// Values are fed through each field's directive (focus, input, blur)
	// before rendering, so static renderers show the resulting hints.
	Values map[string]string
	// Submit attempts a submission after Values are applied, touching every
	// field.
	Submit bool
	// ThemeName and ThemeVariant are passed to the theme selector, if any.
	// An explicit RenderOptions.Theme wins.
	ThemeName    string
	ThemeVariant string

	RenderOptions render.RenderOptions
}

// Generate builds the requested form and renders it.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.FormID) == "" {
		return nil, errors.New("orchestrator: form id is required")
	}

	view, err := o.Form(ctx, req.FormID)
	if err != nil {
		return nil, err
	}
	if err := apply(view, req.Values); err != nil {
		return nil, err
	}
	if req.Submit {
		view.Group.TouchAll()
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}
	opts := req.RenderOptions
	if opts.Theme == nil && o.themeSelector != nil {
		selection, err := o.themeSelector.Select(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: select theme: %w", err)
		}
		opts.Theme = render.ThemeConfig(selection)
	}
	output, err := renderer.Render(ctx, view, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Form builds a fresh form by id.
func (o *Orchestrator) Form(ctx context.Context, id string) (*render.Form, error) {
	id = strings.TrimSpace(id)
	switch id {
	case credentials.LoginFormID:
		if _, ok := o.specs.Form(id); !ok {
			login, err := credentials.NewLogin()
			if err != nil {
				return nil, fmt.Errorf("orchestrator: %w", err)
			}
			return login.View(o.hashOpts...)
		}
	case credentials.SignupFormID:
		if _, ok := o.specs.Form(id); !ok {
			signup, err := credentials.NewSignup()
			if err != nil {
				return nil, fmt.Errorf("orchestrator: %w", err)
			}
			return signup.View(o.hashOpts...)
		}
	}

	if _, ok := o.specs.Form(id); !ok {
		return nil, fmt.Errorf("orchestrator: form %q not found", id)
	}
	built, err := o.specs.Build(ctx, id, o.hashOpts...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return built.View, nil
}

// Forms lists the available form ids. Definitions may shadow built-ins.
func (o *Orchestrator) Forms() []string {
	seen := map[string]struct{}{
		credentials.LoginFormID:  {},
		credentials.SignupFormID: {},
	}
	for _, id := range o.specs.IDs() {
		seen[id] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func apply(view *render.Form, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	for name := range values {
		if _, ok := view.Group.Get(name); !ok {
			return fmt.Errorf("orchestrator: form %q has no field %q", view.Group.ID(), name)
		}
	}
	for _, prompt := range view.Prompts {
		raw, ok := values[prompt.Name()]
		if !ok {
			continue
		}
		for _, step := range []struct {
			ev binding.Event
			el binding.Element
		}{
			{binding.EventFocus, nil},
			{binding.EventInput, binding.Text(raw)},
			{binding.EventBlur, nil},
		} {
			if _, err := prompt.Input.Handle(step.ev, step.el); err != nil {
				return fmt.Errorf("orchestrator: field %q: %w", prompt.Name(), err)
			}
		}
	}
	return nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	target := strings.TrimSpace(name)
	if target == "" {
		target = o.defaultRenderer
	}
	if o.registry.Has(target) {
		return o.registry.Get(target)
	}
	if name != "" {
		return nil, fmt.Errorf("orchestrator: renderer %q not registered (have %s)", name, strings.Join(o.registry.List(), ", "))
	}
	renderer, err := o.registry.Resolve("")
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := tui.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(renderer)
	}
	if o.specs == nil {
		store, err := formspec.LoadFS(o.specFS)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: %w", err)
			return
		}
		o.specs = store
	}
}
