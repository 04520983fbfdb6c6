// Package tui collects form input through terminal prompts. Each field is
// driven through its binding directive (focus, input, blur) so the prompts
// see exactly the issues a browser user would.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-formctl/pkg/binding"
	"github.com/goliatone/go-formctl/pkg/form"
	"github.com/goliatone/go-formctl/pkg/render"
)

// Renderer implements render.Renderer with interactive prompts.
type Renderer struct {
	driver       PromptDriver
	stdio        *terminal.Stdio
	outputFormat OutputFormat
	theme        Theme
	maxAttempts  int
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer. The survey driver is used unless
// WithPromptDriver supplies another one.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.stdio)
	}
	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatPrettyText {
		return "text/plain; charset=utf-8"
	}
	return "application/json"
}

// Render prompts for every enabled field, then submits. When the submission
// is rejected the invalid fields are prompted again after the user agrees
// to retry.
func (r *Renderer) Render(ctx context.Context, f *render.Form, opts render.RenderOptions) ([]byte, error) {
	if f == nil || f.Group == nil {
		return nil, fmt.Errorf("tui: form is nil")
	}

	pending := f.Prompts
	for {
		for _, prompt := range pending {
			if err := r.promptField(ctx, prompt, opts); err != nil {
				return nil, err
			}
		}

		payload, err := f.Finish(ctx)
		if err == nil {
			return r.serialize(payload)
		}
		if !errors.Is(err, form.ErrInvalid) {
			return nil, err
		}

		pending = pending[:0:0]
		for _, prompt := range f.Prompts {
			if prompt.Field.Snapshot().Disabled || prompt.Field.IsValid() {
				continue
			}
			r.reportIssues(ctx, prompt, opts)
			pending = append(pending, prompt)
		}
		if len(pending) == 0 {
			return nil, err
		}
		retry, cerr := r.driver.Confirm(ctx, ConfirmConfig{Message: "Fix the fields above?", Default: true})
		if cerr != nil {
			return nil, cerr
		}
		if !retry {
			return nil, fmt.Errorf("%w: %w", ErrAborted, err)
		}
	}
}

// promptField focuses the field, reads a value, feeds it as an input event
// and blurs, repeating while the field reports visible issues.
func (r *Renderer) promptField(ctx context.Context, prompt render.Prompt, opts render.RenderOptions) error {
	if prompt.Field.Snapshot().Disabled {
		return nil
	}
	for attempt := 1; ; attempt++ {
		if _, err := prompt.Input.Handle(binding.EventFocus, nil); err != nil {
			return err
		}

		raw, err := r.ask(ctx, prompt)
		if err != nil {
			return err
		}
		if _, err := prompt.Input.Handle(binding.EventInput, binding.Text(raw)); err != nil {
			return err
		}
		if _, err := prompt.Input.Handle(binding.EventBlur, nil); err != nil {
			return err
		}

		if prompt.Field.IsValid() {
			return nil
		}
		r.reportIssues(ctx, prompt, opts)
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, prompt.Name())
		}
	}
}

func (r *Renderer) ask(ctx context.Context, prompt render.Prompt) (string, error) {
	cfg := InputConfig{Message: prompt.Title(), Help: prompt.Help}
	if prompt.Kind == render.KindPassword {
		return r.driver.Password(ctx, cfg)
	}
	if current, ok := prompt.Field.Raw().(string); ok {
		cfg.Default = current
	}
	return r.driver.Input(ctx, cfg)
}

func (r *Renderer) reportIssues(ctx context.Context, prompt render.Prompt, opts render.RenderOptions) {
	issues := render.LocalizeIssues(prompt.Field.Errors(), opts)
	for _, msg := range form.NormalizeMessages(issues.Messages()) {
		_ = r.driver.Info(ctx, r.errorLine(prompt.Title(), msg))
	}
}

func (r *Renderer) errorLine(label, msg string) string {
	line := fmt.Sprintf("%s: %s", label, msg)
	if prefix := strings.TrimSpace(r.theme.ErrorPrefix); prefix != "" {
		line = prefix + " " + line
	}
	return line
}
