// Package bubble renders forms as an interactive bubbletea program.
package bubble

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-formctl/pkg/render"
)

// ErrAborted is returned when the user cancels the form.
var ErrAborted = errors.New("bubble: aborted")

type Option func(*Renderer)

// WithStyles overrides DefaultStyles.
func WithStyles(styles Styles) Option {
	return func(r *Renderer) {
		r.styles = styles
	}
}

// WithOutputFormat selects render.FormatJSON or render.FormatPretty.
func WithOutputFormat(format string) Option {
	return func(r *Renderer) {
		if format != "" {
			r.format = format
		}
	}
}

// WithIO runs the program on custom streams instead of the terminal.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *Renderer) {
		r.in = in
		r.out = out
	}
}

// WithProgramOptions appends raw bubbletea options.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(r *Renderer) {
		r.programOpts = append(r.programOpts, opts...)
	}
}

// Renderer implements render.Renderer with a full-screen terminal form.
type Renderer struct {
	styles      Styles
	format      string
	in          io.Reader
	out         io.Writer
	programOpts []tea.ProgramOption
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{styles: DefaultStyles(), format: render.FormatJSON}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	switch r.format {
	case render.FormatJSON, render.FormatPretty:
	default:
		return nil, fmt.Errorf("bubble: unsupported output format %q", r.format)
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "bubble"
}

func (r *Renderer) ContentType() string {
	if r.format == render.FormatPretty {
		return "text/plain; charset=utf-8"
	}
	return "application/json"
}

// Render runs the program until the form is submitted or cancelled.
func (r *Renderer) Render(ctx context.Context, f *render.Form, opts render.RenderOptions) ([]byte, error) {
	if f == nil || f.Group == nil {
		return nil, fmt.Errorf("bubble: form is nil")
	}

	model := NewModel(ctx, f, opts, StylesFromTheme(r.styles, opts.Theme))
	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if r.in != nil {
		programOpts = append(programOpts, tea.WithInput(r.in))
	}
	if r.out != nil {
		programOpts = append(programOpts, tea.WithOutput(r.out))
	}
	programOpts = append(programOpts, r.programOpts...)

	final, err := tea.NewProgram(model, programOpts...).Run()
	if err != nil {
		return nil, fmt.Errorf("bubble: run: %w", err)
	}
	return r.finish(final)
}

func (r *Renderer) finish(final tea.Model) ([]byte, error) {
	m, ok := final.(*Model)
	if !ok {
		return nil, fmt.Errorf("bubble: unexpected model %T", final)
	}
	if m.Aborted() {
		return nil, ErrAborted
	}
	if err := m.Err(); err != nil {
		return nil, err
	}
	payload, ok := m.Result()
	if !ok {
		return nil, ErrAborted
	}
	out, err := render.Encode(payload, r.format)
	if err != nil {
		return nil, fmt.Errorf("bubble: %w", err)
	}
	return out, nil
}
