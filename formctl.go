// Package formctl is the convenience entry point for running credential and
// declarative forms. Most callers only need Hints or NewOrchestrator; the
// packages under pkg/ expose the reactive building blocks directly.
package formctl

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formctl/pkg/orchestrator"
	"github.com/goliatone/go-formctl/pkg/render"
	"github.com/goliatone/go-formctl/pkg/renderers/vanilla"
)

// RenderOptions aliases render.RenderOptions (locale and translator).
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Hints feeds values through the fields of formID and returns the HTML error
// hints of the resulting state. With submit set, every field is touched
// first, as on a submit attempt. A registry passed in options is replaced by
// one holding only the HTML renderer.
func Hints(ctx context.Context, formID string, values map[string]string, submit bool, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	registry := render.NewRegistry()
	html, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	registry.MustRegister(html)

	// the hint registry wins over any caller supplied one
	options = append(options[:len(options):len(options)], orchestrator.WithRegistry(registry))
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		FormID:        formID,
		Renderer:      html.Name(),
		Values:        values,
		Submit:        submit,
		RenderOptions: opts,
	})
}

// HintTemplatesFS exposes the embedded hint templates for callers that want
// to start a custom bundle from them.
func HintTemplatesFS() fs.FS {
	return vanilla.TemplatesFS()
}
