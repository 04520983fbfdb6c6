// Package template adapts github.com/goliatone/go-template (a pongo2 engine)
// for the HTML hint renderer.
package template

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/goccy/go-json"
	gotemplate "github.com/goliatone/go-template"
)

// Option configures an Engine.
type Option func(*config)

type config struct {
	templates  fs.FS
	extension  string
	funcs      map[string]any
	globalData map[string]any
}

// WithFS loads named templates from files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the ".tpl" extension appended to template names.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.extension = ext
	}
}

// WithFuncs exposes helper functions (e.g. render.TemplateI18nFuncs) to
// every template.
func WithFuncs(funcs map[string]any) Option {
	return func(cfg *config) {
		if len(funcs) == 0 {
			return
		}
		if cfg.funcs == nil {
			cfg.funcs = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			if name = strings.TrimSpace(name); name != "" && fn != nil {
				cfg.funcs[name] = fn
			}
		}
	}
}

// WithGlobalData seeds values visible to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// backend is the part of the go-template engine the adapter relies on.
type backend interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}

// Engine renders templates from an fs.FS or from strings.
type Engine struct {
	renderer backend
	ext      string
}

// New builds an engine. A filesystem is optional when only RenderString is
// used.
func New(options ...Option) (*Engine, error) {
	cfg := &config{extension: ".tpl"}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	files := cfg.templates
	if files == nil {
		// go-template needs a base dir or a filesystem
		files = emptyFS{}
	}
	opts := []gotemplate.Option{
		gotemplate.WithFS(files),
		gotemplate.WithExtension(cfg.extension),
	}
	if len(cfg.funcs) > 0 {
		opts = append(opts, gotemplate.WithTemplateFunc(cfg.funcs))
	}

	renderer, err := gotemplate.NewRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("template: new renderer: %w", err)
	}
	engine := &Engine{renderer: renderer, ext: cfg.extension}

	if len(cfg.globalData) > 0 {
		if err := engine.GlobalContext(cfg.globalData); err != nil {
			return nil, fmt.Errorf("template: apply global data: %w", err)
		}
	}
	return engine, nil
}

// RenderTemplate executes the named template, also writing the result to out.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.renderer == nil {
		return "", errors.New("template: engine is nil")
	}
	path := name
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("template: convert data: %w", err)
	}
	rendered, err := e.renderer.RenderTemplate(path, ctx, out...)
	if err != nil {
		return "", fmt.Errorf("template: render %s: %w", path, err)
	}
	return rendered, nil
}

// RenderString parses and executes templateContent.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.renderer == nil {
		return "", errors.New("template: engine is nil")
	}
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("template: convert data: %w", err)
	}
	rendered, err := e.renderer.RenderString(templateContent, ctx, out...)
	if err != nil {
		return "", fmt.Errorf("template: render string: %w", err)
	}
	return rendered, nil
}

// GlobalContext merges data into the globals of every template.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.renderer == nil {
		return errors.New("template: engine is nil")
	}
	if data == nil {
		return nil
	}
	ctx, err := toContext(data)
	if err != nil {
		return err
	}
	return e.renderer.GlobalContext(ctx)
}

type emptyFS struct{}

func (emptyFS) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// toContext turns data into a template context. Maps keep their values (so
// helper funcs survive); anything else goes through a JSON round trip so
// templates see the same field names as serialized output.
func toContext(data any) (map[string]any, error) {
	switch v := data.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return v, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
