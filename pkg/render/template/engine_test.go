package template_test

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formctl/pkg/render/template"
)

func TestEngine_RenderTemplateFromFS(t *testing.T) {
	files := fstest.MapFS{
		"hint.tpl": {Data: []byte(`<span id="{{ id }}">{{ message }}</span>`)},
	}
	engine, err := template.New(template.WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	var buf bytes.Buffer
	got, err := engine.RenderTemplate("hint", map[string]any{"id": "email-error", "message": "Invalid email"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<span id="email-error">Invalid email</span>`
	if got != want || buf.String() != want {
		t.Fatalf("render mismatch\nwant: %q\n got: %q (writer %q)", want, got, buf.String())
	}
}

func TestEngine_GlobalsAndFuncs(t *testing.T) {
	engine, err := template.New(
		template.WithGlobalData(map[string]any{"prefix": "x-form"}),
		template.WithFuncs(map[string]any{"shout": func(s string) string { return strings.ToUpper(s) }}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderString(`{{ prefix }}:{{ shout(name) }}`, struct {
		Name string `json:"name"`
	}{Name: "ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "x-form:ADA" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine, err := template.New(template.WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}
