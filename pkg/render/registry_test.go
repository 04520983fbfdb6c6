package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formctl/pkg/binding"
	"github.com/goliatone/go-formctl/pkg/control"
	"github.com/goliatone/go-formctl/pkg/form"
	"github.com/goliatone/go-formctl/pkg/render"
)

type stubRenderer struct{ name string }

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, *render.Form, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry(t *testing.T) {
	registry := render.NewRegistry()
	if _, err := registry.Resolve(""); err == nil {
		t.Fatalf("expected error from empty registry")
	}

	registry.MustRegister(stubRenderer{name: "survey"})
	registry.MustRegister(stubRenderer{name: "bubble"})

	if err := registry.Register(stubRenderer{name: "survey"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(stubRenderer{name: "  "}); err == nil {
		t.Fatalf("expected blank name error")
	}

	if diff := cmp.Diff([]string{"bubble", "survey"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	got, err := registry.Resolve("")
	if err != nil || got.Name() != "survey" {
		t.Fatalf("default renderer: got %v, %v", got, err)
	}
	if err := registry.SetDefault("bubble"); err != nil {
		t.Fatalf("set default: %v", err)
	}
	got, _ = registry.Resolve(" ")
	if got.Name() != "bubble" {
		t.Fatalf("expected bubble default, got %s", got.Name())
	}
	if _, err := registry.Get("html"); err == nil {
		t.Fatalf("expected missing renderer error")
	}
	if !registry.Has("bubble") || registry.Has("html") {
		t.Fatalf("Has mismatch")
	}
}

func TestNewForm(t *testing.T) {
	email := control.New("", control.WithName[string]("email"))
	group, err := form.NewGroup("login", email)
	if err != nil {
		t.Fatalf("group: %v", err)
	}

	f, err := render.NewForm(group, nil, render.Prompt{Field: email, Input: binding.BindString(email), Kind: render.ParseKind("EMAIL")})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	if f.Prompts[0].Title() != "email" || f.Prompts[0].Kind != render.KindEmail {
		t.Fatalf("unexpected prompt %+v", f.Prompts[0])
	}

	stray := control.New("", control.WithName[string]("other"))
	if _, err := render.NewForm(group, nil, render.Prompt{Field: stray, Input: binding.BindString(stray)}); err == nil {
		t.Fatalf("expected error for prompt outside the group")
	}

	email.Value.Set("ada@example.com")
	values, err := f.Finish(context.Background())
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"email": "ada@example.com"}, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}
