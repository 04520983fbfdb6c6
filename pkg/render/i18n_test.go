package render_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formctl/pkg/render"
	"github.com/goliatone/go-formctl/pkg/schema"
)

func TestLocalizeIssues_TranslatesKnownCodes(t *testing.T) {
	translator := render.StaticTranslator{
		"es": {
			"issues.invalid_string": "Correo inválido",
			"issues.too_small":      "Mínimo {minimum} caracteres",
		},
	}
	issues := schema.Issues{
		{Message: "Invalid email", Code: schema.CodeInvalidString},
		{Message: "Password must be at least 8 characters", Code: schema.CodeTooSmall, Params: map[string]any{"minimum": 8}},
		{Message: "Passwords do not match", Code: schema.CodeInvalidLiteral},
	}

	got := render.LocalizeIssues(issues, render.RenderOptions{Locale: "es-MX", Translator: translator})
	want := []string{"Correo inválido", "Mínimo 8 caracteres", "Passwords do not match"}
	if diff := cmp.Diff(want, got.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if issues[0].Message != "Invalid email" {
		t.Fatalf("LocalizeIssues must not mutate its input")
	}
}

func TestLocalizeIssues_OnMissing(t *testing.T) {
	var gotErr error
	issues := schema.Issues{{Message: "Invalid email", Code: schema.CodeInvalidString}}
	got := render.LocalizeIssues(issues, render.RenderOptions{
		OnMissing: func(locale, key string, _ []any, err error) string {
			gotErr = err
			return "missing:" + key
		},
	})
	if got[0].Message != "missing:issues.invalid_string" {
		t.Fatalf("unexpected message %q", got[0].Message)
	}
	if !errors.Is(gotErr, render.ErrMissingTranslator) {
		t.Fatalf("expected ErrMissingTranslator, got %v", gotErr)
	}
}

func TestLocalizeIssues_NoTranslatorIsIdentity(t *testing.T) {
	issues := schema.Issues{{Message: "x", Code: "custom"}}
	got := render.LocalizeIssues(issues, render.RenderOptions{})
	if diff := cmp.Diff(issues, got); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
	if render.LocalizeIssues(nil, render.RenderOptions{}) != nil {
		t.Fatalf("nil in, nil out")
	}
}

func TestTemplateI18nFuncs(t *testing.T) {
	funcs := render.TemplateI18nFuncs(render.StaticTranslator{"en": {"hint.title": "Fix this"}}, render.TemplateI18nConfig{})
	translate, ok := funcs["translate"].(func(any, string, ...any) string)
	if !ok {
		t.Fatalf("translate helper has unexpected type %T", funcs["translate"])
	}
	if got := translate(map[string]any{"locale": "en"}, "hint.title"); got != "Fix this" {
		t.Fatalf("unexpected translation %q", got)
	}
	if got := translate("en", "missing.key"); got != "missing.key" {
		t.Fatalf("missing keys fall back to the key, got %q", got)
	}
}
