package render_test

import (
	"testing"

	"github.com/goliatone/go-formctl/pkg/render"
)

func TestEncode(t *testing.T) {
	payload := struct {
		Email string `json:"email"`
		Hash  string `json:"password_hash"`
	}{Email: "ada@example.com", Hash: "$2a$"}

	pretty, err := render.Encode(payload, render.FormatPretty)
	if err != nil {
		t.Fatalf("pretty: %v", err)
	}
	want := "email:          ada@example.com\npassword_hash:  $2a$\n"
	if string(pretty) != want {
		t.Fatalf("pretty mismatch\nwant: %q\n got: %q", want, pretty)
	}

	js, err := render.Encode(map[string]any{"email": "ada@example.com"}, render.FormatJSON)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if string(js) != "{\n  \"email\": \"ada@example.com\"\n}\n" {
		t.Fatalf("unexpected json %q", js)
	}

	if _, err := render.Encode(payload, "xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
