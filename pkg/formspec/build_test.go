package formspec

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/crypto/bcrypt"

	"github.com/goliatone/go-formctl/pkg/credentials"
	"github.com/goliatone/go-formctl/pkg/form"
)

const openapiDoc = `
openapi: 3.0.3
info: {title: accounts, version: "1.0"}
paths: {}
components:
  schemas:
    Credentials:
      type: object
      properties:
        username:
          type: string
          minLength: 3
          maxLength: 16
          pattern: '^[a-z0-9_]+$'
`

const accountYAML = `
openapi: api.yaml
forms:
  account:
    component: Credentials
    fields:
      - name: username
        property: username
        messages:
          minLength: Username is too short
          pattern: Use lowercase letters, digits and underscores
`

func buildForm(t *testing.T, files fstest.MapFS, id string) *Built {
	t.Helper()
	store, err := LoadFS(files)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	built, err := store.Build(context.Background(), id)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return built
}

func TestBuild_SignupRules(t *testing.T) {
	built := buildForm(t, fstest.MapFS{"signup.yaml": {Data: []byte(signupYAML)}}, "signup")

	email := built.Inputs["email"]
	email.Input("nope")
	if diff := cmp.Diff([]string{"Enter a valid email"}, email.Blur().Messages()); diff != "" {
		t.Fatalf("email issues mismatch (-want +got):\n%s", diff)
	}
	email.Input("")
	if got := email.Issues().Messages(); len(got) == 0 || got[0] != "String must contain at least 1 character(s)" {
		t.Fatalf("required rule should fire first, got %v", got)
	}

	password := built.Inputs["password"]
	password.Input("short")
	if diff := cmp.Diff([]string{"Password must be at least 8 characters"}, password.Blur().Messages()); diff != "" {
		t.Fatalf("password issues mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_MatchesFollowsTarget(t *testing.T) {
	built := buildForm(t, fstest.MapFS{"signup.yaml": {Data: []byte(signupYAML)}}, "signup")

	password := built.Inputs["password"]
	confirm := built.Inputs["confirm"]

	password.Input("abcdefgh")
	password.Blur()
	confirm.Input("abcdefgh")
	if issues := confirm.Blur(); issues != nil {
		t.Fatalf("expected matching confirm to be valid, got %v", issues)
	}

	issues := password.Input("abcdefgX")
	if diff := cmp.Diff([]string{"Passwords do not match"}, issues.Messages()); diff != "" {
		t.Fatalf("password edit should surface confirm issue (-want +got):\n%s", diff)
	}
	if built.Controls["confirm"].IsValid() {
		t.Fatalf("confirm should be invalid after password changed")
	}
}

func TestBuild_OpenAPIProperty(t *testing.T) {
	files := fstest.MapFS{
		"api.yaml":     {Data: []byte(openapiDoc)},
		"account.yaml": {Data: []byte(accountYAML)},
	}
	built := buildForm(t, files, "account")

	username := built.Inputs["username"]
	username.Input("ab")
	issues := username.Blur()
	if len(issues) == 0 || issues[0].Message != "Username is too short" || issues[0].Path != "username" {
		t.Fatalf("unexpected issues %#v", issues)
	}

	username.Input("Ada Lovelace")
	if got := username.Issues(); len(got) == 0 || got[0].Message != "Use lowercase letters, digits and underscores" {
		t.Fatalf("expected pattern issue, got %#v", got)
	}

	username.Input("ada_l")
	if got := username.Issues(); got != nil {
		t.Fatalf("expected valid username, got %#v", got)
	}

	values, err := built.View.Finish(context.Background())
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"username": "ada_l"}, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_SubmitTouchesEverything(t *testing.T) {
	built := buildForm(t, fstest.MapFS{"signup.yaml": {Data: []byte(signupYAML)}}, "signup")
	if !built.Group.Valid() {
		t.Fatalf("untouched form should be valid")
	}
	_, err := built.View.Finish(context.Background())
	if !errors.Is(err, form.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if _, ok := built.Group.Errors()["email"]; !ok {
		t.Fatalf("expected email errors after submit attempt, got %v", built.Group.Errors())
	}
}

func TestBuild_UnknownForm(t *testing.T) {
	store, _ := LoadFS(fstest.MapFS{"signup.yaml": {Data: []byte(signupYAML)}})
	if _, err := store.Build(context.Background(), "missing"); err == nil {
		t.Fatalf("expected error for unknown form")
	}
}

func TestBuild_SubmitHashesPasswords(t *testing.T) {
	store, err := LoadFS(fstest.MapFS{"signup.yaml": {Data: []byte(signupYAML)}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	built, err := store.Build(context.Background(), "signup", credentials.WithCost(bcrypt.MinCost))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	built.Inputs["email"].Input("ada@example.com")
	built.Inputs["password"].Input("correct horse")
	built.Inputs["confirm"].Input("correct horse")

	payload, err := built.View.Finish(context.Background())
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	values := payload.(map[string]any)
	if _, ok := values["confirm"]; ok {
		t.Fatalf("confirmation field should be dropped: %v", values)
	}
	hash, _ := values["password"].(string)
	if !credentials.VerifyPassword(hash, "correct horse") {
		t.Fatalf("password should be replaced by its hash, got %q", hash)
	}
	if values["email"] != "ada@example.com" {
		t.Fatalf("unexpected email %v", values["email"])
	}
}

const inviteYAML = `
forms:
  invite:
    fields:
      - name: name
        rules: {required: true}
      - name: code
        disabled: true
        rules: {required: true}
      - name: secret
        type: password
        disabled: true
`

func TestBuild_DisabledFieldsDoNotBlockSubmit(t *testing.T) {
	built := buildForm(t, fstest.MapFS{"invite.yaml": {Data: []byte(inviteYAML)}}, "invite")
	built.Inputs["name"].Input("ada")

	payload, err := built.View.Finish(context.Background())
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"name": "ada"}, payload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}
