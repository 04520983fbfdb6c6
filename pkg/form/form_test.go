package form_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formctl/pkg/control"
	"github.com/goliatone/go-formctl/pkg/form"
	"github.com/goliatone/go-formctl/pkg/schema"
)

func newLoginGroup(t *testing.T) (*form.Group, *control.Control[string], *control.Control[string]) {
	t.Helper()
	email := control.New("", control.WithName[string]("email"), control.WithSchema[string](schema.String().Email()))
	password := control.New("", control.WithName[string]("password"), control.WithSchema[string](schema.String().Min(8, "Password must be at least 8 characters")))
	group, err := form.NewGroup("login", email, password)
	if err != nil {
		t.Fatalf("new group: %v", err)
	}
	return group, email, password
}

func TestGroup_SubmitTouchesEveryField(t *testing.T) {
	group, email, _ := newLoginGroup(t)
	email.Value.Set("a@b.com")

	if !group.Valid() {
		t.Fatalf("untouched fields are valid")
	}

	_, err := group.Submit(context.Background())
	if !errors.Is(err, form.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	var issues schema.Issues
	if !errors.As(err, &issues) || len(issues) != 1 || issues[0].Path != "password" {
		t.Fatalf("expected password issue, got %#v", issues)
	}

	want := map[string][]string{"password": {"Password must be at least 8 characters"}}
	if diff := cmp.Diff(want, group.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestGroup_SubmitValues(t *testing.T) {
	group, email, password := newLoginGroup(t)
	email.Value.Set("a@b.com")
	password.Value.Set("abcdefgh")

	values, err := group.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := map[string]any{"email": "a@b.com", "password": "abcdefgh"}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if group.Errors() != nil {
		t.Fatalf("expected no errors")
	}
}

func TestGroup_SubmitHonoursContext(t *testing.T) {
	group, _, _ := newLoginGroup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := group.Submit(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGroup_RejectsDuplicatesAndUnnamed(t *testing.T) {
	a := control.New("", control.WithName[string]("email"))
	b := control.New("", control.WithName[string]("email"))
	if _, err := form.NewGroup("x", a, b); !errors.Is(err, form.ErrDuplicateField) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if _, err := form.NewGroup("x", control.New("")); !errors.Is(err, form.ErrUnnamedField) {
		t.Fatalf("expected unnamed error, got %v", err)
	}
}

func TestGroup_LookupResetAndSnapshots(t *testing.T) {
	group, email, _ := newLoginGroup(t)
	email.Value.Set("typed")
	group.TouchAll()

	field, ok := group.Get("email")
	if !ok || field.Raw() != "typed" {
		t.Fatalf("lookup failed")
	}
	if _, ok := group.Get("missing"); ok {
		t.Fatalf("unexpected field")
	}

	snaps := group.Snapshots()
	if len(snaps) != 2 || snaps[0].Name != "email" || !snaps[0].Touched {
		t.Fatalf("unexpected snapshots %#v", snaps)
	}

	group.Reset()
	if email.Value.Get() != "" || email.Touched.Get() {
		t.Fatalf("reset did not restore the field")
	}
	if names := []string{group.Fields()[0].Name(), group.Fields()[1].Name()}; names[0] != "email" || names[1] != "password" {
		t.Fatalf("field order lost: %v", names)
	}
}

func TestNormalizeMessages(t *testing.T) {
	got := form.NormalizeMessages([]string{" a ", "", "b", "a"})
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Fatalf("normalize mismatch (-want +got):\n%s", diff)
	}
	if form.NormalizeMessages([]string{" "}) != nil {
		t.Fatalf("expected nil for blank input")
	}
}

func TestGroup_DisabledFieldsAreSkipped(t *testing.T) {
	required := schema.String().NonEmpty()
	name := control.New("", control.WithName[string]("name"), control.WithSchema[string](required))
	code := control.New("", control.WithName[string]("code"), control.WithSchema[string](required))
	code.Disabled.Set(true)
	group, err := form.NewGroup("invite", name, code)
	if err != nil {
		t.Fatalf("new group: %v", err)
	}

	name.Value.Set("ada")
	values, err := group.Submit(context.Background())
	if err != nil {
		t.Fatalf("disabled field blocked submit: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"name": "ada"}, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if !group.Valid() || group.Errors() != nil || group.Issues() != nil {
		t.Fatalf("disabled field reported issues: %v", group.Errors())
	}

	code.Disabled.Set(false)
	if group.Valid() {
		t.Fatalf("re-enabled required field should be invalid once touched")
	}
}
