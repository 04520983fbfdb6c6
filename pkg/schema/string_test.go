package schema

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStringSchema_Email(t *testing.T) {
	s := String().Email()

	res := s.Validate("not-an-email")
	if res.Valid {
		t.Fatalf("expected invalid email")
	}
	want := Issues{{Message: "Invalid email", Code: CodeInvalidString, Params: map[string]any{"validation": "email"}}}
	if diff := cmp.Diff(want, res.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}

	for _, ok := range []string{"a@b.com", "first.last+tag@example.co.uk"} {
		if res := s.Validate(ok); !res.Valid {
			t.Fatalf("expected %q to be valid, got %v", ok, res.Issues)
		}
	}
	for _, bad := range []string{"", "@b.com", "a@b", ".a@b.com", "a..b@c.com", "a@b.c"} {
		if res := s.Validate(bad); res.Valid {
			t.Fatalf("expected %q to be invalid", bad)
		}
	}
}

func TestStringSchema_LengthRulesAccumulateInOrder(t *testing.T) {
	s := String().
		Min(8, "Password must be at least 8 characters").
		Pattern(regexp.MustCompile(`[0-9]`), "Password needs a digit")

	res := s.Validate("short")
	got := make([]string, 0, len(res.Issues))
	for _, issue := range res.Issues {
		got = append(got, issue.Code+":"+issue.Message)
	}
	want := []string{
		"too_small:Password must be at least 8 characters",
		"invalid_string:Password needs a digit",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestStringSchema_DefaultMessages(t *testing.T) {
	res := String().Max(3).Validate("abcd")
	if len(res.Issues) != 1 || res.Issues[0].Message != "String must contain at most 3 character(s)" {
		t.Fatalf("unexpected issues: %#v", res.Issues)
	}
	res = String().Min(2).Validate("ä")
	if len(res.Issues) != 1 || res.Issues[0].Code != CodeTooSmall {
		t.Fatalf("expected too_small counting runes, got %#v", res.Issues)
	}
	if res := String().Min(2).Validate("äö"); !res.Valid {
		t.Fatalf("expected two runes to satisfy min 2")
	}
}

func TestStringSchema_BuilderIsImmutable(t *testing.T) {
	base := String().Min(1)
	strict := base.Max(2)

	if res := base.Validate("abc"); !res.Valid {
		t.Fatalf("base schema must not inherit rules added later")
	}
	if res := strict.Validate("abc"); res.Valid {
		t.Fatalf("strict schema should reject abc")
	}
}

func TestStringSchema_EqualsAndRefine(t *testing.T) {
	s := String().Equals("secret", "Passwords do not match").Refine(func(v string) bool { return v != "" }, "required")
	res := s.Validate("")
	want := Issues{
		{Message: "Passwords do not match", Code: CodeInvalidLiteral},
		{Message: "required", Code: CodeCustom},
	}
	if diff := cmp.Diff(want, res.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}
