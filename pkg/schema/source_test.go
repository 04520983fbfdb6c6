package schema

import (
	"testing"

	"github.com/goliatone/go-formctl/pkg/reactive"
)

func TestSource_ZeroIsAlwaysValid(t *testing.T) {
	var src Source[string]
	if !src.IsZero() {
		t.Fatalf("expected zero source")
	}
	if res := src.Validate("anything"); !res.Valid {
		t.Fatalf("zero source must validate everything")
	}
	if Static[string](nil).Readable() != nil {
		t.Fatalf("nil schema should produce the zero source")
	}
}

func TestSource_ReactiveTracksDependency(t *testing.T) {
	password := reactive.NewCell("abcdefgh")
	src := Reactive(func() Schema[string] {
		return String().Equals(password.Get(), "Passwords do not match")
	}, password)

	if !src.IsReactive() {
		t.Fatalf("expected reactive source")
	}
	if res := src.Validate("abcdefgh"); !res.Valid {
		t.Fatalf("expected match, got %v", res.Issues)
	}

	password.Set("zzzzzzzz")
	res := src.Validate("abcdefgh")
	if res.Valid {
		t.Fatalf("expected mismatch after dependency write")
	}
	if res.Issues[0].Message != "Passwords do not match" {
		t.Fatalf("unexpected message %q", res.Issues[0].Message)
	}
}

func TestSourceOf(t *testing.T) {
	static := String().Min(1)

	src, ok := SourceOf[string](static)
	if !ok || src.IsZero() || src.IsReactive() {
		t.Fatalf("schema should normalize to a static source: ok=%v", ok)
	}

	cell := reactive.NewCell[Schema[string]](String().Min(3))
	src, ok = SourceOf[string](cell)
	if !ok || !src.IsReactive() {
		t.Fatalf("writable cell should normalize to a reactive source")
	}
	cell.Set(String().Min(1))
	if res := src.Validate("ab"); !res.Valid {
		t.Fatalf("expected the latest schema to apply")
	}

	derived := reactive.Computed(func() Schema[string] { return static })
	if src, ok = SourceOf[string](derived); !ok || !src.IsReactive() {
		t.Fatalf("derived cell should normalize to a reactive source")
	}

	if src, ok = SourceOf[string](nil); !ok || !src.IsZero() {
		t.Fatalf("nil should normalize to the zero source")
	}
	if _, ok = SourceOf[string](42); ok {
		t.Fatalf("unexpected shape accepted")
	}
}

func TestAll(t *testing.T) {
	s := All[string](String().Min(3, "short"), nil, String().Email("email"))
	res := s.Validate("x")
	if res.Valid || len(res.Issues) != 2 {
		t.Fatalf("expected two issues, got %#v", res)
	}
	if res.Issues[0].Message != "short" || res.Issues[1].Message != "email" {
		t.Fatalf("issues out of order: %#v", res.Issues)
	}
	if res := Validate[string](nil, "x"); !res.Valid {
		t.Fatalf("nil schema should be valid")
	}
}

func TestIssues_ErrorAndMessages(t *testing.T) {
	iss := Issues{{Message: " a ", Code: "x"}, {Message: "", Code: "y"}}
	if got := iss.Messages(); len(got) != 1 || got[0] != "a" {
		t.Fatalf("unexpected messages %#v", got)
	}
	withPath := iss.WithPath("email")
	if withPath[0].Path != "email" || iss[0].Path != "" {
		t.Fatalf("WithPath should copy")
	}
	if got := withPath.Error(); got != "email:  a  (x); email:  (y)" {
		t.Fatalf("unexpected error string %q", got)
	}
}
