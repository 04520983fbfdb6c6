package schema

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// EmailPattern is the expression used by StringSchema.Email. Adapters reuse it
// so every schema source agrees on what an email looks like.
const EmailPattern = `^[A-Za-z0-9_'+\-.]*[A-Za-z0-9_+\-]@([A-Za-z0-9][A-Za-z0-9\-]*\.)+[A-Za-z]{2,}$`

var emailPattern = regexp.MustCompile(EmailPattern)

// IsEmail reports whether value is a plausible email address.
func IsEmail(value string) bool {
	if strings.HasPrefix(value, ".") || strings.Contains(value, "..") {
		return false
	}
	return emailPattern.MatchString(value)
}

type stringRule func(value string) *Issue

// StringSchema is an immutable chain of string rules evaluated in
// declaration order. Every failing rule contributes an issue.
type StringSchema struct {
	rules []stringRule
}

// String starts an empty string schema.
func String() *StringSchema {
	return &StringSchema{}
}

func (s *StringSchema) with(rule stringRule) *StringSchema {
	next := &StringSchema{rules: make([]stringRule, 0, len(s.rules)+1)}
	next.rules = append(next.rules, s.rules...)
	next.rules = append(next.rules, rule)
	return next
}

// Min requires at least n characters.
func (s *StringSchema) Min(n int, message ...string) *StringSchema {
	msg := pickMessage(message, fmt.Sprintf("String must contain at least %d character(s)", n))
	return s.with(func(value string) *Issue {
		if utf8.RuneCountInString(value) >= n {
			return nil
		}
		return &Issue{Message: msg, Code: CodeTooSmall, Params: map[string]any{"minimum": n}}
	})
}

// Max allows at most n characters.
func (s *StringSchema) Max(n int, message ...string) *StringSchema {
	msg := pickMessage(message, fmt.Sprintf("String must contain at most %d character(s)", n))
	return s.with(func(value string) *Issue {
		if utf8.RuneCountInString(value) <= n {
			return nil
		}
		return &Issue{Message: msg, Code: CodeTooBig, Params: map[string]any{"maximum": n}}
	})
}

// NonEmpty rejects the empty string.
func (s *StringSchema) NonEmpty(message ...string) *StringSchema {
	msg := pickMessage(message, "String must contain at least 1 character(s)")
	return s.with(func(value string) *Issue {
		if value != "" {
			return nil
		}
		return &Issue{Message: msg, Code: CodeTooSmall, Params: map[string]any{"minimum": 1}}
	})
}

// Email requires a plausible email address.
func (s *StringSchema) Email(message ...string) *StringSchema {
	msg := pickMessage(message, "Invalid email")
	return s.with(func(value string) *Issue {
		if IsEmail(value) {
			return nil
		}
		return &Issue{Message: msg, Code: CodeInvalidString, Params: map[string]any{"validation": "email"}}
	})
}

// Pattern requires value to match re.
func (s *StringSchema) Pattern(re *regexp.Regexp, message ...string) *StringSchema {
	if re == nil {
		return s
	}
	msg := pickMessage(message, "Invalid")
	return s.with(func(value string) *Issue {
		if re.MatchString(value) {
			return nil
		}
		return &Issue{Message: msg, Code: CodeInvalidString, Params: map[string]any{"validation": "regex", "pattern": re.String()}}
	})
}

// Equals requires value to be exactly want.
func (s *StringSchema) Equals(want string, message ...string) *StringSchema {
	msg := pickMessage(message, fmt.Sprintf("Invalid literal value, expected %q", want))
	return s.with(func(value string) *Issue {
		if value == want {
			return nil
		}
		return &Issue{Message: msg, Code: CodeInvalidLiteral}
	})
}

// Refine adds a custom predicate.
func (s *StringSchema) Refine(check func(string) bool, message string) *StringSchema {
	if check == nil {
		return s
	}
	return s.with(func(value string) *Issue {
		if check(value) {
			return nil
		}
		return &Issue{Message: message, Code: CodeCustom}
	})
}

// Validate evaluates every rule and collects the failures.
func (s *StringSchema) Validate(value string) Result {
	if s == nil {
		return Ok()
	}
	var issues []Issue
	for _, rule := range s.rules {
		if issue := rule(value); issue != nil {
			issues = append(issues, *issue)
		}
	}
	return Fail(issues...)
}

func pickMessage(custom []string, fallback string) string {
	for _, msg := range custom {
		if trimmed := strings.TrimSpace(msg); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}
