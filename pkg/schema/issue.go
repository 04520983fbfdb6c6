package schema

import (
	"fmt"
	"strings"
)

// Issue codes reported by the built-in rules and adapters.
const (
	CodeTooSmall       = "too_small"
	CodeTooBig         = "too_big"
	CodeInvalidString  = "invalid_string"
	CodeInvalidType    = "invalid_type"
	CodeInvalidLiteral = "invalid_literal"
	CodeCustom         = "custom"
)

// Issue is a single validation failure. Message and Code form the public
// shape; Path and Params are optional context for renderers and translators.
type Issue struct {
	Message string         `json:"message"`
	Code    string         `json:"code"`
	Path    string         `json:"path,omitempty"`
	Params  map[string]any `json:"params,omitempty"`
}

// Issues is an ordered list of validation failures.
type Issues []Issue

// Messages returns the trimmed, non-empty messages in order.
func (iss Issues) Messages() []string {
	if len(iss) == 0 {
		return nil
	}
	out := make([]string, 0, len(iss))
	for _, issue := range iss {
		if msg := strings.TrimSpace(issue.Message); msg != "" {
			out = append(out, msg)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Error summarizes the first few issues so Issues can travel as an error.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := len(iss)
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		if it.Path != "" {
			fmt.Fprintf(b, "%s: %s (%s)", it.Path, it.Message, it.Code)
		} else {
			fmt.Fprintf(b, "%s (%s)", it.Message, it.Code)
		}
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// WithPath returns a copy of the issues with an empty Path set to path.
func (iss Issues) WithPath(path string) Issues {
	if len(iss) == 0 {
		return nil
	}
	out := make(Issues, len(iss))
	for i, issue := range iss {
		if issue.Path == "" {
			issue.Path = path
		}
		out[i] = issue
	}
	return out
}

// Result is the outcome of validating a value. Issues is empty when Valid.
type Result struct {
	Valid  bool   `json:"valid"`
	Issues Issues `json:"issues,omitempty"`
}

// Ok is the result of a successful validation.
func Ok() Result {
	return Result{Valid: true}
}

// Fail builds a failing result. Without issues the result is valid.
func Fail(issues ...Issue) Result {
	if len(issues) == 0 {
		return Ok()
	}
	return Result{Valid: false, Issues: Issues(issues)}
}
