package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formctl/pkg/schema"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// translator is configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a localized message for key.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler returns the string to use when key could not be
// translated. args carries a map with the fallback under "default".
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// StaticTranslator is a map-backed Translator keyed by locale then key.
// Messages may contain `{name}` placeholders filled from issue params.
type StaticTranslator map[string]map[string]string

// Translate looks up key for locale, falling back to the base language
// ("es" for "es-MX") and to lowercased locales.
func (t StaticTranslator) Translate(locale, key string, args ...any) (string, error) {
	for _, candidate := range localeCandidates(locale) {
		if msg, ok := t[candidate][key]; ok {
			return interpolate(msg, args), nil
		}
	}
	return "", fmt.Errorf("render: missing translation %q for locale %q", key, locale)
}

func localeCandidates(locale string) []string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return []string{""}
	}
	out := []string{locale}
	if idx := strings.IndexAny(locale, "-_"); idx > 0 {
		out = append(out, locale[:idx])
	}
	// config loaders such as viper lowercase map keys
	for _, candidate := range out {
		if lower := strings.ToLower(candidate); lower != candidate {
			out = append(out, lower)
		}
	}
	return out
}

func interpolate(msg string, args []any) string {
	for _, arg := range args {
		params, ok := arg.(map[string]any)
		if !ok {
			continue
		}
		for name, value := range params {
			msg = strings.ReplaceAll(msg, "{"+name+"}", fmt.Sprint(value))
		}
	}
	return msg
}

// IssueKey is the translation key for an issue code.
func IssueKey(code string) string {
	return "issues." + strings.TrimSpace(code)
}

// LocalizeIssues returns a copy of issues with messages translated through
// opts.Translator. Issues whose code has no translation keep their message.
func LocalizeIssues(issues schema.Issues, opts RenderOptions) schema.Issues {
	if len(issues) == 0 {
		return nil
	}
	if opts.Translator == nil && opts.OnMissing == nil {
		return issues
	}
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	out := make(schema.Issues, len(issues))
	for i, issue := range issues {
		params := map[string]any{"default": issue.Message}
		for k, v := range issue.Params {
			params[k] = v
		}
		issue.Message = translate(opts.Locale, IssueKey(issue.Code), issue.Message, params, opts.Translator, onMissing)
		out[i] = issue
	}
	return out
}

func translate(locale, key, fallback string, params map[string]any, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	args := []any{params}

	if t == nil {
		if onMissing != nil {
			return onMissing(locale, key, args, ErrMissingTranslator)
		}
		return fallback
	}

	result, err := t.Translate(locale, key, args...)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}

	if onMissing != nil {
		return onMissing(locale, key, args, err)
	}
	return fallback
}

// missingTranslationDefault keeps the schema's own message.
func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		if params, ok := arg.(map[string]any); ok {
			if msg, ok := params["default"].(string); ok && strings.TrimSpace(msg) != "" {
				return msg
			}
		}
	}
	return key
}
