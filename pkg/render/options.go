package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data renderers use to present issues.
type RenderOptions struct {
	// Locale selects the translation locale for issue messages.
	Locale string
	// Translator resolves `issues.<code>` keys. When nil, issue messages are
	// rendered as produced by the schema.
	Translator Translator
	// OnMissing decides the string used when a translation is missing.
	OnMissing MissingTranslationHandler
	// Theme carries resolved theme tokens. Terminal renderers map them onto
	// their colours; the HTML hint renderer ignores it.
	Theme *theme.RendererConfig
}

// ThemeConfig turns a theme selection into renderer configuration. A nil
// selection yields nil.
func ThemeConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
	}
	if selection.Manifest != nil && len(selection.Manifest.Tokens) > 0 {
		cfg.Tokens = make(map[string]string, len(selection.Manifest.Tokens))
		for key, value := range selection.Manifest.Tokens {
			cfg.Tokens[key] = value
		}
	}
	return cfg
}
