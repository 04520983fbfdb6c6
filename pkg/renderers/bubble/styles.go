package bubble

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	theme "github.com/goliatone/go-theme"
)

// Styles controls how the form is drawn.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Focused lipgloss.Style
	Help    lipgloss.Style
	Error   lipgloss.Style
	Status  lipgloss.Style
}

// DefaultStyles returns the built-in palette.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginBottom(1),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Focused: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")).MarginTop(1),
	}
}

// Theme tokens read by StylesFromTheme.
const (
	TokenBrand   = "brand"
	TokenText    = "text"
	TokenMuted   = "muted"
	TokenError   = "error"
	TokenWarning = "warning"
)

// StylesFromTheme starts from base and recolours it with the theme tokens.
// Missing tokens keep the base colour.
func StylesFromTheme(base Styles, cfg *theme.RendererConfig) Styles {
	if cfg == nil || len(cfg.Tokens) == 0 {
		return base
	}
	recolour := func(style lipgloss.Style, token string) lipgloss.Style {
		if value := strings.TrimSpace(cfg.Tokens[token]); value != "" {
			return style.Foreground(lipgloss.Color(value))
		}
		return style
	}
	base.Title = recolour(base.Title, TokenBrand)
	base.Focused = recolour(base.Focused, TokenBrand)
	base.Label = recolour(base.Label, TokenText)
	base.Help = recolour(base.Help, TokenMuted)
	base.Error = recolour(base.Error, TokenError)
	base.Status = recolour(base.Status, TokenWarning)
	return base
}
