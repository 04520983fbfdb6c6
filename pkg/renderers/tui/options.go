package tui

import (
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/fatih/color"
)

// OutputFormat controls how the submission is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat accepts "json" and "pretty"; anything else is JSON.
func ParseOutputFormat(s string) OutputFormat {
	if OutputFormat(s) == OutputFormatPrettyText {
		return OutputFormatPrettyText
	}
	return OutputFormatJSON
}

// Theme holds the message prefixes printed before issues and notices.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme prints issues with a red cross.
func DefaultTheme() Theme {
	return Theme{
		InfoPrefix:  color.New(color.FgCyan).Sprint("i"),
		ErrorPrefix: color.New(color.FgRed, color.Bold).Sprint("✗"),
	}
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithStdio points the default survey driver at custom streams.
func WithStdio(stdio terminal.Stdio) Option {
	return func(r *Renderer) {
		r.stdio = &stdio
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithMaxAttempts bounds how often an invalid field is re-prompted. Zero
// means no limit.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n >= 0 {
			r.maxAttempts = n
		}
	}
}
