// Package config loads formctl settings from a config file and FORMCTL_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/viper"

	"github.com/goliatone/go-formctl/pkg/render"
)

// EnvPrefix is the prefix of environment overrides (FORMCTL_UI, ...).
const EnvPrefix = "FORMCTL"

// Config holds CLI settings. Flags override these values.
type Config struct {
	UI          string   `mapstructure:"ui"`
	Output      string   `mapstructure:"output"`
	Locale      string   `mapstructure:"locale"`
	Verbose     bool     `mapstructure:"verbose"`
	Specs       string   `mapstructure:"specs"`
	BcryptCost  int      `mapstructure:"bcrypt_cost"`
	MaxAttempts int      `mapstructure:"max_attempts"`
	Messages    Messages `mapstructure:"messages"`
	Theme       Theme    `mapstructure:"theme"`
}

// Theme names the theme and its colour tokens for terminal renderers:
//
//	theme:
//	  name: acme
//	  tokens:
//	    brand: "#7d56f4"
//	    error: "#ff5f87"
type Theme struct {
	Name    string            `mapstructure:"name"`
	Variant string            `mapstructure:"variant"`
	Tokens  map[string]string `mapstructure:"tokens"`
}

// RendererConfig returns the theme as go-theme renderer configuration, or nil
// when no tokens are set.
func (t Theme) RendererConfig() *theme.RendererConfig {
	if len(t.Tokens) == 0 {
		return nil
	}
	return render.ThemeConfig(&theme.Selection{
		Theme:    t.Name,
		Variant:  t.Variant,
		Manifest: &theme.Manifest{Name: t.Name, Tokens: t.Tokens},
	})
}

// Messages maps locale -> nested key tree, e.g.
//
//	messages:
//	  es:
//	    issues:
//	      invalid_string: Correo inválido
type Messages map[string]map[string]any

// Translator flattens Messages into a render.StaticTranslator with dotted
// keys ("issues.invalid_string").
func (m Messages) Translator() render.Translator {
	if len(m) == 0 {
		return nil
	}
	out := make(render.StaticTranslator, len(m))
	for locale, tree := range m {
		flat := make(map[string]string)
		flatten("", tree, flat)
		out[locale] = flat
	}
	return out
}

func flatten(prefix string, tree map[string]any, out map[string]string) {
	for key, value := range tree {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			flatten(full, v, out)
		case string:
			out[full] = v
		default:
			out[full] = fmt.Sprint(v)
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ui", "survey")
	v.SetDefault("output", "json")
	v.SetDefault("locale", "en")
	v.SetDefault("verbose", false)
	v.SetDefault("specs", "")
	v.SetDefault("bcrypt_cost", 0)
	v.SetDefault("max_attempts", 0)
}

// New returns a viper instance with defaults and environment bindings, so
// the CLI can bind its flags before calling Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path (or formctl.yaml in the working directory and
// $HOME/.config/formctl when path is empty) into a Config. A missing default
// config file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = New()
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("formctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/formctl")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}
