package formspec

import "io/fs"

// Store holds the loaded form definitions.
type Store struct {
	files fs.FS
	forms map[string]Form
	order []string
}

// Form is a single form definition.
type Form struct {
	ID     string
	Title  string
	Source string
	// Document and Component point at an OpenAPI component whose properties
	// fields may reference.
	Document  string
	Component string
	Fields    []Field
}

// Field describes one input.
type Field struct {
	Name     string            `json:"name" yaml:"name"`
	Label    string            `json:"label" yaml:"label"`
	Type     string            `json:"type" yaml:"type"`
	Default  string            `json:"default" yaml:"default"`
	Help     string            `json:"help" yaml:"help"`
	Disabled bool              `json:"disabled" yaml:"disabled"`
	Property string            `json:"property" yaml:"property"`
	Matches  string            `json:"matches" yaml:"matches"`
	Rules    Rules             `json:"rules" yaml:"rules"`
	Messages map[string]string `json:"messages" yaml:"messages"`
}

// Rules are the string constraints a field may declare.
type Rules struct {
	Required  bool   `json:"required" yaml:"required"`
	MinLength *int   `json:"minLength" yaml:"minLength"`
	MaxLength *int   `json:"maxLength" yaml:"maxLength"`
	Pattern   string `json:"pattern" yaml:"pattern"`
	Format    string `json:"format" yaml:"format"`
}

// Empty reports whether no rule is declared.
func (r Rules) Empty() bool {
	return !r.Required && r.MinLength == nil && r.MaxLength == nil && r.Pattern == "" && r.Format == ""
}

type documentFile struct {
	OpenAPI string              `json:"openapi" yaml:"openapi"`
	Forms   map[string]formFile `json:"forms" yaml:"forms"`
}

type formFile struct {
	Title     string  `json:"title" yaml:"title"`
	Component string  `json:"component" yaml:"component"`
	Fields    []Field `json:"fields" yaml:"fields"`
}
