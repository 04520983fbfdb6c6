package formspec

import (
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

const (
	TypeText     = "text"
	TypeEmail    = "email"
	TypePassword = "password"
)

// LoadFS walks fsys and parses every .yaml, .yml and .json file as a form
// definition document. A nil fsys yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{files: fsys, forms: make(map[string]Form)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSpecFile(p) {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("formspec: read %s: %w", p, err)
		}
		return store.add(p, data, false)
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(store.order)
	return store, nil
}

// LoadFile loads a single definition file from fsys.
func LoadFile(fsys fs.FS, name string) (*Store, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("formspec: read %s: %w", name, err)
	}
	store := &Store{files: fsys, forms: make(map[string]Form)}
	if err := store.add(name, data, true); err != nil {
		return nil, err
	}
	sort.Strings(store.order)
	return store, nil
}

// add registers the forms in data. When walking a directory, files without
// a forms key (such as a referenced OpenAPI document) are skipped.
func (s *Store) add(source string, data []byte, strict bool) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}
	if len(doc.Forms) == 0 {
		if !strict {
			return nil
		}
		return fmt.Errorf("formspec: file %s defines no forms", source)
	}

	openapiDoc := ""
	if ref := strings.TrimSpace(doc.OpenAPI); ref != "" {
		openapiDoc = path.Join(path.Dir(source), ref)
	}

	for rawID, raw := range doc.Forms {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return fmt.Errorf("formspec: file %s defines an empty form id", source)
		}
		if _, exists := s.forms[id]; exists {
			return fmt.Errorf("formspec: duplicate form %q (file %s)", id, source)
		}
		form, err := normaliseForm(raw, id, source, openapiDoc)
		if err != nil {
			return err
		}
		s.forms[id] = form
		s.order = append(s.order, id)
	}
	return nil
}

// Form returns the definition with id.
func (s *Store) Form(id string) (Form, bool) {
	if s == nil {
		return Form{}, false
	}
	form, ok := s.forms[strings.TrimSpace(id)]
	return form, ok
}

// IDs returns the form ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Empty reports whether the store holds any form.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if strings.TrimSpace(string(data)) == "" {
		return doc, fmt.Errorf("formspec: file %s is empty", source)
	}
	if strings.EqualFold(path.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("formspec: parse %s: %w", source, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("formspec: parse %s: %w", source, err)
	}
	return doc, nil
}

func normaliseForm(raw formFile, id, source, openapiDoc string) (Form, error) {
	form := Form{
		ID:        id,
		Title:     strings.TrimSpace(raw.Title),
		Source:    source,
		Document:  openapiDoc,
		Component: strings.TrimSpace(raw.Component),
		Fields:    make([]Field, 0, len(raw.Fields)),
	}
	if len(raw.Fields) == 0 {
		return Form{}, fmt.Errorf("formspec: form %q (file %s) has no fields", id, source)
	}

	seen := make(map[string]struct{}, len(raw.Fields))
	for i, field := range raw.Fields {
		field.Name = strings.TrimSpace(field.Name)
		if field.Name == "" {
			return Form{}, fmt.Errorf("formspec: form %q field %d has no name", id, i)
		}
		if _, dup := seen[field.Name]; dup {
			return Form{}, fmt.Errorf("formspec: form %q declares field %q twice", id, field.Name)
		}
		seen[field.Name] = struct{}{}

		field.Type = strings.ToLower(strings.TrimSpace(field.Type))
		switch field.Type {
		case "":
			field.Type = TypeText
			if strings.EqualFold(field.Rules.Format, "email") {
				field.Type = TypeEmail
			}
		case TypeText, TypeEmail, TypePassword:
		default:
			return Form{}, fmt.Errorf("formspec: form %q field %q has unsupported type %q", id, field.Name, field.Type)
		}
		if field.Type == TypeEmail && field.Rules.Format == "" {
			field.Rules.Format = "email"
		}
		if f := strings.ToLower(strings.TrimSpace(field.Rules.Format)); f != "" && f != "email" {
			return Form{}, fmt.Errorf("formspec: form %q field %q has unsupported format %q", id, field.Name, field.Rules.Format)
		}
		if field.Rules.Pattern != "" {
			if _, err := regexp.Compile(field.Rules.Pattern); err != nil {
				return Form{}, fmt.Errorf("formspec: form %q field %q pattern: %w", id, field.Name, err)
			}
		}
		if field.Property != "" && (openapiDoc == "" || form.Component == "") {
			return Form{}, fmt.Errorf("formspec: form %q field %q references property %q without an openapi component", id, field.Name, field.Property)
		}
		form.Fields = append(form.Fields, field)
	}

	for _, field := range form.Fields {
		target := strings.TrimSpace(field.Matches)
		if target == "" {
			continue
		}
		if target == field.Name {
			return Form{}, fmt.Errorf("formspec: form %q field %q cannot match itself", id, field.Name)
		}
		if _, ok := seen[target]; !ok {
			return Form{}, fmt.Errorf("formspec: form %q field %q matches unknown field %q", id, field.Name, target)
		}
	}
	return form, nil
}

func isSpecFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}
