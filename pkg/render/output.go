package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// Output formats understood by Encode.
const (
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

// Encode serializes a submission payload. Pretty output is one aligned
// "key: value" line per top-level field, sorted by key.
func Encode(payload any, format string) ([]byte, error) {
	switch format {
	case FormatPretty:
		values, err := toMap(payload)
		if err != nil {
			return nil, fmt.Errorf("render: encode: %w", err)
		}
		return prettyText(values), nil
	case FormatJSON, "":
		out, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("render: encode: %w", err)
		}
		return append(out, '\n'), nil
	default:
		return nil, fmt.Errorf("render: unsupported output format %q", format)
	}
}

func toMap(payload any) (map[string]any, error) {
	if values, ok := payload.(map[string]any); ok {
		return values, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	values := map[string]any{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func prettyText(values map[string]any) []byte {
	keys := make([]string, 0, len(values))
	width := 0
	for key := range values {
		keys = append(keys, key)
		if len(key) > width {
			width = len(key)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%-*s  %v\n", width+1, key+":", values[key])
	}
	return []byte(b.String())
}
