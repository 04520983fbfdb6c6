package tui

import (
	"fmt"

	"github.com/goliatone/go-formctl/pkg/render"
)

func (r *Renderer) serialize(payload any) ([]byte, error) {
	out, err := render.Encode(payload, string(r.outputFormat))
	if err != nil {
		return nil, fmt.Errorf("tui: serialize: %w", err)
	}
	return out, nil
}
