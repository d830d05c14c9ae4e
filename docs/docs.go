// Package docs ships the operator guide with the binary.
package docs

import (
	_ "embed"

	"github.com/charmbracelet/glamour"
)

// Usage contains the markdown guide shown by the docs command.
//
//go:embed usage.md
var Usage string

// RenderUsage renders the guide for terminal display at the given width.
// The raw markdown comes back when rendering fails, so the guide is
// always readable.
func RenderUsage(width int) (string, error) {
	if width <= 0 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return Usage, err
	}

	out, err := r.Render(Usage)
	if err != nil {
		return Usage, err
	}
	return out, nil
}
