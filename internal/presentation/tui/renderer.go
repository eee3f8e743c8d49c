package tui

import (
	"github.com/charmbracelet/glamour"

	"github.com/aretw0/devconsole/pkg/runner"
)

// NewRenderer returns a runner.ContentRenderer backed by glamour. When the
// terminal renderer cannot be built, markdown is returned unchanged.
func NewRenderer() runner.ContentRenderer {
	return newRenderer(glamour.WithAutoStyle())
}

// NewPlainRenderer renders without colors, for logs and dumb terminals.
func NewPlainRenderer() runner.ContentRenderer {
	return newRenderer(glamour.WithStandardStyle("notty"))
}

func newRenderer(style glamour.TermRendererOption) runner.ContentRenderer {
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(80))
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}
