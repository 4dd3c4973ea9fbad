// Package render provides markdown rendering for terminal output.
package render

import (
	"github.com/charmbracelet/glamour"
)

// Options configures the markdown renderer.
type Options struct {
	// Width defines the maximum output width (default: 80)
	Width int

	// Style defines the theme: "dark", "light", or path to a JSON theme
	Style string

	// EnableEmoji converts :emoji: to unicode characters
	EnableEmoji bool

	// PreserveNewLines preserves original line breaks
	PreserveNewLines bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Width:            80,
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
	}
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithStyle returns Options with the specified style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

// Markdown renders markdown content for terminal display. glamour
// renderers are not safe for concurrent use, so each call builds its own.
func Markdown(content string, opts Options) (string, error) {
	renderer, err := newRenderer(opts)
	if err != nil {
		return "", err
	}
	return renderer.Render(content)
}

// MarkdownWithWidth renders with default options at the given width.
func MarkdownWithWidth(content string, width int) (string, error) {
	return Markdown(content, DefaultOptions().WithWidth(width))
}

func newRenderer(opts Options) (*glamour.TermRenderer, error) {
	if opts.Width <= 0 {
		opts.Width = 80
	}

	style := opts.Style
	if style == "" {
		style = "dark"
	}

	renderOpts := []glamour.TermRendererOption{
		glamour.WithStylePath(style),
		glamour.WithWordWrap(opts.Width),
	}

	if opts.EnableEmoji {
		renderOpts = append(renderOpts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		renderOpts = append(renderOpts, glamour.WithPreservedNewLines())
	}

	return glamour.NewTermRenderer(renderOpts...)
}
