package render

import (
	"os"

	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/config"
)

// LoadOptionsFromConfig loads render options from user configuration.
// The GLAMOUR_STYLE environment variable takes precedence over the file.
func LoadOptionsFromConfig() Options {
	opts := DefaultOptions()

	cfg, err := config.LoadConfig()
	if err == nil {
		md := cfg.Markdown
		if md.Style != "" {
			opts.Style = md.Style
		}
		opts.EnableEmoji = md.EnableEmoji
		opts.PreserveNewLines = md.PreserveNewLines
	}

	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}

	return opts
}
