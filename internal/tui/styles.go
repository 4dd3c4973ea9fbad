// Package tui provides the interactive chat view for celora.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/models"
)

// Color variables (set from the persisted theme)
var (
	colorPrimary lipgloss.Color
	colorAccent  lipgloss.Color
	colorError   lipgloss.Color
	colorBorder  lipgloss.Color
	colorText    lipgloss.Color
	colorTextDim lipgloss.Color
)

// Style variables (rebuilt when the theme changes)
var (
	headerStyle    lipgloss.Style
	titleStyle     lipgloss.Style
	subtitleStyle  lipgloss.Style
	hintStyle      lipgloss.Style
	userLabelStyle lipgloss.Style
	userTextStyle  lipgloss.Style
	botLabelStyle  lipgloss.Style
	inputStyle     lipgloss.Style
	loadingStyle   lipgloss.Style
	errorStyle     lipgloss.Style
	statusStyle    lipgloss.Style
	copiedStyle    lipgloss.Style
)

// ApplyTheme rebuilds the palette for the given theme flag.
func ApplyTheme(theme models.Theme) {
	if theme == models.ThemeLight {
		colorPrimary = lipgloss.Color("#6366F1")
		colorAccent = lipgloss.Color("#A855F7")
		colorError = lipgloss.Color("#DC2626")
		colorBorder = lipgloss.Color("#CBD5E1")
		colorText = lipgloss.Color("#0F172A")
		colorTextDim = lipgloss.Color("#64748B")
	} else {
		colorPrimary = lipgloss.Color("#818CF8")
		colorAccent = lipgloss.Color("#C084FC")
		colorError = lipgloss.Color("#F87171")
		colorBorder = lipgloss.Color("#334155")
		colorText = lipgloss.Color("#E2E8F0")
		colorTextDim = lipgloss.Color("#64748B")
	}
	rebuildStyles()
}

func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorTextDim)
	hintStyle = lipgloss.NewStyle().Foreground(colorTextDim)

	userLabelStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	userTextStyle = lipgloss.NewStyle().Foreground(colorText)
	botLabelStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)

	inputStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	loadingStyle = lipgloss.NewStyle().Foreground(colorAccent)
	errorStyle = lipgloss.NewStyle().Foreground(colorError)
	statusStyle = lipgloss.NewStyle().Foreground(colorTextDim)
	copiedStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
}

func init() {
	ApplyTheme(models.ThemeDark)
}
