package models

// Theme is the client color scheme flag persisted alongside sessions.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ValidTheme reports whether t is a known theme.
func ValidTheme(t Theme) bool {
	return t == ThemeDark || t == ThemeLight
}

// Language is the UI language code persisted alongside sessions.
type Language string

const (
	LangEnglish Language = "en"
	LangRussian Language = "ru"
	LangUzbek   Language = "uz"
)

// ValidLanguage reports whether l is a known language code.
func ValidLanguage(l Language) bool {
	switch l {
	case LangEnglish, LangRussian, LangUzbek:
		return true
	}
	return false
}

// Generation service defaults.
const (
	// DefaultModel is the generation model used for text and vision prompts.
	DefaultModel = "gemini-3-flash-preview"

	// DefaultTemperature keeps replies reproducible in tone but not
	// deterministic.
	DefaultTemperature = 0.7

	// DefaultImagePrompt substitutes for the text part when the user sends
	// an image with no accompanying text.
	DefaultImagePrompt = "Describe this image"

	// FallbackReply is returned when the service responds with no text.
	FallbackReply = "I couldn't generate a response."
)
