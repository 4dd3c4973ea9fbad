package store

import "github.com/qyf6zs2vmg-hue/CeloraAI/internal/models"

// StateVersion is the schema version written into every state blob. Bump it
// when a field changes meaning and add a migration in migrate().
const StateVersion = 1

// AuthState is the persisted authentication slot.
type AuthState struct {
	User            *models.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	// Token is the locally signed session token issued at login. It is a
	// convenience, not a security boundary.
	Token string `json:"token,omitempty"`
}

// State is the whole persisted client state: the four independent slots
// (auth, sessions, theme, language) gathered into one explicit struct with
// a schema version, serialized as a single blob.
type State struct {
	Version  int                  `json:"version"`
	Auth     AuthState            `json:"auth"`
	Sessions []models.ChatSession `json:"sessions"`
	Theme    models.Theme         `json:"theme"`
	Language models.Language      `json:"language"`
}

// DefaultState returns the state used before any login or chat.
func DefaultState() State {
	return State{
		Version:  StateVersion,
		Auth:     AuthState{},
		Sessions: []models.ChatSession{},
		Theme:    models.ThemeDark,
		Language: models.LangRussian,
	}
}

// migrate upgrades older blobs to the current schema. Blobs from a newer
// schema than this binary understands are discarded.
func migrate(s State) (State, bool) {
	if s.Version > StateVersion {
		return DefaultState(), false
	}
	// Version 0 blobs predate the version field; the layout is otherwise
	// identical.
	s.Version = StateVersion
	if s.Sessions == nil {
		s.Sessions = []models.ChatSession{}
	}
	if !models.ValidTheme(s.Theme) {
		s.Theme = models.ThemeDark
	}
	if !models.ValidLanguage(s.Language) {
		s.Language = models.LangRussian
	}
	return s, true
}
