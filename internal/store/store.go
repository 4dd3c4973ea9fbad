// Package store persists the client state - auth, chat sessions, theme and
// language - as one JSON blob on disk. Loading never fails to the caller:
// an absent or corrupt blob yields the defaults. Every mutation rewrites
// the whole blob through an atomic temp-file rename.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/lo"

	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/models"
)

const stateFile = "state.json"

// Store owns the persisted state file. All access goes through a mutex so
// TUI command goroutines and the main loop cannot interleave writes.
type Store struct {
	path string
	mu   sync.Mutex
}

// Open creates a store rooted at dir, creating the directory if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &Store{path: filepath.Join(dir, stateFile)}, nil
}

// Load reads the state blob. Absence, unreadable content and schema
// mismatch all degrade to DefaultState; the caller never sees an error.
func (s *Store) Load() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Save writes the whole state blob.
func (s *Store) Save(state State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(state)
}

// SaveSessions replaces the session collection and persists, leaving the
// other slots untouched.
func (s *Store) SaveSessions(sessions []models.ChatSession) error {
	return s.update(func(st *State) {
		st.Sessions = sessions
	})
}

// SaveAuth replaces the auth slot and persists.
func (s *Store) SaveAuth(auth AuthState) error {
	return s.update(func(st *State) {
		st.Auth = auth
	})
}

// SaveTheme replaces the theme flag and persists.
func (s *Store) SaveTheme(theme models.Theme) error {
	return s.update(func(st *State) {
		st.Theme = theme
	})
}

// SaveLanguage replaces the language code and persists.
func (s *Store) SaveLanguage(lang models.Language) error {
	return s.update(func(st *State) {
		st.Language = lang
	})
}

// FindSession returns the session with the given id from the current state.
func (s *Store) FindSession(id string) (models.ChatSession, bool) {
	state := s.Load()
	return lo.Find(state.Sessions, func(sess models.ChatSession) bool {
		return sess.ID == id
	})
}

// DeleteSession removes one session from the collection and persists.
// Deleting an unknown id is a no-op.
func (s *Store) DeleteSession(id string) error {
	return s.update(func(st *State) {
		st.Sessions = lo.Reject(st.Sessions, func(sess models.ChatSession, _ int) bool {
			return sess.ID == id
		})
	})
}

// ClearSessions drops the whole session collection and persists.
func (s *Store) ClearSessions() error {
	return s.update(func(st *State) {
		st.Sessions = []models.ChatSession{}
	})
}

// Path returns the state file location.
func (s *Store) Path() string {
	return s.path
}

// update performs a read-modify-write of the single blob under the lock.
func (s *Store) update(mutate func(*State)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.loadLocked()
	mutate(&state)
	return s.saveLocked(state)
}

func (s *Store) loadLocked() State {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return DefaultState()
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return DefaultState()
	}

	state, ok := migrate(state)
	if !ok {
		return DefaultState()
	}
	return state
}

// saveLocked writes the blob to a temp file in the same directory and
// renames it over the state file, so readers never observe a torn write.
func (s *Store) saveLocked(state State) error {
	state.Version = StateVersion

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), stateFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp state file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to chmod state file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	return nil
}
