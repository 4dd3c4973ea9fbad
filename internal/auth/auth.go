// Package auth implements the local login boundary. Login fabricates a
// user record without verifying credentials; the only thing resembling
// authentication is a locally signed session token with an expiry.
package auth

import (
	"fmt"

	apierrors "github.com/qyf6zs2vmg-hue/CeloraAI/internal/errors"
	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/models"
	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/store"
)

// Service mediates between the login boundary and the persisted auth slot.
type Service struct {
	store *store.Store
}

// NewService creates an auth service backed by the given store.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Login fabricates a user for an email sign-in, issues a session token and
// persists the auth slot.
func (s *Service) Login(name, email string) (models.User, error) {
	if email == "" {
		return models.User{}, apierrors.NewAuthError("email is required")
	}
	user := models.NewUser(name, email, models.ProviderEmail)
	return user, s.persist(user)
}

// LoginSocial simulates a social sign-in by fabricating a provider-branded
// user record.
func (s *Service) LoginSocial(provider models.Provider) (models.User, error) {
	if !models.ValidProvider(provider) || provider == models.ProviderEmail {
		return models.User{}, apierrors.NewAuthError(fmt.Sprintf("unknown provider %q", provider))
	}

	name := "Google User"
	if provider == models.ProviderApple {
		name = "Apple User"
	}
	user := models.NewUser(name, fmt.Sprintf("%s@example.com", provider), provider)
	return user, s.persist(user)
}

// Logout clears the persisted auth slot.
func (s *Service) Logout() error {
	return s.store.SaveAuth(store.AuthState{})
}

// CurrentUser returns the logged-in user, validating the stored session
// token. An invalid or expired token clears the auth slot.
func (s *Service) CurrentUser() (models.User, error) {
	state := s.store.Load()
	if !state.Auth.IsAuthenticated || state.Auth.User == nil {
		return models.User{}, apierrors.ErrNotLoggedIn
	}

	if _, err := ValidateToken(state.Auth.Token); err != nil {
		_ = s.store.SaveAuth(store.AuthState{})
		return models.User{}, err
	}

	return *state.Auth.User, nil
}

func (s *Service) persist(user models.User) error {
	token, err := IssueToken(user.ID)
	if err != nil {
		return fmt.Errorf("failed to issue session token: %w", err)
	}

	return s.store.SaveAuth(store.AuthState{
		User:            &user,
		IsAuthenticated: true,
		Token:           token,
	})
}
