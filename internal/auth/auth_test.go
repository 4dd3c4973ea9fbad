package auth

import (
	"errors"
	"testing"

	apierrors "github.com/qyf6zs2vmg-hue/CeloraAI/internal/errors"
	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/models"
	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return NewService(st), st
}

func TestLogin_PersistsAuthState(t *testing.T) {
	svc, st := newTestService(t)

	user, err := svc.Login("Alice", "alice@example.com")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.Provider != models.ProviderEmail {
		t.Errorf("Provider = %q, want email", user.Provider)
	}

	state := st.Load()
	if !state.Auth.IsAuthenticated {
		t.Error("auth state not marked authenticated")
	}
	if state.Auth.User == nil || state.Auth.User.Email != "alice@example.com" {
		t.Error("user record not persisted")
	}
	if state.Auth.Token == "" {
		t.Error("no session token issued")
	}
}

func TestLogin_RequiresEmail(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Login("Alice", ""); err == nil {
		t.Error("expected error for empty email")
	}
}

func TestLoginSocial(t *testing.T) {
	tests := []struct {
		provider  models.Provider
		wantName  string
		wantEmail string
	}{
		{models.ProviderGoogle, "Google User", "google@example.com"},
		{models.ProviderApple, "Apple User", "apple@example.com"},
	}

	for _, tt := range tests {
		svc, _ := newTestService(t)
		user, err := svc.LoginSocial(tt.provider)
		if err != nil {
			t.Fatalf("LoginSocial(%q) failed: %v", tt.provider, err)
		}
		if user.Name != tt.wantName {
			t.Errorf("Name = %q, want %q", user.Name, tt.wantName)
		}
		if user.Email != tt.wantEmail {
			t.Errorf("Email = %q, want %q", user.Email, tt.wantEmail)
		}
	}
}

func TestLoginSocial_RejectsEmailProvider(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.LoginSocial(models.ProviderEmail); err == nil {
		t.Error("expected error for email provider on social login")
	}
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.CurrentUser(); !errors.Is(err, apierrors.ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn before login, got %v", err)
	}

	logged, err := svc.Login("Bob", "bob@example.com")
	if err != nil {
		t.Fatal(err)
	}

	current, err := svc.CurrentUser()
	if err != nil {
		t.Fatalf("CurrentUser failed after login: %v", err)
	}
	if current.ID != logged.ID {
		t.Error("CurrentUser returned a different user")
	}
}

func TestCurrentUser_TamperedTokenClearsAuth(t *testing.T) {
	svc, st := newTestService(t)

	if _, err := svc.Login("Bob", "bob@example.com"); err != nil {
		t.Fatal(err)
	}

	state := st.Load()
	state.Auth.Token = state.Auth.Token + "tampered"
	if err := st.Save(state); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.CurrentUser(); !errors.Is(err, apierrors.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}

	// The invalid auth slot is cleared.
	if st.Load().Auth.IsAuthenticated {
		t.Error("auth slot not cleared after invalid token")
	}
}

func TestLogout(t *testing.T) {
	svc, st := newTestService(t)

	if _, err := svc.Login("Bob", "bob@example.com"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	state := st.Load()
	if state.Auth.IsAuthenticated || state.Auth.User != nil || state.Auth.Token != "" {
		t.Error("auth slot not cleared on logout")
	}
}

func TestIssueAndValidateToken(t *testing.T) {
	token, err := IssueToken("user-123")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("UserID = %q, want user-123", claims.UserID)
	}

	if _, err := ValidateToken("garbage"); !errors.Is(err, apierrors.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for garbage token, got %v", err)
	}
}
