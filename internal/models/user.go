package models

import (
	"strings"

	"github.com/google/uuid"
)

// Provider identifies how a user signed in.
type Provider string

const (
	ProviderEmail  Provider = "email"
	ProviderGoogle Provider = "google"
	ProviderApple  Provider = "apple"
)

// ValidProvider reports whether p is one of the known providers.
func ValidProvider(p Provider) bool {
	switch p {
	case ProviderEmail, ProviderGoogle, ProviderApple:
		return true
	}
	return false
}

// User is a locally fabricated account record. Login does not verify
// credentials; the record exists only to personalize the client.
type User struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Provider Provider `json:"provider"`
}

// NewUser creates a user record with a fresh id. An empty name falls back
// to the local part of the email address.
func NewUser(name, email string, provider Provider) User {
	if name == "" {
		name = email
		if at := strings.IndexByte(email, '@'); at > 0 {
			name = email[:at]
		}
	}
	return User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Provider: provider,
	}
}
