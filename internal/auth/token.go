package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	apierrors "github.com/qyf6zs2vmg-hue/CeloraAI/internal/errors"
)

// tokenKey signs the local session token. The token only gates this
// client's own state file, so a fixed key is acceptable here.
var tokenKey = []byte("celora-local-session-key")

// TokenDuration is how long a login stays valid before the client asks the
// user to sign in again.
const TokenDuration = 30 * 24 * time.Hour

// SessionClaims is the payload of the local session token.
type SessionClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// IssueToken signs a session token for the given user id.
func IssueToken(userID string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "celora",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tokenKey)
}

// ValidateToken parses the token and checks its signature and expiry.
func ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return tokenKey, nil
	})
	if err != nil {
		return nil, apierrors.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, apierrors.ErrTokenInvalid
	}
	return claims, nil
}
