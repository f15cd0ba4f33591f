package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the subset of the backend's bearer token the console
// cares about. The backend owns the signing key; the console only peeks
// at the claims to pre-gate admin commands, so the signature is not
// verified here. A 401 from the backend remains the real gate.
type TokenClaims struct {
	IsAdmin bool   `json:"isAdmin"`
	UserID  string `json:"userId"`
	jwt.RegisteredClaims
}

// PeekClaims decodes the token payload without verification.
func PeekClaims(token string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	return claims, nil
}

// Expired reports whether the token carries an exp claim in the past.
func (c *TokenClaims) Expired() bool {
	if c.ExpiresAt == nil {
		return false
	}
	return c.ExpiresAt.Before(time.Now())
}
