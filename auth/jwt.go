// Package auth provides password hashing and session token primitives.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued session token stays valid.
const TokenTTL = 30 * 24 * time.Hour

// ErrInvalidToken covers every verification failure. Bad signature, wrong
// signing method, malformed claims and expiry are indistinguishable to
// callers.
var ErrInvalidToken = errors.New("invalid token")

// Tokens issues and verifies the signed session tokens that prove identity
// without server-side session storage.
type Tokens struct {
	secret []byte
}

// NewTokens creates a token service signing with the given secret.
func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret)}
}

// Issue signs a token binding the user id, expiring after TokenTTL.
func (t *Tokens) Issue(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(TokenTTL).Unix(),
	})
	return token.SignedString(t.secret)
}

// Parse verifies a token and returns the user id it binds.
func (t *Tokens) Parse(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return "", ErrInvalidToken
	}
	return id, nil
}
