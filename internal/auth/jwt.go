// Package auth issues and verifies the stateless access tokens that gate
// every protected operation. Tokens are HS256-signed claim sets carrying
// the username and an expiry; validity is purely signature + clock, so
// there is no server-side session table and no revocation — a logout has
// no server-side effect and an issued token stays valid until it expires.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/markdave123-py/Convosum/internal/core"
)

// GenerateToken signs a token with subject=username expiring after ttl.
func GenerateToken(username string, secret []byte, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifySubject checks signature and expiry and returns the username the
// token was issued for. Malformed, tampered, expired, or subject-less
// tokens all come back as core.ErrInvalidToken.
func VerifySubject(tokenString string, secret []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", core.ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", core.ErrInvalidToken
	}
	return claims.Subject, nil
}
