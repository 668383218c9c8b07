// Package token issues and verifies the signed identity tokens consumed
// by the HTTP boundary.
package token

import (
	"errors"
	"time"

	apperrors "resbook/pkg/errors"
	"resbook/pkg/model"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "resbook"

type claims struct {
	jwt.RegisteredClaims
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// Manager signs and verifies HS256 tokens carrying (ownerID, email, roles).
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// NewManagerWithClock fixes the time source, for tests.
func NewManagerWithClock(secret string, ttl time.Duration, now func() time.Time) *Manager {
	m := NewManager(secret, ttl)
	m.now = now
	return m
}

func (m *Manager) Issue(user *model.User) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Email: user.Email,
		Roles: user.Roles,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", apperrors.Internal("Failed to sign token", err)
	}
	return signed, nil
}

// Verify parses and validates a bearer token and returns the caller
// identity. Any parse or validation failure maps to Unauthenticated.
func (m *Manager) Verify(tokenString string) (model.Identity, error) {
	var parsed claims
	_, err := jwt.ParseWithClaims(tokenString, &parsed, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.Identity{}, apperrors.Unauthenticated("Token has expired")
		}
		return model.Identity{}, apperrors.Unauthenticated("Invalid token")
	}

	if parsed.Subject == "" {
		return model.Identity{}, apperrors.Unauthenticated("Token has no subject")
	}

	return model.Identity{
		OwnerID: parsed.Subject,
		Email:   parsed.Email,
		Roles:   parsed.Roles,
	}, nil
}
