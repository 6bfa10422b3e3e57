// Package jwtverify implements auth.AuthVerifier with local HS256
// validation. Practice servers share the signing secret, so no identity
// provider round trip is needed.
package jwtverify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clinic-dispense/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotConfigured = errors.New("jwt verifier not configured")
	ErrUnauthorized  = errors.New("invalid token")
)

type tokenClaims struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	PracticeID string `json:"practice_id"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
}

func New(secret string) *Verifier {
	return &Verifier{secret: []byte(strings.TrimSpace(secret))}
}

func (v *Verifier) IsConfigured() bool {
	return v != nil && len(v.secret) > 0
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if !v.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return auth.Claims{}, err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return auth.Claims{}, ErrUnauthorized
	}

	userID := strings.TrimSpace(claims.UserID)
	if userID == "" {
		userID = strings.TrimSpace(claims.Subject)
	}
	if userID == "" {
		return auth.Claims{}, ErrUnauthorized
	}
	return auth.Claims{
		UserID:     userID,
		Email:      strings.TrimSpace(claims.Email),
		PracticeID: strings.TrimSpace(claims.PracticeID),
	}, nil
}
