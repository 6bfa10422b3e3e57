package jwtverify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "spooky-practice-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestVerifier_Verify(t *testing.T) {
	v := New(testSecret)

	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id":     "u-1",
		"email":       "staff@example.com",
		"practice_id": "prac-1",
		"exp":         time.Now().Add(time.Hour).Unix(),
	})

	claims, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != "u-1" {
		t.Fatalf("unexpected user id %q", claims.UserID)
	}
	if claims.Email != "staff@example.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
	if claims.PracticeID != "prac-1" {
		t.Fatalf("unexpected practice id %q", claims.PracticeID)
	}
}

func TestVerifier_SubjectFallback(t *testing.T) {
	v := New(testSecret)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "u-2",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	claims, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != "u-2" {
		t.Fatalf("expected subject as user id, got %q", claims.UserID)
	}
}

func TestVerifier_RejectsWrongSecret(t *testing.T) {
	v := New(testSecret)

	token := signToken(t, "some-other-secret", jwt.MapClaims{
		"user_id": "u-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	if _, err := v.Verify(context.Background(), token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifier_RejectsExpired(t *testing.T) {
	v := New(testSecret)

	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": "u-1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	if _, err := v.Verify(context.Background(), token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifier_RejectsMissingIdentity(t *testing.T) {
	v := New(testSecret)

	token := signToken(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if _, err := v.Verify(context.Background(), token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifier_RejectsEmptyToken(t *testing.T) {
	v := New(testSecret)
	if _, err := v.Verify(context.Background(), "   "); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifier_NotConfigured(t *testing.T) {
	v := New("")
	if v.IsConfigured() {
		t.Fatalf("expected empty secret to be unconfigured")
	}
	if _, err := v.Verify(context.Background(), "whatever"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
