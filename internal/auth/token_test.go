package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/spec-kit/live-commerce/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    "user_1700000000000_abc123def",
		Email: "host@example.com",
		Role:  domain.RoleSeller,
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, expiresAt, err := tm.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if time.Until(expiresAt) < 55*time.Minute {
		t.Errorf("expiry too close: %v", expiresAt)
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user_1700000000000_abc123def" {
		t.Errorf("unexpected user id %q", claims.UserID)
	}
	if claims.Email != "host@example.com" {
		t.Errorf("unexpected email %q", claims.Email)
	}
	if claims.Role != domain.RoleSeller {
		t.Errorf("unexpected role %q", claims.Role)
	}
}

func TestParseTokenExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	tm.ttl = -time.Minute

	token, _, err := tm.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, err = tm.ParseToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, _, err := issuer.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, err = verifier.ParseToken(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseTokenGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	if _, err := tm.ParseToken("not.a.jwt"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestDefaultTTL(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)
	if tm.ttl != 168*time.Hour {
		t.Errorf("expected week-long default ttl, got %v", tm.ttl)
	}
}
