package service

import (
	"errors"
	"testing"
	"time"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	token, err := issuer.Issue("user_1", domain.RolePublisher)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	uid, role, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if uid != "user_1" || role != domain.RolePublisher {
		t.Fatalf("got %s/%s, want user_1/%s", uid, role, domain.RolePublisher)
	}
}

func TestTokenIssuer_RequiresSecret(t *testing.T) {
	if _, err := NewTokenIssuer("", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestTokenIssuer_ExpiredToken(t *testing.T) {
	issuer, err := NewTokenIssuer("secret", -time.Minute)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	// Negative ttl falls back to the default, so build a short-lived issuer
	// explicitly instead.
	short := &TokenIssuer{secret: []byte("secret"), ttl: -time.Minute}
	token, err := short.Issue("user_1", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, _, err := issuer.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	a, _ := NewTokenIssuer("secret-a", time.Hour)
	b, _ := NewTokenIssuer("secret-b", time.Hour)

	token, err := a.Issue("user_1", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, _, err := b.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestTokenIssuer_Garbage(t *testing.T) {
	issuer, _ := NewTokenIssuer("secret", time.Hour)
	if _, _, err := issuer.Verify("not-a-jwt"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
