package utils

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	manager, err := NewManager("test-key")
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	token, err := manager.NewAccessToken("u1", "user", time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken failed: %v", err)
	}

	claims, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.UserID != "u1" || claims.Role != "user" {
		t.Fatalf("unexpected claims: %#v", claims)
	}
}

func TestParseRejectsForeignKey(t *testing.T) {
	issuer, _ := NewManager("key-a")
	verifier, _ := NewManager("key-b")

	token, err := issuer.NewAccessToken("u1", "user", time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken failed: %v", err)
	}

	if _, err := verifier.Parse(token); err == nil {
		t.Fatalf("token signed with another key must not parse")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	manager, _ := NewManager("test-key")

	token, err := manager.NewAccessToken("u1", "user", -time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken failed: %v", err)
	}

	if _, err := manager.Parse(token); err == nil {
		t.Fatalf("expired token must not parse")
	}
}

func TestNewManagerRequiresKey(t *testing.T) {
	if _, err := NewManager(""); err == nil {
		t.Fatalf("empty signing key must be rejected")
	}
}

func TestNewRefreshTokenIsUnique(t *testing.T) {
	manager, _ := NewManager("test-key")

	a, err := manager.NewRefreshToken()
	if err != nil {
		t.Fatalf("NewRefreshToken failed: %v", err)
	}
	b, err := manager.NewRefreshToken()
	if err != nil {
		t.Fatalf("NewRefreshToken failed: %v", err)
	}
	if a == b {
		t.Fatalf("refresh tokens should not repeat")
	}
	if len(a) != 64 {
		t.Fatalf("expected 32 random bytes hex encoded, got length %d", len(a))
	}
}
