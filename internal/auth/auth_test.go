package auth

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, time.Hour)

	token, err := m.NewAccessToken(42)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	userID, err := m.Parse(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if userID != 42 {
		t.Fatalf("got user %d want 42", userID)
	}
}

func TestExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, time.Hour)

	token, err := m.NewAccessToken(42)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := m.Parse(token); err != ErrExpiredToken {
		t.Fatalf("got %v want ErrExpiredToken", err)
	}
}

func TestWrongSecret(t *testing.T) {
	m := NewManager("secret-a", 15*time.Minute, time.Hour)
	other := NewManager("secret-b", 15*time.Minute, time.Hour)

	token, err := m.NewAccessToken(7)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := other.Parse(token); err != ErrInvalidToken {
		t.Fatalf("got %v want ErrInvalidToken", err)
	}
}

func TestGarbageToken(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, time.Hour)
	if _, err := m.Parse("not.a.token"); err != ErrInvalidToken {
		t.Fatalf("got %v want ErrInvalidToken", err)
	}
}

func TestRefreshTokensDistinct(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, time.Hour)
	a, err := m.NewRefreshToken(1)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	b, err := m.NewRefreshToken(1)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if a == b {
		t.Fatalf("consecutive refresh tokens should differ")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "hunter2" {
		t.Fatalf("hash must not equal plaintext")
	}
	if err := CheckPassword(hash, "hunter2"); err != nil {
		t.Fatalf("check: %v", err)
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatalf("expected mismatch error")
	}
}
