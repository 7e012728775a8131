package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestGenerateAndValidate(t *testing.T) {
	m := NewJWTManager(testSecret, "cpd-backend", 15*time.Minute)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	got, err := m.ValidateToken(context.Background(), token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got != userID {
		t.Errorf("user ID: got %v, want %v", got, userID)
	}
}

func TestValidateEmptyToken(t *testing.T) {
	m := NewJWTManager(testSecret, "cpd-backend", 15*time.Minute)
	if _, err := m.ValidateToken(context.Background(), ""); err == nil {
		t.Error("expected error for empty token")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	m := NewJWTManager(testSecret, "cpd-backend", -1*time.Minute)
	token, err := m.GenerateAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := m.ValidateToken(context.Background(), token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestValidateWrongSecret(t *testing.T) {
	m1 := NewJWTManager(testSecret, "cpd-backend", 15*time.Minute)
	m2 := NewJWTManager("another-secret-that-is-32-chars!", "cpd-backend", 15*time.Minute)

	token, err := m1.GenerateAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := m2.ValidateToken(context.Background(), token); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestValidateWrongIssuer(t *testing.T) {
	m1 := NewJWTManager(testSecret, "someone-else", 15*time.Minute)
	m2 := NewJWTManager(testSecret, "cpd-backend", 15*time.Minute)

	token, err := m1.GenerateAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := m2.ValidateToken(context.Background(), token); err == nil {
		t.Error("expected error for wrong issuer")
	}
}
