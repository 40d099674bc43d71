package auth

import (
	"testing"
	"time"

	"github.com/iho/finledger/internal/domain"
)

func TestJWTGenerateAndVerify(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	user := &domain.User{ID: 42, Email: "alice@example.com"}

	token, err := manager.Generate(user)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Fatalf("expected email to round-trip, got %s", claims.Email)
	}
	if claims.ID == "" {
		t.Fatalf("expected a token id")
	}
}

func TestJWTVerifyExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.Generate(&domain.User{ID: 1})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := manager.Verify(token); err != domain.ErrExpiredToken {
		t.Fatalf("expected expired token error, got %v", err)
	}
}

func TestJWTVerifyWrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	other := NewJWTManager("other-secret", time.Hour)

	token, err := manager.Generate(&domain.User{ID: 1})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := other.Verify(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestJWTVerifyGarbage(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	if _, err := manager.Verify("not-a-token"); err != domain.ErrInvalidToken {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}
