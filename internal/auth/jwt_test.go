package auth

import (
	"testing"
	"time"

	"jewelry-store/internal/entity"
)

func TestIssueAndParse_Success(t *testing.T) {
	t.Parallel()

	signer := NewSigner([]byte("super-secret"), time.Hour)
	user := &entity.User{ID: 42, Username: "juliette", Type: entity.RoleAdmin}

	tok, err := signer.Issue(user)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := signer.Parse(tok)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("UserID mismatch: got %d want 42", claims.UserID)
	}
	if claims.Username != "juliette" {
		t.Fatalf("Username mismatch: got %q", claims.Username)
	}
	if claims.Role != entity.RoleAdmin {
		t.Fatalf("Role mismatch: got %q", claims.Role)
	}
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	signer := NewSigner([]byte("secret"), -1*time.Second)
	tok, err := signer.Issue(&entity.User{ID: 1, Username: "u1", Type: entity.RoleCustomer})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := signer.Parse(tok); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	signer := NewSigner([]byte("right-secret"), time.Hour)
	tok, err := signer.Issue(&entity.User{ID: 2, Username: "u2", Type: entity.RoleCustomer})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	other := NewSigner([]byte("wrong-secret"), time.Hour)
	if _, err := other.Parse(tok); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestParse_Garbage(t *testing.T) {
	t.Parallel()

	signer := NewSigner([]byte("k"), time.Hour)
	if _, err := signer.Parse("not.a.jwt"); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}
