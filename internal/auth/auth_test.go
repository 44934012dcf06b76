package auth

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("expected hash to differ from plaintext")
	}
	if !ComparePassword("secret123", hash) {
		t.Fatal("expected matching password to verify")
	}
	if ComparePassword("wrong", hash) {
		t.Fatal("expected mismatched password to fail")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	userID := primitive.NewObjectID()

	token, err := IssueToken(userID, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	parsed, err := ParseToken(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if parsed != userID {
		t.Fatalf("expected user id %s, got %s", userID.Hex(), parsed.Hex())
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := IssueToken(primitive.NewObjectID(), "secret-a", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	if _, err := ParseToken(token, "secret-b"); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := IssueToken(primitive.NewObjectID(), "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	if _, err := ParseToken(token, "test-secret"); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseToken("not-a-token", "test-secret"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
