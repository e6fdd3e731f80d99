package auth

import (
	"testing"
	"time"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	userID := "user-123"

	tok, err := GenerateToken(userID, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	gotUserID, ok := ParseUserID(tok, secret)
	if !ok {
		t.Fatalf("ParseUserID: expected ok for a fresh token")
	}
	if gotUserID != userID {
		t.Fatalf("userID mismatch: got %q want %q", gotUserID, userID)
	}
}

func TestParseUserID_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken("u1", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, ok := ParseUserID(tok, secret); ok {
		t.Fatalf("expected absent result for expired token")
	}
}

func TestParseUserID_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, ok := ParseUserID(tok, []byte("wrong-secret")); ok {
		t.Fatalf("expected absent result for tampered signature")
	}
}

func TestParseUserID_MalformedString(t *testing.T) {
	t.Parallel()

	if _, ok := ParseUserID("not.a.jwt", []byte("k")); ok {
		t.Fatalf("expected absent result for malformed token")
	}
}
