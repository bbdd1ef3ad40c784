package auth

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "test-signing-secret"

func TestIssueAndVerifyRoundtrip(t *testing.T) {
	tok, err := IssueToken(testSecret, "a@x.com", 5*time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	ident, err := VerifyHeader(testSecret, "Bearer "+tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ident.Email != "a@x.com" {
		t.Errorf("subject = %q, want a@x.com", ident.Email)
	}
	if ident.IssuedAt.IsZero() {
		t.Error("issued-at metadata missing")
	}
	wantExp := time.Now().Add(5 * time.Hour)
	if d := ident.ExpiresAt.Sub(wantExp); d < -time.Minute || d > time.Minute {
		t.Errorf("expiry %v not ~5h out", ident.ExpiresAt)
	}
}

func TestVerifyMissingHeader(t *testing.T) {
	_, err := VerifyHeader(testSecret, "")
	if !errors.Is(err, ErrNoCredential) {
		t.Errorf("err = %v, want ErrNoCredential", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	for _, header := range []string{
		"Bearer not-a-token",
		"Bearer",
		"just-some-words with more parts here",
	} {
		if _, err := VerifyHeader(testSecret, header); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("VerifyHeader(%q) err = %v, want ErrInvalidToken", header, err)
		}
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	tok, err := IssueToken("other-secret", "a@x.com", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := VerifyHeader(testSecret, "Bearer "+tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	tok, err := IssueToken(testSecret, "a@x.com", -time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := VerifyHeader(testSecret, "Bearer "+tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}
