package auth

import (
	"strings"
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	token, err := Issue("a@b.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Email != "a@b.com" {
		t.Fatalf("expected email a@b.com, got %s", claims.Email)
	}
	if IsExpired(claims) {
		t.Fatalf("fresh token reported expired")
	}
	if claims.Exp-claims.Iat != int64(24*time.Hour/time.Second) {
		t.Fatalf("expected 24h lifetime, got %d seconds", claims.Exp-claims.Iat)
	}
}

func TestIsExpiredAfterLifetime(t *testing.T) {
	now := time.Now().UTC().Unix()
	claims := Claims{
		Email: "a@b.com",
		Iat:   now - int64(25*time.Hour/time.Second),
		Exp:   now - int64(time.Hour/time.Second),
	}
	if !IsExpired(claims) {
		t.Fatalf("token past exp not reported expired")
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	token, err := Issue("a@b.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parts := strings.Split(token, ".")
	parts[1] = parts[1][:len(parts[1])-2] + "xx"
	if _, err := Verify(strings.Join(parts, ".")); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	for _, token := range []string{"", "abc", "a.b", "a.b.c.d", "!!.!!.!!"} {
		if _, err := Verify(token); err != ErrInvalidToken {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestIssueForCarriesPurpose(t *testing.T) {
	token, err := IssueFor("a@b.com", PurposeReset, time.Hour)
	if err != nil {
		t.Fatalf("IssueFor: %v", err)
	}
	claims, err := Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Purpose != PurposeReset {
		t.Fatalf("expected purpose %s, got %s", PurposeReset, claims.Purpose)
	}
	if claims.Exp-claims.Iat != int64(time.Hour/time.Second) {
		t.Fatalf("expected 1h lifetime, got %d seconds", claims.Exp-claims.Iat)
	}
}
