package auth

import (
	"testing"
	"time"
)

func TestInitJWTSecretMissing(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if err := InitJWTSecret(); err == nil {
		t.Fatalf("expected error when JWT_SECRET is unset")
	}
}

func TestGenerateVerifyAndParseClaims(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	if err := InitJWTSecret(); err != nil {
		t.Fatalf("init secret: %v", err)
	}

	tokenString, err := GenerateJWT(42, "alice@example.com")

	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	token, err := VerifyJWT(tokenString)

	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	claims, err := ParseClaims(token)

	if err != nil {
		t.Fatalf("parse claims: %v", err)
	}

	if claims.UserID != 42 {
		t.Fatalf("expected user 42, got %d", claims.UserID)
	}

	if claims.Email != "alice@example.com" {
		t.Fatalf("unexpected email: %s", claims.Email)
	}

	if claims.JTI == "" {
		t.Fatalf("expected a token ID")
	}

	if !claims.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected a future expiry, got %v", claims.ExpiresAt)
	}

	// Each token gets its own ID, so one can be revoked without the other.
	otherString, err := GenerateJWT(42, "alice@example.com")

	if err != nil {
		t.Fatalf("generate second: %v", err)
	}

	other, err := VerifyJWT(otherString)

	if err != nil {
		t.Fatalf("verify second: %v", err)
	}

	otherClaims, err := ParseClaims(other)

	if err != nil {
		t.Fatalf("parse second claims: %v", err)
	}

	if otherClaims.JTI == claims.JTI {
		t.Fatalf("two tokens must not share a token ID")
	}
}

func TestVerifyJWTRejectsTampering(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	if err := InitJWTSecret(); err != nil {
		t.Fatalf("init secret: %v", err)
	}

	tokenString, err := GenerateJWT(1, "alice@example.com")

	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := VerifyJWT(tokenString + "x"); err == nil {
		t.Fatalf("expected tampered token to be rejected")
	}
}
