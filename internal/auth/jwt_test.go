package auth

import (
	"testing"
	"time"
)

func TestGeneratePairAndValidate(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, 7*24*time.Hour)

	access, refresh, err := tm.GeneratePair(42)
	if err != nil {
		t.Fatalf("GeneratePair failed: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("expected non-empty tokens")
	}

	claims, err := tm.ValidateAccess(access)
	if err != nil {
		t.Fatalf("ValidateAccess failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Errorf("TokenType = %q, want %q", claims.TokenType, TokenTypeAccess)
	}
	if claims.ID != "" {
		t.Error("access tokens should not carry a jti")
	}

	refreshClaims, err := tm.ValidateRefresh(refresh)
	if err != nil {
		t.Fatalf("ValidateRefresh failed: %v", err)
	}
	if refreshClaims.ID == "" {
		t.Error("refresh tokens must carry a jti")
	}
}

func TestValidateRejectsWrongTokenType(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, 7*24*time.Hour)

	access, refresh, err := tm.GeneratePair(1)
	if err != nil {
		t.Fatalf("GeneratePair failed: %v", err)
	}

	if _, err := tm.ValidateAccess(refresh); err != ErrInvalidToken {
		t.Errorf("refresh token accepted as access token, err = %v", err)
	}
	if _, err := tm.ValidateRefresh(access); err != ErrInvalidToken {
		t.Errorf("access token accepted as refresh token, err = %v", err)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-a", time.Hour, time.Hour)
	other := NewTokenManager("secret-b", time.Hour, time.Hour)

	access, _, err := tm.GeneratePair(1)
	if err != nil {
		t.Fatalf("GeneratePair failed: %v", err)
	}

	if _, err := other.ValidateAccess(access); err != ErrInvalidToken {
		t.Errorf("token signed with different secret accepted, err = %v", err)
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute, -time.Minute)

	access, _, err := tm.GeneratePair(1)
	if err != nil {
		t.Fatalf("GeneratePair failed: %v", err)
	}

	if _, err := tm.ValidateAccess(access); err != ErrInvalidToken {
		t.Errorf("expired token accepted, err = %v", err)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := tm.ValidateAccess(token); err != ErrInvalidToken {
			t.Errorf("ValidateAccess(%q) err = %v, want ErrInvalidToken", token, err)
		}
	}
}
