package utils

import (
	"testing"

	"filevault/config"
)

func setJWTConfig(secret string) {
	config.AppConfig = &config.Config{
		JWT: config.JWTConfig{Secret: secret, ExpireHours: 1},
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	setJWTConfig("test-secret")

	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user 42, got %d", claims.UserID)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	setJWTConfig("secret-a")
	token, err := GenerateToken(1)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	setJWTConfig("secret-b")
	if _, err := ParseToken(token); err == nil {
		t.Fatalf("token signed with another secret must not parse")
	}
}

func TestParseGarbageToken(t *testing.T) {
	setJWTConfig("test-secret")
	if _, err := ParseToken("not.a.token"); err == nil {
		t.Fatalf("garbage must not parse")
	}
}
