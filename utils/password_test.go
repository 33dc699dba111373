package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "secret123" {
		t.Fatalf("hash must differ from the plain password")
	}
	if !CheckPassword("secret123", hash) {
		t.Fatalf("correct password must verify")
	}
	if CheckPassword("wrong", hash) {
		t.Fatalf("wrong password must not verify")
	}
}
