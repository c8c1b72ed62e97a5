package auth

import (
	"strings"
	"testing"
)

func TestHashPassword_VerifiesAndSalts(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("secret1", MinBcryptCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("secret1", MinBcryptCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if h1 == h2 {
		t.Fatalf("two hashes of the same password must differ (salt)")
	}
	if strings.Contains(h1, "secret1") {
		t.Fatalf("hash must not contain the plaintext")
	}

	if !CheckPassword("secret1", h1) {
		t.Fatalf("correct password must verify")
	}
	if CheckPassword("secret2", h1) {
		t.Fatalf("wrong password must not verify")
	}
}

func TestHashPassword_CostFloor(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("secret1", 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	// bcrypt encodes the cost in the hash prefix: $2a$10$...
	if !strings.HasPrefix(h, "$2a$10$") {
		t.Fatalf("cost below the floor must be raised to %d, got %q", MinBcryptCost, h[:7])
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	if CheckPassword("whatever", "not-a-bcrypt-hash") {
		t.Fatalf("malformed hash must read as mismatch")
	}
	if CheckPassword("whatever", "") {
		t.Fatalf("empty hash must read as mismatch")
	}
}
