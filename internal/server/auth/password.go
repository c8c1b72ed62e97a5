package auth

import "golang.org/x/crypto/bcrypt"

// MinBcryptCost is the floor for the configurable cost factor. Anything
// below it defeats the point of an adaptive hash.
const MinBcryptCost = 10

// HashPassword returns a salted bcrypt hash of the plaintext. Costs below
// MinBcryptCost are raised to it.
func HashPassword(plaintext string, cost int) (string, error) {
	if cost < MinBcryptCost {
		cost = MinBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
// bcrypt does its own constant-time comparison; a malformed hash simply
// reads as a mismatch.
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
