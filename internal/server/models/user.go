package models

import "time"

// User is an account record. PasswordHash is the bcrypt hash; the
// plaintext never appears outside the auth package and the hash never
// crosses the API boundary.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
