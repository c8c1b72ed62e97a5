// Package auth implements the credential primitives of the server:
// signed session tokens and password hashing. The signing secret and token
// lifetime are process-wide configuration, loaded once at startup and never
// mutated; rotating the secret invalidates every outstanding token.
package auth

import (
	"errors"
	"time"

	"github.com/dmaia/clipstream/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the subject resolved from a verified token.
type Identity struct {
	UserID int64
	Email  string
}

// Claims is the enumerated claim set carried by a session token. No open
// claim map: subject id, email, issued-at and expiry are all there is.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
}

// GenerateToken mints an HS256-signed token for the given subject, expiring
// after validityDuration.
func GenerateToken(userID int64, email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
		Email:  email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies signature and expiry and returns the embedded
// identity. Expired tokens yield common.ErrTokenExpired; anything else
// wrong with the token (bad signature, malformed payload, wrong algorithm)
// yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return &Identity{UserID: claims.UserID, Email: claims.Email}, nil
}
