// Package services contains server-side business logic. This file implements
// UserService, which handles account creation, credential verification, and
// session-token issuance.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"time"
	"unicode/utf8"

	"github.com/dmaia/clipstream/internal/common"
	"github.com/dmaia/clipstream/internal/server/auth"
	"github.com/dmaia/clipstream/internal/server/config"
	"github.com/dmaia/clipstream/internal/server/models"
	"github.com/dmaia/clipstream/internal/server/repositories/repomanager"
)

const (
	minPasswordLength = 6
	minNameLength     = 3
)

// AuthResult bundles the account and the freshly minted session token
// returned by SignUp and SignIn.
type AuthResult struct {
	User  *models.User
	Token string
}

// UserService provides authentication-related operations:
// - SignUp: validate, create the account, mint a token
// - SignIn: verify credentials and mint a token
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	bcryptCost            int
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		bcryptCost:            cfg.BcryptCost,
	}
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	// reject the "Display Name <a@b>" form, only a bare address counts
	return err == nil && addr.Address == email
}

// SignUp creates a new account and returns it with a session token.
// Validation failures yield common.ErrorValidation, a taken email yields
// common.ErrorAlreadyExists. The pre-check against the email is advisory
// only: the unique constraint enforced on insert is what decides races
// between concurrent sign-ups.
func (s *UserService) SignUp(ctx context.Context, email, password, name string) (*AuthResult, error) {
	if !validEmail(email) {
		return nil, fmt.Errorf("%w: malformed email", common.ErrorValidation)
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password shorter than %d characters", common.ErrorValidation, minPasswordLength)
	}
	if utf8.RuneCountInString(name) < minNameLength {
		return nil, fmt.Errorf("%w: name shorter than %d characters", common.ErrorValidation, minNameLength)
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user, err := repo.Create(ctx, &models.User{Email: email, Name: name, PasswordHash: hash})
	if err != nil {
		// lost the race against a concurrent sign-up with the same email
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, common.ErrorInternal
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{User: user, Token: token}, nil
}

// SignIn verifies the email/password pair and returns the account with a
// session token. An unknown email and a wrong password both yield
// common.ErrorInvalidCredentials so the response cannot be used to probe
// which emails are registered.
func (s *UserService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, common.ErrorInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{User: user, Token: token}, nil
}
