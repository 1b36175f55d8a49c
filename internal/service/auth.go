// Package service holds business rules that sit between HTTP handlers and
// storage.
//
//	AdminHandler (HTTP) → AuthService (rules) → UserRepository (store)
//	                    ↘ TokenService (JWT), PasswordService (bcrypt)
//
// Content endpoints are plain CRUD and talk to the repositories directly;
// only admin authentication has rules worth a layer of their own.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ghiffarsabda/kormimvp/internal/apperror"
	"github.com/ghiffarsabda/kormimvp/internal/auth"
	"github.com/ghiffarsabda/kormimvp/internal/model"
	"github.com/ghiffarsabda/kormimvp/internal/repository"
)

// errBadCredentials is deliberately the same for an unknown user and a wrong
// password.
var errBadCredentials = apperror.Unauthorized("invalid username or password")

// passwordHasher is satisfied by *auth.PasswordService.
type passwordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(hash, plaintext string) error
}

// AuthService authenticates admins and provisions the admin account.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords passwordHasher
	logger    *slog.Logger

	// dummyHash is compared against on unknown usernames so both failure
	// paths pay for one bcrypt comparison at the same cost.
	dummyHash func() string
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords passwordHasher,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
		dummyHash: sync.OnceValue(func() string {
			hash, err := passwords.Hash("kormimvp-no-such-user")
			if err != nil {
				logger.Error("hashing dummy password", slog.String("error", err.Error()))
			}
			return hash
		}),
	}
}

// AuthResult bundles the user and the issued token so the handler can set
// the cookie and respond in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// EnsureAdmin makes sure an account named username exists with password.
//
// A missing account is created. An existing one gets its hash replaced only
// when the configured password no longer matches, so restarts with the same
// environment leave the row alone.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("service/auth: admin username and password are required")
	}

	existing, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		if s.passwords.Verify(existing.PasswordHash, password) == nil {
			return existing, nil
		}
		hash, err := s.passwords.Hash(password)
		if err != nil {
			return nil, fmt.Errorf("service/auth: hashing admin password: %w", err)
		}
		existing.PasswordHash = hash
		if err := s.users.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("service/auth: updating admin %q: %w", username, err)
		}
		s.logger.Info("admin password rotated", slog.String("username", username))
		return existing, nil

	case errors.Is(err, apperror.ErrNotFound):
		hash, err := s.passwords.Hash(password)
		if err != nil {
			return nil, fmt.Errorf("service/auth: hashing admin password: %w", err)
		}
		user := &model.User{Username: username, PasswordHash: hash}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("service/auth: creating admin %q: %w", username, err)
		}
		s.logger.Info("admin account created",
			slog.Int("userID", user.ID),
			slog.String("username", username),
		)
		return user, nil

	default:
		return nil, fmt.Errorf("service/auth: looking up admin %q: %w", username, err)
	}
}

// Login checks the credentials and issues a token. Any mismatch is reported
// as apperror.ErrUnauthorized without saying which half was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, apperror.ErrNotFound) {
		_ = s.passwords.Verify(s.dummyHash(), password)
		s.logger.Warn("login failed", slog.String("username", username), slog.String("reason", "unknown user"))
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("service/auth: looking up %q: %w", username, err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrInvalidPassword) {
			s.logger.Warn("login failed", slog.String("username", username), slog.String("reason", "wrong password"))
			return nil, errBadCredentials
		}
		return nil, fmt.Errorf("service/auth: verifying password for %q: %w", username, err)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %d: %w", user.ID, err)
	}

	s.logger.Info("admin logged in", slog.Int("userID", user.ID), slog.String("username", username))
	return &AuthResult{User: user, Token: token}, nil
}

// CurrentUser returns the account behind an authenticated request.
func (s *AuthService) CurrentUser(ctx context.Context, userID int) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, apperror.ErrNotFound) {
		// Token outlived its account.
		return nil, apperror.Unauthorized("account no longer exists")
	}
	if err != nil {
		return nil, fmt.Errorf("service/auth: fetching user %d: %w", userID, err)
	}
	return user, nil
}

// TokenTTL is how long issued tokens stay valid.
func (s *AuthService) TokenTTL() int {
	return int(s.tokens.TTL().Seconds())
}
