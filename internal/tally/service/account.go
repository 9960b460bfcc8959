package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tally/internal/tally/domain"
	"github.com/aussiebroadwan/tally/internal/tally/store"
	"github.com/aussiebroadwan/tally/pkg/cryptox"
	"github.com/aussiebroadwan/tally/pkg/idx"
	"github.com/aussiebroadwan/tally/pkg/jwtx"
	"github.com/aussiebroadwan/tally/pkg/slogx"
)

type AccountService struct {
	Store    store.Store
	Signer   jwtx.Signer
	Issuer   string
	TokenTTL time.Duration
}

// Register creates an account with no finance entries.
func (s *AccountService) Register(ctx context.Context, username, password string) error {
	l := slogx.FromContext(ctx)

	if username == "" || password == "" {
		return ErrCredentialsRequired
	}
	if len(password) > 72 {
		return ErrPasswordTooLong
	}

	_, err := s.Store.Users().GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		return ErrUsernameTaken
	case !errors.Is(err, store.ErrNotFound):
		return internal("lookup user", err)
	}

	hash, err := cryptox.HashPassword(password)
	if errors.Is(err, cryptox.ErrPasswordTooLong) {
		return ErrPasswordTooLong
	}
	if err != nil {
		return internal("hash password", err)
	}

	user := domain.User{
		ID:             idx.New(),
		Username:       username,
		PasswordHash:   hash,
		FinanceEntries: []domain.FinanceEntry{},
	}

	// The pre-check above races with concurrent signups; the unique index
	// is what actually decides.
	err = s.Store.Users().CreateUser(ctx, user)
	if errors.Is(err, store.ErrAlreadyExists) {
		return ErrUsernameTaken
	}
	if err != nil {
		return internal("create user", err)
	}

	l.Info("user registered", slog.String("user_id", user.ID))
	return nil
}

// Authenticate checks the credentials and returns a signed access token.
// Unknown usernames and wrong passwords fail with the same error.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (string, error) {
	l := slogx.FromContext(ctx)

	if username == "" || password == "" {
		return "", ErrCredentialsRequired
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		l.Info("login failed", slog.String("reason", "unknown_user"))
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", internal("lookup user", err)
	}

	err = cryptox.VerifyPassword(password, user.PasswordHash)
	if errors.Is(err, cryptox.ErrPasswordMismatch) {
		l.Info("login failed", slog.String("reason", "bad_password"), slog.String("user_id", user.ID))
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", internal("verify password", err)
	}

	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = jwtx.AccessTokenTTL
	}

	token, err := s.Signer.Sign(jwtx.NewAccessClaims(user.ID, user.Username, s.Issuer, ttl, time.Now()))
	if err != nil {
		return "", internal("sign token", err)
	}

	l.Info("user logged in", slog.String("user_id", user.ID))
	return token, nil
}
