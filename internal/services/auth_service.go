package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/welldanyogia/inboxzero/internal/auth"
	apperrors "github.com/welldanyogia/inboxzero/internal/errors"
	"github.com/welldanyogia/inboxzero/internal/models"
	"github.com/welldanyogia/inboxzero/internal/repository"
	"github.com/welldanyogia/inboxzero/internal/validator"
)

// AuthResult is returned by a successful signup or login
type AuthResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer signs session tokens
type TokenIssuer interface {
	Generate(userID uint) (string, error)
}

// AuthService defines the interface for account creation and login
type AuthService interface {
	// Signup registers a new account and returns a session for it
	Signup(ctx context.Context, name, email, password string) (*AuthResult, error)

	// Login verifies credentials and returns a new session
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

// authService implements AuthService
type authService struct {
	users  repository.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	logger *slog.Logger
}

// NewAuthService creates a new AuthService instance
func NewAuthService(users repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer, logger *slog.Logger) AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Signup validates the input, stores a bcrypt hash and issues a token
func (s *authService) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = validator.SanitizeString(name, 0)
	if err := validator.ValidateName(name); err != nil {
		if errors.Is(err, validator.ErrInputTooLong) {
			return nil, apperrors.Validation(fmt.Sprintf("name must be at most %d characters", validator.MaxNameLength))
		}
		return nil, apperrors.Validation("name is required")
	}

	email = validator.NormalizeEmail(email)
	if err := validator.ValidateEmail(email); err != nil {
		return nil, apperrors.Validation("a valid email is required")
	}

	if err := validator.ValidatePassword(password); err != nil {
		if errors.Is(err, validator.ErrEmptyInput) {
			return nil, apperrors.Validation("password is required")
		}
		return nil, apperrors.Validation(err.Error())
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperrors.ErrDuplicateEmail
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user signed up", slog.Uint64("user_id", uint64(user.ID)))
	return result, nil
}

// Login returns ErrInvalidCredentials for an unknown email and for a wrong password alike
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = validator.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.Validation("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", slog.Uint64("user_id", uint64(user.ID)))
	return result, nil
}

func (s *authService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResult{
		Token: token,
		User:  user.Public(),
	}, nil
}
