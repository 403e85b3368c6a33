package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/welldanyogia/inboxzero/internal/inbox"
	"github.com/welldanyogia/inboxzero/internal/models"
	"github.com/welldanyogia/inboxzero/internal/services"
)

// MockAuthService implements services.AuthService
type MockAuthService struct {
	mock.Mock
}

// Signup registers a new account
func (m *MockAuthService) Signup(ctx context.Context, name, email, password string) (*services.AuthResult, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AuthResult), args.Error(1)
}

// Login verifies credentials
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*services.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AuthResult), args.Error(1)
}

// MockEmailService implements services.EmailService
type MockEmailService struct {
	mock.Mock
}

// ListEmails returns the user's emails
func (m *MockEmailService) ListEmails(ctx context.Context, userID uint) ([]models.Email, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Email), args.Error(1)
}

// MarkRead marks an email as read
func (m *MockEmailService) MarkRead(ctx context.Context, userID, emailID uint) (*models.Email, error) {
	args := m.Called(ctx, userID, emailID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Email), args.Error(1)
}

// Archive archives an email
func (m *MockEmailService) Archive(ctx context.Context, userID, emailID uint) (*models.Email, error) {
	args := m.Called(ctx, userID, emailID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Email), args.Error(1)
}

// Progress returns the user's Inbox Zero progress
func (m *MockEmailService) Progress(ctx context.Context, userID uint) (*inbox.Progress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbox.Progress), args.Error(1)
}
