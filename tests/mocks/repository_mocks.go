package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/welldanyogia/inboxzero/internal/models"
)

// MockUserRepository implements repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// GetByID retrieves a user by its ID
func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// GetByEmail retrieves a user by email address
func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockEmailRepository implements repository.EmailRepository
type MockEmailRepository struct {
	mock.Mock
}

// Create creates a new email
func (m *MockEmailRepository) Create(ctx context.Context, email *models.Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// CreateBatch inserts several emails
func (m *MockEmailRepository) CreateBatch(ctx context.Context, emails []models.Email) error {
	args := m.Called(ctx, emails)
	return args.Error(0)
}

// ListByUser retrieves every email owned by the user
func (m *MockEmailRepository) ListByUser(ctx context.Context, userID uint) ([]models.Email, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Email), args.Error(1)
}

// GetByIDForUser retrieves an email scoped to its owner
func (m *MockEmailRepository) GetByIDForUser(ctx context.Context, id, userID uint) (*models.Email, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Email), args.Error(1)
}

// MarkAsRead marks an email as read
func (m *MockEmailRepository) MarkAsRead(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Archive marks an email as archived
func (m *MockEmailRepository) Archive(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
