package services

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
	"github.com/welldanyogia/inboxzero/internal/models"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 42
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockEmailRepository is a mock implementation of EmailRepository
type MockEmailRepository struct {
	mock.Mock
}

func (m *MockEmailRepository) Create(ctx context.Context, email *models.Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockEmailRepository) CreateBatch(ctx context.Context, emails []models.Email) error {
	args := m.Called(ctx, emails)
	return args.Error(0)
}

func (m *MockEmailRepository) ListByUser(ctx context.Context, userID uint) ([]models.Email, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Email), args.Error(1)
}

func (m *MockEmailRepository) GetByIDForUser(ctx context.Context, id, userID uint) (*models.Email, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Email), args.Error(1)
}

func (m *MockEmailRepository) MarkAsRead(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEmailRepository) Archive(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type notification struct {
	userID uint
	event  string
	email  models.Email
}

// recordingNotifier captures every NotifyEmail call
type recordingNotifier struct {
	mu     sync.Mutex
	events []notification
}

func (r *recordingNotifier) NotifyEmail(userID uint, event string, email *models.Email) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, notification{userID: userID, event: event, email: *email})
}

func (r *recordingNotifier) all() []notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notification(nil), r.events...)
}
