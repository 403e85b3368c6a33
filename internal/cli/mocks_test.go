package cli

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/welldanyogia/inboxzero/internal/client"
	"github.com/welldanyogia/inboxzero/internal/inbox"
	"github.com/welldanyogia/inboxzero/internal/models"
)

// mockBackend is a testify mock of Backend that tracks the session itself
type mockBackend struct {
	mock.Mock
	session *client.Session
}

func (m *mockBackend) Session() *client.Session {
	return m.session
}

func (m *mockBackend) LoggedIn() bool {
	return m.session != nil
}

func (m *mockBackend) Signup(ctx context.Context, name, email, password string) (*client.Session, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	m.session = args.Get(0).(*client.Session)
	return m.session, args.Error(1)
}

func (m *mockBackend) Login(ctx context.Context, email, password string) (*client.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	m.session = args.Get(0).(*client.Session)
	return m.session, args.Error(1)
}

func (m *mockBackend) Logout() error {
	args := m.Called()
	m.session = nil
	return args.Error(0)
}

func (m *mockBackend) ListEmails(ctx context.Context) ([]models.Email, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Email), args.Error(1)
}

func (m *mockBackend) MarkRead(ctx context.Context, id uint) (*models.Email, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Email), args.Error(1)
}

func (m *mockBackend) Archive(ctx context.Context, id uint) (*models.Email, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Email), args.Error(1)
}

func (m *mockBackend) Progress(ctx context.Context) (*inbox.Progress, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbox.Progress), args.Error(1)
}
