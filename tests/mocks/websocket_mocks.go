package mocks

import (
	"sync"

	"github.com/welldanyogia/inboxzero/internal/models"
)

// NotificationRecord records a notification sent through the mock notifier
type NotificationRecord struct {
	UserID uint
	Event  string
	Email  models.Email
}

// MockNotifier implements services.Notifier and records every event
type MockNotifier struct {
	mu            sync.Mutex
	Notifications []NotificationRecord
}

// NewMockNotifier creates a new MockNotifier instance
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{
		Notifications: make([]NotificationRecord, 0),
	}
}

// NotifyEmail records the event
func (m *MockNotifier) NotifyEmail(userID uint, event string, email *models.Email) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications = append(m.Notifications, NotificationRecord{
		UserID: userID,
		Event:  event,
		Email:  *email,
	})
}

// GetNotifications returns all recorded notifications
func (m *MockNotifier) GetNotifications() []NotificationRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]NotificationRecord, len(m.Notifications))
	copy(out, m.Notifications)
	return out
}

// ClearNotifications clears all recorded notifications
func (m *MockNotifier) ClearNotifications() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications = make([]NotificationRecord, 0)
}
