package fixtures

import (
	"time"

	"github.com/welldanyogia/inboxzero/internal/models"
)

// EmailBuilder creates test Email instances with fluent API
type EmailBuilder struct {
	email models.Email
}

// NewEmailBuilder creates a new EmailBuilder with sensible defaults
func NewEmailBuilder() *EmailBuilder {
	return &EmailBuilder{
		email: models.Email{
			ID:        1,
			Subject:   "Project Update",
			Body:      "Please review the latest updates.",
			Sender:    "team@inboxzero.com",
			UserID:    1,
			CreatedAt: time.Now(),
		},
	}
}

// WithID sets the email ID
func (b *EmailBuilder) WithID(id uint) *EmailBuilder {
	b.email.ID = id
	return b
}

// WithUserID sets the owner
func (b *EmailBuilder) WithUserID(userID uint) *EmailBuilder {
	b.email.UserID = userID
	return b
}

// WithSubject sets the subject
func (b *EmailBuilder) WithSubject(subject string) *EmailBuilder {
	b.email.Subject = subject
	return b
}

// WithSender sets the sender address
func (b *EmailBuilder) WithSender(sender string) *EmailBuilder {
	b.email.Sender = sender
	return b
}

// WithRead sets the read flag
func (b *EmailBuilder) WithRead(read bool) *EmailBuilder {
	b.email.IsRead = read
	return b
}

// WithArchived sets the archived flag
func (b *EmailBuilder) WithArchived(archived bool) *EmailBuilder {
	b.email.IsArchived = archived
	return b
}

// WithCreatedAt sets the created timestamp
func (b *EmailBuilder) WithCreatedAt(t time.Time) *EmailBuilder {
	b.email.CreatedAt = t
	return b
}

// Build returns the constructed Email
func (b *EmailBuilder) Build() *models.Email {
	e := b.email
	return &e
}

// BuildValue returns the constructed Email as a value (not pointer)
func (b *EmailBuilder) BuildValue() models.Email {
	return b.email
}

// Mailbox returns n emails for userID with IDs 1..n, newest first, all unread and in the inbox
func Mailbox(userID uint, n int) []models.Email {
	now := time.Now()
	emails := make([]models.Email, 0, n)
	for i := 0; i < n; i++ {
		emails = append(emails, NewEmailBuilder().
			WithID(uint(n-i)).
			WithUserID(userID).
			WithCreatedAt(now.Add(-time.Duration(i)*time.Minute)).
			BuildValue())
	}
	return emails
}
