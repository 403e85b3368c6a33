package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apperrors "github.com/welldanyogia/inboxzero/internal/errors"
	"github.com/welldanyogia/inboxzero/internal/inbox"
	"github.com/welldanyogia/inboxzero/internal/models"
	"github.com/welldanyogia/inboxzero/internal/repository"
)

// Live update event types
const (
	EventEmailUpdated  = "email_updated"
	EventEmailReceived = "email_received"
)

// Notifier pushes email events to a user's live connections
type Notifier interface {
	NotifyEmail(userID uint, event string, email *models.Email)
}

// EmailService defines the interface for a user's mailbox operations.
// Every operation is scoped to userID; other users' emails behave as missing.
type EmailService interface {
	ListEmails(ctx context.Context, userID uint) ([]models.Email, error)
	MarkRead(ctx context.Context, userID, emailID uint) (*models.Email, error)
	Archive(ctx context.Context, userID, emailID uint) (*models.Email, error)
	Progress(ctx context.Context, userID uint) (*inbox.Progress, error)
}

// emailService implements EmailService
type emailService struct {
	repo     repository.EmailRepository
	notifier Notifier
	logger   *slog.Logger
}

// NewEmailService creates a new EmailService instance. notifier may be nil.
func NewEmailService(repo repository.EmailRepository, notifier Notifier, logger *slog.Logger) EmailService {
	if logger == nil {
		logger = slog.Default()
	}
	return &emailService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// ListEmails returns all of the user's emails, newest first
func (s *emailService) ListEmails(ctx context.Context, userID uint) ([]models.Email, error) {
	emails, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if emails == nil {
		emails = []models.Email{}
	}
	return emails, nil
}

// MarkRead sets isRead. Marking an already-read email succeeds without writing.
func (s *emailService) MarkRead(ctx context.Context, userID, emailID uint) (*models.Email, error) {
	return s.transition(ctx, userID, emailID, "mark read",
		func(e *models.Email) bool { return e.IsRead },
		func(e *models.Email) { e.IsRead = true },
		s.repo.MarkAsRead,
	)
}

// Archive sets isArchived. Archiving an already-archived email succeeds without writing.
func (s *emailService) Archive(ctx context.Context, userID, emailID uint) (*models.Email, error) {
	return s.transition(ctx, userID, emailID, "archive",
		func(e *models.Email) bool { return e.IsArchived },
		func(e *models.Email) { e.IsArchived = true },
		s.repo.Archive,
	)
}

func (s *emailService) transition(
	ctx context.Context,
	userID, emailID uint,
	action string,
	done func(*models.Email) bool,
	apply func(*models.Email),
	write func(context.Context, uint) error,
) (*models.Email, error) {
	email, err := s.repo.GetByIDForUser(ctx, emailID, userID)
	if err != nil {
		return nil, s.mapNotFound(err, action)
	}
	if done(email) {
		return email, nil
	}

	if err := write(ctx, email.ID); err != nil {
		return nil, s.mapNotFound(err, action)
	}
	apply(email)

	s.logger.Debug("email updated",
		slog.String("action", action),
		slog.Uint64("user_id", uint64(userID)),
		slog.Uint64("email_id", uint64(emailID)))

	if s.notifier != nil {
		s.notifier.NotifyEmail(userID, EventEmailUpdated, email)
	}
	return email, nil
}

func (s *emailService) mapNotFound(err error, action string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.ErrEmailNotFound
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// Progress derives Inbox Zero progress from the user's full email list
func (s *emailService) Progress(ctx context.Context, userID uint) (*inbox.Progress, error) {
	emails, err := s.ListEmails(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := inbox.ComputeProgress(emails)
	return &p, nil
}
