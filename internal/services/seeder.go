package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	apperrors "github.com/welldanyogia/inboxzero/internal/errors"
	"github.com/welldanyogia/inboxzero/internal/models"
	"github.com/welldanyogia/inboxzero/internal/repository"
	"github.com/welldanyogia/inboxzero/internal/validator"
)

// DefaultSeedCount is the number of emails created when no count is given
const DefaultSeedCount = 15

// Seed flag probabilities
const (
	seedReadProbability     = 0.5
	seedArchivedProbability = 0.3
)

var (
	seedSubjects = []string{
		"Welcome to Inbox Zero",
		"Project Update",
		"Meeting Reminder",
		"Weekly Newsletter",
		"Follow Up",
		"Action Required",
		"Invoice Received",
		"Event Invitation",
		"Team Sync",
		"Daily Digest",
	}
	seedBodies = []string{
		"This is your first test email.",
		"Please review the latest updates.",
		"Don't forget about the team meeting at 3 PM.",
		"Here is your weekly newsletter with updates.",
		"Kindly respond to this email at your earliest convenience.",
		"Your invoice has been received and processed.",
		"You are invited to our upcoming event.",
		"Reminder: submit your report by EOD.",
		"Here are today's important updates.",
		"Don't miss out on these notifications.",
	}
	seedSenders = []string{
		"admin@inboxzero.com",
		"team@inboxzero.com",
		"manager@inboxzero.com",
		"newsletter@inboxzero.com",
		"support@inboxzero.com",
	}
)

// Seeder fills a user's mailbox with sample emails
type Seeder struct {
	users    repository.UserRepository
	emails   repository.EmailRepository
	notifier Notifier
	logger   *slog.Logger
	rng      *rand.Rand
	now      func() time.Time
}

// NewSeeder creates a Seeder. notifier may be nil.
func NewSeeder(users repository.UserRepository, emails repository.EmailRepository, notifier Notifier, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		users:    users,
		emails:   emails,
		notifier: notifier,
		logger:   logger,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}
}

// Seed creates n random emails for userID, one minute apart and ending now.
// A non-positive n uses DefaultSeedCount.
func (s *Seeder) Seed(ctx context.Context, userID uint, n int) ([]models.Email, error) {
	if n <= 0 {
		n = DefaultSeedCount
	}

	now := s.now()
	emails := make([]models.Email, 0, n)
	for i := 0; i < n; i++ {
		emails = append(emails, models.Email{
			Subject:    seedSubjects[s.rng.Intn(len(seedSubjects))],
			Body:       seedBodies[s.rng.Intn(len(seedBodies))],
			Sender:     seedSenders[s.rng.Intn(len(seedSenders))],
			IsRead:     s.rng.Float64() < seedReadProbability,
			IsArchived: s.rng.Float64() < seedArchivedProbability,
			UserID:     userID,
			CreatedAt:  now.Add(-time.Duration(i) * time.Minute),
		})
	}

	if err := s.emails.CreateBatch(ctx, emails); err != nil {
		return nil, fmt.Errorf("failed to seed emails: %w", err)
	}

	if s.notifier != nil {
		for i := range emails {
			s.notifier.NotifyEmail(userID, EventEmailReceived, &emails[i])
		}
	}

	s.logger.Info("seeded emails",
		slog.Uint64("user_id", uint64(userID)),
		slog.Int("count", len(emails)))
	return emails, nil
}

// SeedByEmail resolves the user by address and seeds their mailbox
func (s *Seeder) SeedByEmail(ctx context.Context, email string, n int) ([]models.Email, error) {
	user, err := s.users.GetByEmail(ctx, validator.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return s.Seed(ctx, user.ID, n)
}
