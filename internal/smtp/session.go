package smtp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/emersion/go-smtp"
	"github.com/welldanyogia/inboxzero/internal/models"
	"github.com/welldanyogia/inboxzero/internal/repository"
	"github.com/welldanyogia/inboxzero/internal/services"
	"github.com/welldanyogia/inboxzero/internal/validator"
)

// Limits match the emails.subject and emails.sender columns
const (
	maxSubjectLength = 998
	maxSenderLength  = 255
)

var (
	errInvalidRecipient = &smtp.SMTPError{
		Code:         550,
		EnhancedCode: smtp.EnhancedCode{5, 1, 3},
		Message:      "Invalid recipient address",
	}
	errUnknownRecipient = &smtp.SMTPError{
		Code:         550,
		EnhancedCode: smtp.EnhancedCode{5, 1, 1},
		Message:      "Mailbox not found",
	}
	errTemporary = &smtp.SMTPError{
		Code:         451,
		EnhancedCode: smtp.EnhancedCode{4, 3, 0},
		Message:      "Temporary error",
	}
	errNoRecipients = &smtp.SMTPError{
		Code:         503,
		EnhancedCode: smtp.EnhancedCode{5, 5, 1},
		Message:      "No recipients specified",
	}
	errUnparsable = &smtp.SMTPError{
		Code:         550,
		EnhancedCode: smtp.EnhancedCode{5, 6, 0},
		Message:      "Failed to parse email",
	}
)

// Session implements the go-smtp Session interface
type Session struct {
	backend    *Backend
	remoteIP   string
	from       string
	recipients []uint
}

// NewSession creates a new SMTP session
func NewSession(backend *Backend, remoteIP string) *Session {
	return &Session{
		backend:    backend,
		remoteIP:   remoteIP,
		recipients: make([]uint, 0),
	}
}

// Mail handles the MAIL FROM command
func (s *Session) Mail(from string, opts *smtp.MailOptions) error {
	s.from = from
	s.backend.logger.Debug("MAIL FROM", slog.String("from", from))
	return nil
}

// Rcpt handles the RCPT TO command. Only registered users' addresses are accepted.
func (s *Session) Rcpt(to string, opts *smtp.RcptOptions) error {
	address := validator.NormalizeEmail(strings.Trim(strings.TrimSpace(to), "<>"))
	if err := validator.ValidateEmail(address); err != nil {
		return errInvalidRecipient
	}

	user, err := s.backend.users.GetByEmail(context.Background(), address)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			if s.backend.security != nil {
				s.backend.security.RecipientRejected(s.remoteIP, address)
			}
			return errUnknownRecipient
		}
		s.backend.logger.Error("failed to look up recipient", slog.Any("error", err))
		return errTemporary
	}

	for _, id := range s.recipients {
		if id == user.ID {
			return nil
		}
	}
	s.recipients = append(s.recipients, user.ID)
	s.backend.logger.Debug("RCPT TO", slog.Uint64("user_id", uint64(user.ID)))
	return nil
}

// Data handles the DATA command and stores one Email per accepted recipient
func (s *Session) Data(r io.Reader) error {
	if len(s.recipients) == 0 {
		return errNoRecipients
	}

	parsed, err := ParseEmail(r)
	if err != nil {
		s.backend.logger.Error("failed to parse email", slog.Any("error", err))
		return errUnparsable
	}

	// Fall back to the envelope sender when the header has none
	if parsed.SenderEmail == "" {
		parsed.SenderEmail = s.from
	}

	ctx := context.Background()
	stored := 0
	for _, userID := range s.recipients {
		if err := s.deliver(ctx, userID, parsed); err != nil {
			s.backend.logger.Error("failed to store email",
				slog.Uint64("user_id", uint64(userID)),
				slog.Any("error", err))
			continue
		}
		stored++
	}

	if stored == 0 {
		return errTemporary
	}

	s.backend.logger.Info("email received",
		slog.Int("recipients", stored),
		slog.String("remote_ip", s.remoteIP))
	return nil
}

func (s *Session) deliver(ctx context.Context, userID uint, parsed *ParsedEmail) error {
	email := &models.Email{
		Subject: truncateRunes(parsed.Subject, maxSubjectLength),
		Body:    parsed.Body,
		Sender:  truncateRunes(parsed.SenderEmail, maxSenderLength),
		UserID:  userID,
	}
	if err := s.backend.emails.Create(ctx, email); err != nil {
		return fmt.Errorf("failed to create email: %w", err)
	}

	if s.backend.notifier != nil {
		s.backend.notifier.NotifyEmail(userID, services.EventEmailReceived, email)
	}
	return nil
}

// Reset resets the session state
func (s *Session) Reset() {
	s.from = ""
	s.recipients = make([]uint, 0)
}

// Logout handles the end of the session
func (s *Session) Logout() error {
	return nil
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
