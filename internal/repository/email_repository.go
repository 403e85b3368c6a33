package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/welldanyogia/inboxzero/internal/models"
	"gorm.io/gorm"
)

// EmailRepository defines the interface for email data access
type EmailRepository interface {
	Create(ctx context.Context, email *models.Email) error
	CreateBatch(ctx context.Context, emails []models.Email) error
	ListByUser(ctx context.Context, userID uint) ([]models.Email, error)
	GetByIDForUser(ctx context.Context, id, userID uint) (*models.Email, error)
	MarkAsRead(ctx context.Context, id uint) error
	Archive(ctx context.Context, id uint) error
}

// emailRepository implements EmailRepository using GORM
type emailRepository struct {
	db *gorm.DB
}

// NewEmailRepository creates a new EmailRepository instance
func NewEmailRepository(db *gorm.DB) EmailRepository {
	return &emailRepository{db: db}
}

// Create creates a new email
func (r *emailRepository) Create(ctx context.Context, email *models.Email) error {
	result := r.db.WithContext(ctx).Create(email)
	if result.Error != nil {
		return fmt.Errorf("failed to create email: %w", result.Error)
	}
	return nil
}

// CreateBatch inserts several emails in a single transaction
func (r *emailRepository) CreateBatch(ctx context.Context, emails []models.Email) error {
	if len(emails) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&emails).Error; err != nil {
			return fmt.Errorf("failed to create emails: %w", err)
		}
		return nil
	})
}

// ListByUser retrieves every email owned by the user, newest first
func (r *emailRepository) ListByUser(ctx context.Context, userID uint) ([]models.Email, error) {
	emails := make([]models.Email, 0)
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&emails)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list emails: %w", result.Error)
	}
	return emails, nil
}

// GetByIDForUser retrieves an email by ID, scoped to its owner.
// An email owned by another user is reported as ErrNotFound.
func (r *emailRepository) GetByIDForUser(ctx context.Context, id, userID uint) (*models.Email, error) {
	var email models.Email
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get email by ID: %w", result.Error)
	}
	return &email, nil
}

// MarkAsRead marks an email as read
func (r *emailRepository) MarkAsRead(ctx context.Context, id uint) error {
	return r.setFlag(ctx, id, "is_read")
}

// Archive marks an email as archived
func (r *emailRepository) Archive(ctx context.Context, id uint) error {
	return r.setFlag(ctx, id, "is_archived")
}

func (r *emailRepository) setFlag(ctx context.Context, id uint, column string) error {
	result := r.db.WithContext(ctx).Model(&models.Email{}).Where("id = ?", id).Update(column, true)
	if result.Error != nil {
		return fmt.Errorf("failed to set %s: %w", column, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
