package models

import (
	"time"
)

// Email represents a single message in a user's mailbox.
// IsRead and IsArchived are independent; both only ever move from false to true.
type Email struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Subject    string    `gorm:"not null;size:998" json:"subject"`
	Body       string    `gorm:"type:text" json:"body"`
	Sender     string    `gorm:"not null;size:255" json:"sender"`
	IsRead     bool      `gorm:"not null;default:false" json:"isRead"`
	IsArchived bool      `gorm:"not null;default:false" json:"isArchived"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_emails_user_created,priority:2" json:"createdAt"`
	UserID     uint      `gorm:"not null;index:idx_emails_user_created,priority:1" json:"userId"`
}

// TableName returns the table name for Email
func (Email) TableName() string {
	return "emails"
}

// IsProcessed reports whether the email counts toward inbox progress
func (e Email) IsProcessed() bool {
	return e.IsRead || e.IsArchived
}
