package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	EmailPending = "pending"
	EmailSent    = "sent"
	EmailFailed  = "failed"
)

// EmailNotification is an outbox row. The primary write that enqueues it never
// depends on delivery; the dispatcher worker retries with backoff.
type EmailNotification struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	Recipient     string    `gorm:"not null"`
	Subject       string    `gorm:"not null"`
	Body          string    `gorm:"not null"`
	Status        string    `gorm:"type:varchar(10);not null;default:'pending';index"`
	Attempts      int       `gorm:"not null;default:0"`
	LastError     string
	NextAttemptAt time.Time `gorm:"not null;index"`
	SentAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
