package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petsuhq/petsu-backend/internal/workflow"
)

// PayoutRequest is an organizer's or groomer's request to withdraw earned
// revenue. Amount stays nil until an admin records the paid amount.
type PayoutRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	AccountName   string    `gorm:"not null"`
	AccountNumber string    `gorm:"not null"`
	IfscCode      string    `gorm:"not null"`
	Status        workflow.PayoutStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	Amount        *int
	ProcessedAt   *time.Time

	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	User      User
	EventID   *uuid.UUID `gorm:"type:uuid;index"`
	Event     *Event     `gorm:"foreignKey:EventID"`
	GroomerID *uuid.UUID `gorm:"type:uuid;index"`
	Groomer   *GroomerProfile `gorm:"foreignKey:GroomerID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
