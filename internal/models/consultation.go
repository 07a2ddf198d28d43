package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/petsuhq/petsu-backend/internal/workflow"
)

// Consultation is an on-demand matching request between a pet owner and the
// first available vet. Unaccepted requests expire server-side at ExpiresAt.
type Consultation struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	Status    workflow.ConsultationStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	ExpiresAt time.Time                   `gorm:"not null;index"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	User   User
	VetID  *uuid.UUID `gorm:"type:uuid;index"`
	Vet    *VetProfile `gorm:"foreignKey:VetID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ConsultationMessage struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	ConsultationID uuid.UUID `gorm:"type:uuid;not null;index"`
	SenderID       uuid.UUID `gorm:"type:uuid;not null"`
	Body           string    `gorm:"not null"`
	CreatedAt      time.Time
}
