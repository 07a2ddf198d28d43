package models

import (
	"time"

	"github.com/google/uuid"
)

type GroomerTimeSlot struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	GroomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	StartsAt  time.Time `gorm:"not null"`
	EndsAt    time.Time `gorm:"not null"`
	IsBooked  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
