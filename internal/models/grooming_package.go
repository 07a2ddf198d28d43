package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroomingPackage is a named offering whose price fully replaces the
// groomer's base price when selected.
type GroomingPackage struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	Name        string    `gorm:"not null"`
	Description string
	Price       int       `gorm:"not null"`
	GroomerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
