package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petsuhq/petsu-backend/internal/workflow"
)

type VetProfile struct {
	ID                uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	Specialization    string    `gorm:"not null"`
	LicenseNumber     string    `gorm:"not null"`
	Bio               string
	ApplicationStatus workflow.ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	IsOnline          bool                       `gorm:"not null;default:false"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	User   User

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
