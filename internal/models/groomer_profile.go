package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petsuhq/petsu-backend/internal/workflow"
)

type GroomerProfile struct {
	ID                  uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	SalonName           string    `gorm:"not null"`
	Bio                 string
	City                string `gorm:"not null"`
	Price               int    `gorm:"not null"`
	ProvidesHomeService bool   `gorm:"not null;default:false"`
	HomeServiceCost     int    `gorm:"not null;default:0"`
	ApplicationStatus   workflow.ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	IsAvailable         bool                       `gorm:"not null;default:true"`

	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	User      User
	Packages  []GroomingPackage `gorm:"foreignKey:GroomerID"`
	TimeSlots []GroomerTimeSlot `gorm:"foreignKey:GroomerID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
