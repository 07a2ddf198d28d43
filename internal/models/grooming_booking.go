package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petsuhq/petsu-backend/internal/workflow"
)

type GroomingBooking struct {
	gorm.Model
	ID          uuid.UUID  `gorm:"type:uuid;primary_key"`
	ServiceType string     `gorm:"type:varchar(10);not null"`
	PetName     string     `gorm:"not null"`
	PetDetails  string     `gorm:"not null"`
	HomeAddress string
	Total       int `gorm:"not null"`
	Status      workflow.BookingStatus `gorm:"type:varchar(20);not null;default:'confirmed'"`
	PaymentRef  string

	TimeSlotID uuid.UUID `gorm:"type:uuid;not null"`
	TimeSlot   GroomerTimeSlot
	PackageID  *uuid.UUID `gorm:"type:uuid"`
	Package    *GroomingPackage `gorm:"foreignKey:PackageID"`
	GroomerID  uuid.UUID
	Groomer    GroomerProfile `gorm:"foreignKey:GroomerID"`
	UserID     uuid.UUID
	User       User

	AppointmentAt time.Time `gorm:"not null"`
}

func (booking *GroomingBooking) BeforeCreate(tx *gorm.DB) (err error) {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	return
}
