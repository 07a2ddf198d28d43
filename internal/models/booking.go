package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petsuhq/petsu-backend/internal/workflow"
)

// Booking is a ticketed reservation for an event.
type Booking struct {
	gorm.Model
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	Tickets    int       `gorm:"not null"`
	Total      int       `gorm:"not null"`
	Status     workflow.BookingStatus `gorm:"type:varchar(20);not null;default:'confirmed'"`
	PaymentRef string
	IsUsed     bool `gorm:"not null;default:false"`
	EventID    uuid.UUID
	Event      Event
	UserID     uuid.UUID
	User       User
}

func (booking *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	return
}
