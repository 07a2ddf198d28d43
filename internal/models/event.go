package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petsuhq/petsu-backend/internal/workflow"
)

type Event struct {
	gorm.Model
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	Date        time.Time `gorm:"not null"`
	Location    string    `gorm:"not null"`
	City        string    `gorm:"not null"`
	Pincode     string    `gorm:"not null"`
	Capacity    int       `gorm:"not null"`
	Price       int       `gorm:"not null"`
	PetTypes    string
	Requirement string
	BannerPath  string
	Views       int64                `gorm:"not null;default:0"`
	Status      workflow.EventStatus `gorm:"type:varchar(20);not null;default:'pending'"`

	OrganizerName    string `gorm:"not null"`
	OrganizerContact string `gorm:"not null"`

	UserID   uuid.UUID
	User     User
	Bookings []Booking
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}
