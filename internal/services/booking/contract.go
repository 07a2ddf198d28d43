package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/petsuhq/petsu-backend/internal/models"
)

type Store interface {
	EventByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	// ConfirmedTickets sums tickets across confirmed bookings for an event.
	ConfirmedTickets(ctx context.Context, eventID uuid.UUID) (int64, error)
	// ReserveEventBooking checks remaining capacity and inserts the booking
	// in one atomic step. Returns ErrNotEnoughTickets when capacity is short.
	ReserveEventBooking(ctx context.Context, booking *models.Booking) error

	GroomerByID(ctx context.Context, id uuid.UUID) (*models.GroomerProfile, error)
	PackageByID(ctx context.Context, id uuid.UUID) (*models.GroomingPackage, error)
	TimeSlotByID(ctx context.Context, id uuid.UUID) (*models.GroomerTimeSlot, error)
	// CreateGroomingBooking claims the time slot and inserts the booking in one
	// atomic step. Returns ErrSlotUnavailable when the slot is already taken.
	CreateGroomingBooking(ctx context.Context, booking *models.GroomingBooking) error

	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	EnqueueEmail(ctx context.Context, email *models.EmailNotification) error
}
