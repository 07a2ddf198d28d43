package booking

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/petsuhq/petsu-backend/internal/models"
	"github.com/petsuhq/petsu-backend/internal/pricing"
	"github.com/petsuhq/petsu-backend/internal/workflow"
)

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

type BookEventInput struct {
	EventID uuid.UUID
	UserID  uuid.UUID
	Tickets int
}

// BookEvent reserves tickets for an approved, upcoming event. The capacity
// check and booking insert happen atomically in the store, so two bookings
// racing for the last seat cannot both succeed.
func (s *Service) BookEvent(ctx context.Context, in BookEventInput) (*models.Booking, error) {
	if in.Tickets < 1 {
		return nil, ErrTicketCountInvalid
	}

	event, err := s.store.EventByID(ctx, in.EventID)
	if err != nil {
		return nil, err
	}
	if event.Status != workflow.EventApproved || event.Date.Before(s.now()) {
		return nil, ErrEventNotBookable
	}

	booking := &models.Booking{
		EventID: event.ID,
		UserID:  in.UserID,
		Tickets: in.Tickets,
		Total:   event.Price * in.Tickets,
		Status:  workflow.BookingConfirmed,
	}
	if err := s.store.ReserveEventBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.enqueueConfirmation(ctx, in.UserID,
		fmt.Sprintf("Booking confirmed: %s", event.Title),
		fmt.Sprintf("Your booking of %d ticket(s) for %s on %s is confirmed.",
			in.Tickets, event.Title, event.Date.Format("02 Jan 2006")),
	)

	return booking, nil
}

// RemainingTickets reports how many seats are still open for an event. A
// failed count surfaces as an error rather than an optimistic full-capacity
// answer.
func (s *Service) RemainingTickets(ctx context.Context, event *models.Event) (int, error) {
	booked, err := s.store.ConfirmedTickets(ctx, event.ID)
	if err != nil {
		return 0, err
	}
	remaining := event.Capacity - int(booked)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

type QuoteInput struct {
	GroomerID   uuid.UUID
	PackageID   *uuid.UUID
	ServiceType pricing.ServiceType
}

// Quote computes the total price for a grooming appointment. A selected
// package replaces the groomer's base price; the home surcharge applies only
// to home visits.
func (s *Service) Quote(ctx context.Context, in QuoteInput) (int, error) {
	if !in.ServiceType.IsValid() {
		return 0, ErrInvalidServiceType
	}

	groomer, err := s.store.GroomerByID(ctx, in.GroomerID)
	if err != nil {
		return 0, err
	}
	if groomer.ApplicationStatus != workflow.ApplicationApproved || !groomer.IsAvailable {
		return 0, ErrGroomerUnavailable
	}
	if in.ServiceType == pricing.ServiceHome && !groomer.ProvidesHomeService {
		return 0, ErrHomeServiceUnavailable
	}

	base := groomer.Price
	if in.PackageID != nil {
		pkg, err := s.store.PackageByID(ctx, *in.PackageID)
		if err != nil {
			return 0, err
		}
		if pkg.GroomerID != groomer.ID {
			return 0, ErrPackageMismatch
		}
		base = pkg.Price
	}

	return pricing.Total(base, in.ServiceType, groomer.HomeServiceCost), nil
}

type BookGroomingInput struct {
	GroomerID   uuid.UUID
	UserID      uuid.UUID
	TimeSlotID  uuid.UUID
	PackageID   *uuid.UUID
	ServiceType pricing.ServiceType
	PetName     string
	PetDetails  string
	HomeAddress string
}

// BookGrooming validates the request, prices it and persists the booking.
// Every validation runs before any write, so a rejected request leaves no
// partial booking behind.
func (s *Service) BookGrooming(ctx context.Context, in BookGroomingInput) (*models.GroomingBooking, error) {
	if !in.ServiceType.IsValid() {
		return nil, ErrInvalidServiceType
	}
	if strings.TrimSpace(in.PetName) == "" || strings.TrimSpace(in.PetDetails) == "" {
		return nil, ErrPetDetailsRequired
	}
	if in.ServiceType == pricing.ServiceHome && strings.TrimSpace(in.HomeAddress) == "" {
		return nil, ErrAddressRequired
	}
	if in.TimeSlotID == uuid.Nil {
		return nil, ErrSlotRequired
	}

	total, err := s.Quote(ctx, QuoteInput{
		GroomerID:   in.GroomerID,
		PackageID:   in.PackageID,
		ServiceType: in.ServiceType,
	})
	if err != nil {
		return nil, err
	}

	slot, err := s.store.TimeSlotByID(ctx, in.TimeSlotID)
	if err != nil {
		return nil, err
	}
	if slot.GroomerID != in.GroomerID {
		return nil, ErrSlotMismatch
	}
	if slot.IsBooked || slot.StartsAt.Before(s.now()) {
		return nil, ErrSlotUnavailable
	}

	booking := &models.GroomingBooking{
		GroomerID:     in.GroomerID,
		UserID:        in.UserID,
		TimeSlotID:    slot.ID,
		PackageID:     in.PackageID,
		ServiceType:   string(in.ServiceType),
		PetName:       in.PetName,
		PetDetails:    in.PetDetails,
		HomeAddress:   in.HomeAddress,
		Total:         total,
		Status:        workflow.BookingConfirmed,
		AppointmentAt: slot.StartsAt,
	}
	if err := s.store.CreateGroomingBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.enqueueConfirmation(ctx, in.UserID,
		"Grooming appointment confirmed",
		fmt.Sprintf("Your %s grooming appointment on %s is confirmed. Amount: %d.",
			in.ServiceType, slot.StartsAt.Format("02 Jan 2006 15:04"), total),
	)

	return booking, nil
}

// enqueueConfirmation writes an outbox row. Failures are logged and swallowed;
// the booking stands regardless of notification delivery.
func (s *Service) enqueueConfirmation(ctx context.Context, userID uuid.UUID, subject, body string) {
	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		log.Printf("booking: failed to load user %s for confirmation email: %v", userID, err)
		return
	}

	email := &models.EmailNotification{
		Recipient:     user.Email,
		Subject:       subject,
		Body:          body,
		Status:        models.EmailPending,
		NextAttemptAt: s.now(),
	}
	if err := s.store.EnqueueEmail(ctx, email); err != nil {
		log.Printf("booking: failed to enqueue confirmation email for %s: %v", user.Email, err)
	}
}
