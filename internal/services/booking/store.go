package booking

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/petsuhq/petsu-backend/internal/models"
	"github.com/petsuhq/petsu-backend/internal/workflow"
)

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) EventByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := s.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *gormStore) ConfirmedTickets(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var booked int64
	err := s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("event_id = ? AND status = ?", eventID, workflow.BookingConfirmed).
		Select("COALESCE(SUM(tickets), 0)").
		Scan(&booked).Error
	return booked, err
}

func (s *gormStore) ReserveEventBooking(ctx context.Context, booking *models.Booking) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the event row so concurrent reservations for the same event
		// serialize on the capacity count.
		var event models.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&event, "id = ?", booking.EventID).Error; err != nil {
			return err
		}

		var booked int64
		if err := tx.Model(&models.Booking{}).
			Where("event_id = ? AND status = ?", booking.EventID, workflow.BookingConfirmed).
			Select("COALESCE(SUM(tickets), 0)").
			Scan(&booked).Error; err != nil {
			return err
		}

		if int(booked)+booking.Tickets > event.Capacity {
			return ErrNotEnoughTickets
		}

		return tx.Create(booking).Error
	})
}

func (s *gormStore) GroomerByID(ctx context.Context, id uuid.UUID) (*models.GroomerProfile, error) {
	var groomer models.GroomerProfile
	if err := s.db.WithContext(ctx).First(&groomer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &groomer, nil
}

func (s *gormStore) PackageByID(ctx context.Context, id uuid.UUID) (*models.GroomingPackage, error) {
	var pkg models.GroomingPackage
	if err := s.db.WithContext(ctx).First(&pkg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (s *gormStore) TimeSlotByID(ctx context.Context, id uuid.UUID) (*models.GroomerTimeSlot, error) {
	var slot models.GroomerTimeSlot
	if err := s.db.WithContext(ctx).First(&slot, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (s *gormStore) CreateGroomingBooking(ctx context.Context, booking *models.GroomingBooking) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		claimed := tx.Model(&models.GroomerTimeSlot{}).
			Where("id = ? AND groomer_id = ? AND is_booked = false", booking.TimeSlotID, booking.GroomerID).
			Update("is_booked", true)
		if claimed.Error != nil {
			return claimed.Error
		}
		if claimed.RowsAffected == 0 {
			return ErrSlotUnavailable
		}

		return tx.Create(booking).Error
	})
}

func (s *gormStore) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) EnqueueEmail(ctx context.Context, email *models.EmailNotification) error {
	return s.db.WithContext(ctx).Create(email).Error
}
