package payout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

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

func (s *gormStore) GroomerByID(ctx context.Context, id uuid.UUID) (*models.GroomerProfile, error) {
	var groomer models.GroomerProfile
	if err := s.db.WithContext(ctx).First(&groomer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &groomer, nil
}

func (s *gormStore) CreatePayout(ctx context.Context, payout *models.PayoutRequest) error {
	return s.db.WithContext(ctx).Create(payout).Error
}

func (s *gormStore) PayoutByID(ctx context.Context, id uuid.UUID) (*models.PayoutRequest, error) {
	var payout models.PayoutRequest
	if err := s.db.WithContext(ctx).First(&payout, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payout, nil
}

func (s *gormStore) AdvancePayout(ctx context.Context, id uuid.UUID, from, to workflow.PayoutStatus, amount *int, processedAt *time.Time) (bool, error) {
	updates := map[string]interface{}{"status": to}
	if amount != nil {
		updates["amount"] = *amount
	}
	if processedAt != nil {
		updates["processed_at"] = *processedAt
	}

	// Conditional write: a concurrent admin action changes the status first
	// and this update matches zero rows instead of silently overwriting.
	result := s.db.WithContext(ctx).Model(&models.PayoutRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
