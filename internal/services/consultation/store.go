package consultation

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

func (s *gormStore) CreateConsultation(ctx context.Context, consultation *models.Consultation) error {
	return s.db.WithContext(ctx).Create(consultation).Error
}

func (s *gormStore) ConsultationByID(ctx context.Context, id uuid.UUID) (*models.Consultation, error) {
	var consultation models.Consultation
	if err := s.db.WithContext(ctx).Preload("Vet").First(&consultation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &consultation, nil
}

func (s *gormStore) PendingConsultations(ctx context.Context, now time.Time) ([]models.Consultation, error) {
	var consultations []models.Consultation
	err := s.db.WithContext(ctx).
		Where("status = ? AND expires_at > ?", workflow.ConsultationPending, now).
		Order("created_at ASC").
		Find(&consultations).Error
	return consultations, err
}

func (s *gormStore) AcceptConsultation(ctx context.Context, id, vetID uuid.UUID, now time.Time) (bool, error) {
	result := s.db.WithContext(ctx).Model(&models.Consultation{}).
		Where("id = ? AND status = ? AND expires_at > ?", id, workflow.ConsultationPending, now).
		Updates(map[string]interface{}{
			"status": workflow.ConsultationActive,
			"vet_id": vetID,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *gormStore) CompleteConsultation(ctx context.Context, id, vetID uuid.UUID) (bool, error) {
	result := s.db.WithContext(ctx).Model(&models.Consultation{}).
		Where("id = ? AND status = ? AND vet_id = ?", id, workflow.ConsultationActive, vetID).
		Update("status", workflow.ConsultationCompleted)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *gormStore) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.Consultation{}).
		Where("status = ? AND expires_at <= ?", workflow.ConsultationPending, now).
		Update("status", workflow.ConsultationExpired)
	return result.RowsAffected, result.Error
}

func (s *gormStore) VetByUserID(ctx context.Context, userID uuid.UUID) (*models.VetProfile, error) {
	var vet models.VetProfile
	if err := s.db.WithContext(ctx).First(&vet, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &vet, nil
}
