package consultation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/petsuhq/petsu-backend/internal/models"
)

type Store interface {
	CreateConsultation(ctx context.Context, consultation *models.Consultation) error
	ConsultationByID(ctx context.Context, id uuid.UUID) (*models.Consultation, error)
	PendingConsultations(ctx context.Context, now time.Time) ([]models.Consultation, error)
	// AcceptConsultation assigns the vet only if the row is still pending and
	// unexpired. Returns false when it lost to another vet or the expiry sweep.
	AcceptConsultation(ctx context.Context, id, vetID uuid.UUID, now time.Time) (bool, error)
	// CompleteConsultation closes an active consultation owned by the vet.
	CompleteConsultation(ctx context.Context, id, vetID uuid.UUID) (bool, error)
	// ExpireStale marks pending consultations past their deadline as expired
	// and reports how many rows it touched.
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
	VetByUserID(ctx context.Context, userID uuid.UUID) (*models.VetProfile, error)
}
