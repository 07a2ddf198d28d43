package consultation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/petsuhq/petsu-backend/internal/models"
	"github.com/petsuhq/petsu-backend/internal/workflow"
)

// Window is how long a request may wait for a vet before it expires.
// Expiry is enforced server-side by the sweep worker, not by the requester's
// client.
const Window = 120 * time.Second

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Request opens a consultation for the first available vet to pick up.
func (s *Service) Request(ctx context.Context, userID uuid.UUID) (*models.Consultation, error) {
	consultation := &models.Consultation{
		UserID:    userID,
		Status:    workflow.ConsultationPending,
		ExpiresAt: s.now().Add(Window),
	}
	if err := s.store.CreateConsultation(ctx, consultation); err != nil {
		return nil, err
	}
	return consultation, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Consultation, error) {
	return s.store.ConsultationByID(ctx, id)
}

// Pending lists unexpired open requests for the vet-side queue.
func (s *Service) Pending(ctx context.Context) ([]models.Consultation, error) {
	return s.store.PendingConsultations(ctx, s.now())
}

// Accept assigns the calling vet to a pending request. The assignment is a
// conditional write, so only one vet wins and an expired request can never
// become active.
func (s *Service) Accept(ctx context.Context, id, vetUserID uuid.UUID) (*models.Consultation, error) {
	vet, err := s.store.VetByUserID(ctx, vetUserID)
	if err != nil {
		return nil, err
	}
	if vet.ApplicationStatus != workflow.ApplicationApproved {
		return nil, ErrVetNotApproved
	}

	ok, err := s.store.AcceptConsultation(ctx, id, vet.ID, s.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		consultation, err := s.store.ConsultationByID(ctx, id)
		if err != nil {
			return nil, err
		}
		switch {
		case consultation.Status == workflow.ConsultationExpired,
			consultation.Status == workflow.ConsultationPending && !consultation.ExpiresAt.After(s.now()):
			return nil, ErrExpired
		case consultation.Status == workflow.ConsultationActive:
			return nil, ErrAlreadyAssigned
		default:
			return nil, ErrNotAcceptable
		}
	}

	return s.store.ConsultationByID(ctx, id)
}

// Complete closes an active consultation held by the calling vet.
func (s *Service) Complete(ctx context.Context, id, vetUserID uuid.UUID) (*models.Consultation, error) {
	vet, err := s.store.VetByUserID(ctx, vetUserID)
	if err != nil {
		return nil, err
	}

	ok, err := s.store.CompleteConsultation(ctx, id, vet.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotCompletable
	}

	return s.store.ConsultationByID(ctx, id)
}

// ExpireStale sweeps pending requests past their deadline. Called by the
// background worker.
func (s *Service) ExpireStale(ctx context.Context) (int64, error) {
	return s.store.ExpireStale(ctx, s.now())
}
