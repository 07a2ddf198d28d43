package payout

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/petsuhq/petsu-backend/internal/models"
	"github.com/petsuhq/petsu-backend/internal/workflow"
)

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

type CreateInput struct {
	UserID        uuid.UUID
	EventID       *uuid.UUID
	GroomerID     *uuid.UUID
	AccountName   string
	AccountNumber string
	IfscCode      string
}

// Create opens a payout request for an event that has ended or an approved
// groomer profile. The request starts pending; only admins advance it.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.PayoutRequest, error) {
	if (in.EventID == nil) == (in.GroomerID == nil) {
		return nil, ErrSubjectRequired
	}
	if strings.TrimSpace(in.AccountName) == "" ||
		strings.TrimSpace(in.AccountNumber) == "" ||
		strings.TrimSpace(in.IfscCode) == "" {
		return nil, ErrAccountDetailsRequired
	}

	if in.EventID != nil {
		event, err := s.store.EventByID(ctx, *in.EventID)
		if err != nil {
			return nil, err
		}
		if event.UserID != in.UserID {
			return nil, ErrNotOwner
		}
		if event.Date.After(s.now()) {
			return nil, ErrEventNotFinished
		}
	}

	if in.GroomerID != nil {
		groomer, err := s.store.GroomerByID(ctx, *in.GroomerID)
		if err != nil {
			return nil, err
		}
		if groomer.UserID != in.UserID {
			return nil, ErrNotOwner
		}
		if groomer.ApplicationStatus != workflow.ApplicationApproved {
			return nil, ErrGroomerNotApproved
		}
	}

	payout := &models.PayoutRequest{
		UserID:        in.UserID,
		EventID:       in.EventID,
		GroomerID:     in.GroomerID,
		AccountName:   in.AccountName,
		AccountNumber: in.AccountNumber,
		IfscCode:      in.IfscCode,
		Status:        workflow.PayoutPending,
	}
	if err := s.store.CreatePayout(ctx, payout); err != nil {
		return nil, err
	}
	return payout, nil
}

// Approve moves a pending request into processing.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*models.PayoutRequest, error) {
	return s.advance(ctx, id, workflow.PayoutProcessing, nil, nil)
}

// MarkPaid records the transferred amount and closes the request. Only a
// request in processing can be marked paid.
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID, amount int) (*models.PayoutRequest, error) {
	if amount <= 0 {
		return nil, ErrAmountRequired
	}
	processedAt := s.now()
	return s.advance(ctx, id, workflow.PayoutPaymentSent, &amount, &processedAt)
}

// Reject closes the request without payment. Allowed from pending or
// processing.
func (s *Service) Reject(ctx context.Context, id uuid.UUID) (*models.PayoutRequest, error) {
	processedAt := s.now()
	return s.advance(ctx, id, workflow.PayoutRejected, nil, &processedAt)
}

func (s *Service) advance(ctx context.Context, id uuid.UUID, to workflow.PayoutStatus, amount *int, processedAt *time.Time) (*models.PayoutRequest, error) {
	payout, err := s.store.PayoutByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := payout.Status.TransitionTo(to); err != nil {
		return nil, err
	}

	ok, err := s.store.AdvancePayout(ctx, id, payout.Status, to, amount, processedAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}

	payout.Status = to
	payout.Amount = amount
	payout.ProcessedAt = processedAt
	return payout, nil
}
