package payout

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/petsuhq/petsu-backend/internal/models"
	"github.com/petsuhq/petsu-backend/internal/workflow"
)

type Store interface {
	EventByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	GroomerByID(ctx context.Context, id uuid.UUID) (*models.GroomerProfile, error)
	CreatePayout(ctx context.Context, payout *models.PayoutRequest) error
	PayoutByID(ctx context.Context, id uuid.UUID) (*models.PayoutRequest, error)
	// AdvancePayout applies the status change only if the row is still in the
	// from status. Returns false when another actor got there first.
	AdvancePayout(ctx context.Context, id uuid.UUID, from, to workflow.PayoutStatus, amount *int, processedAt *time.Time) (bool, error)
}
