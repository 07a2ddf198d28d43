package payout

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/petsuhq/petsu-backend/internal/models"
	"github.com/petsuhq/petsu-backend/internal/workflow"
)

type fakeStore struct {
	events   map[uuid.UUID]*models.Event
	groomers map[uuid.UUID]*models.GroomerProfile
	payouts  map[uuid.UUID]*models.PayoutRequest
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events:   map[uuid.UUID]*models.Event{},
		groomers: map[uuid.UUID]*models.GroomerProfile{},
		payouts:  map[uuid.UUID]*models.PayoutRequest{},
	}
}

func (f *fakeStore) EventByID(_ context.Context, id uuid.UUID) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return event, nil
}

func (f *fakeStore) GroomerByID(_ context.Context, id uuid.UUID) (*models.GroomerProfile, error) {
	groomer, ok := f.groomers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return groomer, nil
}

func (f *fakeStore) CreatePayout(_ context.Context, payout *models.PayoutRequest) error {
	if payout.ID == uuid.Nil {
		payout.ID = uuid.New()
	}
	f.payouts[payout.ID] = payout
	return nil
}

func (f *fakeStore) PayoutByID(_ context.Context, id uuid.UUID) (*models.PayoutRequest, error) {
	payout, ok := f.payouts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *payout
	return &clone, nil
}

func (f *fakeStore) AdvancePayout(_ context.Context, id uuid.UUID, from, to workflow.PayoutStatus, amount *int, processedAt *time.Time) (bool, error) {
	payout, ok := f.payouts[id]
	if !ok || payout.Status != from {
		return false, nil
	}
	payout.Status = to
	if amount != nil {
		payout.Amount = amount
	}
	if processedAt != nil {
		payout.ProcessedAt = processedAt
	}
	return true, nil
}

func newTestService(store *fakeStore) *Service {
	svc := NewService(store)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func seedEndedEvent(store *fakeStore, userID uuid.UUID) *models.Event {
	event := &models.Event{
		ID:     uuid.New(),
		UserID: userID,
		Date:   time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
		Status: workflow.EventApproved,
	}
	store.events[event.ID] = event
	return event
}

func validInput(userID uuid.UUID, eventID *uuid.UUID) CreateInput {
	return CreateInput{
		UserID:        userID,
		EventID:       eventID,
		AccountName:   "Asha Rao",
		AccountNumber: "0012345678",
		IfscCode:      "HDFC0001234",
	}
}

func TestCreatePayout(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newTestService(store)
	userID := uuid.New()
	event := seedEndedEvent(store, userID)

	payout, err := svc.Create(context.Background(), validInput(userID, &event.ID))
	require.NoError(t, err)
	assert.Equal(t, workflow.PayoutPending, payout.Status)
	assert.Nil(t, payout.Amount)
	assert.Nil(t, payout.ProcessedAt)
}

func TestCreatePayoutValidation(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newTestService(store)
	userID := uuid.New()
	event := seedEndedEvent(store, userID)

	_, err := svc.Create(context.Background(), validInput(userID, nil))
	assert.ErrorIs(t, err, ErrSubjectRequired)

	missingAccount := validInput(userID, &event.ID)
	missingAccount.AccountNumber = " "
	_, err = svc.Create(context.Background(), missingAccount)
	assert.ErrorIs(t, err, ErrAccountDetailsRequired)

	_, err = svc.Create(context.Background(), validInput(uuid.New(), &event.ID))
	assert.ErrorIs(t, err, ErrNotOwner)

	upcoming := seedEndedEvent(store, userID)
	upcoming.Date = time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	_, err = svc.Create(context.Background(), validInput(userID, &upcoming.ID))
	assert.ErrorIs(t, err, ErrEventNotFinished)

	unapproved := &models.GroomerProfile{ID: uuid.New(), UserID: userID, ApplicationStatus: workflow.ApplicationPending}
	store.groomers[unapproved.ID] = unapproved
	groomerInput := validInput(userID, nil)
	groomerInput.GroomerID = &unapproved.ID
	_, err = svc.Create(context.Background(), groomerInput)
	assert.ErrorIs(t, err, ErrGroomerNotApproved)
}

func TestPayoutLifecycle(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newTestService(store)
	userID := uuid.New()
	event := seedEndedEvent(store, userID)

	payout, err := svc.Create(context.Background(), validInput(userID, &event.ID))
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), payout.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.PayoutProcessing, approved.Status)

	paid, err := svc.MarkPaid(context.Background(), payout.ID, 12000)
	require.NoError(t, err)
	assert.Equal(t, workflow.PayoutPaymentSent, paid.Status)
	require.NotNil(t, paid.Amount)
	assert.Equal(t, 12000, *paid.Amount)
	assert.NotNil(t, paid.ProcessedAt)
}

func TestMarkPaidUnreachableWithoutProcessing(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newTestService(store)
	userID := uuid.New()
	event := seedEndedEvent(store, userID)

	payout, err := svc.Create(context.Background(), validInput(userID, &event.ID))
	require.NoError(t, err)

	// payment_sent straight from pending must be refused
	_, err = svc.MarkPaid(context.Background(), payout.ID, 12000)
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
	assert.Equal(t, workflow.PayoutPending, store.payouts[payout.ID].Status)
}

func TestRejectFromPendingAndProcessing(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newTestService(store)
	userID := uuid.New()

	first, err := svc.Create(context.Background(), validInput(userID, &seedEndedEvent(store, userID).ID))
	require.NoError(t, err)
	rejected, err := svc.Reject(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.PayoutRejected, rejected.Status)
	assert.NotNil(t, rejected.ProcessedAt)

	second, err := svc.Create(context.Background(), validInput(userID, &seedEndedEvent(store, userID).ID))
	require.NoError(t, err)
	_, err = svc.Approve(context.Background(), second.ID)
	require.NoError(t, err)
	_, err = svc.Reject(context.Background(), second.ID)
	assert.NoError(t, err)

	// rejected is final
	_, err = svc.Approve(context.Background(), second.ID)
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
}

func TestMarkPaidRequiresPositiveAmount(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newTestService(store)

	_, err := svc.MarkPaid(context.Background(), uuid.New(), 0)
	assert.ErrorIs(t, err, ErrAmountRequired)
	_, err = svc.MarkPaid(context.Background(), uuid.New(), -50)
	assert.ErrorIs(t, err, ErrAmountRequired)
}

func TestConcurrentAdminActionConflicts(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newTestService(store)
	userID := uuid.New()
	event := seedEndedEvent(store, userID)

	payout, err := svc.Create(context.Background(), validInput(userID, &event.ID))
	require.NoError(t, err)

	// Another admin rejects between this admin's read and write.
	loaded, err := store.PayoutByID(context.Background(), payout.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.PayoutPending, loaded.Status)
	store.payouts[payout.ID].Status = workflow.PayoutProcessing

	_, err = svc.Reject(context.Background(), payout.ID)
	// The service re-reads, so it sees processing and still succeeds; force
	// the race by flipping the row under a stale advance instead.
	require.NoError(t, err)

	ok, err := store.AdvancePayout(context.Background(), payout.ID, workflow.PayoutPending, workflow.PayoutProcessing, nil, nil)
	require.NoError(t, err)
	assert.False(t, ok, "conditional write must miss once the status moved on")
}
