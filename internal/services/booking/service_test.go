package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/petsuhq/petsu-backend/internal/models"
	"github.com/petsuhq/petsu-backend/internal/pricing"
	"github.com/petsuhq/petsu-backend/internal/workflow"
)

// fakeStore reproduces the store's sequential contract in memory: the
// capacity check plus insert is one step, as is the slot claim plus insert.
type fakeStore struct {
	events           map[uuid.UUID]*models.Event
	groomers         map[uuid.UUID]*models.GroomerProfile
	packages         map[uuid.UUID]*models.GroomingPackage
	slots            map[uuid.UUID]*models.GroomerTimeSlot
	users            map[uuid.UUID]*models.User
	bookings         []*models.Booking
	groomingBookings []*models.GroomingBooking
	emails           []*models.EmailNotification

	countErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events:   map[uuid.UUID]*models.Event{},
		groomers: map[uuid.UUID]*models.GroomerProfile{},
		packages: map[uuid.UUID]*models.GroomingPackage{},
		slots:    map[uuid.UUID]*models.GroomerTimeSlot{},
		users:    map[uuid.UUID]*models.User{},
	}
}

func (f *fakeStore) EventByID(_ context.Context, id uuid.UUID) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return event, nil
}

func (f *fakeStore) ConfirmedTickets(_ context.Context, eventID uuid.UUID) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	var booked int64
	for _, b := range f.bookings {
		if b.EventID == eventID && b.Status == workflow.BookingConfirmed {
			booked += int64(b.Tickets)
		}
	}
	return booked, nil
}

func (f *fakeStore) ReserveEventBooking(_ context.Context, booking *models.Booking) error {
	event, ok := f.events[booking.EventID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	booked := 0
	for _, b := range f.bookings {
		if b.EventID == booking.EventID && b.Status == workflow.BookingConfirmed {
			booked += b.Tickets
		}
	}
	if booked+booking.Tickets > event.Capacity {
		return ErrNotEnoughTickets
	}
	f.bookings = append(f.bookings, booking)
	return nil
}

func (f *fakeStore) GroomerByID(_ context.Context, id uuid.UUID) (*models.GroomerProfile, error) {
	groomer, ok := f.groomers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return groomer, nil
}

func (f *fakeStore) PackageByID(_ context.Context, id uuid.UUID) (*models.GroomingPackage, error) {
	pkg, ok := f.packages[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return pkg, nil
}

func (f *fakeStore) TimeSlotByID(_ context.Context, id uuid.UUID) (*models.GroomerTimeSlot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return slot, nil
}

func (f *fakeStore) CreateGroomingBooking(_ context.Context, booking *models.GroomingBooking) error {
	slot, ok := f.slots[booking.TimeSlotID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if slot.IsBooked || slot.GroomerID != booking.GroomerID {
		return ErrSlotUnavailable
	}
	slot.IsBooked = true
	f.groomingBookings = append(f.groomingBookings, booking)
	return nil
}

func (f *fakeStore) UserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeStore) EnqueueEmail(_ context.Context, email *models.EmailNotification) error {
	f.emails = append(f.emails, email)
	return nil
}

func newTestService(store *fakeStore) *Service {
	svc := NewService(store)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func seedUser(store *fakeStore) uuid.UUID {
	id := uuid.New()
	store.users[id] = &models.User{ID: id, Email: "owner@example.com"}
	return id
}

func seedEvent(store *fakeStore, capacity int) *models.Event {
	event := &models.Event{
		ID:       uuid.New(),
		Title:    "Pet Carnival",
		Date:     time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC),
		Capacity: capacity,
		Price:    200,
		Status:   workflow.EventApproved,
	}
	store.events[event.ID] = event
	return event
}

func seedGroomer(store *fakeStore) *models.GroomerProfile {
	groomer := &models.GroomerProfile{
		ID:                  uuid.New(),
		Price:               500,
		ProvidesHomeService: true,
		HomeServiceCost:     150,
		ApplicationStatus:   workflow.ApplicationApproved,
		IsAvailable:         true,
	}
	store.groomers[groomer.ID] = groomer
	return groomer
}

func seedSlot(store *fakeStore, groomerID uuid.UUID) *models.GroomerTimeSlot {
	slot := &models.GroomerTimeSlot{
		ID:        uuid.New(),
		GroomerID: groomerID,
		StartsAt:  time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		EndsAt:    time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
	}
	store.slots[slot.ID] = slot
	return slot
}

func TestBookEventCapacityExhausted(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newTestService(store)
	userID := seedUser(store)
	event := seedEvent(store, 1)

	first, err := svc.BookEvent(context.Background(), BookEventInput{
		EventID: event.ID, UserID: userID, Tickets: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, workflow.BookingConfirmed, first.Status)
	assert.Equal(t, 200, first.Total)

	_, err = svc.BookEvent(context.Background(), BookEventInput{
		EventID: event.ID, UserID: userID, Tickets: 1,
	})
	assert.ErrorIs(t, err, ErrNotEnoughTickets)
	assert.Len(t, store.bookings, 1)
}

func TestBookEventRejectsWhenFull(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newTestService(store)
	userID := seedUser(store)
	event := seedEvent(store, 3)

	_, err := svc.BookEvent(context.Background(), BookEventInput{
		EventID: event.ID, UserID: userID, Tickets: 3,
	})
	require.NoError(t, err)

	// capacity reached, one more ticket must be refused
	_, err = svc.BookEvent(context.Background(), BookEventInput{
		EventID: event.ID, UserID: userID, Tickets: 1,
	})
	assert.ErrorIs(t, err, ErrNotEnoughTickets)
}

func TestBookEventCancelledSeatsFreeCapacity(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newTestService(store)
	userID := seedUser(store)
	event := seedEvent(store, 1)

	first, err := svc.BookEvent(context.Background(), BookEventInput{
		EventID: event.ID, UserID: userID, Tickets: 1,
	})
	require.NoError(t, err)

	first.Status = workflow.BookingCancelled

	_, err = svc.BookEvent(context.Background(), BookEventInput{
		EventID: event.ID, UserID: userID, Tickets: 1,
	})
	assert.NoError(t, err)
}

func TestBookEventValidation(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newTestService(store)
	userID := seedUser(store)
	event := seedEvent(store, 10)

	_, err := svc.BookEvent(context.Background(), BookEventInput{
		EventID: event.ID, UserID: userID, Tickets: 0,
	})
	assert.ErrorIs(t, err, ErrTicketCountInvalid)

	pending := seedEvent(store, 10)
	pending.Status = workflow.EventPending
	_, err = svc.BookEvent(context.Background(), BookEventInput{
		EventID: pending.ID, UserID: userID, Tickets: 1,
	})
	assert.ErrorIs(t, err, ErrEventNotBookable)

	past := seedEvent(store, 10)
	past.Date = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.BookEvent(context.Background(), BookEventInput{
		EventID: past.ID, UserID: userID, Tickets: 1,
	})
	assert.ErrorIs(t, err, ErrEventNotBookable)

	assert.Empty(t, store.bookings)
}

func TestBookEventEnqueuesConfirmationEmail(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newTestService(store)
	userID := seedUser(store)
	event := seedEvent(store, 5)

	_, err := svc.BookEvent(context.Background(), BookEventInput{
		EventID: event.ID, UserID: userID, Tickets: 2,
	})
	require.NoError(t, err)

	require.Len(t, store.emails, 1)
	assert.Equal(t, "owner@example.com", store.emails[0].Recipient)
	assert.Equal(t, models.EmailPending, store.emails[0].Status)
}

func TestRemainingTickets(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newTestService(store)
	userID := seedUser(store)
	event := seedEvent(store, 5)

	_, err := svc.BookEvent(context.Background(), BookEventInput{
		EventID: event.ID, UserID: userID, Tickets: 2,
	})
	require.NoError(t, err)

	remaining, err := svc.RemainingTickets(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)
}

func TestRemainingTicketsPropagatesCountError(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newTestService(store)
	event := seedEvent(store, 5)

	store.countErr = errors.New("connection reset")

	// a failed count must not be mistaken for an empty event
	_, err := svc.RemainingTickets(context.Background(), event)
	assert.Error(t, err)
}

func TestQuote(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newTestService(store)
	groomer := seedGroomer(store)
	pkg := &models.GroomingPackage{ID: uuid.New(), GroomerID: groomer.ID, Price: 800}
	store.packages[pkg.ID] = pkg

	testCases := []struct {
		name        string
		packageID   *uuid.UUID
		serviceType pricing.ServiceType
		want        int
	}{
		{"salon base price", nil, pricing.ServiceSalon, 500},
		{"home adds surcharge", nil, pricing.ServiceHome, 650},
		{"package overrides base, salon", &pkg.ID, pricing.ServiceSalon, 800},
		{"package overrides base, home surcharge still applies", &pkg.ID, pricing.ServiceHome, 950},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			total, err := svc.Quote(context.Background(), QuoteInput{
				GroomerID:   groomer.ID,
				PackageID:   tc.packageID,
				ServiceType: tc.serviceType,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, total)
		})
	}
}

func TestQuoteErrors(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newTestService(store)

	groomer := seedGroomer(store)
	otherGroomer := seedGroomer(store)
	foreignPkg := &models.GroomingPackage{ID: uuid.New(), GroomerID: otherGroomer.ID, Price: 800}
	store.packages[foreignPkg.ID] = foreignPkg

	_, err := svc.Quote(context.Background(), QuoteInput{GroomerID: groomer.ID, ServiceType: "hotel"})
	assert.ErrorIs(t, err, ErrInvalidServiceType)

	_, err = svc.Quote(context.Background(), QuoteInput{
		GroomerID: groomer.ID, PackageID: &foreignPkg.ID, ServiceType: pricing.ServiceSalon,
	})
	assert.ErrorIs(t, err, ErrPackageMismatch)

	salonOnly := seedGroomer(store)
	salonOnly.ProvidesHomeService = false
	_, err = svc.Quote(context.Background(), QuoteInput{GroomerID: salonOnly.ID, ServiceType: pricing.ServiceHome})
	assert.ErrorIs(t, err, ErrHomeServiceUnavailable)

	unapproved := seedGroomer(store)
	unapproved.ApplicationStatus = workflow.ApplicationPending
	_, err = svc.Quote(context.Background(), QuoteInput{GroomerID: unapproved.ID, ServiceType: pricing.ServiceSalon})
	assert.ErrorIs(t, err, ErrGroomerUnavailable)

	offline := seedGroomer(store)
	offline.IsAvailable = false
	_, err = svc.Quote(context.Background(), QuoteInput{GroomerID: offline.ID, ServiceType: pricing.ServiceSalon})
	assert.ErrorIs(t, err, ErrGroomerUnavailable)
}

func TestBookGroomingHomeRequiresAddress(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newTestService(store)
	userID := seedUser(store)
	groomer := seedGroomer(store)
	slot := seedSlot(store, groomer.ID)

	_, err := svc.BookGrooming(context.Background(), BookGroomingInput{
		GroomerID:   groomer.ID,
		UserID:      userID,
		TimeSlotID:  slot.ID,
		ServiceType: pricing.ServiceHome,
		PetName:     "Bruno",
		PetDetails:  "Golden retriever, 3 years",
		HomeAddress: "   ",
	})
	assert.ErrorIs(t, err, ErrAddressRequired)

	// rejected before any write: no booking row, slot untouched, no email
	assert.Empty(t, store.groomingBookings)
	assert.False(t, slot.IsBooked)
	assert.Empty(t, store.emails)
}

func TestBookGroomingValidation(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newTestService(store)
	userID := seedUser(store)
	groomer := seedGroomer(store)
	slot := seedSlot(store, groomer.ID)

	base := BookGroomingInput{
		GroomerID:   groomer.ID,
		UserID:      userID,
		TimeSlotID:  slot.ID,
		ServiceType: pricing.ServiceSalon,
		PetName:     "Bruno",
		PetDetails:  "Golden retriever",
	}

	missingPet := base
	missingPet.PetDetails = ""
	_, err := svc.BookGrooming(context.Background(), missingPet)
	assert.ErrorIs(t, err, ErrPetDetailsRequired)

	noSlot := base
	noSlot.TimeSlotID = uuid.Nil
	_, err = svc.BookGrooming(context.Background(), noSlot)
	assert.ErrorIs(t, err, ErrSlotRequired)

	assert.Empty(t, store.groomingBookings)
}

func TestBookGroomingSlotHandling(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newTestService(store)
	userID := seedUser(store)
	groomer := seedGroomer(store)
	other := seedGroomer(store)
	slot := seedSlot(store, groomer.ID)
	foreignSlot := seedSlot(store, other.ID)

	in := BookGroomingInput{
		GroomerID:   groomer.ID,
		UserID:      userID,
		TimeSlotID:  foreignSlot.ID,
		ServiceType: pricing.ServiceSalon,
		PetName:     "Bruno",
		PetDetails:  "Golden retriever",
	}
	_, err := svc.BookGrooming(context.Background(), in)
	assert.ErrorIs(t, err, ErrSlotMismatch)

	in.TimeSlotID = slot.ID
	first, err := svc.BookGrooming(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 500, first.Total)
	assert.True(t, slot.IsBooked)

	_, err = svc.BookGrooming(context.Background(), in)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Len(t, store.groomingBookings, 1)
}

func TestBookGroomingEndToEndPricing(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newTestService(store)
	userID := seedUser(store)
	groomer := seedGroomer(store) // price 500, home service 150
	pkg := &models.GroomingPackage{ID: uuid.New(), GroomerID: groomer.ID, Price: 800}
	store.packages[pkg.ID] = pkg

	slot := seedSlot(store, groomer.ID)
	home, err := svc.BookGrooming(context.Background(), BookGroomingInput{
		GroomerID:   groomer.ID,
		UserID:      userID,
		TimeSlotID:  slot.ID,
		ServiceType: pricing.ServiceHome,
		PetName:     "Bruno",
		PetDetails:  "Golden retriever",
		HomeAddress: "221B Baker Street",
	})
	require.NoError(t, err)
	assert.Equal(t, 650, home.Total)

	slot2 := seedSlot(store, groomer.ID)
	withPackage, err := svc.BookGrooming(context.Background(), BookGroomingInput{
		GroomerID:   groomer.ID,
		UserID:      userID,
		TimeSlotID:  slot2.ID,
		PackageID:   &pkg.ID,
		ServiceType: pricing.ServiceHome,
		PetName:     "Bruno",
		PetDetails:  "Golden retriever",
		HomeAddress: "221B Baker Street",
	})
	require.NoError(t, err)
	assert.Equal(t, 950, withPackage.Total)
}
