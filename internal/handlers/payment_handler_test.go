package handlers

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePaymentRef(t *testing.T) {
	gormDB, mock := newMockDB(t)
	bookingID := uuid.New()

	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, storePaymentRef(gormDB, "event", bookingID, "inv-123"))

	mock.ExpectExec(`UPDATE "grooming_bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, storePaymentRef(gormDB, "grooming", bookingID, "inv-123"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorePaymentRefSurfacesWriteFailure(t *testing.T) {
	gormDB, mock := newMockDB(t)
	bookingID := uuid.New()

	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnError(errors.New("connection reset"))
	assert.Error(t, storePaymentRef(gormDB, "event", bookingID, "inv-9"))

	assert.Error(t, storePaymentRef(gormDB, "hotel", bookingID, "inv-9"))
}
