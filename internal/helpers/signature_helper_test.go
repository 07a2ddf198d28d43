package helpers

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingCodeRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	bookingID := uuid.New()
	eventID := uuid.New()
	userID := uuid.New()

	code := BookingCodeData(bookingID, eventID, userID)

	extracted, err := ExtractBookingID(code)
	require.NoError(t, err)
	assert.Equal(t, bookingID, extracted)

	assert.True(t, ValidateBookingCode(bookingID, eventID, userID, code))
}

func TestValidateBookingCodeRejectsTampering(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	bookingID := uuid.New()
	eventID := uuid.New()
	userID := uuid.New()

	code := BookingCodeData(bookingID, eventID, userID)

	// Signature computed for a different user must not verify.
	assert.False(t, ValidateBookingCode(bookingID, eventID, uuid.New(), code))

	tampered := strings.Replace(code, "signature:", "signature:00", 1)
	assert.False(t, ValidateBookingCode(bookingID, eventID, userID, tampered))
}

func TestExtractBookingIDRejectsMalformedCodes(t *testing.T) {
	_, err := ExtractBookingID("not-a-booking-code")
	assert.Error(t, err)

	_, err = ExtractBookingID("booking:nope;event:x;signature:abc")
	assert.Error(t, err)
}
