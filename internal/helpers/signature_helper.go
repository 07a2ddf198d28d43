package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Booking check-in codes carry an HMAC so a venue scan can be verified
// against the booking row alone.

func BookingCodeData(bookingID, eventID, userID uuid.UUID) string {
	signature := signBookingCode(bookingID, eventID, userID)
	return fmt.Sprintf("booking:%s;event:%s;signature:%s",
		bookingID.String(), eventID.String(), signature)
}

func ExtractBookingID(codeData string) (uuid.UUID, error) {
	parts := strings.Split(codeData, ";")
	if len(parts) != 3 || !strings.HasPrefix(parts[0], "booking:") || !strings.HasPrefix(parts[2], "signature:") {
		return uuid.Nil, fmt.Errorf("invalid booking code format")
	}
	return uuid.Parse(strings.TrimPrefix(parts[0], "booking:"))
}

func ValidateBookingCode(bookingID, eventID, userID uuid.UUID, codeData string) bool {
	parts := strings.Split(codeData, ";")
	if len(parts) != 3 || !strings.HasPrefix(parts[2], "signature:") {
		return false
	}

	signature := strings.TrimPrefix(parts[2], "signature:")
	expected := signBookingCode(bookingID, eventID, userID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

func signBookingCode(bookingID, eventID, userID uuid.UUID) string {
	data := fmt.Sprintf("%s:%s:%s", bookingID.String(), eventID.String(), userID.String())
	h := hmac.New(sha256.New, []byte(os.Getenv("JWT_SECRET")))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
