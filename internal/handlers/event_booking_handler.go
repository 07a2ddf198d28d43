package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/petsuhq/petsu-backend/internal/helpers"
	"github.com/petsuhq/petsu-backend/internal/metrics"
	"github.com/petsuhq/petsu-backend/internal/models"
	"github.com/petsuhq/petsu-backend/internal/services/booking"
	"github.com/petsuhq/petsu-backend/internal/workflow"
)

type BookEventRequest struct {
	Tickets int `json:"tickets" binding:"required,min=1"`
}

func BookEvent(c *gin.Context) {
	var req BookEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Tickets must be at least 1.")
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	svc := booking.NewService(booking.NewStore(gormDB))
	created, err := svc.BookEvent(c.Request.Context(), booking.BookEventInput{
		EventID: eventID,
		UserID:  userID.(uuid.UUID),
		Tickets: req.Tickets,
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		case errors.Is(err, booking.ErrNotEnoughTickets):
			helpers.RespondWithError(c, http.StatusConflict, "Not enough tickets remaining.")
		case errors.Is(err, booking.ErrEventNotBookable):
			helpers.RespondWithError(c, http.StatusBadRequest, "This event is not open for booking.")
		case errors.Is(err, booking.ErrTicketCountInvalid):
			helpers.RespondWithError(c, http.StatusBadRequest, "Tickets must be at least 1.")
		default:
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to book event.")
		}
		return
	}

	metrics.BookingsCreated.WithLabelValues("event").Inc()

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Booking confirmed.",
		"booking_id": created.ID,
		"total":      created.Total,
	})
}

func ListMyBookings(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var bookings []models.Booking
	if err := gormDB.Preload("Event").Where("user_id = ?", userID).Order("created_at DESC").Find(&bookings).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func CancelBooking(c *gin.Context) {
	bookingID := c.Param("id")
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var b models.Booking
	if err := gormDB.Where("id = ? AND user_id = ?", bookingID, userID).First(&b).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving booking.")
		return
	}

	if err := b.Status.TransitionTo(workflow.BookingCancelled); err != nil {
		helpers.RespondWithError(c, http.StatusConflict, "Booking is already cancelled.")
		return
	}

	result := gormDB.Model(&models.Booking{}).
		Where("id = ? AND status = ?", b.ID, workflow.BookingConfirmed).
		Update("status", workflow.BookingCancelled)
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel booking.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusConflict, "Booking status changed concurrently.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled."})
}

// GenerateBookingQR renders the signed check-in code for a confirmed booking.
func GenerateBookingQR(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var b models.Booking
	if err := gormDB.First(&b, "id = ?", bookingID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
		return
	}

	if b.UserID != userID {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to generate a code for this booking.")
		return
	}
	if b.Status != workflow.BookingConfirmed {
		helpers.RespondWithError(c, http.StatusForbidden, "Booking is not confirmed.")
		return
	}
	if b.IsUsed {
		helpers.RespondWithError(c, http.StatusForbidden, "Booking has already been checked in.")
		return
	}

	qrData := helpers.BookingCodeData(b.ID, b.EventID, b.UserID)
	qrImage, err := qrcode.Encode(qrData, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}

// ValidateBooking is the organizer-side check-in scan.
func ValidateBooking(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	var validationRequest struct {
		QRData string `json:"qr_data" binding:"required"`
	}
	if err := c.ShouldBindJSON(&validationRequest); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	bookingID, err := helpers.ExtractBookingID(validationRequest.QRData)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking code format.")
		return
	}

	var b models.Booking
	if err := gormDB.Preload("Event").First(&b, "id = ?", bookingID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
		return
	}

	if !helpers.ValidateBookingCode(b.ID, b.EventID, b.UserID, validationRequest.QRData) {
		helpers.RespondWithError(c, http.StatusForbidden, "Invalid booking code signature.")
		return
	}

	if b.Event.UserID != userID {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to validate this booking.")
		return
	}
	if b.Status != workflow.BookingConfirmed {
		helpers.RespondWithError(c, http.StatusForbidden, "Booking is not confirmed.")
		return
	}
	if b.IsUsed {
		helpers.RespondWithError(c, http.StatusForbidden, "Booking has already been checked in.")
		return
	}

	if err := gormDB.Model(&b).Update("is_used", true).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to validate booking.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking checked in.",
		"booking": gin.H{
			"event_title": b.Event.Title,
			"tickets":     b.Tickets,
		},
	})
}
