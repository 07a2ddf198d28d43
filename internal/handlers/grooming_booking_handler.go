package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petsuhq/petsu-backend/internal/helpers"
	"github.com/petsuhq/petsu-backend/internal/metrics"
	"github.com/petsuhq/petsu-backend/internal/models"
	"github.com/petsuhq/petsu-backend/internal/pricing"
	"github.com/petsuhq/petsu-backend/internal/services/booking"
)

type QuoteGroomingRequest struct {
	GroomerID   uuid.UUID  `json:"groomer_id" binding:"required"`
	PackageID   *uuid.UUID `json:"package_id"`
	ServiceType string     `json:"service_type" binding:"required"`
}

// QuoteGrooming prices an appointment without creating anything, so the
// client can show the total before checkout.
func QuoteGrooming(c *gin.Context) {
	var req QuoteGroomingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	svc := booking.NewService(booking.NewStore(gormDB))
	total, err := svc.Quote(c.Request.Context(), booking.QuoteInput{
		GroomerID:   req.GroomerID,
		PackageID:   req.PackageID,
		ServiceType: pricing.ServiceType(req.ServiceType),
	})
	if err != nil {
		respondGroomingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total})
}

type CreateGroomingBookingRequest struct {
	GroomerID   uuid.UUID  `json:"groomer_id" binding:"required"`
	TimeSlotID  uuid.UUID  `json:"time_slot_id" binding:"required"`
	PackageID   *uuid.UUID `json:"package_id"`
	ServiceType string     `json:"service_type" binding:"required"`
	PetName     string     `json:"pet_name" binding:"required"`
	PetDetails  string     `json:"pet_details" binding:"required"`
	HomeAddress string     `json:"home_address"`
}

func CreateGroomingBooking(c *gin.Context) {
	var req CreateGroomingBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
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
	created, err := svc.BookGrooming(c.Request.Context(), booking.BookGroomingInput{
		GroomerID:   req.GroomerID,
		UserID:      userID.(uuid.UUID),
		TimeSlotID:  req.TimeSlotID,
		PackageID:   req.PackageID,
		ServiceType: pricing.ServiceType(req.ServiceType),
		PetName:     req.PetName,
		PetDetails:  req.PetDetails,
		HomeAddress: req.HomeAddress,
	})
	if err != nil {
		respondGroomingError(c, err)
		return
	}

	metrics.BookingsCreated.WithLabelValues("grooming").Inc()

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Appointment booked.",
		"booking_id": created.ID,
		"total":      created.Total,
	})
}

func ListMyGroomingBookings(c *gin.Context) {
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

	var bookings []models.GroomingBooking
	err := gormDB.Preload("Groomer").Preload("TimeSlot").Preload("Package").
		Where("user_id = ?", userID).
		Order("appointment_at DESC").
		Find(&bookings).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListGroomerAppointments is the groomer's side of the schedule.
func ListGroomerAppointments(c *gin.Context) {
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

	var profile models.GroomerProfile
	if err := gormDB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Groomer profile not found.")
		return
	}

	var bookings []models.GroomingBooking
	err := gormDB.Preload("User").Preload("TimeSlot").Preload("Package").
		Where("groomer_id = ?", profile.ID).
		Order("appointment_at ASC").
		Find(&bookings).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving appointments.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": bookings})
}

func respondGroomingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		helpers.RespondWithError(c, http.StatusNotFound, "Groomer, package or slot not found.")
	case errors.Is(err, booking.ErrInvalidServiceType):
		helpers.RespondWithError(c, http.StatusBadRequest, "Service type must be 'salon' or 'home'.")
	case errors.Is(err, booking.ErrGroomerUnavailable):
		helpers.RespondWithError(c, http.StatusConflict, "Groomer is not accepting bookings.")
	case errors.Is(err, booking.ErrHomeServiceUnavailable):
		helpers.RespondWithError(c, http.StatusBadRequest, "This groomer does not offer home visits.")
	case errors.Is(err, booking.ErrPackageMismatch):
		helpers.RespondWithError(c, http.StatusBadRequest, "Package does not belong to this groomer.")
	case errors.Is(err, booking.ErrPetDetailsRequired):
		helpers.RespondWithError(c, http.StatusBadRequest, "Pet name and details are required.")
	case errors.Is(err, booking.ErrAddressRequired):
		helpers.RespondWithError(c, http.StatusBadRequest, "Home address is required for home visits.")
	case errors.Is(err, booking.ErrSlotRequired):
		helpers.RespondWithError(c, http.StatusBadRequest, "A time slot is required.")
	case errors.Is(err, booking.ErrSlotMismatch):
		helpers.RespondWithError(c, http.StatusBadRequest, "Time slot does not belong to this groomer.")
	case errors.Is(err, booking.ErrSlotUnavailable):
		helpers.RespondWithError(c, http.StatusConflict, "Time slot is no longer available.")
	default:
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to process grooming request.")
	}
}
