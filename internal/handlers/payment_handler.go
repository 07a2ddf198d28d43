package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xendit/xendit-go/v6/invoice"
	"gorm.io/gorm"

	"github.com/petsuhq/petsu-backend/internal/helpers"
	"github.com/petsuhq/petsu-backend/internal/middleware"
	"github.com/petsuhq/petsu-backend/internal/models"
	"github.com/petsuhq/petsu-backend/internal/workflow"
)

type PaymentLinkRequest struct {
	BookingID   uuid.UUID `json:"booking_id" binding:"required"`
	BookingKind string    `json:"booking_kind" binding:"required,oneof=event grooming"`
}

// CreatePaymentLink generates a hosted invoice for a confirmed booking and
// stores the invoice ID as the booking's payment reference.
func CreatePaymentLink(c *gin.Context) {
	var req PaymentLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}
	userUUID, ok := userID.(uuid.UUID)
	if !ok {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID type.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	xenditClient := middleware.GetXenditClient(c)
	if xenditClient == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Payment gateway not configured.")
		return
	}

	var user models.User
	if err := gormDB.First(&user, userUUID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return
	}

	var (
		total       int
		description string
	)
	switch req.BookingKind {
	case "event":
		var b models.Booking
		if err := gormDB.Preload("Event").First(&b, "id = ?", req.BookingID).Error; err != nil {
			helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
			return
		}
		if b.UserID != userUUID {
			helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to pay for this booking.")
			return
		}
		if b.Status != workflow.BookingConfirmed {
			helpers.RespondWithError(c, http.StatusConflict, "Booking is not payable.")
			return
		}
		total = b.Total
		description = fmt.Sprintf("%s - %d ticket(s)", b.Event.Title, b.Tickets)
	case "grooming":
		var b models.GroomingBooking
		if err := gormDB.Preload("Groomer").First(&b, "id = ?", req.BookingID).Error; err != nil {
			helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
			return
		}
		if b.UserID != userUUID {
			helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to pay for this booking.")
			return
		}
		if b.Status != workflow.BookingConfirmed {
			helpers.RespondWithError(c, http.StatusConflict, "Booking is not payable.")
			return
		}
		total = b.Total
		description = fmt.Sprintf("Grooming at %s (%s)", b.Groomer.SalonName, b.ServiceType)
	}

	externalID := fmt.Sprintf("INV-%s-%d", req.BookingID, time.Now().Unix())
	invoiceReq := invoice.NewCreateInvoiceRequest(externalID, float64(total))
	invoiceReq.SetDescription(description)
	invoiceReq.SetPayerEmail(user.Email)
	invoiceReq.SetCurrency("INR")

	inv, _, xerr := xenditClient.InvoiceApi.CreateInvoice(c.Request.Context()).
		CreateInvoiceRequest(*invoiceReq).
		Execute()
	if xerr != nil {
		helpers.RespondWithError(c, http.StatusBadGateway, "Payment link generation failed.")
		return
	}

	invoiceID := inv.GetId()
	if err := storePaymentRef(gormDB, req.BookingKind, req.BookingID, invoiceID); err != nil {
		// the invoice already exists, so hand the URL back anyway
		log.Printf("payments: failed to store invoice %s for booking %s: %v", invoiceID, req.BookingID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"payment_url": inv.GetInvoiceUrl(),
		"invoice_id":  invoiceID,
	})
}

func storePaymentRef(db *gorm.DB, kind string, bookingID uuid.UUID, invoiceID string) error {
	switch kind {
	case "event":
		return db.Model(&models.Booking{}).Where("id = ?", bookingID).Update("payment_ref", invoiceID).Error
	case "grooming":
		return db.Model(&models.GroomingBooking{}).Where("id = ?", bookingID).Update("payment_ref", invoiceID).Error
	default:
		return fmt.Errorf("unknown booking kind %q", kind)
	}
}
