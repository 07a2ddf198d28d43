package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petsuhq/petsu-backend/internal/helpers"
	"github.com/petsuhq/petsu-backend/internal/models"
	"github.com/petsuhq/petsu-backend/internal/services/payout"
	"github.com/petsuhq/petsu-backend/internal/workflow"
)

type CreatePayoutRequest struct {
	EventID       *uuid.UUID `json:"event_id"`
	GroomerID     *uuid.UUID `json:"groomer_id"`
	AccountName   string     `json:"account_name" binding:"required"`
	AccountNumber string     `json:"account_number" binding:"required"`
	IfscCode      string     `json:"ifsc_code" binding:"required"`
}

// CreatePayout opens a payout request against a finished event or an approved
// groomer profile.
func CreatePayout(c *gin.Context) {
	var req CreatePayoutRequest
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

	svc := payout.NewService(payout.NewStore(gormDB))
	created, err := svc.Create(c.Request.Context(), payout.CreateInput{
		UserID:        userID.(uuid.UUID),
		EventID:       req.EventID,
		GroomerID:     req.GroomerID,
		AccountName:   req.AccountName,
		AccountNumber: req.AccountNumber,
		IfscCode:      req.IfscCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			helpers.RespondWithError(c, http.StatusNotFound, "Event or groomer profile not found.")
		case errors.Is(err, payout.ErrSubjectRequired):
			helpers.RespondWithError(c, http.StatusBadRequest, "Provide exactly one of event_id or groomer_id.")
		case errors.Is(err, payout.ErrAccountDetailsRequired):
			helpers.RespondWithError(c, http.StatusBadRequest, "Account name, number and IFSC code are required.")
		case errors.Is(err, payout.ErrNotOwner):
			helpers.RespondWithError(c, http.StatusForbidden, "You don't own this event or profile.")
		case errors.Is(err, payout.ErrEventNotFinished):
			helpers.RespondWithError(c, http.StatusBadRequest, "Payouts open after the event has ended.")
		case errors.Is(err, payout.ErrGroomerNotApproved):
			helpers.RespondWithError(c, http.StatusBadRequest, "Groomer profile is not approved.")
		default:
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create payout request.")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payout": created})
}

func ListMyPayouts(c *gin.Context) {
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

	var payouts []models.PayoutRequest
	if err := gormDB.Where("user_id = ?", userID).Order("created_at DESC").Find(&payouts).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving payout requests.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"payouts": payouts})
}

// ListPayouts is the admin queue, filterable by status.
func ListPayouts(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	query := gormDB.Model(&models.PayoutRequest{}).Preload("User")
	if status := c.Query("status"); status != "" {
		if !workflow.PayoutStatus(status).IsValid() {
			helpers.RespondWithError(c, http.StatusBadRequest, "Unknown payout status.")
			return
		}
		query = query.Where("status = ?", status)
	}

	var payouts []models.PayoutRequest
	if err := query.Order("created_at ASC").Find(&payouts).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving payout requests.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"payouts": payouts})
}

func ApprovePayout(c *gin.Context) {
	advancePayout(c, func(svc *payout.Service, id uuid.UUID) (*models.PayoutRequest, error) {
		return svc.Approve(c.Request.Context(), id)
	})
}

type MarkPaidRequest struct {
	Amount int `json:"amount" binding:"required,min=1"`
}

func MarkPayoutPaid(c *gin.Context) {
	var req MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Amount must be a positive number.")
		return
	}
	advancePayout(c, func(svc *payout.Service, id uuid.UUID) (*models.PayoutRequest, error) {
		return svc.MarkPaid(c.Request.Context(), id, req.Amount)
	})
}

func RejectPayout(c *gin.Context) {
	advancePayout(c, func(svc *payout.Service, id uuid.UUID) (*models.PayoutRequest, error) {
		return svc.Reject(c.Request.Context(), id)
	})
}

func advancePayout(c *gin.Context, op func(*payout.Service, uuid.UUID) (*models.PayoutRequest, error)) {
	payoutID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid payout ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	svc := payout.NewService(payout.NewStore(gormDB))
	updated, err := op(svc, payoutID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			helpers.RespondWithError(c, http.StatusNotFound, "Payout request not found.")
		case errors.Is(err, workflow.ErrInvalidTransition):
			helpers.RespondWithError(c, http.StatusConflict, "Payout request is not in a state that allows this.")
		case errors.Is(err, payout.ErrConflict):
			helpers.RespondWithError(c, http.StatusConflict, "Payout request was modified concurrently.")
		case errors.Is(err, payout.ErrAmountRequired):
			helpers.RespondWithError(c, http.StatusBadRequest, "Amount must be a positive number.")
		default:
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update payout request.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"payout": updated})
}
