package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petsuhq/petsu-backend/internal/helpers"
	"github.com/petsuhq/petsu-backend/internal/models"
	"github.com/petsuhq/petsu-backend/internal/services/consultation"
	"github.com/petsuhq/petsu-backend/internal/workflow"
)

// RequestConsultation opens a request that any approved vet can pick up
// before it expires.
func RequestConsultation(c *gin.Context) {
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

	svc := consultation.NewService(consultation.NewStore(gormDB))
	created, err := svc.Request(c.Request.Context(), userID.(uuid.UUID))
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create consultation request.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"consultation": created,
		"expires_at":   created.ExpiresAt,
	})
}

func GetConsultation(c *gin.Context) {
	consultationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid consultation ID.")
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

	var record models.Consultation
	if err := gormDB.Preload("Vet").Preload("Vet.User").First(&record, "id = ?", consultationID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Consultation not found.")
		return
	}

	if !consultationParticipant(gormDB, &record, userID.(uuid.UUID)) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have access to this consultation.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"consultation": record})
}

// ListPendingConsultations is the vet-side queue of open requests.
func ListPendingConsultations(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	svc := consultation.NewService(consultation.NewStore(gormDB))
	pending, err := svc.Pending(c.Request.Context())
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving consultations.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"consultations": pending})
}

func AcceptConsultation(c *gin.Context) {
	consultationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid consultation ID.")
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

	svc := consultation.NewService(consultation.NewStore(gormDB))
	accepted, err := svc.Accept(c.Request.Context(), consultationID, userID.(uuid.UUID))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			helpers.RespondWithError(c, http.StatusNotFound, "Consultation not found.")
		case errors.Is(err, consultation.ErrVetNotApproved):
			helpers.RespondWithError(c, http.StatusForbidden, "Your vet application has not been approved.")
		case errors.Is(err, consultation.ErrExpired):
			helpers.RespondWithError(c, http.StatusGone, "This request has expired.")
		case errors.Is(err, consultation.ErrAlreadyAssigned):
			helpers.RespondWithError(c, http.StatusConflict, "Another vet already accepted this request.")
		case errors.Is(err, consultation.ErrNotAcceptable):
			helpers.RespondWithError(c, http.StatusConflict, "This request can no longer be accepted.")
		default:
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to accept consultation.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"consultation": accepted})
}

func CompleteConsultation(c *gin.Context) {
	consultationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid consultation ID.")
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

	svc := consultation.NewService(consultation.NewStore(gormDB))
	completed, err := svc.Complete(c.Request.Context(), consultationID, userID.(uuid.UUID))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			helpers.RespondWithError(c, http.StatusNotFound, "Consultation not found.")
		case errors.Is(err, consultation.ErrNotCompletable):
			helpers.RespondWithError(c, http.StatusConflict, "Consultation is not active for you.")
		default:
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to complete consultation.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"consultation": completed})
}

type PostMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// PostConsultationMessage appends a chat message. Only the owner and the
// assigned vet may write, and only while the consultation is active.
func PostConsultationMessage(c *gin.Context) {
	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Message body is required.")
		return
	}

	consultationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid consultation ID.")
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

	var record models.Consultation
	if err := gormDB.First(&record, "id = ?", consultationID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Consultation not found.")
		return
	}

	if record.Status != workflow.ConsultationActive {
		helpers.RespondWithError(c, http.StatusConflict, "Consultation is not active.")
		return
	}
	if !consultationParticipant(gormDB, &record, userID.(uuid.UUID)) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have access to this consultation.")
		return
	}

	message := models.ConsultationMessage{
		ID:             uuid.New(),
		ConsultationID: record.ID,
		SenderID:       userID.(uuid.UUID),
		Body:           req.Body,
	}
	if err := gormDB.Create(&message).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to send message.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": message})
}

func ListConsultationMessages(c *gin.Context) {
	consultationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid consultation ID.")
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

	var record models.Consultation
	if err := gormDB.First(&record, "id = ?", consultationID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Consultation not found.")
		return
	}

	if !consultationParticipant(gormDB, &record, userID.(uuid.UUID)) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have access to this consultation.")
		return
	}

	var messages []models.ConsultationMessage
	err = gormDB.
		Where("consultation_id = ?", record.ID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving messages.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func consultationParticipant(db *gorm.DB, record *models.Consultation, userID uuid.UUID) bool {
	if record.UserID == userID {
		return true
	}
	if record.VetID == nil {
		return false
	}
	var vet models.VetProfile
	if err := db.First(&vet, "id = ?", *record.VetID).Error; err != nil {
		return false
	}
	return vet.UserID == userID
}
