package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petsuhq/petsu-backend/internal/helpers"
	"github.com/petsuhq/petsu-backend/internal/models"
	"github.com/petsuhq/petsu-backend/internal/workflow"
)

type ApplyVetRequest struct {
	Specialization string `json:"specialization" binding:"required"`
	LicenseNumber  string `json:"license_number" binding:"required"`
	Bio            string `json:"bio"`
}

// ApplyVet files a vet application. Pending vets cannot accept consultations.
func ApplyVet(c *gin.Context) {
	var req ApplyVetRequest
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

	var existing models.VetProfile
	if result := gormDB.Where("user_id = ?", userID).First(&existing); result.Error == nil {
		helpers.RespondWithError(c, http.StatusConflict, "You have already applied as a vet.")
		return
	}

	profile := models.VetProfile{
		ID:                uuid.New(),
		Specialization:    req.Specialization,
		LicenseNumber:     req.LicenseNumber,
		Bio:               req.Bio,
		ApplicationStatus: workflow.ApplicationPending,
		UserID:            userID.(uuid.UUID),
	}

	if err := gormDB.Create(&profile).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to submit application.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Application submitted. You'll be notified once it is reviewed.",
		"profile": profile,
	})
}

type SetOnlineRequest struct {
	IsOnline *bool `json:"is_online" binding:"required"`
}

func SetVetOnline(c *gin.Context) {
	var req SetOnlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. is_online is required.")
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

	var profile models.VetProfile
	if err := gormDB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Vet profile not found.")
		return
	}

	if profile.ApplicationStatus != workflow.ApplicationApproved {
		helpers.RespondWithError(c, http.StatusForbidden, "Your application has not been approved.")
		return
	}

	if err := gormDB.Model(&profile).Update("is_online", *req.IsOnline).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update status.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated.", "is_online": *req.IsOnline})
}

// ReviewVetApplication is the admin decision on a pending vet application.
func ReviewVetApplication(c *gin.Context) {
	var req ReviewApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Status must be 'approved' or 'rejected'.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var profile models.VetProfile
	if err := gormDB.First(&profile, "id = ?", c.Param("id")).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Application not found.")
		return
	}

	next := workflow.ApplicationStatus(req.Status)
	if err := profile.ApplicationStatus.TransitionTo(next); err != nil {
		helpers.RespondWithError(c, http.StatusConflict, "Application has already been reviewed.")
		return
	}

	result := gormDB.Model(&models.VetProfile{}).
		Where("id = ? AND application_status = ?", profile.ID, workflow.ApplicationPending).
		Update("application_status", next)
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update application.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusConflict, "Application has already been reviewed.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application " + req.Status + "."})
}

func ListPendingVetApplications(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var profiles []models.VetProfile
	err := gormDB.Preload("User").
		Where("application_status = ?", workflow.ApplicationPending).
		Order("created_at ASC").
		Find(&profiles).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving applications.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": profiles})
}
