package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petsuhq/petsu-backend/internal/helpers"
	"github.com/petsuhq/petsu-backend/internal/models"
	"github.com/petsuhq/petsu-backend/internal/workflow"
)

type ApplyGroomerRequest struct {
	SalonName           string `json:"salon_name" binding:"required"`
	Bio                 string `json:"bio"`
	City                string `json:"city" binding:"required"`
	Price               int    `json:"price" binding:"required,min=1"`
	ProvidesHomeService bool   `json:"provides_home_service"`
	HomeServiceCost     int    `json:"home_service_cost"`
}

// ApplyGroomer files a groomer application. The profile stays pending until an
// admin reviews it and is invisible to pet owners before approval.
func ApplyGroomer(c *gin.Context) {
	var req ApplyGroomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if req.HomeServiceCost < 0 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Home service cost cannot be negative.")
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

	var existing models.GroomerProfile
	if result := gormDB.Where("user_id = ?", userID).First(&existing); result.Error == nil {
		helpers.RespondWithError(c, http.StatusConflict, "You have already applied as a groomer.")
		return
	}

	profile := models.GroomerProfile{
		ID:                  uuid.New(),
		SalonName:           req.SalonName,
		Bio:                 req.Bio,
		City:                req.City,
		Price:               req.Price,
		ProvidesHomeService: req.ProvidesHomeService,
		HomeServiceCost:     req.HomeServiceCost,
		ApplicationStatus:   workflow.ApplicationPending,
		IsAvailable:         true,
		UserID:              userID.(uuid.UUID),
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

type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

func SetGroomerAvailability(c *gin.Context) {
	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. is_available is required.")
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

	var profile models.GroomerProfile
	if err := gormDB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Groomer profile not found.")
		return
	}

	if profile.ApplicationStatus != workflow.ApplicationApproved {
		helpers.RespondWithError(c, http.StatusForbidden, "Your application has not been approved.")
		return
	}

	if err := gormDB.Model(&profile).Update("is_available", *req.IsAvailable).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update availability.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Availability updated.", "is_available": *req.IsAvailable})
}

// ListGroomers returns approved, available groomers for the public directory.
func ListGroomers(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	page, limit, err := helpers.ParsePagination(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", "10"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	offset := (page - 1) * limit

	query := gormDB.Model(&models.GroomerProfile{}).
		Where("application_status = ? AND is_available = ?", workflow.ApplicationApproved, true)

	if city := c.Query("city"); city != "" {
		query = query.Where("city ILIKE ?", "%"+city+"%")
	}

	var total int64
	query.Count(&total)

	var groomers []models.GroomerProfile
	if err := query.Preload("Packages").Offset(offset).Limit(limit).Find(&groomers).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving groomers.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"groomers": groomers,
		"meta": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

func GetGroomer(c *gin.Context) {
	groomerID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var groomer models.GroomerProfile
	err := gormDB.Preload("Packages").
		Where("id = ? AND application_status = ?", groomerID, workflow.ApplicationApproved).
		First(&groomer).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Groomer not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving groomer.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"groomer": groomer})
}

type ReviewApplicationRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// ReviewGroomerApplication is the admin decision on a pending application.
func ReviewGroomerApplication(c *gin.Context) {
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

	var profile models.GroomerProfile
	if err := gormDB.First(&profile, "id = ?", c.Param("id")).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Application not found.")
		return
	}

	next := workflow.ApplicationStatus(req.Status)
	if err := profile.ApplicationStatus.TransitionTo(next); err != nil {
		helpers.RespondWithError(c, http.StatusConflict, "Application has already been reviewed.")
		return
	}

	result := gormDB.Model(&models.GroomerProfile{}).
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

func ListPendingGroomerApplications(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var profiles []models.GroomerProfile
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

type CreatePackageRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int    `json:"price" binding:"required,min=1"`
}

func CreateGroomingPackage(c *gin.Context) {
	var req CreatePackageRequest
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

	var profile models.GroomerProfile
	if err := gormDB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Groomer profile not found.")
		return
	}
	if profile.ApplicationStatus != workflow.ApplicationApproved {
		helpers.RespondWithError(c, http.StatusForbidden, "Your application has not been approved.")
		return
	}

	pkg := models.GroomingPackage{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		GroomerID:   profile.ID,
	}

	if err := gormDB.Create(&pkg).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create package.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"package": pkg})
}

func DeleteGroomingPackage(c *gin.Context) {
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

	var pkg models.GroomingPackage
	if err := gormDB.Where("id = ? AND groomer_id = ?", c.Param("packageId"), profile.ID).First(&pkg).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Package not found.")
		return
	}

	if err := gormDB.Delete(&pkg).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete package.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Package deleted."})
}

type AddTimeSlotsRequest struct {
	Slots []struct {
		StartsAt time.Time `json:"starts_at" binding:"required"`
		EndsAt   time.Time `json:"ends_at" binding:"required"`
	} `json:"slots" binding:"required,min=1,dive"`
}

func AddTimeSlots(c *gin.Context) {
	var req AddTimeSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Provide at least one slot.")
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

	var profile models.GroomerProfile
	if err := gormDB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Groomer profile not found.")
		return
	}
	if profile.ApplicationStatus != workflow.ApplicationApproved {
		helpers.RespondWithError(c, http.StatusForbidden, "Your application has not been approved.")
		return
	}

	slots := make([]models.GroomerTimeSlot, 0, len(req.Slots))
	for _, s := range req.Slots {
		if !s.EndsAt.After(s.StartsAt) {
			helpers.RespondWithError(c, http.StatusBadRequest, "Slot end must be after its start.")
			return
		}
		slots = append(slots, models.GroomerTimeSlot{
			ID:        uuid.New(),
			GroomerID: profile.ID,
			StartsAt:  s.StartsAt,
			EndsAt:    s.EndsAt,
		})
	}

	if err := gormDB.Create(&slots).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create time slots.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"slots": slots})
}

// ListAvailableSlots returns a groomer's unbooked future slots.
func ListAvailableSlots(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var slots []models.GroomerTimeSlot
	err := gormDB.
		Where("groomer_id = ? AND is_booked = ? AND starts_at > ?", c.Param("id"), false, time.Now()).
		Order("starts_at ASC").
		Find(&slots).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving time slots.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
