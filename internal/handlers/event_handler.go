package handlers

import (
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/petsuhq/petsu-backend/internal/helpers"
	"github.com/petsuhq/petsu-backend/internal/models"
	"github.com/petsuhq/petsu-backend/internal/services/booking"
	"github.com/petsuhq/petsu-backend/internal/workflow"
)

var pincodePattern = regexp.MustCompile(`^\d{4,10}$`)

func CreateEvent(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")

	dateStr := c.PostForm("date")
	date, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date format.")
		return
	}

	location := c.PostForm("location")
	city := c.PostForm("city")
	pincode := c.PostForm("pincode")
	petTypes := c.PostForm("pet_types")
	requirement := c.PostForm("requirement")
	organizerName := c.PostForm("organizer_name")
	organizerContact := c.PostForm("organizer_contact")

	capacity, err := helpers.StringToInt(c.PostForm("capacity"))
	if err != nil || capacity < 1 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid capacity.")
		return
	}
	price, err := helpers.StringToInt(c.PostForm("price"))
	if err != nil || price < 0 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid price.")
		return
	}

	if title == "" || description == "" || location == "" || city == "" || organizerName == "" || organizerContact == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields.")
		return
	}
	if !pincodePattern.MatchString(pincode) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid pincode.")
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

	event := models.Event{
		ID:               uuid.New(),
		Title:            title,
		Description:      description,
		Date:             date,
		Location:         location,
		City:             city,
		Pincode:          pincode,
		Capacity:         capacity,
		Price:            price,
		PetTypes:         petTypes,
		Requirement:      requirement,
		Status:           workflow.EventPending,
		OrganizerName:    organizerName,
		OrganizerContact: organizerContact,
		UserID:           userID.(uuid.UUID),
	}

	bannerFile, err := c.FormFile("banner")
	if err == nil {
		bannerPath, err := helpers.UploadFile(c, bannerFile, "event_banners")
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		event.BannerPath = bannerPath
	}

	if err := gormDB.Create(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Event submitted for review.",
		"event_id": event.ID,
	})
}

func GetEvent(c *gin.Context) {
	eventID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	// best-effort view counter, a lost increment is fine
	gormDB.Model(&event).UpdateColumn("views", gorm.Expr("views + 1"))

	svc := booking.NewService(booking.NewStore(gormDB))
	remaining, err := svc.RemainingTickets(c.Request.Context(), &event)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving ticket availability.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event":             event,
		"remaining_tickets": remaining,
	})
}

func ListEvents(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	city := c.Query("city")
	pincode := c.Query("pincode")

	pageNum, limitNum, err := helpers.ParsePagination(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", "10"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	query := gormDB.Model(&models.Event{}).Where("status = ?", workflow.EventApproved)
	if city != "" {
		query = query.Where("city = ?", city)
	}

	var totalCount int64
	query.Count(&totalCount)

	offset := (pageNum - 1) * limitNum
	query = query.Offset(offset).Limit(limitNum)

	// "Near me" is a pincode-distance heuristic, not real geospatial math.
	if pincode != "" {
		if !pincodePattern.MatchString(pincode) {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid pincode.")
			return
		}
		query = query.Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:  "ABS(CAST(pincode AS BIGINT) - CAST(? AS BIGINT))",
			Vars: []interface{}{pincode},
		}})
	} else {
		query = query.Order("date ASC")
	}

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":      events,
		"total":       totalCount,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (totalCount + int64(limitNum) - 1) / int64(limitNum),
	})
}

func UpdateEvent(c *gin.Context) {
	eventID := c.Param("id")
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

	var event models.Event
	if err := gormDB.Where("id = ? AND user_id = ?", eventID, userID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusForbidden, "Event not found or you don't have permission to modify it.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding event.")
		return
	}

	if title := c.PostForm("title"); title != "" {
		event.Title = title
	}
	if description := c.PostForm("description"); description != "" {
		event.Description = description
	}
	if dateStr := c.PostForm("date"); dateStr != "" {
		date, err := time.Parse(time.RFC3339, dateStr)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date format.")
			return
		}
		event.Date = date
	}
	if location := c.PostForm("location"); location != "" {
		event.Location = location
	}
	if city := c.PostForm("city"); city != "" {
		event.City = city
	}
	if pincode := c.PostForm("pincode"); pincode != "" {
		if !pincodePattern.MatchString(pincode) {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid pincode.")
			return
		}
		event.Pincode = pincode
	}
	if capacityStr := c.PostForm("capacity"); capacityStr != "" {
		capacity, err := helpers.StringToInt(capacityStr)
		if err != nil || capacity < 1 {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid capacity.")
			return
		}
		event.Capacity = capacity
	}

	bannerFile, err := c.FormFile("banner")
	if err == nil {
		bannerPath, err := helpers.UploadFile(c, bannerFile, "event_banners")
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		if event.BannerPath != "" {
			helpers.DeleteFile(event.BannerPath)
		}
		event.BannerPath = bannerPath
	}

	if err := gormDB.Save(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully.",
		"event":   event,
	})
}

func DeleteEvent(c *gin.Context) {
	eventID := c.Param("id")
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

	role, _ := c.Get("role")
	query := gormDB.Where("id = ?", eventID)
	if role != "admin" {
		query = query.Where("user_id = ?", userID)
	}

	result := query.Delete(&models.Event{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete event.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusForbidden, "Event not found or you don't have permission to delete it.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully."})
}

type EventReviewRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
}

// ReviewEvent is the admin approve/reject transition for a submitted event.
func ReviewEvent(c *gin.Context) {
	eventID := c.Param("id")

	var req EventReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Action must be approve or reject.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	next := workflow.EventApproved
	if req.Action == "reject" {
		next = workflow.EventRejected
	}
	if err := event.Status.TransitionTo(next); err != nil {
		helpers.RespondWithError(c, http.StatusConflict, "Event has already been reviewed.")
		return
	}

	result := gormDB.Model(&models.Event{}).
		Where("id = ? AND status = ?", event.ID, event.Status).
		Update("status", next)
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event status.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusConflict, "Event status changed concurrently.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event status updated.",
		"status":  next,
	})
}

func ListPendingEvents(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	status := c.DefaultQuery("status", string(workflow.EventPending))

	var events []models.Event
	if err := gormDB.Preload("User").Where("status = ?", status).Order("created_at ASC").Find(&events).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}
