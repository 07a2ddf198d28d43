package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/petsuhq/petsu-backend/internal/helpers"
	"github.com/petsuhq/petsu-backend/internal/models"
)

func GetProfile(c *gin.Context) {
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

	var user models.User
	if err := gormDB.Preload("Role").Where("id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving user.")
		return
	}

	var bookings []models.Booking
	if err := gormDB.Preload("Event").Where("user_id = ?", user.ID).Order("created_at DESC").Find(&bookings).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving bookings.")
		return
	}

	var groomingBookings []models.GroomingBooking
	if err := gormDB.Preload("Groomer").Where("user_id = ?", user.ID).Order("created_at DESC").Find(&groomingBookings).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving grooming bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":              user,
		"bookings":          bookings,
		"grooming_bookings": groomingBookings,
	})
}
