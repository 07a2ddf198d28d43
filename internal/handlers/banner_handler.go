package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petsuhq/petsu-backend/internal/helpers"
	"github.com/petsuhq/petsu-backend/internal/models"
)

// ListActiveBanners feeds the home page carousel.
func ListActiveBanners(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var banners []models.HeroBanner
	if err := gormDB.Where("is_active = ?", true).Order("created_at DESC").Find(&banners).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving banners.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"banners": banners})
}

func CreateBanner(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Title is required.")
		return
	}

	imageFile, err := c.FormFile("image")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Banner image is required.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	imagePath, err := helpers.UploadFile(c, imageFile, "banners")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	isActive := true
	if v := c.PostForm("is_active"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "is_active must be true or false.")
			return
		}
		isActive = parsed
	}

	banner := models.HeroBanner{
		ID:        uuid.New(),
		Title:     title,
		ImagePath: imagePath,
		LinkURL:   c.PostForm("link_url"),
		IsActive:  isActive,
	}

	if err := gormDB.Create(&banner).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create banner.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"banner": banner})
}

func UpdateBanner(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var banner models.HeroBanner
	if err := gormDB.First(&banner, "id = ?", c.Param("id")).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Banner not found.")
		return
	}

	updates := map[string]interface{}{}
	if title := c.PostForm("title"); title != "" {
		updates["title"] = title
	}
	if linkURL := c.PostForm("link_url"); linkURL != "" {
		updates["link_url"] = linkURL
	}
	if v := c.PostForm("is_active"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "is_active must be true or false.")
			return
		}
		updates["is_active"] = parsed
	}

	if imageFile, err := c.FormFile("image"); err == nil {
		imagePath, err := helpers.UploadFile(c, imageFile, "banners")
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		if banner.ImagePath != "" {
			helpers.DeleteFile(banner.ImagePath)
		}
		updates["image_path"] = imagePath
	}

	if len(updates) == 0 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Nothing to update.")
		return
	}

	if err := gormDB.Model(&banner).Updates(updates).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update banner.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"banner": banner})
}

func DeleteBanner(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var banner models.HeroBanner
	if err := gormDB.First(&banner, "id = ?", c.Param("id")).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Banner not found.")
		return
	}

	if err := gormDB.Delete(&banner).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete banner.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Banner deleted."})
}
