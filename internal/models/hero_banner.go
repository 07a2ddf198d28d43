package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HeroBanner struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	Title     string    `gorm:"not null"`
	ImagePath string    `gorm:"not null"`
	LinkURL   string
	IsActive  bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
