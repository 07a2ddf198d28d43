package config

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/xendit/xendit-go/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/petsuhq/petsu-backend/internal/models"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}, nil
}

type XenditConfig struct {
	SecretKey string
	PublicKey string
}

func LoadXenditConfig() (*XenditConfig, error) {
	return &XenditConfig{
		SecretKey: os.Getenv("XENDIT_SECRET_KEY"),
		PublicKey: os.Getenv("XENDIT_PUBLIC_KEY"),
	}, nil
}

func InitXenditClient(config *XenditConfig) (*xendit.APIClient, error) {
	client := xendit.NewClient(config.SecretKey)

	return client, nil
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Event{},
		&models.Booking{},
		&models.GroomerProfile{},
		&models.GroomingPackage{},
		&models.GroomerTimeSlot{},
		&models.GroomingBooking{},
		&models.VetProfile{},
		&models.Consultation{},
		&models.ConsultationMessage{},
		&models.PayoutRequest{},
		&models.EmailNotification{},
		&models.HeroBanner{},
	)
	if err != nil {
		return nil, err
	}

	seedRoles(db)
	seedAdmin(db)

	return db, nil
}

func seedRoles(db *gorm.DB) {
	roles := []models.Role{
		{Name: "pet_owner"},
		{Name: "organizer"},
		{Name: "groomer"},
		{Name: "vet"},
		{Name: "admin"},
	}

	for _, role := range roles {
		var existingRole models.Role
		result := db.Where("name = ?", role.Name).First(&existingRole)
		if result.Error != nil {
			db.Create(&role)
		}
	}
}

// seedAdmin creates the admin account from ADMIN_EMAIL/ADMIN_PASSWORD. The
// admin role cannot be chosen at registration, so this is the only way an
// admin user comes into existence.
func seedAdmin(db *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seeding.")
		return
	}

	var adminRole models.Role
	if err := db.Where("name = ?", "admin").First(&adminRole).Error; err != nil {
		log.Printf("admin role missing, skipping admin seeding: %v", err)
		return
	}

	var existing models.User
	if result := db.Where("email = ?", email).First(&existing); result.Error == nil {
		return
	}

	admin, err := newAdminUser(email, password, adminRole.ID)
	if err != nil {
		log.Printf("failed to build admin user: %v", err)
		return
	}
	if err := db.Create(admin).Error; err != nil {
		log.Printf("failed to seed admin user: %v", err)
	}
}

func newAdminUser(email, password string, roleID uuid.UUID) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("admin email and password are required")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &models.User{
		ID:       uuid.New(),
		Name:     "Admin",
		Email:    email,
		Password: string(hashed),
		RoleID:   roleID,
	}, nil
}
