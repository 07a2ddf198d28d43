package workers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petsuhq/petsu-backend/internal/models"
)

type gormMailbox struct {
	db *gorm.DB
}

func NewMailbox(db *gorm.DB) Mailbox {
	return &gormMailbox{db: db}
}

func (m *gormMailbox) DueEmails(ctx context.Context, now time.Time, limit int) ([]models.EmailNotification, error) {
	var emails []models.EmailNotification
	err := m.db.WithContext(ctx).
		Where("status = ? AND next_attempt_at <= ?", models.EmailPending, now).
		Order("next_attempt_at ASC").
		Limit(limit).
		Find(&emails).Error
	return emails, err
}

func (m *gormMailbox) MarkEmailSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.db.WithContext(ctx).Model(&models.EmailNotification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  models.EmailSent,
			"sent_at": at,
		}).Error
}

func (m *gormMailbox) MarkEmailFailed(ctx context.Context, id uuid.UUID, attempts int, lastError string, nextAttempt time.Time, dead bool) error {
	status := models.EmailPending
	if dead {
		status = models.EmailFailed
	}
	return m.db.WithContext(ctx).Model(&models.EmailNotification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":          status,
			"attempts":        attempts,
			"last_error":      lastError,
			"next_attempt_at": nextAttempt,
		}).Error
}
