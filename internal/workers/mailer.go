package workers

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/petsuhq/petsu-backend/internal/metrics"
	"github.com/petsuhq/petsu-backend/internal/models"
)

type Mailbox interface {
	DueEmails(ctx context.Context, now time.Time, limit int) ([]models.EmailNotification, error)
	MarkEmailSent(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkEmailFailed(ctx context.Context, id uuid.UUID, attempts int, lastError string, nextAttempt time.Time, dead bool) error
}

type Sender interface {
	Send(ctx context.Context, email models.EmailNotification) error
}

// Mailer drains the email outbox. Each row is retried with exponential
// backoff until it sends or runs out of attempts.
type Mailer struct {
	store       Mailbox
	sender      Sender
	maxAttempts int
	baseDelay   time.Duration
	batchSize   int
	now         func() time.Time
}

func NewMailer(store Mailbox, sender Sender) *Mailer {
	return &Mailer{
		store:       store,
		sender:      sender,
		maxAttempts: 5,
		baseDelay:   30 * time.Second,
		batchSize:   20,
		now:         time.Now,
	}
}

// Start runs the dispatch loop until stop closes.
func (m *Mailer) Start(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.RunOnce(context.Background())
			case <-stop:
				return
			}
		}
	}()
}

// RunOnce processes one batch of due outbox rows.
func (m *Mailer) RunOnce(ctx context.Context) {
	emails, err := m.store.DueEmails(ctx, m.now(), m.batchSize)
	if err != nil {
		log.Printf("mailer: failed to fetch due emails: %v", err)
		return
	}

	for _, email := range emails {
		if err := m.sender.Send(ctx, email); err != nil {
			attempts := email.Attempts + 1
			dead := attempts >= m.maxAttempts
			next := m.now().Add(backoff(m.baseDelay, attempts))
			if markErr := m.store.MarkEmailFailed(ctx, email.ID, attempts, err.Error(), next, dead); markErr != nil {
				log.Printf("mailer: failed to record delivery failure for %s: %v", email.ID, markErr)
			}
			metrics.EmailsDispatched.WithLabelValues("failure").Inc()
			log.Printf("mailer: delivery to %s failed (attempt %d/%d): %v", email.Recipient, attempts, m.maxAttempts, err)
			continue
		}

		if err := m.store.MarkEmailSent(ctx, email.ID, m.now()); err != nil {
			log.Printf("mailer: failed to mark email %s sent: %v", email.ID, err)
			continue
		}
		metrics.EmailsDispatched.WithLabelValues("success").Inc()
	}
}

// backoff doubles per attempt, capped at one hour.
func backoff(base time.Duration, attempts int) time.Duration {
	delay := base
	for i := 1; i < attempts; i++ {
		delay *= 2
		if delay >= time.Hour {
			return time.Hour
		}
	}
	return delay
}
