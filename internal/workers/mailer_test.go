package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petsuhq/petsu-backend/internal/models"
)

type fakeMailbox struct {
	emails map[uuid.UUID]*models.EmailNotification
}

func newFakeMailbox() *fakeMailbox {
	return &fakeMailbox{emails: map[uuid.UUID]*models.EmailNotification{}}
}

func (f *fakeMailbox) add(email *models.EmailNotification) *models.EmailNotification {
	if email.ID == uuid.Nil {
		email.ID = uuid.New()
	}
	f.emails[email.ID] = email
	return email
}

func (f *fakeMailbox) DueEmails(_ context.Context, now time.Time, limit int) ([]models.EmailNotification, error) {
	var due []models.EmailNotification
	for _, e := range f.emails {
		if e.Status == models.EmailPending && !e.NextAttemptAt.After(now) {
			due = append(due, *e)
		}
		if len(due) == limit {
			break
		}
	}
	return due, nil
}

func (f *fakeMailbox) MarkEmailSent(_ context.Context, id uuid.UUID, at time.Time) error {
	e := f.emails[id]
	e.Status = models.EmailSent
	e.SentAt = &at
	return nil
}

func (f *fakeMailbox) MarkEmailFailed(_ context.Context, id uuid.UUID, attempts int, lastError string, nextAttempt time.Time, dead bool) error {
	e := f.emails[id]
	e.Attempts = attempts
	e.LastError = lastError
	e.NextAttemptAt = nextAttempt
	if dead {
		e.Status = models.EmailFailed
	}
	return nil
}

type fakeSender struct {
	err  error
	sent []string
}

func (f *fakeSender) Send(_ context.Context, email models.EmailNotification) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, email.Recipient)
	return nil
}

func newTestMailer(store *fakeMailbox, sender Sender) (*Mailer, time.Time) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mailer := NewMailer(store, sender)
	mailer.now = func() time.Time { return now }
	return mailer, now
}

func pendingEmail(now time.Time) *models.EmailNotification {
	return &models.EmailNotification{
		Recipient:     "owner@example.com",
		Subject:       "Booking confirmed",
		Body:          "See you there.",
		Status:        models.EmailPending,
		NextAttemptAt: now,
	}
}

func TestRunOnceDeliversAndMarksSent(t *testing.T) {
	t.Parallel()

	store := newFakeMailbox()
	sender := &fakeSender{}
	mailer, now := newTestMailer(store, sender)
	email := store.add(pendingEmail(now))

	mailer.RunOnce(context.Background())

	assert.Equal(t, []string{"owner@example.com"}, sender.sent)
	assert.Equal(t, models.EmailSent, email.Status)
	require.NotNil(t, email.SentAt)
}

func TestRunOnceRetriesWithBackoff(t *testing.T) {
	t.Parallel()

	store := newFakeMailbox()
	sender := &fakeSender{err: errors.New("smtp unreachable")}
	mailer, now := newTestMailer(store, sender)
	email := store.add(pendingEmail(now))

	mailer.RunOnce(context.Background())

	assert.Equal(t, models.EmailPending, email.Status)
	assert.Equal(t, 1, email.Attempts)
	assert.Equal(t, "smtp unreachable", email.LastError)
	assert.Equal(t, now.Add(30*time.Second), email.NextAttemptAt)

	// not due yet, so a second run must not touch it
	mailer.RunOnce(context.Background())
	assert.Equal(t, 1, email.Attempts)
}

func TestRunOnceGivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	store := newFakeMailbox()
	sender := &fakeSender{err: errors.New("mailbox full")}
	mailer, now := newTestMailer(store, sender)
	email := store.add(pendingEmail(now))
	email.Attempts = mailer.maxAttempts - 1

	mailer.RunOnce(context.Background())

	assert.Equal(t, models.EmailFailed, email.Status)
	assert.Equal(t, mailer.maxAttempts, email.Attempts)
}

func TestBackoffDoublesAndCaps(t *testing.T) {
	t.Parallel()

	base := 30 * time.Second
	assert.Equal(t, 30*time.Second, backoff(base, 1))
	assert.Equal(t, time.Minute, backoff(base, 2))
	assert.Equal(t, 2*time.Minute, backoff(base, 3))
	assert.Equal(t, time.Hour, backoff(base, 20))
}
