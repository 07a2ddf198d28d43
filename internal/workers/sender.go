package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/petsuhq/petsu-backend/internal/models"
)

// FunctionSender delivers emails through the external send-confirmation-email
// function endpoint.
type FunctionSender struct {
	URL    string
	APIKey string
	Client *http.Client
}

func NewFunctionSender(url, apiKey string) *FunctionSender {
	return &FunctionSender{
		URL:    url,
		APIKey: apiKey,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *FunctionSender) Send(ctx context.Context, email models.EmailNotification) error {
	payload, err := json.Marshal(map[string]string{
		"to":      email.Recipient,
		"subject": email.Subject,
		"body":    email.Body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.APIKey)

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("email function returned status %d", resp.StatusCode)
	}
	return nil
}
