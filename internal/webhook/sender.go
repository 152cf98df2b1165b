// Package webhook delivers completed task results to the configured Lovable
// endpoints. Delivery is fire-and-forget: callers log failures and move on.
package webhook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"leaseintel/server/config"
)

type Sender struct {
	logger *logrus.Logger
	client *http.Client
	token  string
}

func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		logger: logger,
		token:  cfg.Webhook.AuthToken,
		client: &http.Client{Timeout: time.Duration(cfg.Webhook.Timeout) * time.Second},
	}
}

// Deliver POSTs a JSON payload to the target URL with bearer-token
// authorization. One attempt, no retries.
func (s *Sender) Deliver(url string, payload interface{}) error {
	if url == "" {
		return errors.New("webhook URL is not configured")
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %v", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return errors.New("webhook rejected the auth token - check LOVABLE_AUTH_TOKEN")
		case http.StatusNotFound:
			return errors.New("webhook URL not found - check the configured endpoint")
		default:
			return fmt.Errorf("webhook error (status %d): %s", resp.StatusCode, string(body))
		}
	}

	s.logger.WithField("url", url).Info("Webhook delivered")
	return nil
}
