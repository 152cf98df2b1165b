// Package showmojo fetches showing data from the ShowMojo report export API.
//
// Authentication is session-token based: a login call exchanges the account
// credentials for a token that authorizes report fetches until it expires, at
// which point the client re-authenticates once and retries.
package showmojo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"leaseintel/server/config"
	"leaseintel/server/internal/models"
)

type Client struct {
	logger   *logrus.Logger
	client   *http.Client
	email    string
	password string
	baseURL  string

	mu        sync.Mutex
	authToken string
}

func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		logger:   logger,
		email:    cfg.ShowMojo.Email,
		password: cfg.ShowMojo.Password,
		baseURL:  cfg.ShowMojo.BaseURL,
		client:   &http.Client{Timeout: time.Duration(cfg.ShowMojo.Timeout) * time.Second},
	}
}

func failure(err error) models.ShowingsResult {
	return models.ShowingsResult{
		Success:  false,
		Error:    err.Error(),
		Showings: []models.Showing{},
	}
}

// GetShowings fetches and normalizes showing records for the lookback window.
// The date range is [now - daysBack, now]. On a 401 the cached token is
// cleared and the whole call retried exactly once.
func (c *Client) GetShowings(daysBack int, propertyID *string) models.ShowingsResult {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -daysBack)
	startStr := startDate.Format("2006-01-02")
	endStr := endDate.Format("2006-01-02")

	params := url.Values{
		"start_date": []string{startStr},
		"end_date":   []string{endStr},
	}
	if propertyID != nil && *propertyID != "" {
		params.Set("property_id", *propertyID)
	}

	c.logger.WithFields(logrus.Fields{
		"start_date": startStr,
		"end_date":   endStr,
	}).Info("Fetching ShowMojo showing data")

	for attempt := 0; attempt < 2; attempt++ {
		token, err := c.token()
		if err != nil {
			if attempt == 0 {
				return failure(fmt.Errorf("authentication failed: %v", err))
			}
			return failure(fmt.Errorf("re-authentication failed: %v", err))
		}

		req, err := http.NewRequest("GET", c.baseURL+"/reports/prospect_showing_data", nil)
		if err != nil {
			return failure(fmt.Errorf("failed to create request: %v", err))
		}
		req.URL.RawQuery = params.Encode()
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return failure(fmt.Errorf("request failed: %v", err))
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return failure(fmt.Errorf("failed to read response: %v", err))
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			var raw interface{}
			if err := json.Unmarshal(body, &raw); err != nil {
				return failure(fmt.Errorf("failed to parse response: %v", err))
			}
			return models.ShowingsResult{
				Success:       true,
				SyncTimestamp: time.Now().Format(time.RFC3339),
				StartDate:     startStr,
				EndDate:       endStr,
				Showings:      parseShowings(raw),
			}

		case resp.StatusCode == http.StatusUnauthorized && attempt == 0:
			// Token expired: drop it and go around once more
			c.logger.Info("ShowMojo token expired, re-authenticating")
			c.clearToken()

		default:
			return failure(fmt.Errorf("API request failed: %d", resp.StatusCode))
		}
	}

	return failure(fmt.Errorf("API request failed: %d", http.StatusUnauthorized))
}

// TestConnection verifies the configured credentials by authenticating.
func (c *Client) TestConnection() bool {
	c.clearToken()
	if _, err := c.token(); err != nil {
		c.logger.WithError(err).Error("ShowMojo connection test failed")
		return false
	}
	c.logger.Info("ShowMojo connection successful")
	return true
}

// token returns the cached session token, logging in when none is held.
func (c *Client) token() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.authToken != "" {
		return c.authToken, nil
	}

	payload, err := json.Marshal(map[string]string{
		"email":    c.email,
		"password": c.password,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal credentials: %v", err)
	}

	resp, err := c.client.Post(c.baseURL+"/auth/login", "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("login request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d", resp.StatusCode)
	}

	var data struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("failed to parse login response: %v", err)
	}
	if data.Token == "" {
		return "", fmt.Errorf("login response contained no token")
	}

	c.authToken = data.Token
	return c.authToken, nil
}

func (c *Client) clearToken() {
	c.mu.Lock()
	c.authToken = ""
	c.mu.Unlock()
}

// parseShowings normalizes the report payload, which may be a bare list, a
// dict with a known list key, or a nested response envelope. Failing all
// probes, the first list value found in the dict is used.
func parseShowings(raw interface{}) []models.Showing {
	items := extractList(raw)

	showings := make([]models.Showing, 0, len(items))
	for i, entry := range items {
		item, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}

		showing := models.Showing{
			PropertyID:      strField(item, "property_id"),
			PropertyAddress: strField(item, "property_address", "address"),
			ProspectName:    strField(item, "prospect_name", "name"),
			ProspectEmail:   strField(item, "prospect_email", "email"),
			ProspectPhone:   strField(item, "prospect_phone", "phone"),
			ShowingDate:     strField(item, "showing_date", "date", "showtime"),
			ShowingTime:     strField(item, "showing_time", "time", "showtime"),
			Status:          strField(item, "status"),
			Confirmed:       boolField(item, "confirmed"),
			Attended:        boolPtrField(item, "attended"),
			Cancelled:       boolField(item, "cancelled"),
			Notes:           strField(item, "notes"),
			CreatedAt:       strField(item, "created_at"),
			UpdatedAt:       strField(item, "updated_at"),
		}

		if id := strField(item, "id", "showing_id"); id != nil {
			showing.ShowingID = *id
		} else {
			showing.ShowingID = fmt.Sprintf("showing-%d", i)
		}

		showings = append(showings, showing)
	}
	return showings
}

func extractList(raw interface{}) []interface{} {
	if items, ok := raw.([]interface{}); ok {
		return items
	}

	dict, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}

	for _, key := range []string{"showings", "data", "results", "rows"} {
		if items, ok := dict[key].([]interface{}); ok {
			return items
		}
	}

	if envelope, ok := dict["response"].(map[string]interface{}); ok {
		if items, ok := envelope["data"].([]interface{}); ok {
			return items
		}
	}

	for _, value := range dict {
		if items, ok := value.([]interface{}); ok {
			return items
		}
	}
	return nil
}

// strField returns the first present key as a string, converting numeric
// identifiers. Nil when every key is absent.
func strField(item map[string]interface{}, keys ...string) *string {
	for _, key := range keys {
		switch v := item[key].(type) {
		case string:
			if v != "" {
				return &v
			}
		case float64:
			s := strconv.FormatFloat(v, 'f', -1, 64)
			return &s
		}
	}
	return nil
}

func boolField(item map[string]interface{}, key string) bool {
	v, _ := item[key].(bool)
	return v
}

func boolPtrField(item map[string]interface{}, key string) *bool {
	if v, ok := item[key].(bool); ok {
		return &v
	}
	return nil
}
