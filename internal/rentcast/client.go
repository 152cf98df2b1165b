// Package rentcast wraps the RentCast valuation API: long-term rent estimates
// and comparable rental listings.
package rentcast

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"leaseintel/server/config"
	"leaseintel/server/internal/marketstats"
	"leaseintel/server/internal/models"
)

const comparablesLimit = 50

type Client struct {
	logger  *logrus.Logger
	client  *http.Client
	apiKey  string
	baseURL string
}

func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		logger:  logger,
		apiKey:  cfg.RentCast.APIKey,
		baseURL: cfg.RentCast.BaseURL,
		client:  &http.Client{Timeout: time.Duration(cfg.RentCast.Timeout) * time.Second},
	}
}

// GetMarketData fetches a rent estimate and comparable listings for a subject
// property and aggregates them into market statistics. Upstream failures
// degrade instead of aborting: a failed estimate call yields a nil estimate, a
// failed comparable search yields an empty list and all-zero statistics.
func (c *Client) GetMarketData(address string, bedrooms int, bathrooms float64, squareFootage int, propertyType string, radius float64) models.MarketData {
	estimate, err := c.getRentEstimate(address)
	if err != nil {
		c.logger.WithError(err).WithField("address", address).Error("Rent estimate lookup failed")
		estimate = nil
	}

	comparables, err := c.getComparables(address, bedrooms, bathrooms, propertyType, radius)
	if err != nil {
		c.logger.WithError(err).WithField("address", address).Error("Comparable search failed")
		comparables = nil
	}

	return models.MarketData{
		Success:      true,
		RentEstimate: estimate,
		Comparables:  comparables,
		MarketStats:  marketstats.Calculate(comparables, squareFootage),
		Radius:       radius,
	}
}

// getRentEstimate returns the raw estimate payload for an address.
func (c *Client) getRentEstimate(address string) (json.RawMessage, error) {
	params := url.Values{"address": []string{address}}
	body, err := c.get("/avm/rent/long-term", params)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// getComparables searches nearby rental listings matching the subject
// attributes, bounded to 50 results.
func (c *Client) getComparables(address string, bedrooms int, bathrooms float64, propertyType string, radius float64) ([]models.Comparable, error) {
	params := url.Values{
		"address":      []string{address},
		"bedrooms":     []string{strconv.Itoa(bedrooms)},
		"bathrooms":    []string{strconv.FormatFloat(bathrooms, 'f', -1, 64)},
		"propertyType": []string{propertyType},
		"radius":       []string{strconv.FormatFloat(radius, 'f', -1, 64)},
		"limit":        []string{strconv.Itoa(comparablesLimit)},
	}

	body, err := c.get("/listings/rental/long-term", params)
	if err != nil {
		return nil, err
	}

	// The listings endpoint returns a bare array
	var comparables []models.Comparable
	if err := json.Unmarshal(body, &comparables); err != nil {
		return nil, fmt.Errorf("failed to parse comparables: %v", err)
	}
	return comparables, nil
}

func (c *Client) get(path string, params url.Values) ([]byte, error) {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("RentCast error (status %d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}
