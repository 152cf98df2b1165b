// Package seo generates AI-written SEO recommendations for rental listings
// via the OpenAI chat completions API.
package seo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"leaseintel/server/config"
	"leaseintel/server/internal/models"
)

const systemPrompt = `You are an expert SEO analyst specializing in rental property listings.
Your job is to analyze rental listings and provide actionable SEO recommendations to improve visibility on major rental sites like Zillow, Zumper, HotPads, Realtor.com, Redfin, and Trulia.

You must respond with a JSON object containing:
{
  "overall_seo_score": 0-100,
  "quick_wins": ["action 1", "action 2", "action 3"],
  "high_priority_actions": ["action 1", "action 2", "action 3"],
  "site_specific_tips": {
    "Zillow": ["tip 1", "tip 2"],
    "Zumper": ["tip 1", "tip 2"],
    "HotPads": ["tip 1", "tip 2"],
    "Realtor.com": ["tip 1", "tip 2"],
    "Redfin": ["tip 1", "tip 2"],
    "Trulia": ["tip 1", "tip 2"]
  },
  "site_scores": {
    "Zillow": 0-100,
    "Zumper": 0-100,
    "HotPads": 0-100,
    "Realtor.com": 0-100,
    "Redfin": 0-100,
    "Trulia": 0-100
  }
}

Quick wins should be actions that take less than 30 minutes.
High priority actions should have the biggest impact on visibility.
Site-specific tips should be tailored to each platform's ranking algorithm.
Site scores should reflect how well optimized the listing is for each specific site.`

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []message      `json:"messages"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type Analyzer struct {
	logger  *logrus.Logger
	client  *http.Client
	apiKey  string
	baseURL string
	model   string
}

func NewAnalyzer(cfg *config.Config, logger *logrus.Logger) *Analyzer {
	return &Analyzer{
		logger:  logger,
		apiKey:  cfg.OpenAI.APIKey,
		baseURL: cfg.OpenAI.BaseURL,
		model:   cfg.OpenAI.Model,
		client:  &http.Client{Timeout: time.Duration(cfg.OpenAI.Timeout) * time.Second},
	}
}

// AnalyzeListingSEO submits the listing context to the completion API and
// parses the JSON-shaped recommendations. Any call or parse failure yields the
// neutral fallback result instead of an error.
func (a *Analyzer) AnalyzeListingSEO(req *models.SyndicationCheckRequest, syndication models.SyndicationReport, market models.MarketData) models.SEOAnalysis {
	content, err := a.complete(buildContext(req, syndication, market))
	if err != nil {
		a.logger.WithError(err).Error("SEO analysis failed")
		return fallback(err)
	}

	var parsed struct {
		OverallSEOScore     int                 `json:"overall_seo_score"`
		QuickWins           []string            `json:"quick_wins"`
		HighPriorityActions []string            `json:"high_priority_actions"`
		SiteSpecificTips    map[string][]string `json:"site_specific_tips"`
		SiteScores          map[string]int      `json:"site_scores"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		a.logger.WithError(err).Error("Failed to parse SEO analysis response")
		return fallback(err)
	}

	result := models.SEOAnalysis{
		Success:             true,
		OverallSEOScore:     parsed.OverallSEOScore,
		QuickWins:           parsed.QuickWins,
		HighPriorityActions: parsed.HighPriorityActions,
		SiteSpecificTips:    parsed.SiteSpecificTips,
		SiteScores:          parsed.SiteScores,
	}
	if result.SiteSpecificTips == nil {
		result.SiteSpecificTips = map[string][]string{}
	}
	if result.SiteScores == nil {
		result.SiteScores = map[string]int{}
	}
	return result
}

func fallback(err error) models.SEOAnalysis {
	return models.SEOAnalysis{
		Success:             false,
		Error:               err.Error(),
		OverallSEOScore:     50,
		QuickWins:           []string{"Error generating recommendations"},
		HighPriorityActions: []string{},
		SiteSpecificTips:    map[string][]string{},
		SiteScores:          map[string]int{},
	}
}

func (a *Analyzer) complete(context string) (string, error) {
	reqBody := chatRequest{
		Model: a.model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: context},
		},
		Temperature:    0.7,
		MaxTokens:      2000,
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", a.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return chatResp.Choices[0].Message.Content, nil
}

// buildContext assembles the bounded-size listing summary sent to the model:
// description cut at 500 characters, first 10 amenities, first 5 missing
// sites.
func buildContext(req *models.SyndicationCheckRequest, syndication models.SyndicationReport, market models.MarketData) string {
	description := req.Description
	if len(description) > 500 {
		description = description[:500]
	}

	amenities := req.Amenities
	if len(amenities) > 10 {
		amenities = amenities[:10]
	}

	missing := syndication.SitesNotFound
	if len(missing) > 5 {
		missing = missing[:5]
	}

	marketAvgRent := market.MarketStats.MarketAvgRent
	rentVsMarket := 0.0
	if marketAvgRent > 0 {
		rentVsMarket = float64(req.Price-marketAvgRent) / float64(marketAvgRent) * 100
	}

	pricePerSqft := 0.0
	if req.SquareFootage > 0 {
		pricePerSqft = float64(req.Price) / float64(req.SquareFootage)
	}

	return fmt.Sprintf(`Analyze this rental listing for SEO optimization:

LISTING DETAILS:
- Address: %s
- Title: %s
- Description: %s... (truncated)
- Price: $%d/month
- Bedrooms: %d
- Bathrooms: %g
- Square Footage: %d sq ft
- Price per sq ft: $%.2f
- Amenities: %s
- Photos: %d

SYNDICATION STATUS:
- Found on %d/27 sites
- Top 6 sites: %d/6 found
- Missing from: %s

MARKET ANALYSIS:
- Market average rent: $%d
- Your rent vs market: %+.1f%%
- Market average DOM: %d days
- Similar listings: %d

Provide SEO recommendations focusing on:
1. Quick wins (< 30 min) to improve visibility immediately
2. High priority actions with biggest impact
3. Site-specific optimization for Zillow, Zumper, HotPads, Realtor.com, Redfin, Trulia
4. SEO scores for each site (0-100)

Consider:
- Photo quality and quantity (Zillow loves 15+ photos)
- Title optimization (keywords, location, amenities)
- Description length and quality (250+ words performs better)
- Pricing strategy vs market
- Amenity highlighting
- Freshness (recent updates boost rankings)`,
		req.Address,
		req.Title,
		description,
		req.Price,
		req.Bedrooms,
		req.Bathrooms,
		req.SquareFootage,
		pricePerSqft,
		strings.Join(amenities, ", "),
		req.PhotosCount,
		syndication.TotalSitesFound,
		syndication.TopSitesFoundCount,
		strings.Join(missing, ", "),
		marketAvgRent,
		rentVsMarket,
		market.MarketStats.MarketAvgDOM,
		market.MarketStats.TotalSimilarListings,
	)
}
