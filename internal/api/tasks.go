package api

import (
	"encoding/json"
	"fmt"
	"math"

	"leaseintel/server/internal/models"
)

const comparablesBound = 50

// processMarketAnalysis runs in the background: fetch market data, reshape it
// into the flattened webhook payload and deliver it once.
func (h *Handler) processMarketAnalysis(req models.MarketAnalysisRequest) error {
	h.logger.WithField("address", req.Address).Info("Starting market analysis")

	address := fullAddress(req.Address, req.City, req.State)
	market := h.market.GetMarketData(address, req.Bedrooms, req.Bathrooms, req.SquareFootage, req.PropertyType, req.Radius)
	if !market.Success {
		return fmt.Errorf("market analysis failed: %s", market.Error)
	}

	stats := market.MarketStats

	listingRentPerSqft := 0.0
	if req.SquareFootage > 0 {
		listingRentPerSqft = round2(float64(req.CurrentRent) / float64(req.SquareFootage))
	}

	rentVsMarketPct := 0.0
	if stats.MarketAvgRent > 0 {
		rentVsMarketPct = round2(float64(req.CurrentRent-stats.MarketAvgRent) / float64(stats.MarketAvgRent) * 100)
	}

	domVsMarketPct := 0.0
	if stats.MarketAvgDOM > 0 {
		domVsMarketPct = round2(float64(req.DaysOnMarket-stats.MarketAvgDOM) / float64(stats.MarketAvgDOM) * 100)
	}

	comparables := market.Comparables
	if len(comparables) > comparablesBound {
		comparables = comparables[:comparablesBound]
	}
	comps := make([]map[string]interface{}, 0, len(comparables))
	for _, c := range comparables {
		compRentPerSqft := 0.0
		if c.SquareFootage > 0 {
			compRentPerSqft = round2(float64(c.Price) / float64(c.SquareFootage))
		}
		status := c.Status
		if status == "" {
			status = "Unknown"
		}
		comps = append(comps, map[string]interface{}{
			"comp_address":        c.Address,
			"comp_rent":           c.Price,
			"comp_rent_per_sqft":  compRentPerSqft,
			"comp_bedrooms":       c.Bedrooms,
			"comp_bathrooms":      c.Bathrooms,
			"comp_square_footage": c.SquareFootage,
			"comp_days_on_market": c.DaysOnMarket,
			"comp_status":         status,
			"distance":            c.Distance,
		})
	}

	// Stats land at the top level of the payload, not nested
	payload := map[string]interface{}{
		"listing_id":            req.ListingID,
		"radius":                req.Radius,
		"listing_rent_per_sqft": listingRentPerSqft,
		"rent_vs_market_pct":    rentVsMarketPct,
		"dom_vs_market_pct":     domVsMarketPct,
		"comparables":           comps,
	}
	if err := mergeJSON(payload, stats); err != nil {
		return fmt.Errorf("failed to flatten market stats: %v", err)
	}

	if err := h.webhook.Deliver(h.cfg.Webhook.MarketURL, payload); err != nil {
		return fmt.Errorf("failed to deliver market data for %s: %v", req.ListingID, err)
	}

	h.logger.WithField("listing_id", req.ListingID).Info("Market data sent to webhook")
	return nil
}

// processSyndicationCheck runs in the background: coverage report, market
// context for the AI pass, SEO analysis, one webhook delivery.
func (h *Handler) processSyndicationCheck(req models.SyndicationCheckRequest) error {
	h.logger.WithField("address", req.Address).Info("Starting syndication check")

	report := h.syndication.CheckAllSites(req.Address, req.City, req.State)

	// Market context for the AI prompt
	address := fullAddress(req.Address, req.City, req.State)
	market := h.market.GetMarketData(address, req.Bedrooms, req.Bathrooms, req.SquareFootage, "Single Family", 0.5)

	analysis := h.seo.AnalyzeListingSEO(&req, report, market)
	h.logger.WithFields(map[string]interface{}{
		"listing_id": req.ListingID,
		"seo_score":  analysis.OverallSEOScore,
	}).Info("SEO analysis complete")

	payload := map[string]interface{}{
		"listing_id":        req.ListingID,
		"overall_seo_score": analysis.OverallSEOScore,
		"site_scores":       analysis.SiteScores,
		"ai_recommendations": map[string]interface{}{
			"quick_wins":            analysis.QuickWins,
			"high_priority_actions": analysis.HighPriorityActions,
			"site_specific_tips":    analysis.SiteSpecificTips,
		},
	}
	if err := mergeJSON(payload, report); err != nil {
		return fmt.Errorf("failed to flatten syndication report: %v", err)
	}

	if err := h.webhook.Deliver(h.cfg.Webhook.SyndicationURL, payload); err != nil {
		return fmt.Errorf("failed to deliver syndication results for %s: %v", req.ListingID, err)
	}

	h.logger.WithField("listing_id", req.ListingID).Info("Syndication results sent to webhook")
	return nil
}

// processShowingsSync runs in the background: fetch the lookback window from
// the CRM and relay the normalized records.
func (h *Handler) processShowingsSync(req models.ShowingsRequest) error {
	h.logger.WithField("days_back", req.DaysBack).Info("Starting showings sync")

	result := h.showings.GetShowings(req.DaysBack, req.PropertyID)
	if !result.Success {
		return fmt.Errorf("showings sync failed: %s", result.Error)
	}

	payload := map[string]interface{}{
		"sync_timestamp": result.SyncTimestamp,
		"days_back":      req.DaysBack,
		"total_showings": len(result.Showings),
		"showings":       result.Showings,
	}

	if err := h.webhook.Deliver(h.cfg.ShowingsWebhookURL(), payload); err != nil {
		return fmt.Errorf("failed to deliver showings: %v", err)
	}

	h.logger.WithField("total_showings", len(result.Showings)).Info("Showing data sent to webhook")
	return nil
}

func fullAddress(address, city, state string) string {
	return fmt.Sprintf("%s, %s, %s", address, city, state)
}

// mergeJSON flattens a struct's JSON fields into an existing payload map.
func mergeJSON(payload map[string]interface{}, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &payload)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
