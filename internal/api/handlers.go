package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"leaseintel/server/config"
	"leaseintel/server/internal/dispatch"
	"leaseintel/server/internal/models"
)

// ServiceVersion is reported by the health endpoint.
const ServiceVersion = "1.0.0"

// MarketDataProvider fetches valuation data for a subject property.
type MarketDataProvider interface {
	GetMarketData(address string, bedrooms int, bathrooms float64, squareFootage int, propertyType string, radius float64) models.MarketData
}

// SyndicationChecker reports listing coverage across the site catalog.
type SyndicationChecker interface {
	CheckAllSites(address, city, state string) models.SyndicationReport
}

// SEOAnalyzer generates listing SEO recommendations.
type SEOAnalyzer interface {
	AnalyzeListingSEO(req *models.SyndicationCheckRequest, syndication models.SyndicationReport, market models.MarketData) models.SEOAnalysis
}

// ShowingsProvider fetches normalized showing records.
type ShowingsProvider interface {
	GetShowings(daysBack int, propertyID *string) models.ShowingsResult
}

// WebhookSender delivers a payload to a webhook URL.
type WebhookSender interface {
	Deliver(url string, payload interface{}) error
}

type Handler struct {
	cfg         *config.Config
	logger      *logrus.Logger
	tasks       *dispatch.TaskQueue
	market      MarketDataProvider
	syndication SyndicationChecker
	seo         SEOAnalyzer
	showings    ShowingsProvider
	webhook     WebhookSender
}

func NewHandler(cfg *config.Config, logger *logrus.Logger, tasks *dispatch.TaskQueue,
	market MarketDataProvider, syndication SyndicationChecker, seo SEOAnalyzer,
	showings ShowingsProvider, webhook WebhookSender) *Handler {
	return &Handler{
		cfg:         cfg,
		logger:      logger,
		tasks:       tasks,
		market:      market,
		syndication: syndication,
		seo:         seo,
		showings:    showings,
		webhook:     webhook,
	}
}

// Health is the root health check.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "Leasing Intelligence",
		"status":  "running",
		"version": ServiceVersion,
	})
}

// AnalyzeMarket validates the request, schedules the market analysis in the
// background and acks immediately. Results reach the caller via webhook only.
func (h *Handler) AnalyzeMarket(c *gin.Context) {
	var req models.MarketAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid market analysis request")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if req.PropertyType == "" {
		req.PropertyType = "Single Family"
	}
	if req.Radius == 0 {
		req.Radius = 0.5
	}

	err := h.tasks.Push(dispatch.Task{
		Name: "market-analysis",
		Run:  func() error { return h.processMarketAnalysis(req) },
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to schedule market analysis")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "processing",
		"message":    "Market analysis started",
		"listing_id": req.ListingID,
	})
}

// CheckSyndication validates the request, schedules the syndication check and
// SEO analysis in the background and acks immediately.
func (h *Handler) CheckSyndication(c *gin.Context) {
	var req models.SyndicationCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid syndication check request")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	err := h.tasks.Push(dispatch.Task{
		Name: "syndication-check",
		Run:  func() error { return h.processSyndicationCheck(req) },
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to schedule syndication check")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "processing",
		"message":    "Syndication check started",
		"listing_id": req.ListingID,
	})
}

// SyncShowings schedules a showing data sync and acks immediately.
func (h *Handler) SyncShowings(c *gin.Context) {
	var req models.ShowingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid showings sync request")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if req.DaysBack <= 0 {
		req.DaysBack = 30
	}

	err := h.tasks.Push(dispatch.Task{
		Name: "showings-sync",
		Run:  func() error { return h.processShowingsSync(req) },
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to schedule showings sync")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "processing",
		"message":   "Showing data sync started",
		"days_back": req.DaysBack,
	})
}
