package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"leaseintel/server/config"
	"leaseintel/server/internal/api"
	"leaseintel/server/internal/dispatch"
	"leaseintel/server/internal/rentcast"
	"leaseintel/server/internal/seo"
	"leaseintel/server/internal/showmojo"
	"leaseintel/server/internal/syndication"
	"leaseintel/server/internal/webhook"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Initialize upstream clients
	market := rentcast.NewClient(cfg, logger)
	checker := syndication.NewChecker(logger)
	analyzer := seo.NewAnalyzer(cfg, logger)
	showings := showmojo.NewClient(cfg, logger)
	sender := webhook.NewSender(cfg, logger)

	// Start the background task queue
	tasks := dispatch.NewTaskQueue(cfg.Dispatch.QueueSize, cfg.Dispatch.WorkerCount, logger)
	tasks.Start()
	defer tasks.Close()

	// Initialize handler
	handler := api.NewHandler(cfg, logger, tasks, market, checker, analyzer, showings, sender)

	// Initialize router
	router := gin.Default()
	router.Use(cors.Default())

	// Define routes
	api.SetupRoutes(router, handler)

	logger.Infof("Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
