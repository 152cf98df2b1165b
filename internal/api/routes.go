package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/", handler.Health)

	api := router.Group("/api")
	{
		api.POST("/analyze-market", handler.AnalyzeMarket)
		api.POST("/check-syndication", handler.CheckSyndication)
		api.POST("/sync-showings", handler.SyncShowings)
	}
}
