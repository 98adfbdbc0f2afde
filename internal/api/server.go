package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer builds the HTTP surface: the public tracking endpoint plus the
// key-protected administrative API.
func NewServer(handler *Handler, apiAccessKey string, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))

	r.GET("/health", handler.GetHealth)
	r.POST("/track", handler.Track)

	api := r.Group("/api")
	api.Use(authMiddleware(apiAccessKey))
	{
		api.GET("/settings", handler.GetSettings)
		api.PUT("/settings", handler.SaveSettings)
		api.GET("/payouts/preview", handler.PreviewPayouts)
		api.POST("/payouts/run", handler.RunPayoutCycle)
		api.GET("/payouts/logs", handler.ListPayoutLogs)
		api.GET("/payouts/stats", handler.GetPayoutStats)
	}

	return r
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiAccessKey == "" || c.GetHeader("X-API-Key") != apiAccessKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
			return
		}
		c.Next()
	}
}
