package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupCORS configures CORS middleware
func setupCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	allowedOrigins := []string{"http://localhost:3000"}

	if os.Getenv("ENV") == "production" {
		corsConfig.AllowAllOrigins = false
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}

	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Requested-With"}
	corsConfig.ExposeHeaders = []string{"Content-Length", "X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour

	return cors.New(corsConfig)
}

// setupRoutes configures all routes
func (a *App) setupRoutes() {
	a.Router.Use(setupCORS())

	a.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := a.Router.Group("/api")
	{
		api.POST("/search", a.SearchHandler.Search)
	}
}
