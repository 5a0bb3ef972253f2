package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orfeus-data/availability-backend-go/internal/config"
	"github.com/orfeus-data/availability-backend-go/internal/handler"
	"github.com/orfeus-data/availability-backend-go/internal/middleware"
	"github.com/orfeus-data/availability-backend-go/internal/repository"
	"github.com/orfeus-data/availability-backend-go/internal/service"
)

const serviceVersion = "1.0.0"

// SetupRouter wires the repositories, services and handlers onto a gin
// engine.
func SetupRouter(cfg *config.Config, db *sql.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Availability backend is running",
		})
	})

	availRepo := repository.NewAvailabilityRepository(db)
	stationRepo := repository.NewStationRepository(db)
	availService := service.NewAvailabilityService(availRepo, stationRepo, cfg.MaxRows)
	availHandler := handler.NewAvailabilityHandler(availService)
	adminHandler := handler.NewAdminHandler(availRepo, stationRepo)

	fdsn := r.Group("/fdsnws/availability/1")
	fdsn.Use(middleware.RateLimit(cfg.RateLimit, time.Minute))
	{
		fdsn.GET("/query", availHandler.Query)
		fdsn.GET("/extent", availHandler.Extent)
		fdsn.GET("/version", func(c *gin.Context) {
			c.String(http.StatusOK, serviceVersion)
		})
	}

	admin := r.Group("/admin")
	admin.Use(middleware.Auth(cfg.JWTSecret))
	{
		admin.POST("/segments", adminHandler.IngestSegments)
		admin.POST("/stations", adminHandler.IngestStations)
	}

	return r
}
