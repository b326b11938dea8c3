package routes

import (
	"context"
	"net/http"
	"time"

	"sankofa/internal/config"
	"sankofa/internal/delivery/http/handler"
	"sankofa/internal/infrastructure/database/postgres"
	"sankofa/internal/logger"
	"sankofa/internal/middleware"
	"sankofa/internal/realtime"

	"github.com/gin-gonic/gin"
)

const maxRequestBody = 10 << 20

func SetupRoutes(cfg *config.Config, db *postgres.DB, svc *Services, hub *realtime.Hub) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Add middleware in order: recovery, request ID, logging, security headers, CORS, request size limit, general rate limit, error rendering
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(maxRequestBody))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := db.Health(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	userHandler := handler.NewUserHandler(svc.User)
	collectionHandler := handler.NewCollectionHandler(svc.Collection)
	hubHandler := handler.NewHubHandler(svc.Hub)
	donationHandler := handler.NewDonationHandler(svc.Donation)
	healthDataHandler := handler.NewHealthDataHandler(svc.HealthData)
	paymentHandler := handler.NewPaymentHandler(svc.Payment)
	messageHandler := handler.NewMessageHandler(svc.Message)
	volunteerHandler := handler.NewVolunteerHandler(svc.Volunteer)
	analyticsHandler := handler.NewAnalyticsHandler(svc.Analytics)
	assistantHandler := handler.NewAssistantHandler(svc.Assistant)
	ingestionHandler := handler.NewIngestionHandler(svc.Ingestion)

	v1 := router.Group("/api/v1")
	{
		donationHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg, svc.User))
		{
			userHandler.RegisterProfileRoutes(protected)
			collectionHandler.RegisterRoutes(protected)
			hubHandler.RegisterRoutes(protected)
			donationHandler.RegisterRoutes(protected)
			healthDataHandler.RegisterRoutes(protected)
			paymentHandler.RegisterRoutes(protected)
			messageHandler.RegisterRoutes(protected)
			volunteerHandler.RegisterRoutes(protected)
			assistantHandler.RegisterRoutes(protected)

			if hub != nil {
				handler.NewRealtimeHandler(hub, cfg.CORS.AllowedOrigins).RegisterRoutes(protected)
			}

			// Staff routes
			staff := protected.Group("")
			staff.Use(middleware.StaffOnly())
			{
				analyticsHandler.RegisterRoutes(staff)
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				userHandler.RegisterAdminRoutes(admin)
				ingestionHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
