// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/AtRiskMedia/cartgate-go/internal/application/container"
	"github.com/AtRiskMedia/cartgate-go/internal/presentation/http/handlers"
	"github.com/AtRiskMedia/cartgate-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.MetricsMiddleware())

	// Prometheus scrape endpoint, outside the tenant-scoped API
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Operator endpoints, also outside the tenant-scoped API
	sysopHandlers := handlers.NewSysopHandlers(container.Logger, container.PerfTracker)
	sysop := r.Group("/sysop")
	{
		sysop.GET("/log-levels", sysopHandlers.GetLogLevels)
		sysop.PUT("/log-levels", sysopHandlers.PutLogLevel)
		sysop.GET("/performance", sysopHandlers.GetRecentMarkers)
	}

	// Initialize handlers
	cartHandlers := handlers.NewCartHandlers(container.CartService, container.Logger, container.PerfTracker)
	credentialsHandlers := handlers.NewCredentialsHandlers(container.CredentialsService, container.Logger, container.PerfTracker)
	newsletterHandlers := handlers.NewNewsletterHandlers(container.NewsletterService, container.Logger, container.PerfTracker)
	logisticsHandlers := handlers.NewLogisticsHandlers(container.LogisticsService, container.Logger, container.PerfTracker)
	healthHandlers := handlers.NewHealthHandlers(container.PerfTracker)

	// API routes with tenant middleware
	api := r.Group("/api/v1")
	api.Use(middleware.TenantMiddleware(container.TenantManager, container.PerfTracker))
	{
		api.GET("/health", healthHandlers.GetHealth)

		// Cart reconciliation endpoints
		cart := api.Group("/checkout")
		cart.Use(middleware.SegmentMiddleware(container.Logger))
		{
			cart.GET("/cart", cartHandlers.GetCart)
			cart.POST("/cart", cartHandlers.GetCart)
		}

		// Identity provider pass-through
		api.POST("/credentials/validate", credentialsHandlers.PostValidate)

		// Newsletter opt-in
		api.POST("/newsletter/opt-in", newsletterHandlers.PostOptIn)

		// Logistics lookups
		api.GET("/logistics/holidays", logisticsHandlers.GetHolidays)
	}

	return r
}
