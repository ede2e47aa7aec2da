// Package container provides dependency injection for all singleton services
package container

import (
	"net/http"

	"github.com/AtRiskMedia/cartgate-go/internal/application/services"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/caching/stores"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/performance"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/tenant"
	"github.com/AtRiskMedia/cartgate-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application services (stateless singletons)
	CartService        *services.CartService
	CredentialsService *services.CredentialsService
	NewsletterService  *services.NewsletterService
	LogisticsService   *services.LogisticsService

	// Infrastructure dependencies
	TenantManager *tenant.Manager
	HolidayStore  *stores.HolidayStore
	HTTPClient    *http.Client
	Logger        *logging.ChanneledLogger
	PerfTracker   *performance.Tracker
}

// NewContainer creates and wires all singleton services
func NewContainer(tenantManager *tenant.Manager, logger *logging.ChanneledLogger) *Container {
	// One shared client for every upstream call; it owns the transport
	// timeout. The gateway layers no retries or caching on top of it.
	httpClient := &http.Client{Timeout: config.UpstreamTimeout}
	holidayStore := stores.NewHolidayStore(config.HolidayCacheTTL)

	return &Container{
		CartService:        services.NewCartService(httpClient, logger),
		CredentialsService: services.NewCredentialsService(httpClient, logger),
		NewsletterService:  services.NewNewsletterService(httpClient, logger),
		LogisticsService:   services.NewLogisticsService(httpClient, holidayStore, logger),

		TenantManager: tenantManager,
		HolidayStore:  holidayStore,
		HTTPClient:    httpClient,
		Logger:        logger,
		PerfTracker:   performance.NewTracker(),
	}
}
