package services

import (
	"context"
	"net/http"

	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/caching/stores"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/tenant"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/vtex"
)

// LogisticsService serves the account's configured holidays. Unlike the
// cart result this read is cacheable, per tenant, for a day.
type LogisticsService struct {
	httpClient *http.Client
	store      *stores.HolidayStore
	logger     *logging.ChanneledLogger
}

// NewLogisticsService creates the logistics service
func NewLogisticsService(httpClient *http.Client, store *stores.HolidayStore, logger *logging.ChanneledLogger) *LogisticsService {
	return &LogisticsService{
		httpClient: httpClient,
		store:      store,
		logger:     logger,
	}
}

// ListHolidays returns the tenant's holiday calendar, cached.
func (s *LogisticsService) ListHolidays(ctx context.Context, tenantCtx *tenant.Context) ([]vtex.Holiday, error) {
	if tenantCtx == nil || tenantCtx.Config == nil {
		return nil, ErrMissingTenantContext
	}

	if holidays, ok := s.store.Get(tenantCtx.TenantID); ok {
		return holidays, nil
	}

	client := vtex.NewClient(tenantCtx.Config, s.httpClient, s.logger)
	holidays, err := client.ListHolidays(ctx)
	if err != nil {
		return nil, err
	}

	s.store.Set(tenantCtx.TenantID, holidays)
	s.logger.WithTenant(logging.ChannelUpstream, tenantCtx.TenantID).
		Debug("Holiday calendar refreshed", "count", len(holidays))
	return holidays, nil
}
