package handlers

import (
	"net/http"

	"github.com/AtRiskMedia/cartgate-go/internal/application/services"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/performance"
	"github.com/AtRiskMedia/cartgate-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// LogisticsHandlers contains the logistics lookup HTTP handlers
type LogisticsHandlers struct {
	logisticsService *services.LogisticsService
	logger           *logging.ChanneledLogger
	perfTracker      *performance.Tracker
}

// NewLogisticsHandlers creates logistics handlers with injected dependencies
func NewLogisticsHandlers(logisticsService *services.LogisticsService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *LogisticsHandlers {
	return &LogisticsHandlers{
		logisticsService: logisticsService,
		logger:           logger,
		perfTracker:      perfTracker,
	}
}

// GetHolidays handles GET /api/v1/logistics/holidays
func (h *LogisticsHandlers) GetHolidays(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	marker := h.perfTracker.StartOperation("logistics:list_holidays", tenantCtx.TenantID)
	defer marker.Complete()

	holidays, err := h.logisticsService.ListHolidays(c.Request.Context(), tenantCtx)
	if err != nil {
		marker.SetSuccess(false)
		marker.SetError(err)
		status, payload := upstreamErrorResponse(err)
		c.JSON(status, payload)
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, holidays)
}
