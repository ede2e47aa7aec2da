package handlers

import (
	"net/http"

	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// HealthHandlers contains liveness endpoints
type HealthHandlers struct {
	perfTracker *performance.Tracker
}

// NewHealthHandlers creates health handlers
func NewHealthHandlers(perfTracker *performance.Tracker) *HealthHandlers {
	return &HealthHandlers{perfTracker: perfTracker}
}

// GetHealth handles GET /api/v1/health
func (h *HealthHandlers) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": h.perfTracker.Uptime().String(),
	})
}
