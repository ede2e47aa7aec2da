package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// SysopHandlers exposes operator endpoints for runtime log levels and
// recent performance markers. These live outside the tenant-scoped API.
type SysopHandlers struct {
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewSysopHandlers creates sysop handlers with injected dependencies
func NewSysopHandlers(logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *SysopHandlers {
	return &SysopHandlers{
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// GetLogLevels handles GET /sysop/log-levels
func (h *SysopHandlers) GetLogLevels(c *gin.Context) {
	c.JSON(http.StatusOK, h.logger.GetChannelLevels())
}

// PutLogLevel handles PUT /sysop/log-levels - adjusts one channel's level
// at runtime without a restart.
func (h *SysopHandlers) PutLogLevel(c *gin.Context) {
	var body struct {
		Channel string `json:"channel" binding:"required"`
		Level   string `json:"level" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(body.Level)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown log level: " + body.Level})
		return
	}

	if err := h.logger.SetChannelLevel(logging.Channel(body.Channel), level); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.logger.GetChannelLevels())
}

// GetRecentMarkers handles GET /sysop/performance
func (h *SysopHandlers) GetRecentMarkers(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uptime":  h.perfTracker.Uptime().String(),
		"markers": h.perfTracker.GetRecentMarkers(limit),
	})
}
