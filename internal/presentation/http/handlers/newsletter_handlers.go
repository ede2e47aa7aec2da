package handlers

import (
	"net/http"

	"github.com/AtRiskMedia/cartgate-go/internal/application/services"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/performance"
	"github.com/AtRiskMedia/cartgate-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// NewsletterHandlers contains the newsletter opt-in HTTP handlers
type NewsletterHandlers struct {
	newsletterService *services.NewsletterService
	logger            *logging.ChanneledLogger
	perfTracker       *performance.Tracker
}

// NewNewsletterHandlers creates newsletter handlers with injected dependencies
func NewNewsletterHandlers(newsletterService *services.NewsletterService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *NewsletterHandlers {
	return &NewsletterHandlers{
		newsletterService: newsletterService,
		logger:            logger,
		perfTracker:       perfTracker,
	}
}

// PostOptIn handles POST /api/v1/newsletter/opt-in
func (h *NewsletterHandlers) PostOptIn(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	marker := h.perfTracker.StartOperation("newsletter:opt_in", tenantCtx.TenantID)
	defer marker.Complete()

	var body services.OptInRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.logger.Segment().Error("Newsletter opt-in JSON binding failed", "tenantId", tenantCtx.TenantID, "error", err.Error())
		marker.SetSuccess(false)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	subscribed, err := h.newsletterService.UpdateOptIn(c.Request.Context(), tenantCtx, body, c.GetHeader("Cookie"))
	if err != nil {
		marker.SetSuccess(false)
		marker.SetError(err)
		status, payload := upstreamErrorResponse(err)
		c.JSON(status, payload)
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"subscribed": subscribed})
}
