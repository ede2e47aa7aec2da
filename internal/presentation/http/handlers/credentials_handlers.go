package handlers

import (
	"net/http"
	"time"

	"github.com/AtRiskMedia/cartgate-go/internal/application/services"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/performance"
	"github.com/AtRiskMedia/cartgate-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// CredentialsHandlers contains the credential validation HTTP handlers
type CredentialsHandlers struct {
	credentialsService *services.CredentialsService
	logger             *logging.ChanneledLogger
	perfTracker        *performance.Tracker
}

// NewCredentialsHandlers creates credentials handlers with injected dependencies
func NewCredentialsHandlers(credentialsService *services.CredentialsService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *CredentialsHandlers {
	return &CredentialsHandlers{
		credentialsService: credentialsService,
		logger:             logger,
		perfTracker:        perfTracker,
	}
}

// PostValidate handles POST /api/v1/credentials/validate - checks a bearer
// token (explicit or from the session cookie) against the identity provider.
func (h *CredentialsHandlers) PostValidate(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	start := time.Now()
	marker := h.perfTracker.StartOperation("auth:validate_credential", tenantCtx.TenantID)
	defer marker.Complete()

	var body struct {
		Token string `json:"token"`
	}
	// Body is optional; with no explicit token the session cookie is used
	_ = c.ShouldBindJSON(&body)

	result, err := h.credentialsService.Validate(c.Request.Context(), tenantCtx, body.Token, c.GetHeader("Cookie"))
	if err != nil {
		marker.SetSuccess(false)
		marker.SetError(err)
		h.logger.Auth().Error("Credential validation failed",
			"tenantId", tenantCtx.TenantID,
			"error", err.Error(),
			"duration", time.Since(start),
		)
		status, payload := upstreamErrorResponse(err)
		c.JSON(status, payload)
		return
	}

	marker.SetSuccess(true)

	if !result.Valid {
		c.JSON(http.StatusOK, gin.H{"valid": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"id":    result.ID,
		"email": result.Email,
	})
}
