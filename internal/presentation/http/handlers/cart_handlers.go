// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/AtRiskMedia/cartgate-go/internal/application/services"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/performance"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/vtex"
	"github.com/AtRiskMedia/cartgate-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// CartHandlers contains the cart reconciliation HTTP handlers
type CartHandlers struct {
	cartService *services.CartService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewCartHandlers creates cart handlers with injected dependencies
func NewCartHandlers(cartService *services.CartService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *CartHandlers {
	return &CartHandlers{
		cartService: cartService,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// GetCart handles GET /api/v1/checkout/cart - reconciles the session with
// the upstream cart and returns the order form. The result is per-session
// and per-identity, so the response is always marked non-cacheable.
func (h *CartHandlers) GetCart(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	start := time.Now()
	marker := h.perfTracker.StartOperation("checkout:get_cart", tenantCtx.TenantID)
	defer marker.Complete()

	ignoreSetCookie, _ := strconv.ParseBool(c.Query("ignoreSetCookie"))
	forceNewCart, _ := strconv.ParseBool(c.Query("forceNewCart"))

	req := services.CartRequest{
		CookieHeader:    c.GetHeader("Cookie"),
		RequestURL:      requestURL(c),
		Headers:         c.Request.Header,
		Segment:         middleware.GetSegment(c),
		OrderFormID:     c.Query("orderFormId"),
		IgnoreSetCookie: ignoreSetCookie,
		ForceNewCart:    forceNewCart,
	}

	result, err := h.cartService.GetCart(c.Request.Context(), tenantCtx, req)
	if err != nil {
		marker.SetSuccess(false)
		marker.SetError(err)
		h.logger.LogError(logging.ChannelCheckout, "get_cart", err, tenantCtx.TenantID, map[string]any{
			"duration": time.Since(start),
		})
		status, payload := upstreamErrorResponse(err)
		c.JSON(status, payload)
		return
	}

	for _, cookie := range result.SetCookies {
		c.Writer.Header().Add("Set-Cookie", cookie)
	}
	c.Header("Cache-Control", "no-store")

	marker.SetSuccess(true)
	h.logger.Perf().Debug("Performance for GetCart request",
		"duration", time.Since(start),
		"tenantId", tenantCtx.TenantID,
	)

	c.JSON(http.StatusOK, result.OrderForm.Raw)
}

// requestURL reconstructs the absolute URL of the current request,
// honoring proxy-forwarded scheme.
func requestURL(c *gin.Context) *url.URL {
	u := *c.Request.URL
	u.Host = c.Request.Host

	switch {
	case c.GetHeader("X-Forwarded-Proto") != "":
		u.Scheme = c.GetHeader("X-Forwarded-Proto")
	case c.Request.TLS != nil:
		u.Scheme = "https"
	default:
		u.Scheme = "http"
	}
	return &u
}

// upstreamErrorResponse maps a service error to an HTTP response that
// preserves the upstream status instead of hiding it.
func upstreamErrorResponse(err error) (int, gin.H) {
	if upstreamErr, ok := vtex.AsUpstreamError(err); ok {
		status := upstreamErr.Status
		if status == 0 {
			status = http.StatusBadGateway
		}
		return status, gin.H{
			"error":          "upstream request failed",
			"operation":      upstreamErr.Operation,
			"upstreamStatus": upstreamErr.Status,
		}
	}
	if err == services.ErrMissingTenantContext {
		return http.StatusInternalServerError, gin.H{"error": err.Error()}
	}
	return http.StatusBadGateway, gin.H{"error": err.Error()}
}
