// Package services contains the application-level orchestration for
// cartgate operations.
package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/AtRiskMedia/cartgate-go/internal/domain/entities/checkout"
	"github.com/AtRiskMedia/cartgate-go/internal/domain/entities/session"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/metrics"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/security"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/tenant"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/vtex"
)

// ErrMissingTenantContext is returned before any network call when the
// request carries no resolvable account context.
var ErrMissingTenantContext = errors.New("missing tenant context")

// CartService is the cart session reconciliation orchestrator: it derives
// the session view, fetches the upstream order form, surfaces identity
// mismatches, merges marketing attribution, and prepares the Set-Cookie
// values to propagate. It holds no per-request state.
type CartService struct {
	httpClient *http.Client
	logger     *logging.ChanneledLogger
}

// NewCartService creates the cart orchestrator
func NewCartService(httpClient *http.Client, logger *logging.ChanneledLogger) *CartService {
	return &CartService{
		httpClient: httpClient,
		logger:     logger,
	}
}

// CartRequest carries everything the orchestrator needs from the inbound
// request. All fields are request-scoped values.
type CartRequest struct {
	CookieHeader string
	RequestURL   *url.URL
	Headers      http.Header
	Segment      *session.Segment

	// OrderFormID overrides the cart session id parsed from the cookies.
	OrderFormID string

	// IgnoreSetCookie drops upstream Set-Cookie headers instead of
	// forwarding them. Mutually exclusive with propagation per call.
	IgnoreSetCookie bool

	// ForceNewCart requests a fresh cart even if a session exists.
	ForceNewCart bool

	// OnSessionCookie, when set, receives the rotated cart-session cookie
	// as soon as upstream response headers arrive.
	OnSessionCookie func(setCookie string)
}

// CartResult is the reconciled cart plus the rewritten Set-Cookie values
// the caller must place on the outbound response. The result is per-session
// and per-identity; callers mark it non-cacheable.
type CartResult struct {
	OrderForm  *checkout.OrderForm
	SetCookies []string
}

// GetCart runs the single-pass reconciliation state machine.
func (s *CartService) GetCart(ctx context.Context, tenantCtx *tenant.Context, req CartRequest) (*CartResult, error) {
	if tenantCtx == nil || tenantCtx.Config == nil {
		return nil, ErrMissingTenantContext
	}
	cfg := tenantCtx.Config

	// Step 1: derive the canonical session view, caller override wins
	sess := vtex.ParseCookieHeader(req.CookieHeader, cfg, vtex.CookieOverrides{
		OrderFormID: req.OrderFormID,
	})

	channel := cfg.SalesChannel
	if req.Segment != nil && req.Segment.Channel != "" {
		channel = req.Segment.Channel
	}

	// Step 2: fetch the cart. The rotated session cookie is published via
	// the callback before the body is decoded. A failed fetch aborts the
	// whole operation; a partial cart must never be returned.
	client := vtex.NewClient(cfg, s.httpClient, s.logger)
	form, upstreamHeaders, err := client.FetchCart(ctx, sess, channel, vtex.FetchCartOptions{
		ForceNewCart:    req.ForceNewCart,
		OnSessionCookie: req.OnSessionCookie,
	})
	if err != nil {
		return nil, err
	}

	// Step 3: observe-only identity diagnosis, never alters control flow
	s.diagnoseMismatch(tenantCtx, form, sess, req)

	// Step 4: propagate or drop upstream cookies
	result := &CartResult{OrderForm: form}
	if !req.IgnoreSetCookie && req.RequestURL != nil {
		result.SetCookies = vtex.RewriteSetCookies(upstreamHeaders, req.RequestURL)
	}

	// Steps 5-6: attribution merge decision and conditional update
	observed := req.Segment.ObservedMarketingData()
	if !checkout.ShouldApply(form.Marketing, observed) {
		return result, nil
	}

	merged := checkout.Merge(form.Marketing, observed)
	updated, err := client.ApplyMarketingData(ctx, form.ID, merged, checkout.DefaultExpectedSections, sess, channel)
	if err != nil {
		return nil, err
	}

	metrics.AttributionUpdates.WithLabelValues(tenantCtx.TenantID).Inc()
	s.logger.WithTenantAndOperation(logging.ChannelCheckout, tenantCtx.TenantID, "get_cart").
		Debug("Marketing attribution applied", "orderFormId", form.ID)

	result.OrderForm = updated
	return result, nil
}

// diagnoseMismatch emits a structured warning when the authenticated
// identity disagrees with the cart's stored owner. Purely observational:
// any failure here is swallowed, and no reconciliation or cookie
// invalidation is attempted.
func (s *CartService) diagnoseMismatch(tenantCtx *tenant.Context, form *checkout.OrderForm, sess *vtex.Session, req CartRequest) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Checkout().Error("Cart mismatch diagnosis failed", "tenantId", tenantCtx.TenantID, "panic", r)
		}
	}()

	if sess.AuthToken == "" || form.ClientEmail == "" {
		return
	}

	claims, err := security.DecodeIdentityToken(sess.AuthToken)
	if err != nil || claims.Subject == "" {
		// Undecodable token means no claims, not an error
		return
	}
	if claims.Subject == form.ClientEmail {
		return
	}

	// Cart session id as it appeared on the wire, ignoring any override
	fromRequest := vtex.ParseCookieHeader(req.CookieHeader, tenantCtx.Config, vtex.CookieOverrides{}).OrderFormID
	hasTwoCookies := strings.Count(req.CookieHeader, vtex.CheckoutCookieName) == 2

	requestURL := ""
	if req.RequestURL != nil {
		requestURL = req.RequestURL.String()
	}

	metrics.CartMismatches.WithLabelValues(tenantCtx.TenantID).Inc()
	s.logger.Checkout().Warn("Cookie cart mismatch",
		"tenantId", tenantCtx.TenantID,
		"hasTwoCookies", hasTwoCookies,
		"orderFormId", form.ID,
		"orderFormIdFromRequest", fromRequest,
		"emailFromCookie", claims.Subject,
		"emailFromOrderForm", form.ClientEmail,
		"userIdFromCookie", claims.UserID,
		"userIdFromOrderForm", form.UserProfileID,
		"reqUrl", requestURL,
		"reqHeaders", redactHeaders(req.Headers),
	)
}

// redactHeaders snapshots request headers for diagnostics. Cookie and
// cache-control must never appear in the record.
func redactHeaders(headers http.Header) map[string]string {
	redacted := make(map[string]string, len(headers))
	for name, values := range headers {
		switch strings.ToLower(name) {
		case "cookie", "cache-control":
			continue
		}
		redacted[strings.ToLower(name)] = strings.Join(values, ", ")
	}
	return redacted
}
