package services

import (
	"context"
	"net/http"

	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/tenant"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/vtex"
)

const subscribeNewsletterMutation = `mutation SubscribeNewsletter($email: String!, $isNewsletterOptIn: Boolean!, $fields: PersonalizationFields) {
  subscribeNewsletter(email: $email, isNewsletterOptIn: $isNewsletterOptIn, fields: $fields)
}`

// NewsletterService manages newsletter opt-in through the store GraphQL
// endpoint.
type NewsletterService struct {
	httpClient *http.Client
	logger     *logging.ChanneledLogger
}

// NewNewsletterService creates the newsletter service
func NewNewsletterService(httpClient *http.Client, logger *logging.ChanneledLogger) *NewsletterService {
	return &NewsletterService{
		httpClient: httpClient,
		logger:     logger,
	}
}

// OptInRequest are the subscriber details for an opt-in change
type OptInRequest struct {
	Email     string `json:"email" binding:"required"`
	Subscribe bool   `json:"subscribe"`
	Name      string `json:"name,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// UpdateOptIn subscribes or unsubscribes the user, forwarding the session
// cookie so the mutation runs in the visitor's context.
func (s *NewsletterService) UpdateOptIn(ctx context.Context, tenantCtx *tenant.Context, req OptInRequest, cookieHeader string) (bool, error) {
	if tenantCtx == nil || tenantCtx.Config == nil {
		return false, ErrMissingTenantContext
	}

	sess := vtex.ParseCookieHeader(cookieHeader, tenantCtx.Config, vtex.CookieOverrides{})

	variables := map[string]any{
		"email":             req.Email,
		"isNewsletterOptIn": req.Subscribe,
		"fields": map[string]any{
			"name":  req.Name,
			"phone": req.Phone,
		},
	}

	client := vtex.NewClient(tenantCtx.Config, s.httpClient, s.logger)
	if err := client.GraphQL(ctx, subscribeNewsletterMutation, "SubscribeNewsletter", variables, sess.CookieHeader, nil); err != nil {
		return false, err
	}

	s.logger.Segment().Info("Newsletter opt-in updated",
		"tenantId", tenantCtx.TenantID,
		"subscribed", req.Subscribe,
	)
	return req.Subscribe, nil
}
