package services

import (
	"context"
	"net/http"

	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/tenant"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/vtex"
)

// CredentialsService validates bearer tokens against the identity
// provider. This is the trust boundary the local token decoder is not.
type CredentialsService struct {
	httpClient *http.Client
	logger     *logging.ChanneledLogger
}

// NewCredentialsService creates the credential validation service
func NewCredentialsService(httpClient *http.Client, logger *logging.ChanneledLogger) *CredentialsService {
	return &CredentialsService{
		httpClient: httpClient,
		logger:     logger,
	}
}

// Validate checks the explicit token, falling back to the session's auth
// cookie when none is supplied.
func (s *CredentialsService) Validate(ctx context.Context, tenantCtx *tenant.Context, token, cookieHeader string) (*vtex.CredentialValidation, error) {
	if tenantCtx == nil || tenantCtx.Config == nil {
		return nil, ErrMissingTenantContext
	}

	if token == "" {
		sess := vtex.ParseCookieHeader(cookieHeader, tenantCtx.Config, vtex.CookieOverrides{})
		token = sess.AuthToken
	}

	client := vtex.NewClient(tenantCtx.Config, s.httpClient, s.logger)
	result, err := client.ValidateCredential(ctx, token)
	if err != nil {
		return nil, err
	}

	s.logger.Auth().Debug("Credential validated",
		"tenantId", tenantCtx.TenantID,
		"valid", result.Valid,
	)
	return result, nil
}
