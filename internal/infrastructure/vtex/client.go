// Package vtex implements the HTTP client for the upstream commerce
// backend: cart fetch/update, credential validation, store GraphQL, and
// logistics lookups. All calls are single-attempt and fail fast; cart state
// is never guessed at.
package vtex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/metrics"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/tenant"
)

// Client talks to one tenant's commerce account. It is cheap to construct
// per request; the underlying http.Client is shared and owns the transport
// timeout.
type Client struct {
	cfg        *tenant.Config
	httpClient *http.Client
	logger     *logging.ChanneledLogger
}

// NewClient creates a commerce client for the given tenant configuration.
func NewClient(cfg *tenant.Config, httpClient *http.Client, logger *logging.ChanneledLogger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logger,
	}
}

// endpoint builds the absolute URL for a backend path plus query values.
func (c *Client) endpoint(path string, query url.Values) string {
	target := c.cfg.CommerceBaseURL() + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

// newRequest builds a JSON request carrying the serialized session cookie.
func (c *Client) newRequest(ctx context.Context, method, target string, body any, cookie string) (*http.Request, error) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	return req, nil
}

// do executes a request and records the upstream metric for it. The caller
// owns the response body.
func (c *Client) do(req *http.Request, operation string) (*http.Response, error) {
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(operation, "transport_error").Inc()
		c.logger.Upstream().Error("Upstream call transport failure",
			"operation", operation,
			"tenantId", c.cfg.TenantID,
			"url", req.URL.String(),
			"error", err.Error(),
		)
		return nil, &UpstreamError{Operation: operation, Status: 0, URL: req.URL.String(), Body: err.Error()}
	}

	metrics.UpstreamRequests.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()
	c.logger.LogUpstreamCall(operation, c.cfg.TenantID, resp.StatusCode, time.Since(start))

	return resp, nil
}

// decodeJSON drains and decodes a response body into out.
func decodeJSON(resp *http.Response, out any) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(out)
}
