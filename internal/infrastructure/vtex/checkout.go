package vtex

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/AtRiskMedia/cartgate-go/internal/domain/entities/checkout"
)

// FetchCartOptions control a single cart fetch.
type FetchCartOptions struct {
	// ForceNewCart asks the backend for a fresh cart even when the session
	// already carries one.
	ForceNewCart bool

	// OnSessionCookie, when set, receives the rotated cart-session
	// Set-Cookie value ("" when the backend did not rotate it) as soon as
	// response headers arrive, before the body is decoded. This lets other
	// operations running in the same request observe the new session token
	// without waiting for the full body parse.
	OnSessionCookie func(setCookie string)
}

// FetchCart fetches (or implicitly creates) the order form tied to the
// session. Non-2xx and transport failures surface as *UpstreamError with
// the upstream status preserved; there is no retry.
func (c *Client) FetchCart(ctx context.Context, sess *Session, channel string, opts FetchCartOptions) (*checkout.OrderForm, http.Header, error) {
	query := url.Values{}
	if channel != "" {
		query.Set("sc", channel)
	}
	query.Set("forceNewCart", strconv.FormatBool(opts.ForceNewCart))

	req, err := c.newRequest(ctx, http.MethodPost, c.endpoint("/api/checkout/pub/orderForm", query), nil, sess.CookieHeader)
	if err != nil {
		return nil, nil, err
	}

	resp, err := c.do(req, "fetch_cart")
	if err != nil {
		return nil, nil, err
	}

	if opts.OnSessionCookie != nil {
		opts.OnSessionCookie(ExtractCheckoutSetCookie(resp.Header))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, resp.Header, newUpstreamError("fetch_cart", resp)
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, resp.Header, &UpstreamError{Operation: "fetch_cart", Status: resp.StatusCode, URL: req.URL.String(), Body: err.Error()}
	}

	form, err := checkout.DecodeOrderForm(body)
	if err != nil {
		return nil, resp.Header, fmt.Errorf("failed to decode order form: %w", err)
	}

	return form.ForceHTTPSAssets(), resp.Header, nil
}

// marketingAttachment is the partial-update body for the marketingData
// attachment. The expected sections list tells the backend which derived
// sections to recompute so the response matches a full fetch.
type marketingAttachment struct {
	checkout.MarketingData
	ExpectedOrderFormSections []string `json:"expectedOrderFormSections"`
}

// ApplyMarketingData applies merged attribution to an existing order form
// and returns the updated form.
func (c *Client) ApplyMarketingData(ctx context.Context, orderFormID string, merged checkout.MarketingData, expectedSections []string, sess *Session, channel string) (*checkout.OrderForm, error) {
	if orderFormID == "" {
		return nil, fmt.Errorf("cannot apply marketing data without an order form id")
	}

	query := url.Values{}
	if channel != "" {
		query.Set("sc", channel)
	}

	path := "/api/checkout/pub/orderForm/" + url.PathEscape(orderFormID) + "/attachments/marketingData"
	payload := marketingAttachment{
		MarketingData:             merged,
		ExpectedOrderFormSections: expectedSections,
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.endpoint(path, query), payload, sess.CookieHeader)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req, "apply_marketing_data")
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, newUpstreamError("apply_marketing_data", resp)
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, &UpstreamError{Operation: "apply_marketing_data", Status: resp.StatusCode, URL: req.URL.String(), Body: err.Error()}
	}

	form, err := checkout.DecodeOrderForm(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode updated order form: %w", err)
	}

	return form.ForceHTTPSAssets(), nil
}
