package vtex

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/tenant"
)

// Cookie names tracked by the session codec. The auth cookie name is
// account-scoped; tenant.Config derives it.
const (
	CheckoutCookieName = "checkout.vtex.com"
	SegmentCookieName  = "vtex_segment"
	SessionCookieName  = "vtex_session"

	orderFormIDPrefix = "__ofid="
)

// Session is the canonical per-request view of the storefront session
// cookies. It is derived from the incoming Cookie header and never
// persisted.
type Session struct {
	AuthToken    string // bearer token from the account-scoped auth cookie
	OrderFormID  string // cart session id from the checkout cookie
	SegmentToken string // raw locale/segment cookie value
	SessionToken string // upstream session cookie, passed through verbatim

	// CookieHeader is the re-serialized outbound Cookie header carrying
	// only the tracked cookies, with overrides applied.
	CookieHeader string
}

// CookieOverrides are caller-supplied values that win over anything parsed
// from the raw header.
type CookieOverrides struct {
	OrderFormID string
}

// ParseCookieHeader derives the session view from a raw Cookie header for
// the given tenant's account. An override for a tracked cookie always beats
// the header-derived value.
func ParseCookieHeader(header string, cfg *tenant.Config, overrides CookieOverrides) *Session {
	cookies := splitCookieHeader(header)
	authCookieName := cfg.AuthCookieName()

	sess := &Session{
		AuthToken:    cookies[authCookieName],
		SegmentToken: cookies[SegmentCookieName],
		SessionToken: cookies[SessionCookieName],
		OrderFormID:  strings.TrimPrefix(cookies[CheckoutCookieName], orderFormIDPrefix),
	}

	if overrides.OrderFormID != "" {
		sess.OrderFormID = overrides.OrderFormID
	}

	var parts []string
	if sess.OrderFormID != "" {
		parts = append(parts, CheckoutCookieName+"="+orderFormIDPrefix+sess.OrderFormID)
	}
	if sess.SessionToken != "" {
		parts = append(parts, SessionCookieName+"="+sess.SessionToken)
	}
	if sess.SegmentToken != "" {
		parts = append(parts, SegmentCookieName+"="+sess.SegmentToken)
	}
	if sess.AuthToken != "" {
		parts = append(parts, authCookieName+"="+sess.AuthToken)
	}
	sess.CookieHeader = strings.Join(parts, "; ")

	return sess
}

// splitCookieHeader parses a raw Cookie header into name/value pairs.
func splitCookieHeader(header string) map[string]string {
	cookies := make(map[string]string)
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		cookies[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return cookies
}

// ExtractCheckoutSetCookie scans upstream response headers for a rotated
// cart-session cookie and returns its raw value including attributes.
// Returns "" when the upstream did not rotate the cookie; that is the
// common case, not an error.
func ExtractCheckoutSetCookie(headers http.Header) string {
	for _, raw := range headers.Values("Set-Cookie") {
		if strings.HasPrefix(raw, CheckoutCookieName+"=") {
			return raw
		}
	}
	return ""
}

// RewriteSetCookies copies every upstream Set-Cookie value, rewriting the
// Domain attribute to the current request's host and the Secure flag to
// match its scheme, so browsers accept the cookie on the storefront origin.
func RewriteSetCookies(upstream http.Header, requestURL *url.URL) []string {
	values := upstream.Values("Set-Cookie")
	if len(values) == 0 {
		return nil
	}

	secure := requestURL.Scheme == "https"
	host := requestURL.Hostname()

	rewritten := make([]string, 0, len(values))
	for _, raw := range values {
		parts := strings.Split(raw, ";")
		kept := parts[:0]
		for _, part := range parts {
			attr := strings.ToLower(strings.TrimSpace(part))
			if strings.HasPrefix(attr, "domain=") || attr == "secure" {
				continue
			}
			kept = append(kept, strings.TrimSpace(part))
		}

		if host != "" {
			kept = append(kept, "Domain="+host)
		}
		if secure {
			kept = append(kept, "Secure")
		}
		rewritten = append(rewritten, strings.Join(kept, "; "))
	}
	return rewritten
}
