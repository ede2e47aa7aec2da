package vtex

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/cartgate-go/internal/domain/entities/checkout"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/tenant"
)

func newTestLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{JSONFormat: true})
	require.NoError(t, err)
	return logger
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *tenant.Config) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &tenant.Config{
		TenantID:     "test",
		Account:      "acme",
		Environment:  "vtexcommercestable",
		SalesChannel: "1",
		BaseURL:      srv.URL,
	}
	return NewClient(cfg, srv.Client(), newTestLogger(t)), cfg
}

func TestFetchCart(t *testing.T) {
	var gotCookie string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/checkout/pub/orderForm", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("sc"))
		assert.Equal(t, "false", r.URL.Query().Get("forceNewCart"))
		gotCookie = r.Header.Get("Cookie")

		w.Header().Add("Set-Cookie", "checkout.vtex.com=__ofid=rotated; Path=/")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"orderFormId": "of-1",
			"clientProfileData": {"email": "a@x.com"},
			"items": [{"imageUrl": "http://cdn.example.com/a.jpg"}]
		}`))
	}))

	sess := ParseCookieHeader("checkout.vtex.com=__ofid=of-1; vtex_session=tok", acmeConfig, CookieOverrides{})

	var rotated string
	form, headers, err := client.FetchCart(context.Background(), sess, "1", FetchCartOptions{
		OnSessionCookie: func(setCookie string) { rotated = setCookie },
	})
	require.NoError(t, err)

	assert.Equal(t, sess.CookieHeader, gotCookie)
	assert.Equal(t, "of-1", form.ID)
	assert.Equal(t, "a@x.com", form.ClientEmail)
	assert.Equal(t, "checkout.vtex.com=__ofid=rotated; Path=/", rotated)
	assert.NotEmpty(t, headers.Values("Set-Cookie"))

	items := form.Raw["items"].([]any)
	assert.Equal(t, "https://cdn.example.com/a.jpg", items[0].(map[string]any)["imageUrl"])
}

func TestFetchCartForceNewCart(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("forceNewCart"))
		w.Write([]byte(`{"orderFormId": "of-fresh"}`))
	}))

	form, _, err := client.FetchCart(context.Background(), &Session{}, "", FetchCartOptions{ForceNewCart: true})
	require.NoError(t, err)
	assert.Equal(t, "of-fresh", form.ID)
}

func TestFetchCartNoRotatedCookie(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"orderFormId": "of-1"}`))
	}))

	invoked := false
	rotated := "sentinel"
	_, _, err := client.FetchCart(context.Background(), &Session{}, "1", FetchCartOptions{
		OnSessionCookie: func(setCookie string) {
			invoked = true
			rotated = setCookie
		},
	})
	require.NoError(t, err)

	// callback still fires so waiters are released, with an empty value
	assert.True(t, invoked)
	assert.Empty(t, rotated)
}

func TestFetchCartUpstreamFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "conflict", http.StatusConflict)
	}))

	form, _, err := client.FetchCart(context.Background(), &Session{}, "1", FetchCartOptions{})
	require.Error(t, err)
	assert.Nil(t, form)

	upstreamErr, ok := AsUpstreamError(err)
	require.True(t, ok)
	assert.Equal(t, "fetch_cart", upstreamErr.Operation)
	assert.Equal(t, http.StatusConflict, upstreamErr.Status)
	assert.Contains(t, upstreamErr.Body, "conflict")
}

func TestFetchCartTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	cfg := &tenant.Config{TenantID: "test", Account: "acme", BaseURL: srv.URL}
	client := NewClient(cfg, srv.Client(), newTestLogger(t))
	srv.Close()

	_, _, err := client.FetchCart(context.Background(), &Session{}, "1", FetchCartOptions{})
	require.Error(t, err)

	upstreamErr, ok := AsUpstreamError(err)
	require.True(t, ok)
	assert.Zero(t, upstreamErr.Status)
}

func TestApplyMarketingData(t *testing.T) {
	var body map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/checkout/pub/orderForm/of-1/attachments/marketingData", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("sc"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Write([]byte(`{"orderFormId": "of-1", "marketingData": {"utmCampaign": "summer"}}`))
	}))

	merged := checkout.MarketingData{UtmCampaign: "summer", Coupon: "X"}
	sess := &Session{CookieHeader: "checkout.vtex.com=__ofid=of-1"}

	form, err := client.ApplyMarketingData(context.Background(), "of-1", merged, checkout.DefaultExpectedSections, sess, "1")
	require.NoError(t, err)

	assert.Equal(t, "of-1", form.ID)
	assert.Equal(t, "summer", form.Marketing.UtmCampaign)

	assert.Equal(t, "summer", body["utmCampaign"])
	assert.Equal(t, "X", body["coupon"])
	sections, ok := body["expectedOrderFormSections"].([]any)
	require.True(t, ok)
	assert.Contains(t, sections, "items")
	assert.Contains(t, sections, "marketingData")
}

func TestApplyMarketingDataRequiresOrderFormID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	_, err := client.ApplyMarketingData(context.Background(), "", checkout.MarketingData{}, nil, &Session{}, "1")
	assert.Error(t, err)
}

func TestApplyMarketingDataUpstreamFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))

	_, err := client.ApplyMarketingData(context.Background(), "of-1", checkout.MarketingData{}, nil, &Session{}, "1")
	require.Error(t, err)

	upstreamErr, ok := AsUpstreamError(err)
	require.True(t, ok)
	assert.Equal(t, "apply_marketing_data", upstreamErr.Operation)
	assert.Equal(t, http.StatusBadRequest, upstreamErr.Status)
}
