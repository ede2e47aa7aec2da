package middleware

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/vtex"
)

func newTestLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{JSONFormat: true})
	require.NoError(t, err)
	return logger
}

func segmentTestContext(t *testing.T, target string, cookieValue string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	if cookieValue != "" {
		c.Request.AddCookie(&http.Cookie{Name: vtex.SegmentCookieName, Value: cookieValue})
	}
	return c
}

func TestSegmentMiddlewareDecodesCookie(t *testing.T) {
	cookie := base64.StdEncoding.EncodeToString([]byte(`{"channel":"2","utm_source":"newsletter"}`))
	c := segmentTestContext(t, "/cart", cookie)

	SegmentMiddleware(newTestLogger(t))(c)

	segment := GetSegment(c)
	assert.Equal(t, "2", segment.Channel)
	assert.Equal(t, "newsletter", segment.UtmSource)
}

func TestSegmentMiddlewarePreservesPlusInCookie(t *testing.T) {
	// standard base64 uses '+' in its alphabet; the raw value must reach
	// the decoder without query-unescaping mangling it into a space
	payload := `{"channel":"3","utm_campaign":"a>?>"}`
	cookie := base64.StdEncoding.EncodeToString([]byte(payload))
	require.Contains(t, cookie, "+")

	c := segmentTestContext(t, "/cart", cookie)
	SegmentMiddleware(newTestLogger(t))(c)

	segment := GetSegment(c)
	assert.Equal(t, "3", segment.Channel)
	assert.Equal(t, "a>?>", segment.UtmCampaign)
}

func TestSegmentMiddlewareQueryWinsOverCookie(t *testing.T) {
	cookie := base64.StdEncoding.EncodeToString([]byte(`{"channel":"2","utm_campaign":"spring"}`))
	c := segmentTestContext(t, "/cart?utm_campaign=summer", cookie)

	SegmentMiddleware(newTestLogger(t))(c)

	segment := GetSegment(c)
	assert.Equal(t, "summer", segment.UtmCampaign)
	assert.Equal(t, "2", segment.Channel)
}

func TestSegmentMiddlewareNoCookie(t *testing.T) {
	c := segmentTestContext(t, "/cart", "")

	SegmentMiddleware(newTestLogger(t))(c)

	segment := GetSegment(c)
	assert.False(t, segment.HasUTM())
	assert.Empty(t, segment.Channel)
}

func TestGetSegmentFallback(t *testing.T) {
	c := segmentTestContext(t, "/cart", "")

	segment := GetSegment(c)
	assert.NotNil(t, segment)
	assert.False(t, segment.HasUTM())
}
