package middleware

import (
	"github.com/AtRiskMedia/cartgate-go/internal/domain/entities/session"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/vtex"
	"github.com/gin-gonic/gin"
)

// SegmentMiddleware derives the marketing segment context for the request
// from the segment cookie and UTM query parameters. The context is a
// read-only input downstream; an absent or undecodable cookie contributes
// nothing.
func SegmentMiddleware(logger *logging.ChanneledLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// gin's Cookie() runs url.QueryUnescape on the value, which turns
		// the '+' of a standard-base64 payload into a space. Take the raw
		// value; the decoder owns the format.
		segmentCookie := ""
		if cookie, err := c.Request.Cookie(vtex.SegmentCookieName); err == nil {
			segmentCookie = cookie.Value
		}
		segment := session.FromRequest(segmentCookie, c.Request.URL.Query())

		if segment.HasUTM() {
			logger.Segment().Debug("Marketing context observed",
				"path", c.Request.URL.Path,
				"utmCampaign", segment.UtmCampaign,
				"utmSource", segment.UtmSource,
			)
		}

		c.Set("segment", segment)

		c.Next()
	}
}

// GetSegment retrieves the marketing segment context from gin context.
func GetSegment(c *gin.Context) *session.Segment {
	value, exists := c.Get("segment")
	if !exists {
		return &session.Segment{}
	}

	segment, ok := value.(*session.Segment)
	if !ok {
		return &session.Segment{}
	}
	return segment
}
