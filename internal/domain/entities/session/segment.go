// Package session defines the request-scoped marketing segment context.
package session

import (
	"encoding/base64"
	"encoding/json"
	"net/url"

	"github.com/AtRiskMedia/cartgate-go/internal/domain/entities/checkout"
)

// Segment is the marketing context observed on the current request: the
// sales channel from the segment cookie plus any UTM-style query fields.
// It is derived per request and treated as a read-only input downstream.
type Segment struct {
	Channel      string `json:"channel,omitempty"`
	UtmCampaign  string `json:"utm_campaign,omitempty"`
	UtmSource    string `json:"utm_source,omitempty"`
	UtmMedium    string `json:"utm_medium,omitempty"`
	UtmiCampaign string `json:"utmi_campaign,omitempty"`
	UtmiPart     string `json:"utmi_part,omitempty"`
	UtmiPage     string `json:"utmi_page,omitempty"`
}

// FromRequest builds the segment for a request from the raw segment cookie
// and the query string. Query fields win over cookie fields; a missing or
// undecodable cookie simply contributes nothing.
func FromRequest(segmentCookie string, query url.Values) *Segment {
	segment := decodeSegmentCookie(segmentCookie)

	if v := query.Get("utm_campaign"); v != "" {
		segment.UtmCampaign = v
	}
	if v := query.Get("utm_source"); v != "" {
		segment.UtmSource = v
	}
	if v := query.Get("utm_medium"); v != "" {
		segment.UtmMedium = v
	}
	if v := query.Get("utmi_campaign"); v != "" {
		segment.UtmiCampaign = v
	}
	if v := query.Get("utmi_part"); v != "" {
		segment.UtmiPart = v
	}
	if v := query.Get("utmi_page"); v != "" {
		segment.UtmiPage = v
	}

	return segment
}

// decodeSegmentCookie parses the base64 JSON segment cookie set by the
// commerce backend's session system.
func decodeSegmentCookie(raw string) *Segment {
	segment := &Segment{}
	if raw == "" {
		return segment
	}

	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		if decoded, err = base64.RawURLEncoding.DecodeString(raw); err != nil {
			return segment
		}
	}

	// Cookie payloads that fail to parse are ignored, not fatal
	_ = json.Unmarshal(decoded, segment)
	return segment
}

// ObservedMarketingData maps the segment's UTM fields onto the order form
// attribution shape. Tags and coupon are never observed from the request.
func (s *Segment) ObservedMarketingData() *checkout.MarketingData {
	if s == nil {
		return &checkout.MarketingData{}
	}
	return &checkout.MarketingData{
		UtmCampaign:  s.UtmCampaign,
		UtmSource:    s.UtmSource,
		UtmMedium:    s.UtmMedium,
		UtmiCampaign: s.UtmiCampaign,
		UtmiPart:     s.UtmiPart,
		UtmiPage:     s.UtmiPage,
	}
}

// HasUTM reports whether any attribution-relevant field was observed.
func (s *Segment) HasUTM() bool {
	if s == nil {
		return false
	}
	return s.UtmCampaign != "" || s.UtmSource != "" || s.UtmMedium != "" ||
		s.UtmiCampaign != "" || s.UtmiPart != "" || s.UtmiPage != ""
}
