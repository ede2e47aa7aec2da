package checkout

// MarketingData holds the campaign-attribution fields stored on an order
// form. Field names follow the commerce backend's wire format.
type MarketingData struct {
	UtmCampaign   string   `json:"utmCampaign,omitempty"`
	UtmSource     string   `json:"utmSource,omitempty"`
	UtmMedium     string   `json:"utmMedium,omitempty"`
	UtmiCampaign  string   `json:"utmiCampaign,omitempty"`
	UtmiPart      string   `json:"utmiPart,omitempty"`
	UtmiPage      string   `json:"utmiPage,omitempty"`
	MarketingTags []string `json:"marketingTags,omitempty"`
	Coupon        string   `json:"coupon,omitempty"`
}

// IsEmpty reports whether no attribution-relevant scalar field is set.
// Tags and coupon never arrive from the request context, so they do not
// count as an incoming signal.
func (m *MarketingData) IsEmpty() bool {
	if m == nil {
		return true
	}
	return m.UtmCampaign == "" && m.UtmSource == "" && m.UtmMedium == "" &&
		m.UtmiCampaign == "" && m.UtmiPart == "" && m.UtmiPage == ""
}

// HasDiverged reports whether any field present in observed differs from
// the corresponding field in stored. Absent-vs-absent is not divergence.
func HasDiverged(stored, observed *MarketingData) bool {
	if observed == nil {
		return false
	}
	if stored == nil {
		stored = &MarketingData{}
	}

	pairs := [][2]string{
		{observed.UtmCampaign, stored.UtmCampaign},
		{observed.UtmSource, stored.UtmSource},
		{observed.UtmMedium, stored.UtmMedium},
		{observed.UtmiCampaign, stored.UtmiCampaign},
		{observed.UtmiPart, stored.UtmiPart},
		{observed.UtmiPage, stored.UtmiPage},
		{observed.Coupon, stored.Coupon},
	}
	for _, pair := range pairs {
		if pair[0] != "" && pair[0] != pair[1] {
			return true
		}
	}
	return false
}

// Merge builds the attachment payload for an attribution update: each
// scalar field takes the observed value when present, otherwise the stored
// one. Tags and coupon are carried over from stored unchanged since the
// observed snapshot never supplies them. The result only ever feeds the
// attachment call body; it is not a local source of truth.
func Merge(stored, observed *MarketingData) MarketingData {
	if stored == nil {
		stored = &MarketingData{}
	}
	if observed == nil {
		observed = &MarketingData{}
	}

	return MarketingData{
		UtmCampaign:   coalesce(observed.UtmCampaign, stored.UtmCampaign),
		UtmSource:     coalesce(observed.UtmSource, stored.UtmSource),
		UtmMedium:     coalesce(observed.UtmMedium, stored.UtmMedium),
		UtmiCampaign:  coalesce(observed.UtmiCampaign, stored.UtmiCampaign),
		UtmiPart:      coalesce(observed.UtmiPart, stored.UtmiPart),
		UtmiPage:      coalesce(observed.UtmiPage, stored.UtmiPage),
		MarketingTags: stored.MarketingTags,
		Coupon:        stored.Coupon,
	}
}

// ShouldApply is the pure decision behind the attribution-update call: an
// update is issued iff the observed snapshot carries at least one non-empty
// field and the stored attribution is absent or diverges from the merge.
func ShouldApply(stored, observed *MarketingData) bool {
	if observed.IsEmpty() {
		return false
	}
	if stored == nil {
		return true
	}
	merged := Merge(stored, observed)
	return HasDiverged(stored, &merged)
}

func coalesce(observed, stored string) string {
	if observed != "" {
		return observed
	}
	return stored
}
