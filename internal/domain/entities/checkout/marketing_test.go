package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasDivergedIdentical(t *testing.T) {
	stored := &MarketingData{
		UtmCampaign: "spring",
		UtmSource:   "newsletter",
		Coupon:      "X",
	}

	assert.False(t, HasDiverged(stored, stored))
}

func TestHasDivergedSingleFieldChange(t *testing.T) {
	stored := &MarketingData{
		UtmCampaign:  "spring",
		UtmSource:    "newsletter",
		UtmMedium:    "email",
		UtmiCampaign: "internal",
		UtmiPart:     "header",
		UtmiPage:     "home",
	}

	mutations := []func(m *MarketingData){
		func(m *MarketingData) { m.UtmCampaign = "summer" },
		func(m *MarketingData) { m.UtmSource = "ads" },
		func(m *MarketingData) { m.UtmMedium = "social" },
		func(m *MarketingData) { m.UtmiCampaign = "other" },
		func(m *MarketingData) { m.UtmiPart = "footer" },
		func(m *MarketingData) { m.UtmiPage = "plp" },
	}

	for _, mutate := range mutations {
		observed := *stored
		mutate(&observed)
		assert.True(t, HasDiverged(stored, &observed))
	}
}

func TestHasDivergedAbsentFieldsAreNotDivergence(t *testing.T) {
	stored := &MarketingData{UtmCampaign: "spring", UtmSource: "newsletter"}
	observed := &MarketingData{UtmCampaign: "spring"}

	// observed omits utmSource entirely, stored keeps it
	assert.False(t, HasDiverged(stored, observed))

	// absent on both sides
	assert.False(t, HasDiverged(&MarketingData{}, &MarketingData{}))
	assert.False(t, HasDiverged(nil, &MarketingData{}))
	assert.False(t, HasDiverged(&MarketingData{UtmCampaign: "spring"}, nil))
}

func TestMergePreservesUnsetFields(t *testing.T) {
	stored := &MarketingData{
		UtmCampaign:   "spring",
		UtmSource:     "newsletter",
		UtmMedium:     "email",
		UtmiPage:      "home",
		MarketingTags: []string{"vip"},
		Coupon:        "X",
	}
	observed := &MarketingData{UtmCampaign: "summer"}

	merged := Merge(stored, observed)

	assert.Equal(t, "summer", merged.UtmCampaign)
	assert.Equal(t, "newsletter", merged.UtmSource)
	assert.Equal(t, "email", merged.UtmMedium)
	assert.Equal(t, "home", merged.UtmiPage)
	assert.Equal(t, []string{"vip"}, merged.MarketingTags)
	assert.Equal(t, "X", merged.Coupon)
}

func TestMergeWithNilStored(t *testing.T) {
	merged := Merge(nil, &MarketingData{UtmCampaign: "spring"})

	assert.Equal(t, "spring", merged.UtmCampaign)
	assert.Empty(t, merged.UtmSource)
	assert.Nil(t, merged.MarketingTags)
	assert.Empty(t, merged.Coupon)
}

func TestMergeTagsAndCouponNeverObserved(t *testing.T) {
	stored := &MarketingData{Coupon: "X", MarketingTags: []string{"vip"}}
	observed := &MarketingData{Coupon: "Y", MarketingTags: []string{"bot"}}

	merged := Merge(stored, observed)

	assert.Equal(t, "X", merged.Coupon)
	assert.Equal(t, []string{"vip"}, merged.MarketingTags)
}

func TestShouldApply(t *testing.T) {
	cases := []struct {
		name     string
		stored   *MarketingData
		observed *MarketingData
		want     bool
	}{
		{
			name:     "empty observed is a no-op",
			stored:   nil,
			observed: &MarketingData{},
			want:     false,
		},
		{
			name:     "no stored attribution",
			stored:   nil,
			observed: &MarketingData{UtmCampaign: "spring"},
			want:     true,
		},
		{
			name:     "observed already reflected",
			stored:   &MarketingData{UtmCampaign: "spring", Coupon: "X"},
			observed: &MarketingData{UtmCampaign: "spring"},
			want:     false,
		},
		{
			name:     "observed diverges",
			stored:   &MarketingData{UtmCampaign: "spring"},
			observed: &MarketingData{UtmCampaign: "summer"},
			want:     true,
		},
		{
			name:     "new field on top of stored",
			stored:   &MarketingData{UtmCampaign: "spring"},
			observed: &MarketingData{UtmSource: "ads"},
			want:     true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ShouldApply(tc.stored, tc.observed))
		})
	}
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, (*MarketingData)(nil).IsEmpty())
	assert.True(t, (&MarketingData{Coupon: "X", MarketingTags: []string{"vip"}}).IsEmpty())
	assert.False(t, (&MarketingData{UtmiPart: "header"}).IsEmpty())
}
