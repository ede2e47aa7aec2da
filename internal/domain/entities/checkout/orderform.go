// Package checkout defines the order form entities exchanged with the
// commerce backend. The order form is owned upstream; this gateway treats
// it as a request-scoped value and never persists it.
package checkout

import (
	"encoding/json"
	"strings"
)

// DefaultExpectedSections lists the derived order form sections the backend
// must recompute on a partial (attachment) update so the response stays
// consistent with a full fetch. Omitting this list on an attachment call is
// a correctness bug.
var DefaultExpectedSections = []string{
	"items",
	"totalizers",
	"clientProfileData",
	"shippingData",
	"paymentData",
	"sellers",
	"messages",
	"marketingData",
	"clientPreferencesData",
	"storePreferencesData",
	"giftRegistryData",
	"ratesAndBenefitsData",
	"openTextField",
	"commercialConditionData",
	"customData",
}

// OrderForm is the fetched cart. Raw carries the full upstream document for
// pass-through to the storefront; the typed fields cover what the
// reconciliation engine reads.
type OrderForm struct {
	ID            string
	ClientEmail   string
	UserProfileID string
	Marketing     *MarketingData
	Raw           map[string]any
}

type orderFormEnvelope struct {
	OrderFormID       string         `json:"orderFormId"`
	UserProfileID     string         `json:"userProfileId"`
	ClientProfileData *struct {
		Email string `json:"email"`
	} `json:"clientProfileData"`
	MarketingData *MarketingData `json:"marketingData"`
}

// DecodeOrderForm parses an upstream order form response body.
func DecodeOrderForm(body []byte) (*OrderForm, error) {
	var envelope orderFormEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	form := &OrderForm{
		ID:            envelope.OrderFormID,
		UserProfileID: envelope.UserProfileID,
		Marketing:     envelope.MarketingData,
		Raw:           raw,
	}
	if envelope.ClientProfileData != nil {
		form.ClientEmail = envelope.ClientProfileData.Email
	}

	return form, nil
}

// ForceHTTPSAssets rewrites insecure item asset URLs to https in place.
// Applied to every order form handed back to the storefront, on every path.
func (of *OrderForm) ForceHTTPSAssets() *OrderForm {
	if of == nil || of.Raw == nil {
		return of
	}

	items, ok := of.Raw["items"].([]any)
	if !ok {
		return of
	}

	for _, entry := range items {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if imageURL, ok := item["imageUrl"].(string); ok && strings.HasPrefix(imageURL, "http://") {
			item["imageUrl"] = "https://" + strings.TrimPrefix(imageURL, "http://")
		}
	}

	return of
}
