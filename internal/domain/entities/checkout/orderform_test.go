package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOrderForm = `{
	"orderFormId": "of-123",
	"userProfileId": "user-1",
	"clientProfileData": {"email": "a@x.com"},
	"marketingData": {"utmCampaign": "spring", "coupon": "X"},
	"items": [
		{"id": "sku-1", "imageUrl": "http://cdn.example.com/sku-1.jpg"},
		{"id": "sku-2", "imageUrl": "https://cdn.example.com/sku-2.jpg"}
	],
	"value": 1000
}`

func TestDecodeOrderForm(t *testing.T) {
	form, err := DecodeOrderForm([]byte(sampleOrderForm))
	require.NoError(t, err)

	assert.Equal(t, "of-123", form.ID)
	assert.Equal(t, "user-1", form.UserProfileID)
	assert.Equal(t, "a@x.com", form.ClientEmail)
	require.NotNil(t, form.Marketing)
	assert.Equal(t, "spring", form.Marketing.UtmCampaign)
	assert.Equal(t, "X", form.Marketing.Coupon)

	// the raw document is carried through untouched
	assert.Equal(t, float64(1000), form.Raw["value"])
}

func TestDecodeOrderFormMinimal(t *testing.T) {
	form, err := DecodeOrderForm([]byte(`{"orderFormId": "of-empty"}`))
	require.NoError(t, err)

	assert.Equal(t, "of-empty", form.ID)
	assert.Empty(t, form.ClientEmail)
	assert.Nil(t, form.Marketing)
}

func TestDecodeOrderFormInvalid(t *testing.T) {
	_, err := DecodeOrderForm([]byte("not json"))
	assert.Error(t, err)
}

func TestForceHTTPSAssets(t *testing.T) {
	form, err := DecodeOrderForm([]byte(sampleOrderForm))
	require.NoError(t, err)

	form.ForceHTTPSAssets()

	items := form.Raw["items"].([]any)
	first := items[0].(map[string]any)
	second := items[1].(map[string]any)
	assert.Equal(t, "https://cdn.example.com/sku-1.jpg", first["imageUrl"])
	assert.Equal(t, "https://cdn.example.com/sku-2.jpg", second["imageUrl"])
}

func TestForceHTTPSAssetsTolerant(t *testing.T) {
	// no items, nil raw, nil receiver: all no-ops
	form := &OrderForm{Raw: map[string]any{"orderFormId": "of-1"}}
	assert.Equal(t, form, form.ForceHTTPSAssets())

	var nilForm *OrderForm
	assert.Nil(t, nilForm.ForceHTTPSAssets())
}
