package security

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeSegment(payload string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}

func TestDecodeIdentityToken(t *testing.T) {
	header := encodeSegment(`{"alg":"HS256","typ":"JWT"}`)
	payload := encodeSegment(`{"sub":"a@x.com","userId":"user-123"}`)
	token := header + "." + payload + ".signature"

	claims, err := DecodeIdentityToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Subject)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestDecodeIdentityTokenMissingClaims(t *testing.T) {
	header := encodeSegment(`{"alg":"HS256","typ":"JWT"}`)
	payload := encodeSegment(`{"iat":1700000000}`)
	token := header + "." + payload + "."

	claims, err := DecodeIdentityToken(token)
	require.NoError(t, err)
	assert.Empty(t, claims.Subject)
	assert.Empty(t, claims.UserID)
}

func TestDecodeIdentityTokenMalformed(t *testing.T) {
	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"no dots", "not-a-token"},
		{"one segment", encodeSegment(`{"sub":"a@x.com"}`)},
		{"two segments", encodeSegment(`{}`) + "." + encodeSegment(`{"sub":"a"}`)},
		{"invalid base64", "aaa.!!!.ccc"},
		{"payload not json", encodeSegment(`{}`) + "." + encodeSegment("plain text") + ".sig"},
		{"four segments", "a.b.c.d"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			claims, err := DecodeIdentityToken(tc.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}
