// Package security provides identity token utilities
package security

import (
	"errors"

	"github.com/golang-jwt/jwt/v4"
)

// IdentityClaims is the subset of claims carried by the storefront
// authentication cookie that this gateway cares about.
type IdentityClaims struct {
	Subject string // account email, the "sub" claim
	UserID  string // commerce profile id, the "userId" claim
}

// DecodeIdentityToken best-effort decodes the payload of a bearer token
// without verifying its signature. Signature validation belongs to the
// identity provider's credential-validate endpoint; this is introspection
// only and must never be used as a trust boundary.
//
// Any malformed input (wrong segment count, bad base64, bad payload) yields
// a nil result and an error. Callers treat that as "no claims available".
func DecodeIdentityToken(token string) (*IdentityClaims, error) {
	if token == "" {
		return nil, errors.New("empty token")
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}

	result := &IdentityClaims{}
	if sub, ok := claims["sub"].(string); ok {
		result.Subject = sub
	}
	if userID, ok := claims["userId"].(string); ok {
		result.UserID = userID
	}

	return result, nil
}
