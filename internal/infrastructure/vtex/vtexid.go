package vtex

import (
	"context"
	"net/http"
)

// CredentialValidation is the identity provider's verdict on a token.
type CredentialValidation struct {
	Valid bool
	ID    string
	Email string
}

type credentialValidateResponse struct {
	AuthStatus string `json:"authStatus"`
	ID         string `json:"id"`
	User       string `json:"user"`
}

// ValidateCredential checks a bearer token against the identity provider.
// A 401 means the token is simply invalid, not a failure of the call.
func (c *Client) ValidateCredential(ctx context.Context, token string) (*CredentialValidation, error) {
	body := map[string]string{"token": token}

	req, err := c.newRequest(ctx, http.MethodPost, c.endpoint("/api/vtexid/credential/validate", nil), body, "")
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req, "validate_credential")
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		return &CredentialValidation{Valid: false}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, newUpstreamError("validate_credential", resp)
	}

	var decoded credentialValidateResponse
	if err := decodeJSON(resp, &decoded); err != nil {
		return nil, err
	}

	return &CredentialValidation{
		Valid: decoded.AuthStatus == "Success",
		ID:    decoded.ID,
		Email: decoded.User,
	}, nil
}
