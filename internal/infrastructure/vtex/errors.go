package vtex

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// UpstreamError is a non-2xx or transport-level failure from the commerce
// backend. The upstream status is preserved end-to-end; these errors are
// never retried by the gateway.
type UpstreamError struct {
	Operation string
	Status    int
	URL       string
	Body      string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s failed: status %d from %s", e.Operation, e.Status, e.URL)
}

// AsUpstreamError unwraps err into an *UpstreamError when possible.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr, true
	}
	return nil, false
}

// newUpstreamError builds an UpstreamError from a response, capturing a
// bounded slice of the body for diagnostics.
func newUpstreamError(operation string, resp *http.Response) *UpstreamError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return &UpstreamError{
		Operation: operation,
		Status:    resp.StatusCode,
		URL:       resp.Request.URL.String(),
		Body:      string(body),
	}
}
