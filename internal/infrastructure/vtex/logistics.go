package vtex

import (
	"context"
	"net/http"
)

// Holiday is a configured logistics holiday on the commerce account.
type Holiday struct {
	ID        string `json:"id"`
	Account   string `json:"account"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Name      string `json:"name"`
}

// ListHolidays fetches the account's configured logistics holidays.
func (c *Client) ListHolidays(ctx context.Context) ([]Holiday, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.endpoint("/api/logistics/pvt/configuration/holidays", nil), nil, "")
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req, "list_holidays")
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, newUpstreamError("list_holidays", resp)
	}

	var holidays []Holiday
	if err := decodeJSON(resp, &holidays); err != nil {
		return nil, err
	}
	return holidays, nil
}
