package vtex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type graphQLRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// GraphQL executes a query against the store GraphQL endpoint, forwarding
// the serialized session cookie. When out is non-nil the data payload is
// decoded into it.
func (c *Client) GraphQL(ctx context.Context, query, operationName string, variables map[string]any, cookie string, out any) error {
	body := graphQLRequest{
		Query:         query,
		OperationName: operationName,
		Variables:     variables,
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.endpoint("/api/io/_v/private/graphql/v1", nil), body, cookie)
	if err != nil {
		return err
	}

	resp, err := c.do(req, "store_graphql")
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return newUpstreamError("store_graphql", resp)
	}

	var decoded graphQLResponse
	if err := decodeJSON(resp, &decoded); err != nil {
		return err
	}

	if len(decoded.Errors) > 0 {
		return fmt.Errorf("store graphql error: %s", decoded.Errors[0].Message)
	}

	if out != nil && len(decoded.Data) > 0 {
		return json.Unmarshal(decoded.Data, out)
	}
	return nil
}
