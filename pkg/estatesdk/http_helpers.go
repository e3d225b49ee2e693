package estatesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

func (c *Client) do(ctx context.Context, token, method, path string, in, out any, expectedStatus int) error {
	_, err := c.send(ctx, token, method, path, in, out, expectedStatus)
	return err
}

// send posts an optional JSON body, with a bearer token when one is given,
// and decodes the reply into out if the status matches. An expectedStatus
// of 0 accepts any 2xx.
func (c *Client) send(ctx context.Context, token, method, path string, in, out any, expectedStatus int) (int, error) {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	return resp.StatusCode, decodeJSON(resp, out, expectedStatus)
}

// decodeJSON reads the body once and either decodes it into target or
// turns it into an *APIError.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	ok := resp.StatusCode == expectedStatus ||
		(expectedStatus == 0 && resp.StatusCode >= 200 && resp.StatusCode < 300)
	if !ok {
		return parseErrorResponse(resp, bodyBytes)
	}
	if target == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
