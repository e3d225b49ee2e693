package estatesdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the public endpoints and creates Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewSession wraps an access token obtained from VerifyOTP or Refresh.
func (c *Client) NewSession(accessToken string) *Session {
	return &Session{client: c, accessToken: accessToken}
}

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, "", http.MethodGet, "/livez", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetReadiness checks if the service and its dependencies are ready.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, "", http.MethodGet, "/readyz", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SendOTP(ctx context.Context, req SendOTPRequest) (*SendOTPResponse, error) {
	var out SendOTPResponse
	if err := c.do(ctx, "", http.MethodPost, "/api/auth/send-otp", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResendOTP(ctx context.Context, phone string) (*SendOTPResponse, error) {
	var out SendOTPResponse
	req := SendOTPRequest{Phone: phone}
	if err := c.do(ctx, "", http.MethodPost, "/api/auth/resend-otp", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*VerifyOTPResponse, error) {
	var out VerifyOTPResponse
	if err := c.do(ctx, "", http.MethodPost, "/api/auth/verify-otp", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh exchanges a refresh token for a new pair. The old refresh token
// stops working.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	var out TokenResponse
	req := RefreshRequest{RefreshToken: refreshToken}
	if err := c.do(ctx, "", http.MethodPost, "/api/auth/refresh", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProperties lists listings. Empty filter values are ignored.
func (c *Client) ListProperties(ctx context.Context, city, listingType string) (*PropertyListResponse, error) {
	q := url.Values{}
	if city != "" {
		q.Set("city", city)
	}
	if listingType != "" {
		q.Set("listingType", listingType)
	}
	path := "/api/properties"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out PropertyListResponse
	if err := c.do(ctx, "", http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProperty(ctx context.Context, id string) (*PropertyResponse, error) {
	var out PropertyResponse
	if err := c.do(ctx, "", http.MethodGet, "/api/properties/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
