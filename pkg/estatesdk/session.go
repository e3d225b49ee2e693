package estatesdk

import (
	"context"
	"net/http"
	"net/url"
)

// Session performs requests on behalf of one signed-in user.
type Session struct {
	client      *Client
	accessToken string
}

// AccessToken returns the bearer token the session sends.
func (s *Session) AccessToken() string { return s.accessToken }

func (s *Session) do(ctx context.Context, method, path string, in, out any, expectedStatus int) error {
	return s.client.do(ctx, s.accessToken, method, path, in, out, expectedStatus)
}

// Profile returns the caller, or every user when the caller is the admin.
func (s *Session) Profile(ctx context.Context) (*ProfileResponse, error) {
	var out ProfileResponse
	if err := s.do(ctx, http.MethodGet, "/api/auth/profile", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) Logout(ctx context.Context) error {
	return s.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, http.StatusOK)
}

func (s *Session) DeleteAccount(ctx context.Context, userID string) error {
	return s.do(ctx, http.MethodDelete, "/api/auth/delete/"+url.PathEscape(userID), nil, nil, http.StatusOK)
}

// CreateProperty posts a listing as JSON. duplicate is true when the
// server updated an existing identical listing instead of creating one.
func (s *Session) CreateProperty(ctx context.Context, req PropertyRequest) (out *PropertyResponse, duplicate bool, err error) {
	out = &PropertyResponse{}
	status, err := s.client.send(ctx, s.accessToken, http.MethodPost, "/api/properties", req, out, 0)
	if err != nil {
		return nil, false, err
	}
	return out, status == http.StatusOK, nil
}

func (s *Session) UpdateProperty(ctx context.Context, id string, req PropertyRequest) (*PropertyResponse, error) {
	var out PropertyResponse
	if err := s.do(ctx, http.MethodPut, "/api/properties/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ApproveProperty(ctx context.Context, id string) (*PropertyResponse, error) {
	var out PropertyResponse
	if err := s.do(ctx, http.MethodPost, "/api/properties/"+url.PathEscape(id)+"/approve", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteProperty(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, "/api/properties/"+url.PathEscape(id), nil, nil, http.StatusOK)
}

func (s *Session) RegisterAgent(ctx context.Context, req AgentRequest) (*AgentResponse, error) {
	var out AgentResponse
	if err := s.do(ctx, http.MethodPost, "/api/agents", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListAgents(ctx context.Context) (*AgentListResponse, error) {
	var out AgentListResponse
	if err := s.do(ctx, http.MethodGet, "/api/agents", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListConsultants(ctx context.Context, location string) (*ConsultantListResponse, error) {
	path := "/api/consultants"
	if location != "" {
		path += "?" + url.Values{"location": {location}}.Encode()
	}
	var out ConsultantListResponse
	if err := s.do(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CreateOrder(ctx context.Context, amount float64) (*CreateOrderResponse, error) {
	var out CreateOrderResponse
	if err := s.do(ctx, http.MethodPost, "/api/payments/order", CreateOrderRequest{Amount: amount}, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (*VerifyPaymentResponse, error) {
	var out VerifyPaymentResponse
	if err := s.do(ctx, http.MethodPost, "/api/payments/verify", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
