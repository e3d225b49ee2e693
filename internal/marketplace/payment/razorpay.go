// Package payment talks to the Razorpay orders API.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/estate/pkg/cryptox"
)

const DefaultRazorpayURL = "https://api.razorpay.com"

var (
	ErrGateway       = errors.New("payment: gateway error")
	ErrNotConfigured = errors.New("payment: gateway not configured")
)

// Order is the subset of a Razorpay order we keep.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Gateway creates orders and checks checkout signatures.
type Gateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
	PublicKey() string
}

type Razorpay struct {
	KeyID      string
	KeySecret  string
	BaseURL    string
	HTTPClient *http.Client
}

func NewRazorpay(keyID, keySecret, baseURL string) *Razorpay {
	if baseURL == "" {
		baseURL = DefaultRazorpayURL
	}
	return &Razorpay{
		KeyID:      keyID,
		KeySecret:  keySecret,
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (r *Razorpay) PublicKey() string { return r.KeyID }

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type gatewayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (r *Razorpay) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (Order, error) {
	if r.KeyID == "" || r.KeySecret == "" {
		return Order{}, ErrNotConfigured
	}

	body, err := json.Marshal(createOrderRequest{Amount: amountPaise, Currency: currency, Receipt: receipt})
	if err != nil {
		return Order{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return Order{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(r.KeyID, r.KeySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return Order{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Order{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	if resp.StatusCode >= 300 {
		var ge gatewayError
		_ = json.Unmarshal(raw, &ge)
		return Order{}, fmt.Errorf("%w: status %d: %s %s", ErrGateway, resp.StatusCode, ge.Error.Code, ge.Error.Description)
	}

	var o Order
	if err := json.Unmarshal(raw, &o); err != nil {
		return Order{}, fmt.Errorf("%w: bad reply: %v", ErrGateway, err)
	}
	if o.ID == "" {
		return Order{}, fmt.Errorf("%w: reply without order id", ErrGateway)
	}
	return o, nil
}

// VerifySignature checks the checkout signature, an HMAC-SHA256 of
// "order_id|payment_id" under the key secret.
func (r *Razorpay) VerifySignature(orderID, paymentID, signature string) bool {
	if r.KeySecret == "" || orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	return cryptox.VerifyHMACSHA256Hex(r.KeySecret, orderID+"|"+paymentID, signature)
}
