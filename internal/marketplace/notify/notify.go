// Package notify delivers OTP codes over SMS.
package notify

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

	"github.com/aussiebroadwan/estate/pkg/slogx"
)

// SMSSender delivers one code to one phone.
type SMSSender interface {
	SendOTP(ctx context.Context, phone, code string, ttl time.Duration) error
}

// ErrDelivery wraps every gateway failure.
var ErrDelivery = errors.New("notify: sms delivery failed")

const DefaultFast2SMSURL = "https://www.fast2sms.com/dev/bulkV2"

// Fast2SMS talks to the Fast2SMS bulk API.
type Fast2SMS struct {
	APIKey     string
	SenderID   string
	URL        string
	HTTPClient *http.Client
}

func NewFast2SMS(apiKey, senderID, url string) *Fast2SMS {
	if url == "" {
		url = DefaultFast2SMSURL
	}
	return &Fast2SMS{
		APIKey:     apiKey,
		SenderID:   senderID,
		URL:        url,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type fast2smsRequest struct {
	SenderID string `json:"sender_id"`
	Message  string `json:"message"`
	Language string `json:"language"`
	Route    string `json:"route"`
	Numbers  string `json:"numbers"`
}

type fast2smsResponse struct {
	Return  bool `json:"return"`
	Message any  `json:"message"`
}

// Message is the text sent for code.
func Message(code string, ttl time.Duration) string {
	return fmt.Sprintf("Your OTP is %s. Valid for %d minutes.", code, int(ttl.Minutes()))
}

func (f *Fast2SMS) SendOTP(ctx context.Context, phone, code string, ttl time.Duration) error {
	body, err := json.Marshal(fast2smsRequest{
		SenderID: f.SenderID,
		Message:  Message(code, ttl),
		Language: "english",
		Route:    "otp",
		Numbers:  phone,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("authorization", f.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d: %s", ErrDelivery, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out fast2smsResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("%w: bad reply: %v", ErrDelivery, err)
	}
	if !out.Return {
		return fmt.Errorf("%w: gateway said %v", ErrDelivery, out.Message)
	}
	return nil
}

// LogSender stands in when SMS is switched off. It only logs that a code
// went out; the code itself is logged at debug level.
type LogSender struct{}

func (LogSender) SendOTP(ctx context.Context, phone, code string, ttl time.Duration) error {
	log := slogx.FromContext(ctx)
	log.Info("sms disabled, not sending otp", "phone", phone)
	log.Debug("otp", "phone", phone, "code", code, "ttl", ttl.String())
	return nil
}

var (
	_ SMSSender = (*Fast2SMS)(nil)
	_ SMSSender = LogSender{}
)
