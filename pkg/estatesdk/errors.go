package estatesdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx reply from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("estate api: %d %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var e *APIError
	return errors.As(err, &e) && e.StatusCode == status
}

func parseErrorResponse(resp *http.Response, body []byte) error {
	var msg MessageResponse
	if err := json.Unmarshal(body, &msg); err != nil || msg.Message == "" {
		return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg.Message}
}
