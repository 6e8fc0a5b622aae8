package panelsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Messages the server uses for authentication failures.
const (
	MessageInvalidCredentials = "Invalid credentials"
	MessageOTPRequired        = "OTP code required"
	MessageInvalidOTP         = "Invalid OTP code"
	MessageInvalidToken       = "Invalid token"
	MessageSessionExpired     = "Session expired"
	MessageUnauthorized       = "Unauthorized"
	MessageInternal           = "Internal server error"
)

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Code       string // HTTP status text, e.g. "Not Found"
	Message    string
	Path       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("panel: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// IsNotFound and friends match an error against a status code.
func IsNotFound(err error) bool     { return hasStatus(err, http.StatusNotFound) }
func IsConflict(err error) bool     { return hasStatus(err, http.StatusConflict) }
func IsUnauthorized(err error) bool { return hasStatus(err, http.StatusUnauthorized) }
func IsValidation(err error) bool   { return hasStatus(err, http.StatusBadRequest) }

func hasStatus(err error, code int) bool {
	var e *APIError
	return errors.As(err, &e) && e.StatusCode == code
}

func parseErrorResponse(resp *http.Response, body []byte) error {
	var env ErrorResponse
	if err := json.Unmarshal(body, &env); err != nil || env.Error.StatusCode == 0 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       http.StatusText(resp.StatusCode),
			Message:    string(body),
		}
	}
	return &APIError{
		StatusCode: env.Error.StatusCode,
		Code:       env.Error.Error,
		Message:    env.Error.Message,
		Path:       env.Error.Path,
	}
}
