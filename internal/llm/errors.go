package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

var (
	ErrNoAPIKey       = errors.New("API key is required")
	ErrInvalidBaseURL = errors.New("invalid base URL")
	ErrNilContext     = errors.New("context cannot be nil")
	ErrMaxRetries     = errors.New("max retries exceeded")
	ErrEmptyResponse  = errors.New("response contained no choices")
)

type apiErrorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Param   string `json:"param"`
		Code    any    `json:"code"`
	} `json:"error"`
}

type APIError struct {
	StatusCode int
	Message    string
	Type       string
	Param      string
	Code       any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

type RateLimitError struct {
	APIError
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited (status %d): %s", e.StatusCode, e.Message)
}

func (e *RateLimitError) Unwrap() error { return &e.APIError }

type AuthenticationError struct {
	APIError
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed (status %d): %s", e.StatusCode, e.Message)
}

func (e *AuthenticationError) Unwrap() error { return &e.APIError }

type TimeoutError struct {
	APIError
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timeout: %s", e.Message)
}

func (e *TimeoutError) Unwrap() error { return &e.APIError }

type InvalidRequestError struct {
	APIError
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request (status %d): %s", e.StatusCode, e.Message)
}

func (e *InvalidRequestError) Unwrap() error { return &e.APIError }

func parseAPIError(statusCode int, header http.Header, body []byte) error {
	var envelope apiErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return &APIError{
			StatusCode: statusCode,
			Message:    string(body),
		}
	}

	apiErr := &APIError{
		StatusCode: statusCode,
		Message:    envelope.Error.Message,
		Type:       envelope.Error.Type,
		Param:      envelope.Error.Param,
		Code:       envelope.Error.Code,
	}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthenticationError{APIError: *apiErr}
	case http.StatusTooManyRequests:
		return &RateLimitError{
			APIError:   *apiErr,
			RetryAfter: parseRetryAfter(header.Get("Retry-After")),
		}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &InvalidRequestError{APIError: *apiErr}
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return &TimeoutError{APIError: *apiErr}
	default:
		return apiErr
	}
}

// parseRetryAfter handles both forms of the Retry-After header:
// delay seconds and an HTTP date.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}

	if at, err := http.ParseTime(value); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}

	return 0
}

func IsRateLimitError(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

func IsAuthError(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

func IsTimeoutError(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}

func IsRetryableError(err error) bool {
	if IsRateLimitError(err) || IsTimeoutError(err) {
		return true
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500 && apiErr.StatusCode < 600
	}

	return false
}
