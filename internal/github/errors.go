package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// NetworkError reports a transport-level failure: DNS, refused connection, timeout.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("execute request %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError reports a non-2xx response from the API.
type APIError struct {
	Path       string
	StatusCode int
	Message    string
	// RateLimitRemaining is -1 when the response carried no rate limit header.
	RateLimitRemaining int
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api /%s returned status %d: %s", e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api /%s returned status %d", e.Path, e.StatusCode)
}

const maxErrorBody = 64 * 1024

func newAPIError(path string, resp *http.Response) *APIError {
	apiErr := &APIError{
		Path:               path,
		StatusCode:         resp.StatusCode,
		RateLimitRemaining: -1,
	}
	if raw := resp.Header.Get("X-RateLimit-Remaining"); raw != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			apiErr.RateLimitRemaining = n
		}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return apiErr
	}
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		apiErr.Message = strings.TrimSpace(payload.Message)
	}
	return apiErr
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsRateLimited reports whether err was caused by an exhausted rate limit.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.StatusCode {
	case http.StatusTooManyRequests:
		return true
	case http.StatusForbidden:
		if apiErr.RateLimitRemaining == 0 {
			return true
		}
		return strings.Contains(strings.ToLower(apiErr.Message), "rate limit")
	}
	return false
}
