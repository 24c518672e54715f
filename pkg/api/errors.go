package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrUserNotFound is wrapped by APIError when the platform reports an
// unknown username.
var ErrUserNotFound = errors.New("user not found")

// ErrorClass classifies a failed profile fetch.
type ErrorClass string

const (
	// ClassNotFound covers unknown usernames (404 or an error payload).
	ClassNotFound ErrorClass = "not_found"

	// ClassRateLimit covers 429 responses from the platform.
	ClassRateLimit ErrorClass = "rate_limit"

	// ClassServer covers 5xx responses.
	ClassServer ErrorClass = "server"

	// ClassNetwork covers transport errors and timeouts.
	ClassNetwork ErrorClass = "network"

	// ClassParse covers responses whose body could not be decoded.
	ClassParse ErrorClass = "parse"
)

// APIError describes a failed request against the profile API. It never
// aborts a batch; the batch fetcher converts it into a Failure record.
type APIError struct {
	Username   string
	Endpoint   string
	StatusCode int
	Class      ErrorClass
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s error on %s (status %d): %s",
			e.Username, e.Class, e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s error on %s: %s",
		e.Username, e.Class, e.Endpoint, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the error originated from a cancelled or
// expired context.
func (e *APIError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded) ||
		errors.Is(e.Err, context.Canceled)
}

// classifyStatus maps an HTTP status code to an error class.
func classifyStatus(status int) ErrorClass {
	switch {
	case status == http.StatusNotFound:
		return ClassNotFound
	case status == http.StatusTooManyRequests:
		return ClassRateLimit
	case status >= 500:
		return ClassServer
	default:
		// Remaining 4xx responses carry no finer platform taxonomy;
		// treat them as unparseable requests.
		return ClassParse
	}
}
