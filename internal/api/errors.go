package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrUnauthorized is returned for 401 and 403 responses.
	ErrUnauthorized = errors.New("authentication failed")

	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("resource not found")

	// ErrRateLimited is returned for 429 responses.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrValidation is returned for 400 and 422 responses.
	ErrValidation = errors.New("validation failed")

	// ErrNetwork is returned when no response was received.
	ErrNetwork = errors.New("network error")
)

// Kind is the closed set of request failures
type Kind int

const (
	KindAuthentication Kind = iota + 1
	KindNotFound
	KindRateLimited
	KindValidation
	KindUnclassified
	KindNetwork
)

// Tag is the machine-readable name of the kind
func (k Kind) Tag() string {
	switch k {
	case KindAuthentication:
		return "authentication_error"
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limit_exceeded"
	case KindValidation:
		return "validation_error"
	case KindUnclassified:
		return "api_error"
	case KindNetwork:
		return "network_error"
	default:
		return "error"
	}
}

func (k Kind) String() string {
	return k.Tag()
}

// Error is a classified request failure. StatusCode is zero for KindNetwork.
// Detail carries the remote body text (NotFound, Validation, Unclassified)
// or the transport failure description (Network).
type Error struct {
	Kind       Kind
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindAuthentication:
		return "Authentication failed. Check your API key."
	case KindNotFound:
		return fmt.Sprintf("Resource not found: %s", e.Detail)
	case KindRateLimited:
		return "Rate limit exceeded. Please try again later."
	case KindValidation:
		return fmt.Sprintf("Validation error: %s", e.Detail)
	case KindNetwork:
		return fmt.Sprintf("Network error: %s", e.Detail)
	default:
		return fmt.Sprintf("API error: %d - %s", e.StatusCode, e.Detail)
	}
}

// Is implements errors.Is for sentinel error matching.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindAuthentication:
		return target == ErrUnauthorized
	case KindNotFound:
		return target == ErrNotFound
	case KindRateLimited:
		return target == ErrRateLimited
	case KindValidation:
		return target == ErrValidation
	case KindNetwork:
		return target == ErrNetwork
	}
	return false
}

// KindOf returns the failure kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

// DecodeError reports a successful response whose body did not match the
// expected shape.
type DecodeError struct {
	Method     string
	Path       string
	StatusCode int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s %s response (status %d): %v", e.Method, e.Path, e.StatusCode, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// classify maps a non-success status to its failure kind
func classify(status int, body string) *Error {
	switch status {
	case 401, 403:
		return &Error{Kind: KindAuthentication, StatusCode: status}
	case 404:
		return &Error{Kind: KindNotFound, StatusCode: status, Detail: body}
	case 429:
		return &Error{Kind: KindRateLimited, StatusCode: status}
	case 400, 422:
		return &Error{Kind: KindValidation, StatusCode: status, Detail: body}
	default:
		return &Error{Kind: KindUnclassified, StatusCode: status, Detail: body}
	}
}
