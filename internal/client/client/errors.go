package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// The messages below are shown to the user verbatim.
var (
	ErrAuthenticationRequired  = errors.New("Authentication required")
	ErrAuthExpired             = errors.New("Authentication expired. Please login again.")
	ErrNotFound                = errors.New("Not found")
	ErrAlreadyBookmarked       = errors.New("Job is already bookmarked")
	ErrNetwork                 = errors.New("Network error: Please check your internet connection")
	ErrInvalidCredentials      = errors.New("Invalid email or password")
	ErrInvalidVerificationCode = errors.New("Invalid verification code")
	ErrJobIDRequired           = errors.New("Job ID is required")
	ErrNoJobData               = errors.New("No job data received")

	ErrJobNotFound      error = &notFoundError{msg: "Job opportunity not found"}
	ErrBookmarkNotFound error = &notFoundError{msg: "Bookmark not found"}
)

// notFoundError is a resource-specific 404 that still matches ErrNotFound.
type notFoundError struct {
	msg string
}

func (e *notFoundError) Error() string { return e.msg }

func (e *notFoundError) Is(target error) bool { return target == ErrNotFound }

// APIError is a 2xx response whose envelope says success=false, or a
// rejected auth request carrying a server message.
type APIError struct {
	Message string
}

func (e *APIError) Error() string { return e.Message }

// HTTPError is a non-2xx response with no more specific mapping.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Status)
}

// networkError keeps the transport cause reachable while reading as ErrNetwork.
type networkError struct {
	cause error
}

func (e *networkError) Error() string { return ErrNetwork.Error() }

func (e *networkError) Unwrap() []error { return []error{ErrNetwork, e.cause} }

// mapTransportError converts an http.Client.Do failure. Cancellation by the
// caller is passed through untouched.
func mapTransportError(ctx context.Context, err error) error {
	if ctx.Err() != nil && errors.Is(err, context.Canceled) {
		return ctx.Err()
	}
	return &networkError{cause: err}
}

// mapStatus converts a non-2xx status. notFound is the error to use for 404;
// nil means 404 gets the generic *HTTPError.
func mapStatus(status int, notFound error) error {
	switch {
	case status == http.StatusUnauthorized:
		return ErrAuthExpired
	case status == http.StatusNotFound && notFound != nil:
		return notFound
	default:
		return &HTTPError{Status: status}
	}
}

func apiError(message, fallback string) *APIError {
	if message == "" {
		message = fallback
	}
	return &APIError{Message: message}
}
