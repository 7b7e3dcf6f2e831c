package client

import "fmt"

// ErrorClass represents a classification of request errors.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork represents network/transport errors.
	ErrorClassNetwork ErrorClass = "network"
)

// StatusError is returned for any non-2xx response. It is fatal: a status
// error on page k of a traversal aborts the whole traversal and discards
// pages already fetched. There is no retry.
type StatusError struct {
	StatusCode int
	Status     string
	Resource   string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unleashed %s error on %s: %s",
		classify(e.StatusCode), e.Resource, e.Status)
}

// Class returns the error classification for the status code.
func (e *StatusError) Class() ErrorClass {
	return classify(e.StatusCode)
}

// TransportError is returned when the HTTP request itself fails before any
// response is received (connection refused, DNS failure, and so on).
type TransportError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("unleashed network error for %s: %v", e.URL, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// classify categorizes a status code for observability and error messages.
func classify(statusCode int) ErrorClass {
	switch {
	case statusCode >= 400 && statusCode < 500:
		return ErrorClassClient
	case statusCode >= 500:
		return ErrorClassServer
	default:
		return ErrorClass(fmt.Sprintf("status_%d", statusCode))
	}
}
