package web

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidURL reports a base URL, suffix, or path that does not parse
	// or is not usable as a request target.
	ErrInvalidURL = errors.New("invalid url")
	// ErrInvalidHeader reports a header name or value rejected before any
	// request is sent.
	ErrInvalidHeader = errors.New("invalid header")
	// ErrTimeout is the sentinel carried by every [TimeoutError], whether it
	// came from the transport or from a 408 response.
	ErrTimeout = errors.New("request timed out")
	// ErrInvalidUTF8 is wrapped by [DecodeError] when a response body is not
	// valid UTF-8.
	ErrInvalidUTF8 = errors.New("body is not valid utf-8")
)

// SendError is returned when the transport fails to deliver the request
// for any reason other than a timeout.
type SendError struct {
	URL string
	Err error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("sending request to %s: %v", e.URL, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// TimeoutError is returned when the request deadline expires before a
// response arrives, or when the server itself answers 408 Request Timeout.
// Both paths yield the same kind; errors.Is(err, ErrTimeout) detects either.
type TimeoutError struct {
	URL string
	Msg string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout requesting %s: %s", e.URL, e.Msg)
}

func (e *TimeoutError) Unwrap() error {
	return ErrTimeout
}

// StatusError is returned for any non-2xx response other than 408. Msg holds
// the server's error message when one could be extracted from the body.
type StatusError struct {
	Code int
	URL  string
	Msg  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned %d %s: %s", e.URL, e.Code, http.StatusText(e.Code), e.Msg)
}

// PayloadError is returned when reading the response stream fails after a
// successful status was received.
type PayloadError struct {
	URL string
	Err error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("reading response from %s: %v", e.URL, e.Err)
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when a response body was expected to carry JSON
// but could not be decoded into the destination value.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// InternalError reports a client-side failure raised outside the HTTP
// exchange itself.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Msg
}

// ErrorMessage is the JSON error envelope returned by the node on failed
// requests. It doubles as an error so callers can surface it directly.
type ErrorMessage struct {
	Message *string `json:"message,omitempty"`
}

func (e ErrorMessage) Error() string {
	if e.Message == nil {
		return ""
	}

	return *e.Message
}

// DefaultOnTimeout converts a timeout failure into a successful zero value.
// Long-poll endpoints use it so an expired poll reads as "no new results":
//
//	events, err := web.DefaultOnTimeout(client.GetEvents(ctx))
//
// All other errors pass through untouched.
func DefaultOnTimeout[T any](v T, err error) (T, error) {
	if err != nil && errors.Is(err, ErrTimeout) {
		var zero T
		return zero, nil
	}

	return v, err
}
