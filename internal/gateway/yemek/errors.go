package yemek

import (
	"errors"
	"fmt"
	"strings"
)

const maxErrorBodyPreview = 800

var (
	// ErrUpstream matches every failed backend call.
	ErrUpstream = errors.New("[yemek] error when trying to get response from backend")
	// ErrTransport indicates the request never produced an HTTP response.
	ErrTransport = errors.New("backend unreachable")
)

// HTTPError is a non-2xx backend response.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	// Message is the "error" field of the response payload, if any.
	Message string
	Body    string
}

func (e *HTTPError) Error() string {
	parts := []string{ErrUpstream.Error(), fmt.Sprintf("status=%d", e.StatusCode)}
	if target := strings.TrimSpace(e.Method + " " + e.URL); target != "" {
		parts = append(parts, target)
	}
	if e.Message != "" {
		parts = append(parts, fmt.Sprintf("error=%q", e.Message))
	} else if preview := compactBodyPreview(e.Body); preview != "" {
		parts = append(parts, fmt.Sprintf("body=%q", preview))
	}
	return strings.Join(parts, "; ")
}

func (e *HTTPError) Unwrap() error {
	return ErrUpstream
}

// TransportError wraps a failure to reach the backend at all.
type TransportError struct {
	Method string
	URL    string
	Cause  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s; %s; %s %s; cause=%v", ErrUpstream.Error(), ErrTransport.Error(), e.Method, e.URL, e.Cause)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrUpstream, ErrTransport, e.Cause}
}

// MessageOr returns the server-provided error text carried by err, or
// fallback when there is none.
func MessageOr(err error, fallback string) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && strings.TrimSpace(httpErr.Message) != "" {
		return httpErr.Message
	}
	return fallback
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

func compactBodyPreview(body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	body = strings.Join(strings.Fields(body), " ")
	if len(body) > maxErrorBodyPreview {
		return body[:maxErrorBodyPreview] + "..."
	}
	return body
}
