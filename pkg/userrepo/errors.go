package userrepo

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrTransport is returned when the request could not be completed.
	ErrTransport = errors.New("transport error")
	// ErrDecode is returned when the body does not decode into the expected record.
	ErrDecode = errors.New("decode error")
	// ErrUnexpectedStatus is returned for any non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrNotFound matches a 404 StatusError.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument signals input rejected before any request is sent.
	ErrInvalidArgument = errors.New("invalid argument")
)

// StatusError carries a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %d body: %s", ErrUnexpectedStatus, e.StatusCode, e.Body)
}

// Is matches ErrUnexpectedStatus for every StatusError and ErrNotFound for 404.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnexpectedStatus:
		return true
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
