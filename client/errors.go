package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure categories. Every error returned by Client wraps exactly one of
// these, so callers branch with errors.Is.
var (
	ErrNetwork    = errors.New("network error")
	ErrAuth       = errors.New("authentication failed")
	ErrValidation = errors.New("request rejected")
	ErrNotFound   = errors.New("not found")
	ErrUnexpected = errors.New("unexpected response")
)

// APIError describes a request the server answered with an error status.
type APIError struct {
	Kind    error
	Status  int
	Title   string
	Message string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Title
	}
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("%v (%d): %s", e.Kind, e.Status, msg)
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

// errorBody is the error envelope the API sends with non-2xx responses.
type errorBody struct {
	Error struct {
		Status  int    `json:"status"`
		Title   string `json:"title"`
		Message string `json:"message"`
	} `json:"error"`
}

// kindForStatus maps an HTTP status to a failure category.
func kindForStatus(status int) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuth
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return ErrValidation
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrUnexpected
	}
}

// IsAPIFailure reports whether err belongs to one of the client's failure
// categories. Such failures never corrupt local state; the caller can keep
// going with whatever it had before the request.
func IsAPIFailure(err error) bool {
	for _, kind := range []error{ErrNetwork, ErrAuth, ErrValidation, ErrNotFound, ErrUnexpected} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
