package client

import (
	"errors"
	"net/http"
)

var (
	ErrUnavailable = errors.New("server unavailable")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrForbidden   = errors.New("forbidden")
)

// APIError is a non-2xx answer from the server. Detail is the server's
// user-facing message.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if t := http.StatusText(e.Status); t != "" {
		return t
	}
	return "unexpected server response"
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusForbidden:
		return ErrForbidden
	default:
		return nil
	}
}

// Detail returns the server's message for err, or err.Error() when err did
// not come from the server.
func Detail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}
