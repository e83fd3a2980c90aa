package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusError is a non-2xx API answer.
type StatusError struct {
	Code int
	Body string
	err  error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.Code)
}

func (e *StatusError) Unwrap() error { return e.err }

func newStatusError(code int, body string) *StatusError {
	se := &StatusError{Code: code, Body: body}
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		se.err = ErrUnauthorized
	case code >= 500:
		se.err = ErrUnavailable
	}
	return se
}

// mapError turns transport failures into ErrUnavailable. Context
// cancellation is passed through untouched.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
