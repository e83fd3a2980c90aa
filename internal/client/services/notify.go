// Package services holds the console's application services: fetching the
// book, batch downloads and the session lifecycle.
package services

import (
	"errors"
	"fmt"
)

var ErrNothingSelected = errors.New("no resumes selected")

// User-facing failure messages.
const (
	msgFetchFailed    = "Error %v: Failed to fetch resumes - please sign in again"
	msgResolveFailed  = "Error %v: Failed to download resumes. Please try again later."
	msgDownloadFailed = "Failed to download resume. Please try again later."
)

// NotifyError is a failure the console shows to the operator as a
// transient notification. Msg is the text to show; Err is the cause.
type NotifyError struct {
	Msg string
	Err error
}

func (e *NotifyError) Error() string { return e.Msg }

func (e *NotifyError) Unwrap() error { return e.Err }

func fetchFailed(err error) *NotifyError {
	return &NotifyError{Msg: fmt.Sprintf(msgFetchFailed, err), Err: err}
}

func resolveFailed(err error) *NotifyError {
	return &NotifyError{Msg: fmt.Sprintf(msgResolveFailed, err), Err: err}
}

func downloadFailed(err error) *NotifyError {
	return &NotifyError{Msg: msgDownloadFailed, Err: err}
}
