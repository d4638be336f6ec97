package client

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned before any network call when the trimmed
	// input is empty.
	ErrEmptyInput = errors.New("empty input")
	// ErrBusy is returned while another analysis is in flight.
	ErrBusy = errors.New("analysis already in progress")
	// ErrMalformedResponse means the classifier answered with a body that
	// is not a result or an error object.
	ErrMalformedResponse = errors.New("malformed classifier response")
)

// Messages shown to the user.
const (
	EmptyInputMessage = "Please enter some text or URL to analyze"
	FailureMessage    = "Failed to analyze. Please try again."
	BusyMessage       = "An analysis is already running"
)

// TransportError covers network failures and non-2xx statuses.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("classifier returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("classifier request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerError carries the classifier's own error message.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return "classifier error: " + e.Message
}

// UserMessage is the text displayed for err. Classifier messages pass
// through verbatim; every transport or decoding problem collapses into
// FailureMessage.
func UserMessage(err error) string {
	var serverErr *ServerError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyInput):
		return EmptyInputMessage
	case errors.Is(err, ErrBusy):
		return BusyMessage
	case errors.As(err, &serverErr):
		return serverErr.Message
	default:
		return FailureMessage
	}
}
