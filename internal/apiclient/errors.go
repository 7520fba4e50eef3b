package apiclient

import (
	"errors"
	"fmt"
)

// Kind classifies a failed API call.
type Kind string

const (
	// KindNetwork means no HTTP response was received.
	KindNetwork Kind = "network"
	// KindHTTP means the response status was not the expected one.
	KindHTTP Kind = "http"
	// KindApplication means the status was fine but the payload reports a failure.
	KindApplication Kind = "application"
	// KindDecode means the response body did not have the expected shape.
	KindDecode Kind = "decode"
)

// Operation names used in errors and logs.
const (
	OpLogin      = "login"
	OpTime       = "get time"
	OpListWords  = "list words"
	OpCreateWord = "create word"
	OpDeleteWord = "delete word"
	OpPing       = "ping"
)

// ErrMissingField is wrapped when a required response field is absent.
var ErrMissingField = errors.New("missing field")

// Error is returned by every Client method.
type Error struct {
	Op         string
	Kind       Kind
	StatusCode int
	// Message is the server-provided message for application errors,
	// or the missing field name for decode errors.
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNetwork:
		return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
	case KindHTTP:
		if e.Message != "" {
			return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Message)
		}
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	case KindApplication:
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case KindDecode:
		if errors.Is(e.Err, ErrMissingField) {
			return fmt.Sprintf("%s: invalid response: missing field %q", e.Op, e.Message)
		}
		return fmt.Sprintf("%s: invalid response: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

func missingField(op string, status int, field string) *Error {
	return &Error{
		Op:         op,
		Kind:       KindDecode,
		StatusCode: status,
		Message:    field,
		Err:        ErrMissingField,
	}
}
