package recognizer

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrRecognizerUnavailable matches every failure of an adapter: unreachable
// endpoint, error status, empty or unusable answer.
var ErrRecognizerUnavailable = errors.New("recognizer unavailable")

// UnavailableError describes an adapter failure.
type UnavailableError struct {
	Source string
	// Transient failures (network, 5xx, rate limit) are worth retrying.
	Transient  bool
	RetryAfter time.Duration
	Err        error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s unavailable: %v", e.Source, e.Err)
	}
	return e.Source + " unavailable"
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func (e *UnavailableError) Is(target error) bool {
	return target == ErrRecognizerUnavailable
}

func transient(source string, err error) error {
	return &UnavailableError{Source: source, Transient: true, Err: err}
}

func permanent(source string, err error) error {
	return &UnavailableError{Source: source, Err: err}
}

// statusError classifies an HTTP status returned by a provider.
func statusError(source string, status int, err error) error {
	switch {
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return transient(source, err)
	default:
		return permanent(source, err)
	}
}
