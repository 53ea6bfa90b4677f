package upstream

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse is returned when an upstream page cannot be decoded.
var ErrMalformedResponse = errors.New("malformed upstream response")

// FetchFailedError is returned once every attempt of a request has failed.
type FetchFailedError struct {
	URL        string
	Attempts   int
	LastStatus int // 0 when the last attempt never received a response
	Err        error
}

func (e *FetchFailedError) Error() string {
	if e.LastStatus != 0 {
		return fmt.Sprintf("fetch %s failed after %d attempts (last status %d): %v", e.URL, e.Attempts, e.LastStatus, e.Err)
	}
	return fmt.Sprintf("fetch %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *FetchFailedError) Unwrap() error { return e.Err }

// statusError marks a completed request with a non-2xx status.
type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.status)
}
