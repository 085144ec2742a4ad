package analysis

import (
	"errors"
	"fmt"
)

// ErrNotRemoteStrategy is returned when a local strategy is sent to the scoring service.
var ErrNotRemoteStrategy = errors.New("strategy is not scored remotely")

// RemoteErrorKind classifies a failed call to the scoring service.
type RemoteErrorKind string

const (
	// KindHTTPStatus means the service answered with a non-2xx status.
	KindHTTPStatus RemoteErrorKind = "http_status"
	// KindNetwork means no response was received.
	KindNetwork RemoteErrorKind = "network"
	// KindMalformedResponse means a 2xx body did not have the expected shape.
	KindMalformedResponse RemoteErrorKind = "malformed_response"
)

// RemoteError is returned for every failed analysis request.
type RemoteError struct {
	Kind       RemoteErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("API returned status %d. Details: %s", e.StatusCode, e.Message)
	case KindNetwork:
		return "could not reach scoring service: " + e.Message
	case KindMalformedResponse:
		return "scoring service returned an invalid response: " + e.Message
	default:
		return e.Message
	}
}

func (e *RemoteError) Unwrap() error { return e.Err }
