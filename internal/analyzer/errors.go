package analyzer

import (
	"errors"
	"fmt"
)

// ErrTransport marks network-level failures (connection refused,
// timeout, unreadable body). Handlers map it to a generic "try again"
// message; the server never saw the request, or we never saw the answer.
var ErrTransport = errors.New("analyzer unreachable")

// ServerError is a failure reported by the upstream itself, either a
// non-2xx status or a `success: false` envelope. Its message is
// authoritative and is surfaced to the operator verbatim.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("analyzer: %s (status %d)", e.Message, e.StatusCode)
}

func transportErr(err error) error {
	return fmt.Errorf("%w: %v", ErrTransport, err)
}
