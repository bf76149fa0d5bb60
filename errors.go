package iconset

import (
	"errors"
)

// Error kinds reported per output. Callers test for them with errors.Is.
var (
	ErrSourceNotFound          = errors.New("source not found")
	ErrDecode                  = errors.New("decode error")
	ErrUnsupportedFormat       = errors.New("unsupported format")
	ErrExternalToolUnavailable = errors.New("external tool unavailable")
	ErrWrite                   = errors.New("write error")
	ErrInvalidArgument         = errors.New("invalid argument")
)

// Status is the outcome of a single output in a run.
type Status int

const (
	StatusWritten Status = iota
	StatusFailed
	// StatusUnavailable means the output needs an external tool that is missing. Nothing was written.
	StatusUnavailable
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusWritten:
		return "written"
	case StatusFailed:
		return "failed"
	case StatusUnavailable:
		return "unavailable"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

func statusOf(err error) Status {
	switch {
	case err == nil:
		return StatusWritten
	case errors.Is(err, ErrExternalToolUnavailable):
		return StatusUnavailable
	default:
		return StatusFailed
	}
}
