package llm

import (
	"fmt"
	"time"
)

// ErrRateLimit indicates the backend returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrBackendUnavailable indicates the backend is down, unreachable, or its
// process failed.
type ErrBackendUnavailable struct {
	Err error
}

func (e *ErrBackendUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend unavailable: %v", e.Err)
	}
	return "backend unavailable"
}

func (e *ErrBackendUnavailable) Unwrap() error { return e.Err }

// ErrEmptyCompletion indicates the backend call succeeded but produced no
// text to parse.
type ErrEmptyCompletion struct{}

func (e *ErrEmptyCompletion) Error() string {
	return "backend returned an empty completion"
}
