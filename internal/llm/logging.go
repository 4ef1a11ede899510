package llm

import (
	"context"
	"fmt"
	"os"
	"time"
)

// CallRecord captures one backend call for the call log.
type CallRecord struct {
	Backend      string
	Model        string
	Prompt       string
	Response     string
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// CallLog persists backend call records. Implemented by the store.
type CallLog interface {
	AppendCall(ctx context.Context, rec CallRecord) error
}

// LoggingBackend is a decorator that records every backend call.
type LoggingBackend struct {
	inner Backend
	name  string
	log   CallLog
}

// WithCallLog wraps a Backend so every call is recorded under the given
// backend name.
func WithCallLog(b Backend, name string, log CallLog) Backend {
	return &LoggingBackend{inner: b, name: name, log: log}
}

func (l *LoggingBackend) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	out, err := l.inner.Complete(ctx, prompt)

	rec := CallRecord{
		Backend:   l.name,
		Model:     l.inner.ModelID(),
		Prompt:    prompt,
		Response:  out,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	// Log the call but don't fail the request if logging fails.
	if logErr := l.log.AppendCall(ctx, rec); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log backend call: %v\n", logErr)
	}

	return out, err
}

func (l *LoggingBackend) ModelID() string {
	return l.inner.ModelID()
}
