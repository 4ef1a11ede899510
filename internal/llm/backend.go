// Package llm provides the judgment backends: ways of sending a prompt to
// a language model and getting its raw answer back. The scoring engine
// never sees provider specifics — every backend is just Complete.
package llm

import "context"

// Backend is the core abstraction for judge interaction. Complete sends a
// prompt and returns the model's raw, unparsed text.
//
// Backends must tolerate concurrent Complete calls from multiple workers.
// Runtimes that cannot (an in-process model, a stateful subprocess) must
// serialize internally rather than pushing that burden onto callers.
type Backend interface {
	// Complete sends a prompt to the judge and returns raw text.
	Complete(ctx context.Context, prompt string) (string, error)

	// ModelID returns the model identifier this backend is configured
	// to use.
	ModelID() string
}
