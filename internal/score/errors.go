package score

import (
	"fmt"
	"unicode/utf8"
)

// ParseError indicates backend output that could not be decoded into a
// judgment by any fallback strategy. Raw keeps the original text for
// diagnostics.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("no judgment found in backend output: %q", clip(e.Raw, 120))
}

// TaskError records a single task that failed (backend call or parse).
// It is collected alongside results and never aborts the batch.
type TaskError struct {
	Item string
	Err  error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %q: %v", clip(e.Item, 60), e.Err)
}

// clip shortens s to at most max bytes, backing up to a rune boundary so
// the cut never splits a multibyte rune.
func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func (e *TaskError) Unwrap() error { return e.Err }

// NoCandidatesError indicates the target yields fewer than 2
// distinguishable categories, so there is nothing meaningful to classify.
// Fatal to the single Score call, not to a multi-target session.
type NoCandidatesError struct {
	Found int
}

func (e *NoCandidatesError) Error() string {
	return fmt.Sprintf("need at least 2 categories to score, found %d", e.Found)
}

// AllTasksFailedError indicates every dispatched task errored, which
// signals a systemic backend problem rather than a content problem.
type AllTasksFailedError struct {
	Tasks int
	Last  error
}

func (e *AllTasksFailedError) Error() string {
	return fmt.Sprintf("all %d tasks failed, last error: %v", e.Tasks, e.Last)
}

func (e *AllTasksFailedError) Unwrap() error { return e.Last }
