package score

import (
	"context"
	"fmt"
)

// Check defines what to classify. Implementations decide what an item, a
// category, and a candidate set mean (a statement vs. a function name, a
// file vs. a folder) and whether candidates are global or restricted to a
// local neighborhood.
type Check interface {
	// Name identifies the check, e.g. "line-to-function".
	Name() string

	// Extract turns a target path (a source file or a directory) into
	// the full list of classification tasks.
	Extract(target string) ([]ClassificationTask, error)

	// BuildPrompt asks the judge to classify item among candidates.
	BuildPrompt(candidates []string, item string) string
}

// Backend sends a prompt to a judge and returns its raw, unparsed answer.
// Implementations must be safe for concurrent calls; runtimes that are not
// serialize internally.
type Backend interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// runTask judges a single task end to end: build the prompt, call the
// backend, parse the answer. Correctness is computed here — a backend's
// self-reported correctness is never trusted.
func runTask(ctx context.Context, chk Check, backend Backend, task ClassificationTask) (GuessResult, error) {
	prompt := chk.BuildPrompt(task.Candidates, task.Item)

	raw, err := backend.Complete(ctx, prompt)
	if err != nil {
		return GuessResult{}, &TaskError{Item: task.Item, Err: fmt.Errorf("backend: %w", err)}
	}

	j, err := ParseJudgment(raw)
	if err != nil {
		return GuessResult{}, &TaskError{Item: task.Item, Err: err}
	}

	return GuessResult{
		Item:          task.Item,
		Actual:        task.Actual,
		Guessed:       j.Guess,
		Confidence:    j.Confidence,
		Correct:       j.Guess == task.Actual,
		NumCandidates: len(task.Candidates),
	}, nil
}
