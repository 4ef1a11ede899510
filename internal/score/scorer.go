package score

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds concurrent backend calls when Options.Workers is
// not set.
const DefaultWorkers = 10

// Options tunes a scoring run.
type Options struct {
	// MaxItems caps how many tasks are judged. Sampling happens after a
	// shuffle of the full task list, so the sample is order-independent.
	// Zero means no cap.
	MaxItems int

	// Workers bounds concurrent in-flight backend calls.
	// Zero means DefaultWorkers.
	Workers int

	// Seed fixes the shuffle for reproducible sampling. Zero seeds from
	// the clock.
	Seed int64

	// OnResult, when set, is invoked after each judgment with the result
	// and completion counts. Called from worker goroutines, one at a time.
	OnResult func(r GuessResult, done, total int)
}

// Score runs one check against one target using the given backend and
// reduces the judgments into a Result.
//
// Task failures are recorded in Result.Failed and excluded from scoring;
// a single bad task never aborts the batch. Returns *NoCandidatesError
// when the target yields fewer than 2 distinct categories, and
// *AllTasksFailedError when every dispatched task errored.
func Score(ctx context.Context, chk Check, backend Backend, target string, opts Options) (*Result, error) {
	tasks, err := chk.Extract(target)
	if err != nil {
		return nil, fmt.Errorf("extract tasks: %w", err)
	}
	if len(tasks) == 0 {
		return nil, &NoCandidatesError{Found: 0}
	}

	universe := make(map[string]struct{})
	for _, t := range tasks {
		for _, c := range t.Candidates {
			universe[c] = struct{}{}
		}
	}
	if len(universe) < 2 {
		return nil, &NoCandidatesError{Found: len(universe)}
	}

	// Shuffle before truncating so the sample is not a prefix of the
	// extraction order (which would bias toward e.g. the first function
	// in a file).
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1))
	rng.Shuffle(len(tasks), func(i, j int) {
		tasks[i], tasks[j] = tasks[j], tasks[i]
	})
	if opts.MaxItems > 0 && len(tasks) > opts.MaxItems {
		tasks = tasks[:opts.MaxItems]
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	total := len(tasks)
	results := make([]*GuessResult, total)
	taskErrs := make([]error, total)

	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, task := range tasks {
		g.Go(func() error {
			r, err := runTask(gctx, chk, backend, task)
			if err != nil {
				taskErrs[i] = err
				return nil
			}
			results[i] = &r

			mu.Lock()
			done++
			if opts.OnResult != nil {
				opts.OnResult(r, done, total)
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	scored := make([]GuessResult, 0, total)
	for _, r := range results {
		if r != nil {
			scored = append(scored, *r)
		}
	}
	failed := total - len(scored)
	if len(scored) == 0 {
		var last error
		for _, e := range taskErrs {
			if e != nil {
				last = e
			}
		}
		return nil, &AllTasksFailedError{Tasks: total, Last: last}
	}

	res := buildResult(chk.Name(), scored, tasks)
	res.Failed = failed
	return res, nil
}
