// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/matt-FFFFFF/vbsc/internal/ctxlog"
	"github.com/matt-FFFFFF/vbsc/internal/progress"
)

// DefaultFilter matches every procedure.
const DefaultFilter = ".*"

// RunOptions are the values shared by every script of a run.
type RunOptions struct {
	Args        []string // Arguments passed to each script
	Params      []string // Parameters each script runs with
	Filter      string   // Regular expression selecting procedures, empty means all
	Debug       bool     // Halt on failures, forces sequential execution
	Concurrency int      // Maximum number of scripts running at once
}

// Runner runs scripts on a fixed pool of workers.
type Runner struct {
	Executor Executor          // Runs each script
	Reporter progress.Reporter // Receives progress events, may be nil
	clock    func() time.Time
	newID    func() string
}

// Option configures a Runner.
type Option func(*Runner)

// WithReporter sets the progress reporter of the runner.
func WithReporter(reporter progress.Reporter) Option {
	return func(r *Runner) {
		r.Reporter = reporter
	}
}

// WithClock replaces the time source of the runner.
func WithClock(clock func() time.Time) Option {
	return func(r *Runner) {
		r.clock = clock
	}
}

// WithRunID replaces the generator of run identifiers.
func WithRunID(newID func() string) Option {
	return func(r *Runner) {
		r.newID = newID
	}
}

// New creates a runner for the executor.
func New(executor Executor, opts ...Option) *Runner {
	r := &Runner{Executor: executor}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run executes every path once and returns the summary of the run.
// Configuration problems are returned as an error before any script starts.
// Script failures are recorded in the summary only.
//
// At most opts.Concurrency scripts run at the same time; workers take scripts from
// a shared queue in submission order, and the results keep that order whatever the
// completion order. When ctx is cancelled no further script starts: scripts already
// running finish normally and the others are recorded as skipped.
func (r *Runner) Run(ctx context.Context, paths []string, opts RunOptions) (*Summary, error) {
	if r.Executor == nil {
		return nil, ErrNoExecutor
	}

	if opts.Concurrency < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidConcurrency, opts.Concurrency)
	}

	filter, err := compileFilter(opts.Filter)
	if err != nil {
		return nil, err
	}

	runID := r.runID()
	ctx = ctxlog.With(ctx, ctxlog.RunKey, runID)
	logger := ctxlog.Logger(ctx).With("scripts", len(paths))

	targets := make([]Target, len(paths))
	for i, p := range paths {
		targets[i] = Target{
			Path:   p,
			Args:   slices.Clone(opts.Args),
			Params: slices.Clone(opts.Params),
			Filter: filter,
			Debug:  opts.Debug,
		}
	}

	workers := opts.Concurrency
	if opts.Debug && workers > 1 {
		logger.Warn("debug mode runs scripts one at a time", "concurrency", workers)
		workers = 1
	}

	workers = min(workers, len(targets))

	reporter := r.Reporter
	if reporter == nil {
		reporter = progress.NewNullReporter()
	}

	logger.Debug("starting run", "workers", workers)

	startedAt := r.now()
	slots := newResultSlots(len(targets))
	queue := make(chan int)
	// Scripts that have started are not cancelled with the run.
	execCtx := context.WithoutCancel(ctx)
	wg := &sync.WaitGroup{}

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range queue {
				reportStarted(reporter, targets[i], i, len(targets), r.now())

				res := r.runTarget(execCtx, targets[i])
				slots.put(i, res)

				reportFinished(reporter, res, i, len(targets), r.now())
			}
		}()
	}

	dispatched := dispatch(ctx, queue, len(targets))

	close(queue)
	wg.Wait()

	if dispatched < len(targets) {
		logger.Warn("run cancelled, remaining scripts skipped", "skipped", len(targets)-dispatched)
	}

	for i := dispatched; i < len(targets); i++ {
		now := r.now()
		res := &Result{
			Target:     targets[i],
			Status:     ResultStatusSkipped,
			Error:      fmt.Errorf("%w: %w", ErrRunCancelled, context.Cause(ctx)),
			StartedAt:  now,
			FinishedAt: now,
		}
		slots.put(i, res)
		reportFinished(reporter, res, i, len(targets), now)
	}

	summary := Summarize(slots.results(), startedAt, r.now())
	summary.RunID = runID

	logger.Debug("run finished", "passed", summary.Passed, "failed", summary.Failed)

	return summary, nil
}

// dispatch offers target indices to the workers in order and returns how many
// were taken before ctx was cancelled.
func dispatch(ctx context.Context, queue chan<- int, n int) int {
	for i := range n {
		if ctx.Err() != nil {
			return i
		}

		select {
		case <-ctx.Done():
			return i
		case queue <- i:
		}
	}

	return n
}

func (r *Runner) now() time.Time {
	if r.clock == nil {
		return time.Now()
	}

	return r.clock()
}

func (r *Runner) runID() string {
	if r.newID == nil {
		return uuid.Must(uuid.NewV7()).String()
	}

	return r.newID()
}

func compileFilter(filter string) (*regexp.Regexp, error) {
	if filter == "" {
		filter = DefaultFilter
	}

	re, err := regexp.Compile(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidFilter, filter, err)
	}

	return re, nil
}

// resultSlots holds one result per target, indexed by submission order.
type resultSlots struct {
	mu    sync.Mutex
	slots Results
}

func newResultSlots(n int) *resultSlots {
	return &resultSlots{slots: make(Results, n)}
}

func (s *resultSlots) put(i int, r *Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[i] = r
}

func (s *resultSlots) results() Results {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.slots)
}
