// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"regexp"
	"slices"
)

// Invocation is everything an Executor needs to run one script.
type Invocation struct {
	Path   string         // Path of the script file
	Args   []string       // Arguments passed to the script
	Params []string       // Parameters, the script runs once per parameter
	Filter *regexp.Regexp // Selects the procedures to run
	Debug  bool           // Halt at the failure point instead of capturing the error
}

// Outcome is the result of one named procedure of a script.
type Outcome struct {
	Procedure string // Name of the procedure
	Succeeded bool   // Whether the procedure succeeded
	Output    string // Captured text output
	Err       error  // Failure detail, if any
}

// Executor runs a script. It may report any number of procedure outcomes.
// A returned error means the invocation itself failed.
// The runner calls Execute from several goroutines at once when the concurrency
// limit is greater than one.
type Executor interface {
	Execute(ctx context.Context, inv Invocation) ([]Outcome, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, inv Invocation) ([]Outcome, error)

// Execute implements Executor.
func (f ExecutorFunc) Execute(ctx context.Context, inv Invocation) ([]Outcome, error) {
	return f(ctx, inv)
}

// Target is one unit of work: a script plus the values it runs with.
type Target struct {
	Path   string
	Args   []string
	Params []string
	Filter *regexp.Regexp
	Debug  bool
}

// Invocation returns the executor input for the target.
// Slices are copied so that an executor cannot alter the target.
func (t Target) Invocation() Invocation {
	return Invocation{
		Path:   t.Path,
		Args:   slices.Clone(t.Args),
		Params: slices.Clone(t.Params),
		Filter: t.Filter,
		Debug:  t.Debug,
	}
}
