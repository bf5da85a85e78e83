// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"slices"
	"time"
)

// ResultStatus is the status of a script result.
type ResultStatus int

const (
	// ResultStatusSuccess means the script and all its procedures succeeded.
	ResultStatusSuccess ResultStatus = iota
	// ResultStatusError means the script or one of its procedures failed.
	ResultStatusError
	// ResultStatusSkipped means the script never ran because the run was cancelled.
	ResultStatusSkipped
)

// String implements the Stringer interface for ResultStatus.
func (s ResultStatus) String() string {
	switch s {
	case ResultStatusSuccess:
		return "success"
	case ResultStatusError:
		return "error"
	case ResultStatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Result represents the outcome of running one script.
// It is created once by the runner and never changed afterwards.
type Result struct {
	Target     Target       // The script that ran
	Status     ResultStatus // Overall status
	Succeeded  bool         // True only for ResultStatusSuccess
	Outcomes   []Outcome    // Per procedure outcomes reported by the executor
	Output     string       // Captured output of all procedures
	Error      error        // Failure detail, if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// Label returns the display label of the result.
func (r *Result) Label() string {
	if r.Target.Path == "" {
		return "[unnamed]"
	}

	return r.Target.Path
}

// Elapsed returns how long the script ran.
func (r *Result) Elapsed() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}

	return r.FinishedAt.Sub(r.StartedAt)
}

// Results is a slice of Result pointers.
type Results []*Result

// HasError reports whether any result did not succeed.
func (r Results) HasError() bool {
	return slices.ContainsFunc(r, func(v *Result) bool {
		return v == nil || !v.Succeeded
	})
}
