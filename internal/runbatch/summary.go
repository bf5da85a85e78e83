// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"slices"
	"time"
)

// Summary is the aggregated outcome of a run. It is read-only once built.
type Summary struct {
	RunID      string  // Identifier of the run, empty when not produced by a Runner
	Results    Results // One result per script, in submission order
	StartedAt  time.Time
	FinishedAt time.Time
	Succeeded  bool // True when every result succeeded
	Passed     int  // Number of succeeded results
	Failed     int  // Number of results that did not succeed, skipped ones included
	Skipped    int  // Number of results that never ran
}

// Summarize reduces results into a Summary. It does not modify its inputs and
// the summary does not depend on the order in which scripts completed.
func Summarize(results Results, startedAt, finishedAt time.Time) *Summary {
	s := &Summary{
		Results:    slices.Clone(results),
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Succeeded:  true,
	}

	for _, r := range results {
		if r != nil && r.Succeeded {
			s.Passed++
			continue
		}

		s.Succeeded = false
		s.Failed++

		if r != nil && r.Status == ResultStatusSkipped {
			s.Skipped++
		}
	}

	return s
}

// Total returns the number of results.
func (s *Summary) Total() int {
	return len(s.Results)
}

// Elapsed returns the wall time of the run.
func (s *Summary) Elapsed() time.Duration {
	if s.FinishedAt.Before(s.StartedAt) {
		return 0
	}

	return s.FinishedAt.Sub(s.StartedAt)
}

// FailedResults returns the results that did not succeed, in submission order.
func (s *Summary) FailedResults() Results {
	failed := make(Results, 0, s.Failed)

	for _, r := range s.Results {
		if r != nil && !r.Succeeded {
			failed = append(failed, r)
		}
	}

	return failed
}

// Err returns a *BatchError describing the failed results, or nil when the run succeeded.
func (s *Summary) Err() error {
	if s.Succeeded {
		return nil
	}

	return &BatchError{FailedResults: s.FailedResults()}
}
