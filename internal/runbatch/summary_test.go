// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	summaryStart = time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	summaryEnd   = summaryStart.Add(1500 * time.Millisecond)
)

func okResult(path string) *Result {
	return &Result{
		Target:     Target{Path: path},
		Status:     ResultStatusSuccess,
		Succeeded:  true,
		StartedAt:  summaryStart,
		FinishedAt: summaryStart.Add(200 * time.Millisecond),
	}
}

func failedResult(path string, err error) *Result {
	return &Result{
		Target:     Target{Path: path},
		Status:     ResultStatusError,
		Error:      err,
		StartedAt:  summaryStart,
		FinishedAt: summaryStart.Add(300 * time.Millisecond),
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		results       Results
		wantSucceeded bool
		wantPassed    int
		wantFailed    int
		wantSkipped   int
	}{
		{
			name:          "empty",
			results:       Results{},
			wantSucceeded: true,
		},
		{
			name:          "all succeeded",
			results:       Results{okResult("a"), okResult("b")},
			wantSucceeded: true,
			wantPassed:    2,
		},
		{
			name:          "one failed",
			results:       Results{okResult("a"), failedResult("b", errors.New("x")), okResult("c")},
			wantSucceeded: false,
			wantPassed:    2,
			wantFailed:    1,
		},
		{
			name: "skipped counts as failed",
			results: Results{okResult("a"), {
				Target: Target{Path: "b"},
				Status: ResultStatusSkipped,
				Error:  ErrRunCancelled,
			}},
			wantSucceeded: false,
			wantPassed:    1,
			wantFailed:    1,
			wantSkipped:   1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := Summarize(tc.results, summaryStart, summaryEnd)

			assert.Equal(t, tc.wantSucceeded, s.Succeeded)
			assert.Equal(t, tc.wantPassed, s.Passed)
			assert.Equal(t, tc.wantFailed, s.Failed)
			assert.Equal(t, tc.wantSkipped, s.Skipped)
			assert.Equal(t, len(tc.results), s.Total())
			assert.Equal(t, 1500*time.Millisecond, s.Elapsed())
			assert.Equal(t, tc.wantSucceeded, !tc.results.HasError())
		})
	}
}

func TestSummarizeDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	results := Results{okResult("a"), failedResult("b", errors.New("x"))}

	s := Summarize(results, summaryStart, summaryEnd)
	s.Results[0] = nil

	assert.NotNil(t, results[0])

	again := Summarize(results, summaryStart, summaryEnd)
	assert.Equal(t, 1, again.Passed)
	assert.Equal(t, 1, again.Failed)
}

func TestSummaryErr(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Summarize(Results{okResult("a")}, summaryStart, summaryEnd).Err())

	s := Summarize(Results{
		okResult("a.vbs"),
		failedResult("b.vbs", errors.New("line one\nline two")),
	}, summaryStart, summaryEnd)

	err := s.Err()
	require.Error(t, err)

	var be *BatchError
	require.ErrorAs(t, err, &be)
	require.Len(t, be.FailedResults, 1)
	assert.Equal(t, "b.vbs", be.FailedResults[0].Target.Path)
	assert.Equal(t, "1 of the scripts failed:\nb.vbs: line one; line two\n", err.Error())
}

func TestSummaryElapsedNeverNegative(t *testing.T) {
	t.Parallel()

	s := Summarize(nil, summaryEnd, summaryStart)
	assert.Equal(t, time.Duration(0), s.Elapsed())
}
