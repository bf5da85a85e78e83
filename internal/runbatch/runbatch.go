// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoExecutor is returned when a runner has no executor.
	ErrNoExecutor = errors.New("no script executor configured")
	// ErrInvalidConcurrency is returned when the concurrency limit is below one.
	ErrInvalidConcurrency = errors.New("concurrency limit must be at least 1")
	// ErrInvalidFilter is returned when the procedure filter is not a valid regular expression.
	ErrInvalidFilter = errors.New("invalid procedure filter")
	// ErrExecution marks a script that failed while running.
	ErrExecution = errors.New("script execution failed")
	// ErrProcedureFailed is reported for a failed procedure that carries no error of its own.
	ErrProcedureFailed = errors.New("procedure failed")
	// ErrRunCancelled is recorded for scripts that never started because the run was cancelled.
	ErrRunCancelled = errors.New("run cancelled before the script started")
)

// ExecutorPanicError is the error recorded when an executor panics.
// It is constructed with the value that caused the panic.
type ExecutorPanicError struct {
	v any
}

// NewExecutorPanicError creates a new ExecutorPanicError with the given value.
func NewExecutorPanicError(v any) error {
	return &ExecutorPanicError{v: v}
}

// Error implements the error interface for ExecutorPanicError.
func (e *ExecutorPanicError) Error() string {
	prefix := "script executor panic:"

	switch x := e.v.(type) {
	case string:
		return fmt.Sprintf("%s %s", prefix, x)
	case error:
		return fmt.Sprintf("%s %s", prefix, x.Error())
	default:
		return fmt.Sprintf("%s %v", prefix, x)
	}
}

// Unwrap returns the panic value when it is an error.
func (e *ExecutorPanicError) Unwrap() error {
	if err, ok := e.v.(error); ok {
		return err
	}

	return nil
}

// ProcedureError describes one failed procedure of a script.
type ProcedureError struct {
	Procedure string
	Err       error
}

// Error implements the error interface for ProcedureError.
func (e *ProcedureError) Error() string {
	return fmt.Sprintf("procedure %s: %s", e.Procedure, e.Err.Error())
}

// Unwrap returns the underlying error.
func (e *ProcedureError) Unwrap() error {
	return e.Err
}

// BatchError aggregates the failed results of a run and formats a detailed error message.
type BatchError struct {
	FailedResults Results
}

// Error implements the error interface for BatchError.
func (e *BatchError) Error() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%d of the scripts failed:\n", len(e.FailedResults)))

	for _, r := range e.FailedResults {
		msg := r.Status.String()
		if r.Error != nil {
			msg = r.Error.Error()
		}

		sb.WriteString(r.Label())
		sb.WriteString(": ")
		sb.WriteString(strings.ReplaceAll(msg, "\n", "; "))
		sb.WriteString("\n")
	}

	return sb.String()
}
