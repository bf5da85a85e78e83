// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package targets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrTargetResolution is the root of every resolution failure.
	ErrTargetResolution = errors.New("could not resolve scripts")
	// ErrNoTargets is returned when no pattern is given.
	ErrNoTargets = errors.New("no script files or patterns given")
	// ErrNoMatch is returned for a pattern that matches no script.
	ErrNoMatch = errors.New("no script found")
)

// PatternError is the failure of a single pattern.
type PatternError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	return fmt.Sprintf("%s: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying error.
func (e *PatternError) Unwrap() error {
	return e.Err
}

// TargetResolutionError collects the failure of every pattern.
type TargetResolutionError struct {
	errs *multierror.Error
}

// Patterns returns the failed patterns in argument order.
func (e *TargetResolutionError) Patterns() []string {
	var out []string

	for _, err := range e.errs.WrappedErrors() {
		var pe *PatternError
		if errors.As(err, &pe) {
			out = append(out, pe.Pattern)
		}
	}

	return out
}

// Error implements the error interface.
func (e *TargetResolutionError) Error() string {
	return e.errs.Error()
}

// Unwrap exposes ErrTargetResolution and each pattern failure.
func (e *TargetResolutionError) Unwrap() []error {
	return append([]error{ErrTargetResolution}, e.errs.WrappedErrors()...)
}

func listFormat(errs []error) string {
	if len(errs) == 1 {
		return fmt.Sprintf("%v: %v", ErrTargetResolution, errs[0])
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "%v: %d patterns failed:", ErrTargetResolution, len(errs))

	for _, err := range errs {
		sb.WriteString("\n  ")
		sb.WriteString(err.Error())
	}

	return sb.String()
}
