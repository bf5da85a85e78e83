// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package options

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateOption is returned when an option name is registered twice.
	ErrDuplicateOption = errors.New("option already registered")
	// ErrInvalidSpec is returned when a spec cannot be registered.
	ErrInvalidSpec = errors.New("invalid option spec")
	// ErrInvalidOptionValue is returned when a token carries a value that cannot be
	// converted to the option's type.
	ErrInvalidOptionValue = errors.New("invalid option value")
)

// InvalidOptionValueError describes a token whose value could not be coerced.
type InvalidOptionValueError struct {
	Option string // Name of the option the token matched
	Token  string // The offending token, as given
	Kind   Kind   // The kind the value should have had
	Err    error  // The conversion error
}

// Error implements the error interface for InvalidOptionValueError.
func (e *InvalidOptionValueError) Error() string {
	return fmt.Sprintf("%s: option %q expects %s value, got %q", ErrInvalidOptionValue, e.Option, e.Kind, e.Token)
}

// Unwrap returns the sentinel and the underlying conversion error.
func (e *InvalidOptionValueError) Unwrap() []error {
	return []error{ErrInvalidOptionValue, e.Err}
}
