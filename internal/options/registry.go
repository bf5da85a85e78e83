// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package options

import (
	"fmt"
	"slices"
	"strings"
)

const helpIndent = "    "

// Spec declares a recognised option.
type Spec struct {
	Name    string   // Unique name, used for lookups
	Rule    Rule     // Decides which tokens belong to the option
	Default Value    // Default value, its kind is the kind of the option
	Help    []string // Lines of help text, in display order
}

// Kind returns the kind of the option.
func (s Spec) Kind() Kind {
	return s.Default.Kind()
}

// Registry holds option specs in registration order, plus free text usage examples.
// It is built once per invocation and is read-only once parsing begins.
type Registry struct {
	specs    []Spec
	index    map[string]int
	examples []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		index: make(map[string]int),
	}
}

// Register adds a spec to the registry.
func (r *Registry) Register(spec Spec) error {
	if spec.Name == "" {
		return fmt.Errorf("%w: option name is empty", ErrInvalidSpec)
	}

	if spec.Rule.pattern == nil {
		return fmt.Errorf("%w: option %q has no rule", ErrInvalidSpec, spec.Name)
	}

	if _, exists := r.index[spec.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateOption, spec.Name)
	}

	spec.Help = slices.Clone(spec.Help)
	r.index[spec.Name] = len(r.specs)
	r.specs = append(r.specs, spec)

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(spec Spec) {
	if err := r.Register(spec); err != nil {
		panic(err)
	}
}

// AddExample appends a usage example shown after the option help.
func (r *Registry) AddExample(example string) {
	r.examples = append(r.examples, example)
}

// Specs returns the registered specs in registration order.
func (r *Registry) Specs() []Spec {
	return slices.Clone(r.specs)
}

// Examples returns the usage examples in the order they were added.
func (r *Registry) Examples() []string {
	return slices.Clone(r.examples)
}

// Lookup returns the spec registered under name.
func (r *Registry) Lookup(name string) (Spec, bool) {
	i, ok := r.index[name]
	if !ok {
		return Spec{}, false
	}

	return r.specs[i], true
}

// Len returns the number of registered specs.
func (r *Registry) Len() int {
	return len(r.specs)
}

// HelpText renders the help lines of every spec, in registration order, followed
// by the usage examples.
// The first help line of a spec starts the entry, further lines are indented.
func (r *Registry) HelpText() string {
	sb := strings.Builder{}

	for _, spec := range r.specs {
		for i, line := range spec.Help {
			if i > 0 {
				sb.WriteString(helpIndent)
			}

			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	if len(r.examples) == 0 {
		return sb.String()
	}

	sb.WriteString("\nExamples:\n")

	for _, ex := range r.examples {
		sb.WriteString(helpIndent)
		sb.WriteString(ex)
		sb.WriteString("\n")
	}

	return sb.String()
}
