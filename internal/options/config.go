// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package options

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Config is the result of parsing: a typed value for every registered option plus
// the tokens that matched no option.
// Looking up a name that was never registered is a programming error and panics.
type Config struct {
	Positional []string // Tokens that matched no option, in input order

	registry *Registry
	values   map[string]Value
	matched  map[string]bool
}

func newConfig(registry *Registry) *Config {
	cfg := &Config{
		Positional: []string{},
		registry:   registry,
		values:     make(map[string]Value, registry.Len()),
		matched:    make(map[string]bool, registry.Len()),
	}

	for _, spec := range registry.specs {
		cfg.values[spec.Name] = spec.Default
	}

	return cfg
}

// Value returns the value of the named option.
func (c *Config) Value(name string) Value {
	v, ok := c.values[name]
	if !ok {
		panic(fmt.Sprintf("options: option %q is not registered", name))
	}

	return v
}

// Matched reports whether the named option was set by a token rather than defaulted.
func (c *Config) Matched(name string) bool {
	c.Value(name)
	return c.matched[name]
}

// Bool returns the value of a flag option.
func (c *Config) Bool(name string) bool {
	return c.Value(name).Bool()
}

// String returns the value of a string option.
func (c *Config) String(name string) string {
	return c.Value(name).Str()
}

// Strings returns the value of a string list option.
func (c *Config) Strings(name string) []string {
	return c.Value(name).Strings()
}

// Int returns the value of an integer option.
func (c *Config) Int(name string) int {
	return c.Value(name).Integer()
}

// NullableString returns the value of a nullable string option and whether it is set.
func (c *Config) NullableString(name string) (string, bool) {
	return c.Value(name).NullableStr()
}

// Tokens re-serialises the configuration into canonical tokens: one `name=value`
// token (or bare `name` for a set flag) per option that differs from an unset state,
// in registration order, followed by the positional arguments.
// Parsing the result with the same registry yields equal values, provided every
// option's rule accepts its own name in that form.
func (c *Config) Tokens() []string {
	tokens := make([]string, 0, len(c.values)+len(c.Positional))

	for _, spec := range c.registry.specs {
		v := c.values[spec.Name]

		switch v.Kind() {
		case KindFlag:
			if v.Bool() {
				tokens = append(tokens, spec.Name)
			}
		case KindString:
			tokens = append(tokens, spec.Name+"="+v.Str())
		case KindStringList:
			if items := v.Strings(); len(items) > 0 {
				tokens = append(tokens, spec.Name+"="+strings.Join(items, listSeparator))
			}
		case KindInt:
			tokens = append(tokens, spec.Name+"="+strconv.Itoa(v.Integer()))
		case KindNullableString:
			if s, ok := v.NullableStr(); ok {
				tokens = append(tokens, spec.Name+"="+s)
			}
		}
	}

	return append(tokens, c.Positional...)
}

// Names returns the registered option names in registration order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.registry.specs))
	for _, spec := range c.registry.specs {
		names = append(names, spec.Name)
	}

	return slices.Clip(names)
}
