// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package options

import (
	"strconv"
	"strings"
)

const listSeparator = ","

// Parse makes a single pass over tokens and returns the typed configuration.
// Each token is tested against the rules in registration order and only the first
// match is applied. A repeated option overwrites its earlier value. Tokens that
// match no rule become positional arguments.
func Parse(tokens []string, registry *Registry) (*Config, error) {
	cfg := newConfig(registry)

	for _, token := range tokens {
		spec, ok := registry.match(token)
		if !ok {
			cfg.Positional = append(cfg.Positional, token)
			continue
		}

		v, err := coerce(spec, token)
		if err != nil {
			return nil, err
		}

		cfg.values[spec.Name] = v
		cfg.matched[spec.Name] = true
	}

	return cfg, nil
}

func (r *Registry) match(token string) (Spec, bool) {
	for _, spec := range r.specs {
		if spec.Rule.Match(token) {
			return spec, true
		}
	}

	return Spec{}, false
}

func coerce(spec Spec, token string) (Value, error) {
	switch spec.Kind() {
	case KindFlag:
		return Flag(true), nil
	case KindString:
		return String(spec.Rule.Value(token)), nil
	case KindNullableString:
		return NullString(spec.Rule.Value(token)), nil
	case KindStringList:
		return List(strings.Split(spec.Rule.Value(token), listSeparator)...), nil
	case KindInt:
		raw := spec.Rule.Value(token)

		n, err := strconv.Atoi(raw)
		if err != nil {
			return Value{}, &InvalidOptionValueError{
				Option: spec.Name,
				Token:  token,
				Kind:   KindInt,
				Err:    err,
			}
		}

		return Int(n), nil
	}

	return Value{}, &InvalidOptionValueError{
		Option: spec.Name,
		Token:  token,
		Kind:   spec.Kind(),
		Err:    ErrInvalidSpec,
	}
}
