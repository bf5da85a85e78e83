// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package options

import (
	"regexp"
	"strings"
)

// valueGroup is the name of the capture group a rule pattern may use to select the
// value part of a token.
const valueGroup = "value"

// Rule decides whether a token belongs to an option and extracts the raw value from it.
type Rule struct {
	pattern *regexp.Regexp
	extract func(token string) string
}

// NewRule compiles pattern into a Rule.
// The raw value of a matching token is the named capture group "value" when the
// pattern declares one, otherwise the text after the first '='.
// It panics if the pattern does not compile, as rules are authored in code.
func NewRule(pattern string) Rule {
	re := regexp.MustCompile(pattern)

	idx := re.SubexpIndex(valueGroup)
	if idx < 0 {
		return Rule{pattern: re, extract: afterEquals}
	}

	return Rule{
		pattern: re,
		extract: func(token string) string {
			m := re.FindStringSubmatch(token)
			if m == nil {
				return afterEquals(token)
			}

			return m[idx]
		},
	}
}

// NewRuleFunc returns a Rule with a custom value extractor.
func NewRuleFunc(pattern string, extract func(token string) string) Rule {
	if extract == nil {
		extract = afterEquals
	}

	return Rule{pattern: regexp.MustCompile(pattern), extract: extract}
}

// Match reports whether the token belongs to the rule.
func (r Rule) Match(token string) bool {
	if r.pattern == nil {
		return false
	}

	return r.pattern.MatchString(token)
}

// Value returns the raw value carried by a matching token.
func (r Rule) Value(token string) string {
	if r.extract == nil {
		return afterEquals(token)
	}

	return r.extract(token)
}

// String returns the source of the rule pattern.
func (r Rule) String() string {
	if r.pattern == nil {
		return ""
	}

	return r.pattern.String()
}

// afterEquals returns the text after the first '=' or the whole token when there is none.
func afterEquals(token string) string {
	if _, after, ok := strings.Cut(token, "="); ok {
		return after
	}

	return token
}
