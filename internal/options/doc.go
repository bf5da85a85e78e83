// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package options provides a declarative, regular expression driven parser for
// command line tokens.
//
// Each option is described by a Spec: a unique name, a Rule that decides whether a
// token belongs to the option, a typed default Value and the lines of help text
// shown for it. Specs are collected in a Registry, which keeps them in
// registration order. Parse makes a single pass over the tokens and returns a
// Config holding a typed value for every registered option. Tokens that match no
// rule are kept, in order, as positional arguments.
//
// Only the first matching rule (in registration order) is applied to a token, so a
// later option with an overlapping pattern never sees tokens claimed by an earlier
// one.
package options
