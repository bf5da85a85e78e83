// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package diagnostic

import (
	"errors"
	"strings"
)

// ErrUnterminatedQuote is returned by Split for a line with an open quote.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// Split breaks a line into tokens the way a console does: whitespace separates
// tokens and double quotes group text, including whitespace, into one token.
// Quotes may appear inside a token, as in o="c:\my logs\run.log".
func Split(line string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		inQuote bool
		started bool
	)

	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case !inQuote && (r == ' ' || r == '\t'):
			if started {
				tokens = append(tokens, current.String())
				current.Reset()

				started = false
			}
		default:
			current.WriteRune(r)

			started = true
		}
	}

	if inQuote {
		return nil, ErrUnterminatedQuote
	}

	if started {
		tokens = append(tokens, current.String())
	}

	return tokens, nil
}
