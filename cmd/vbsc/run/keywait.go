// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package run

import (
	"os"

	"golang.org/x/term"
)

// waitForKey reads a single byte from stdin, in raw mode when stdin is a
// terminal so that any key counts, not only Enter.
func waitForKey() error {
	fd := int(os.Stdin.Fd())

	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return err //nolint:wrapcheck
		}

		defer term.Restore(fd, state) //nolint:errcheck
	}

	buf := make([]byte, 1)
	_, err := os.Stdin.Read(buf)

	return err //nolint:wrapcheck
}
