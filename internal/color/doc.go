// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps text in ANSI escape sequences.
//
// Colour is decided per destination: NO_COLOR wins, then FORCE_COLOR, then the
// writer must be a terminal. Redirected stdout and stderr are judged separately.
package color
