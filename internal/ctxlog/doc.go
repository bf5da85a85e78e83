// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a structured logger in a context.Context.
// It uses the slog package and, by default, a console handler writing to stderr
// so that logs never mix with the run report written to stdout. Records about a
// run, a script or a procedure are prefixed with that scope.
//
// The log level comes from the VBSC_LOG_LEVEL environment variable and can be
// "DEBUG", "INFO", "WARN" or "ERROR". Any other value means "WARN".
package ctxlog
