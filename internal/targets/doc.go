// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package targets expands command line patterns into script paths.
//
// A pattern may be a file, a directory (meaning every script file directly
// inside it) or a glob. A path that exists is taken literally, so only a path
// that does not exist is read as a glob. Every pattern that matches nothing is reported, not
// only the first one.
package targets
