// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package diagnostic is the interactive mode entered when vbsc is started
// without arguments. Each line typed is parsed as a command line and the
// resulting option values are printed, so that quoting and option matching can
// be checked without running anything.
package diagnostic
