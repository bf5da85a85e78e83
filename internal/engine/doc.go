// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package engine runs scripts through an external interpreter process.
//
// The default interpreter is the Windows console script host, "cscript //NoLogo".
// Each script runs once, or once per parameter when parameters are given. The
// parameter and the procedure filter reach the script through the VBSC_PARAM and
// VBSC_FILTER environment variables.
package engine
