// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress provides real-time progress reporting while scripts run.
// The runner emits an event when a script starts and when it finishes, so that a
// console listener can show activity before the final report is written.
package progress
