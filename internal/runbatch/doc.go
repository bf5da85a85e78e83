// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runbatch runs a batch of scripts with bounded parallelism.
// Each script is handed to an Executor exactly once and yields exactly one Result,
// whether it succeeds, fails or panics. A failing script never stops the others.
// Results are kept in submission order and reduced into a Summary, which can be
// written as a coloured text report or as YAML.
package runbatch
