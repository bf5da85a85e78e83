// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the vbsc command-line interface (CLI).
package main

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/vbsc/cmd/vbsc/run"
	"github.com/matt-FFFFFF/vbsc/internal/ctxlog"
	"github.com/matt-FFFFFF/vbsc/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

const exitInterrupted = 130

// rootCmd is the root command for the CLI.
// Flag parsing is disabled: every token goes to the vbsc option parser.
var rootCmd = &cli.Command{
	Name:      "vbsc",
	Usage:     "run VBScript files in parallel and report the results",
	UsageText: run.UsageText,
	Description: `vbsc runs each script file given on the command line through the console
script host, several at a time if asked to, and prints a report of every script.
Run "vbsc help" for the list of options. Run vbsc without arguments to try out
command lines interactively.`,
	Writer:          os.Stdout,
	ErrWriter:       os.Stderr,
	SkipFlagParsing: true,
	HideHelp:        true,
	HideVersion:     true,
	Copyright:       "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Action:          run.Action,
}

func main() {
	logger, closer := ctxlog.FromEnv()
	defer closer.Close() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, logger)
	defer cancel()

	sigCh := signalbroker.New(ctx)
	defer signalbroker.Stop(sigCh)

	go signalbroker.Watch(ctx, sigCh, cancel, func(os.Signal) {
		_ = closer.Close()

		os.Exit(exitInterrupted)
	})

	// Exit codes carried by cli.Exit are handled by the cli framework.
	if err := rootCmd.Run(ctx, os.Args); err != nil {
		ctxlog.Error(ctx, "command execution failed", "error", err)

		_ = closer.Close()

		os.Exit(1)
	}

	ctxlog.Debug(ctx, "command completed successfully")
}
