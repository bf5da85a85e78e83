// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run is the action of the vbsc command: it parses the option tokens,
// resolves the scripts, runs them and reports the results.
package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matt-FFFFFF/vbsc"
	"github.com/matt-FFFFFF/vbsc/internal/color"
	"github.com/matt-FFFFFF/vbsc/internal/ctxlog"
	"github.com/matt-FFFFFF/vbsc/internal/diagnostic"
	"github.com/matt-FFFFFF/vbsc/internal/engine"
	"github.com/matt-FFFFFF/vbsc/internal/logpath"
	"github.com/matt-FFFFFF/vbsc/internal/options"
	"github.com/matt-FFFFFF/vbsc/internal/progress"
	"github.com/matt-FFFFFF/vbsc/internal/runbatch"
	"github.com/matt-FFFFFF/vbsc/internal/targets"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	// ExitFailure is the process exit status for failed scripts and configuration errors.
	ExitFailure = 1
	// UsageText is the synopsis shown in the help output.
	UsageText = "vbsc [options] <script files, directories or patterns...>"

	cliExitStr        = ""
	progressBufferLen = 64
	logFilePerm       = 0o644
)

var (
	// ErrLogFile is returned when the log file cannot be written.
	ErrLogFile = errors.New("failed to write log file")
	// ErrExecutor is returned when the script interpreter cannot be configured.
	ErrExecutor = errors.New("failed to configure the script interpreter")
)

var (
	// FsFactory returns the filesystem used for scripts and log files.
	FsFactory = func() afero.Fs {
		return afero.NewOsFs()
	}
	// ExecutorFactory builds the executor that runs the scripts.
	ExecutorFactory = func(cfg engine.Config) (runbatch.Executor, error) {
		return engine.New(cfg)
	}
	// DiagnosticMode is entered when no token is given.
	DiagnosticMode = diagnostic.Start
	// WaitForKey blocks until a key is pressed, for the noexit option.
	WaitForKey = waitForKey
	// Now is the clock of the run.
	Now = time.Now
	// Getwd returns the directory that relative patterns are resolved against.
	Getwd = os.Getwd
)

// Action is the cli.ActionFunc of the root command.
func Action(ctx context.Context, cmd *cli.Command) error {
	return Run(ctx, cmd.Args().Slice(), cmd.Writer, cmd.ErrWriter)
}

// Run interprets tokens as a vbsc command line. The report goes to stdout,
// progress lines to stderr. Any error returned is a cli.ExitCoder.
func Run(ctx context.Context, tokens []string, stdout, stderr io.Writer) error {
	logger := ctxlog.Logger(ctx)

	if len(tokens) == 0 {
		if err := DiagnosticMode(ctx, stdout, options.NewDefault); err != nil {
			return cli.Exit(err.Error(), ExitFailure)
		}

		return nil
	}

	reg := options.NewDefault()

	cfg, err := options.Parse(tokens, reg)
	if err != nil {
		return cli.Exit(configError(err), ExitFailure)
	}

	logger.Debug("parsed command line", "tokens", cfg.Tokens())

	if cfg.Bool(options.NoExit) {
		defer func() {
			fmt.Fprintln(stdout, "Press any key to exit...") //nolint:errcheck

			if err := WaitForKey(); err != nil {
				logger.Debug("waiting for key failed", "error", err)
			}
		}()
	}

	if cfg.Bool(options.Help) {
		writeHelp(stdout, reg)
		return nil
	}

	return execute(ctx, cfg, stdout, stderr)
}

func execute(ctx context.Context, cfg *options.Config, stdout, stderr io.Writer) error {
	logger := ctxlog.Logger(ctx)
	fs := FsFactory()
	startedAt := Now()

	cwd, err := Getwd()
	if err != nil {
		return cli.Exit(fmt.Sprintf("cannot determine working directory: %v", err), ExitFailure)
	}

	logFile, err := resolveLogPath(fs, cfg, cwd, startedAt)
	if err != nil {
		return cli.Exit(err.Error(), ExitFailure)
	}

	paths, err := targets.Resolver{Fs: fs, Dir: cwd}.Resolve(cfg.Positional)
	if err != nil {
		return cli.Exit(err.Error(), ExitFailure)
	}

	executor, err := newExecutor(cfg)
	if err != nil {
		return cli.Exit(err.Error(), ExitFailure)
	}

	hideInfo := cfg.Bool(options.NoInfo)

	var reporter progress.Reporter = progress.NewNullReporter()

	if !hideInfo {
		// Each script reports at most two events, so none are dropped.
		cr := progress.NewChannelReporter(max(progressBufferLen, 2*len(paths)))
		cr.Listen(progress.NewConsoleListener(stderr, color.Enabled(stderr)))
		reporter = cr
	}

	runner := runbatch.New(executor, runbatch.WithReporter(reporter), runbatch.WithClock(Now))

	logger.Debug("running scripts", "count", len(paths), "threads", cfg.Int(options.Threads))

	summary, err := runner.Run(ctx, paths, runbatch.RunOptions{
		Args:        cfg.Strings(options.Args),
		Params:      cfg.Strings(options.Params),
		Filter:      cfg.String(options.Filter),
		Debug:       cfg.Bool(options.Debug),
		Concurrency: cfg.Int(options.Threads),
	})

	reporter.Close()

	if err != nil {
		return cli.Exit(err.Error(), ExitFailure)
	}

	report := runbatch.DefaultReportOptions(stdout)
	report.HideInfo = hideInfo

	if err := summary.WriteText(stdout, report); err != nil {
		logger.Error("failed to write report", "error", err)
	}

	if logFile != "" {
		if err := writeLogFile(fs, logFile, summary, hideInfo); err != nil {
			return cli.Exit(err.Error(), ExitFailure)
		}

		logger.Info("results written", "path", logFile)
	}

	if !summary.Succeeded {
		logger.Debug("run failed", "error", summary.Err())
		return cli.Exit(cliExitStr, ExitFailure)
	}

	return nil
}

// resolveLogPath expands the out option. A relative path is taken from the
// directory of the first script argument.
func resolveLogPath(fs afero.Fs, cfg *options.Config, cwd string, startedAt time.Time) (string, error) {
	template, ok := cfg.NullableString(options.Out)
	if !ok || template == "" {
		return "", nil
	}

	full := filepath.FromSlash(template)
	if !filepath.IsAbs(full) {
		full = filepath.Join(baseDir(cfg.Positional, cwd), full)
	}

	path, err := logpath.Resolve(fs, full, startedAt)
	if err != nil {
		return "", fmt.Errorf("%w\nArgument: %s", err, template)
	}

	return path, nil
}

// baseDir is the directory of the first script argument, or cwd.
func baseDir(positional []string, cwd string) string {
	if len(positional) == 0 {
		return cwd
	}

	first := filepath.FromSlash(positional[0])
	if !filepath.IsAbs(first) {
		first = filepath.Join(cwd, first)
	}

	return filepath.Dir(first)
}

func newExecutor(cfg *options.Config) (runbatch.Executor, error) {
	ecfg := engine.DefaultConfig()

	if command, ok := cfg.NullableString(options.Engine); ok {
		var err error

		ecfg, err = engine.ParseCommand(command)
		if err != nil {
			return nil, errors.Join(ErrExecutor, err)
		}
	}

	exec, err := ExecutorFactory(ecfg)
	if err != nil {
		return nil, errors.Join(ErrExecutor, err)
	}

	return exec, nil
}

func writeLogFile(fs afero.Fs, path string, summary *runbatch.Summary, hideInfo bool) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return errors.Join(ErrLogFile, err)
		}
	}

	f, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, logFilePerm)
	if err != nil {
		return errors.Join(ErrLogFile, err)
	}

	opts := runbatch.ReportOptions{HideInfo: hideInfo}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = summary.WriteYAML(f, opts)
	default:
		err = summary.WriteText(f, opts)
	}

	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return errors.Join(ErrLogFile, err)
	}

	return nil
}

func writeHelp(w io.Writer, reg *options.Registry) {
	fmt.Fprintf(w, "vbsc %s (commit: %s)\n\n", vbsc.Version, vbsc.Commit) //nolint:errcheck
	fmt.Fprintf(w, "Usage: %s\n\n", UsageText)                            //nolint:errcheck
	fmt.Fprint(w, reg.HelpText())                                          //nolint:errcheck
}

func configError(err error) string {
	var iov *options.InvalidOptionValueError
	if errors.As(err, &iov) {
		return fmt.Sprintf("%v\nArgument: %s", err, iov.Token)
	}

	return err.Error()
}
