// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/matt-FFFFFF/vbsc/internal/ctxlog"
	"github.com/matt-FFFFFF/vbsc/internal/runbatch"
)

const (
	// DefaultMaxOutput is the per-run output limit.
	DefaultMaxOutput = 8 * 1024 * 1024
	// ParamEnvVar holds the parameter of the current run.
	ParamEnvVar = "VBSC_PARAM"
	// FilterEnvVar holds the procedure filter source.
	FilterEnvVar = "VBSC_FILTER"

	waitDelay = 5 * time.Second
)

var _ runbatch.Executor = (*ProcessExecutor)(nil)

var (
	// ErrNoInterpreter is returned when the configuration names no interpreter.
	ErrNoInterpreter = errors.New("no script interpreter configured")
	// ErrStartInterpreter is returned when the interpreter process cannot be started.
	ErrStartInterpreter = errors.New("could not start script interpreter")
	// ErrScriptFailed is recorded in an outcome when the interpreter exits non-zero.
	ErrScriptFailed = errors.New("script exited with a failure status")
)

// Config describes how the interpreter is launched.
// The command line is Interpreter, Args, DebugArgs (debug runs only), the script
// path, then the invocation arguments.
type Config struct {
	Interpreter string
	Args        []string
	DebugArgs   []string
	Env         map[string]string
	MaxOutput   int64
}

// DefaultConfig returns the console script host configuration.
func DefaultConfig() Config {
	return Config{
		Interpreter: "cscript",
		Args:        []string{"//NoLogo"},
		DebugArgs:   []string{"//X"},
		MaxOutput:   DefaultMaxOutput,
	}
}

// ParseCommand builds a configuration from a command line such as
// "cscript //NoLogo //B". The first field is the interpreter and the rest are
// its leading arguments. Debug arguments are kept from DefaultConfig only when
// the interpreter is the default one.
func ParseCommand(command string) (Config, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return Config{}, ErrNoInterpreter
	}

	def := DefaultConfig()
	cfg := Config{
		Interpreter: fields[0],
		Args:        fields[1:],
		MaxOutput:   def.MaxOutput,
	}

	if strings.EqualFold(strings.TrimSuffix(filepath.Base(cfg.Interpreter), ".exe"), def.Interpreter) {
		cfg.DebugArgs = def.DebugArgs
	}

	return cfg, nil
}

// ProcessExecutor runs each script in its own interpreter process.
// It is safe for concurrent use.
type ProcessExecutor struct {
	cfg   Config
	stdin io.Reader
}

// New creates a ProcessExecutor.
func New(cfg Config) (*ProcessExecutor, error) {
	if cfg.Interpreter == "" {
		return nil, ErrNoInterpreter
	}

	return &ProcessExecutor{cfg: cfg, stdin: os.Stdin}, nil
}

// Execute implements runbatch.Executor.
// Each parameter yields one outcome named "<script>[<param>]"; with no
// parameters the script runs once and the outcome is named after the file.
func (e *ProcessExecutor) Execute(ctx context.Context, inv runbatch.Invocation) ([]runbatch.Outcome, error) {
	name := filepath.Base(inv.Path)

	if len(inv.Params) == 0 {
		o, err := e.run(ctx, inv, name, "", false)
		if err != nil {
			return nil, err
		}

		return []runbatch.Outcome{o}, nil
	}

	outcomes := make([]runbatch.Outcome, 0, len(inv.Params))

	for _, p := range inv.Params {
		o, err := e.run(ctx, inv, fmt.Sprintf("%s[%s]", name, p), p, true)
		if err != nil {
			return outcomes, err
		}

		outcomes = append(outcomes, o)
	}

	return outcomes, nil
}

func (e *ProcessExecutor) run(
	ctx context.Context, inv runbatch.Invocation, procedure, param string, withParam bool,
) (runbatch.Outcome, error) {
	args := slices.Clone(e.cfg.Args)
	if inv.Debug {
		args = append(args, e.cfg.DebugArgs...)
	}

	args = append(args, inv.Path)
	args = append(args, inv.Args...)

	cmd := exec.CommandContext(ctx, e.cfg.Interpreter, args...)
	cmd.Dir = filepath.Dir(inv.Path)
	cmd.Env = e.environ(inv, param, withParam)
	cmd.WaitDelay = waitDelay

	out := newCapture(e.cfg.MaxOutput)
	cmd.Stdout = out
	cmd.Stderr = out

	if inv.Debug {
		cmd.Stdin = e.stdin
	}

	logger := ctxlog.Logger(ctx).With(ctxlog.ProcedureKey, procedure)
	logger.Debug("starting interpreter", "path", cmd.Path, "args", args, "cwd", cmd.Dir)

	err := cmd.Run()

	if out.Truncated() {
		logger.Debug("output truncated", "maxBytes", e.cfg.MaxOutput)
	}

	o := runbatch.Outcome{
		Procedure: procedure,
		Succeeded: err == nil,
		Output:    out.String(),
	}

	if err == nil {
		return o, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		logger.Debug("interpreter exited", "exitCode", exitErr.ExitCode())
		o.Err = fmt.Errorf("%w: exit status %d", ErrScriptFailed, exitErr.ExitCode())

		return o, nil
	}

	return o, errors.Join(ErrStartInterpreter, err)
}

func (e *ProcessExecutor) environ(inv runbatch.Invocation, param string, withParam bool) []string {
	env := os.Environ()

	for k, v := range e.cfg.Env {
		env = append(env, k+"="+v)
	}

	if inv.Filter != nil {
		env = append(env, FilterEnvVar+"="+inv.Filter.String())
	}

	if withParam {
		env = append(env, ParamEnvVar+"="+param)
	}

	return env
}
