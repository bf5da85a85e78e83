// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"errors"
	"strings"

	"github.com/matt-FFFFFF/vbsc/internal/ctxlog"
)

// runTarget executes one target and builds its result. It never returns nil.
func (r *Runner) runTarget(ctx context.Context, t Target) *Result {
	ctx = ctxlog.With(ctx, ctxlog.ScriptKey, t.Path)
	logger := ctxlog.Logger(ctx)

	res := &Result{
		Target:    t,
		StartedAt: r.now(),
	}

	logger.Debug("invoking script executor", "args", t.Args, "params", t.Params, "debug", t.Debug)

	outcomes, err := r.invoke(ctx, t)
	res.FinishedAt = r.now()
	res.Outcomes = outcomes
	res.Output = joinOutput(outcomes)

	failures := procedureErrors(outcomes)

	switch {
	case err != nil:
		res.Error = errors.Join(ErrExecution, err)
	case len(failures) > 0:
		res.Error = errors.Join(append([]error{ErrExecution}, failures...)...)
	}

	if res.Error != nil {
		res.Status = ResultStatusError
		logger.Debug("script failed", "error", res.Error)

		return res
	}

	res.Status = ResultStatusSuccess
	res.Succeeded = true
	logger.Debug("script succeeded", "procedures", len(outcomes))

	return res
}

// invoke calls the executor, converting a panic into an error.
func (r *Runner) invoke(ctx context.Context, t Target) (outcomes []Outcome, err error) {
	defer func() {
		if v := recover(); v != nil {
			ctxlog.Error(ctx, "script executor panicked", "panic", v)

			outcomes = nil
			err = NewExecutorPanicError(v)
		}
	}()

	return r.Executor.Execute(ctx, t.Invocation())
}

func procedureErrors(outcomes []Outcome) []error {
	var errs []error

	for _, o := range outcomes {
		if o.Succeeded {
			continue
		}

		err := o.Err
		if err == nil {
			err = ErrProcedureFailed
		}

		errs = append(errs, &ProcedureError{Procedure: o.Procedure, Err: err})
	}

	return errs
}

// joinOutput concatenates procedure outputs. With more than one procedure each
// part is headed by the procedure name.
func joinOutput(outcomes []Outcome) string {
	switch len(outcomes) {
	case 0:
		return ""
	case 1:
		return outcomes[0].Output
	}

	sb := strings.Builder{}

	for _, o := range outcomes {
		if o.Output == "" {
			continue
		}

		sb.WriteString("[")
		sb.WriteString(o.Procedure)
		sb.WriteString("]\n")
		sb.WriteString(o.Output)

		if !strings.HasSuffix(o.Output, "\n") {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
