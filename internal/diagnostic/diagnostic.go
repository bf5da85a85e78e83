// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package diagnostic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/matt-FFFFFF/vbsc/internal/ctxlog"
	"github.com/matt-FFFFFF/vbsc/internal/options"
	"github.com/peterh/liner"
)

// Prompt is shown before each line.
const Prompt = "vbsc> "

// LineReader reads one line of input. *liner.State implements it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// Session evaluates lines until the user leaves.
type Session struct {
	Reader      LineReader
	Out         io.Writer
	NewRegistry func() *options.Registry
}

// Start runs a session on the terminal.
func Start(ctx context.Context, out io.Writer, newRegistry func() *options.Registry) error {
	line := liner.NewLiner()
	defer func() {
		_ = line.Close()
	}()

	line.SetCtrlCAborts(true)

	s := &Session{Reader: line, Out: out, NewRegistry: newRegistry}

	return s.Run(ctx)
}

// Run reads lines until quit, exit, end of input, Ctrl+C or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.Out, "No arguments given, entering diagnostic mode.")
	fmt.Fprintln(s.Out, "Type a command line to see how it is parsed, `quit` or `exit` or Ctrl+C to leave.")

	for ctx.Err() == nil {
		input, err := s.Reader.Prompt(Prompt)

		switch {
		case err == nil:
		case errors.Is(err, liner.ErrPromptAborted):
			fmt.Fprintln(s.Out, "Aborted")
			return nil
		case errors.Is(err, io.EOF):
			fmt.Fprintln(s.Out)
			return nil
		default:
			return fmt.Errorf("reading line: %w", err)
		}

		input = strings.TrimSpace(input)

		switch input {
		case "":
			continue
		case "quit", "exit":
			return nil
		}

		s.Reader.AppendHistory(input)

		reg := s.NewRegistry()
		if err := Evaluate(s.Out, reg, input); err != nil {
			ctxlog.Debug(ctx, "diagnostic line rejected", "line", input, "error", err)
			fmt.Fprintf(s.Out, "error: %v\n", err)
		}
	}

	return nil
}

// Evaluate parses line with reg and prints every option value, the positional
// arguments and the canonical token form.
func Evaluate(w io.Writer, reg *options.Registry, line string) error {
	tokens, err := Split(line)
	if err != nil {
		return err
	}

	cfg, err := options.Parse(tokens, reg)
	if err != nil {
		return err //nolint:wrapcheck
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)

	for _, name := range cfg.Names() {
		marker := " "
		if cfg.Matched(name) {
			marker = "*"
		}

		fmt.Fprintf(tw, "%s %s\t%s\t%#v\n", marker, name, cfg.Value(name).Kind(), cfg.Value(name))
	}

	_ = tw.Flush()

	quoted := make([]string, len(cfg.Positional))
	for i, p := range cfg.Positional {
		quoted[i] = strconv.Quote(p)
	}

	fmt.Fprintf(w, "positional: [%s]\n", strings.Join(quoted, ", "))
	fmt.Fprintf(w, "canonical:  %s\n", strings.Join(cfg.Tokens(), " "))

	return nil
}
