// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/matt-FFFFFF/vbsc/internal/color"
)

// ReportTimeFormat is the format of the start and end times in reports.
const ReportTimeFormat = "2006-01-02 15:04:05"

var (
	// ErrWriteReport is returned when the report cannot be written.
	ErrWriteReport = errors.New("failed to write report")
)

// ReportOptions controls what goes into a report.
type ReportOptions struct {
	HideInfo bool // Leave out the captured output of the scripts
	Color    bool // Use ANSI colours
}

// DefaultReportOptions returns the options for a report written to w.
func DefaultReportOptions(w io.Writer) ReportOptions {
	return ReportOptions{
		Color: color.Enabled(w),
	}
}

// WriteText writes the summary as a human readable report.
func (s *Summary) WriteText(w io.Writer, opts ReportOptions) error {
	sb := strings.Builder{}
	p := painter(opts.Color)

	for _, r := range s.Results {
		if r == nil {
			continue
		}

		writeResult(&sb, r, opts, p)
	}

	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n")

	verdict := p("PASSED", color.Bold, color.FgGreen)
	if !s.Succeeded {
		verdict = p("FAILED", color.Bold, color.FgRed)
	}

	fmt.Fprintf(&sb, "%s: %d passed, %d failed", verdict, s.Passed, s.Failed)

	if s.Skipped > 0 {
		fmt.Fprintf(&sb, " (%d skipped)", s.Skipped)
	}

	fmt.Fprintf(&sb, ", %d total in %s\n", s.Total(), formatElapsed(s.Elapsed()))
	fmt.Fprintf(&sb, "Start: %s  End: %s\n", s.StartedAt.Format(ReportTimeFormat), s.FinishedAt.Format(ReportTimeFormat))

	if s.RunID != "" {
		fmt.Fprintf(&sb, "Run: %s\n", s.RunID)
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return errors.Join(ErrWriteReport, err)
	}

	return nil
}

func writeResult(sb *strings.Builder, r *Result, opts ReportOptions, p func(string, ...color.Code) string) {
	var status string

	switch r.Status {
	case ResultStatusSuccess:
		status = p("✓", color.FgGreen) + " " + p(r.Label(), color.Bold, color.FgGreen)
	case ResultStatusSkipped:
		status = p("~", color.FgYellow) + " " + p(r.Label(), color.Bold, color.FgYellow)
	default:
		status = p("✗", color.FgRed) + " " + p(r.Label(), color.Bold, color.FgRed)
	}

	fmt.Fprintf(sb, "%s (%s)\n", status, formatElapsed(r.Elapsed()))

	if len(r.Outcomes) > 1 {
		for _, o := range r.Outcomes {
			mark := p("✓", color.FgGreen)
			if !o.Succeeded {
				mark = p("✗", color.FgRed)
			}

			fmt.Fprintf(sb, "  %s %s\n", mark, o.Procedure)
		}
	}

	if r.Error != nil {
		errColor := color.FgRed
		if r.Status == ResultStatusSkipped {
			errColor = color.FgYellow
		}

		fmt.Fprintf(sb, "  %s %s\n", p("➜ Error:", errColor), indentTail(r.Error.Error(), "    "))
	}

	if !opts.HideInfo && r.Output != "" {
		sb.WriteString("  ➜ Output:\n")
		sb.WriteString(formatOutput(r.Output, "     "))
	}
}

func painter(enabled bool) func(string, ...color.Code) string {
	return func(s string, codes ...color.Code) string {
		if !enabled {
			return s
		}

		return color.Wrap(s, codes...)
	}
}

// formatOutput formats multi-line output with proper indentation.
func formatOutput(output string, indent string) string {
	sb := strings.Builder{}
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	sb.Grow(len(output) + len(lines)*len(indent))

	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			sb.WriteString("\n")
			continue
		}

		sb.WriteString(indent)
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}

// indentTail indents every line but the first.
func indentTail(s, indent string) string {
	return strings.ReplaceAll(s, "\n", "\n"+indent)
}

func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return d.String()
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	default:
		return d.Round(10 * time.Millisecond).String()
	}
}
