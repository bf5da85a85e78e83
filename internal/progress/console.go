// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/matt-FFFFFF/vbsc/internal/color"
)

// ConsoleTimeFormat is the clock format of start lines.
const ConsoleTimeFormat = "15:04:05"

// ConsoleListener prints one line per event.
// Events arrive from a single goroutine, so writes are not synchronised.
type ConsoleListener struct {
	w      io.Writer
	colour bool
}

// NewConsoleListener creates a listener writing to w.
func NewConsoleListener(w io.Writer, colour bool) *ConsoleListener {
	return &ConsoleListener{w: w, colour: colour}
}

// OnEvent implements Listener.
func (l *ConsoleListener) OnEvent(e Event) {
	counter := fmt.Sprintf("[%d/%d]", e.Index+1, e.Total)

	var line string

	switch e.Type {
	case EventStarted:
		line = fmt.Sprintf("%s Starting %s at %s", counter, e.Target, e.Timestamp.Format(ConsoleTimeFormat))
	case EventCompleted:
		line = fmt.Sprintf("%s %s %s (%s)", counter, l.paint("✓", color.FgGreen), e.Target, round(e.Data.Elapsed))
	case EventFailed:
		line = fmt.Sprintf("%s %s %s (%s)", counter, l.paint("✗", color.FgRed), e.Target, round(e.Data.Elapsed))
		if e.Data.Error != nil {
			line += ": " + firstLine(e.Data.Error.Error())
		}
	case EventSkipped:
		line = fmt.Sprintf("%s %s %s skipped", counter, l.paint("~", color.FgYellow), e.Target)
	default:
		line = fmt.Sprintf("%s %s %s", counter, e.Type, e.Target)
	}

	fmt.Fprintln(l.w, line) //nolint:errcheck
}

func (l *ConsoleListener) paint(s string, c color.Code) string {
	if !l.colour {
		return s
	}

	return color.Wrap(s, c)
}

func round(d time.Duration) time.Duration {
	if d < time.Second {
		return d.Round(time.Millisecond)
	}

	return d.Round(10 * time.Millisecond)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}

	return s
}
