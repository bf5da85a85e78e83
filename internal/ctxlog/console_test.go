// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/matt-FFFFFF/vbsc/internal/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var recordTime = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func TestNewConsoleHandler_Defaults(t *testing.T) {
	t.Parallel()

	h := NewConsoleHandler(nil)
	require.NotNil(t, h)
	assert.Equal(t, os.Stderr, h.writer)
	assert.Equal(t, slog.LevelInfo, h.level.Level())
	assert.False(t, h.colour)
	assert.NotNil(t, h.mu)
}

func TestConsoleHandler_Enabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		level   slog.Level
		handler slog.Level
		want    bool
	}{
		{"debug on debug handler", slog.LevelDebug, slog.LevelDebug, true},
		{"debug on warn handler", slog.LevelDebug, slog.LevelWarn, false},
		{"info on warn handler", slog.LevelInfo, slog.LevelWarn, false},
		{"error on warn handler", slog.LevelError, slog.LevelWarn, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewConsoleHandler(&slog.HandlerOptions{Level: tt.handler})
			assert.Equal(t, tt.want, h.Enabled(context.Background(), tt.level))
		})
	}
}

func TestConsoleHandler_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		level   slog.Level
		message string
		attrs   []any
		want    string
	}{
		{
			name:    "no attrs",
			level:   slog.LevelInfo,
			message: "run started",
			want:    "[03:04:05.000] INFO: run started\n",
		},
		{
			name:    "numbers and strings",
			level:   slog.LevelDebug,
			message: "target queued",
			attrs:   []any{"name", "x", "index", 3},
			want:    `[03:04:05.000] DEBUG: target queued { "index": 3, "name": "x" }` + "\n",
		},
		{
			name:    "error value",
			level:   slog.LevelError,
			message: "log write failed",
			attrs:   []any{"error", errors.New("disk full")},
			want:    `[03:04:05.000] ERROR: log write failed { "error": "disk full" }` + "\n",
		},
		{
			name:    "list and duration",
			level:   slog.LevelWarn,
			message: "slow script",
			attrs:   []any{"args", []string{"a", "b"}, "elapsed", 1500 * time.Millisecond},
			want:    `[03:04:05.000] WARN: slow script { "args": [ "a", "b" ], "elapsed": "1.5s" }` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			h := NewConsoleHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, WithDestinationWriter(&buf))

			r := slog.NewRecord(recordTime, tt.level, tt.message, 0)
			r.Add(tt.attrs...)

			require.NoError(t, h.Handle(context.Background(), r))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestConsoleHandler_Scope(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	run := slog.New(NewConsoleHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, WithDestinationWriter(&buf))).
		With(RunKey, "0192f3a1-7c1e-7d2a-9b1e-3f2a1c0d4e5f")

	script := run.With(ScriptKey, "/scripts/smoke/a.vbs")

	run.Warn("run cancelled", "skipped", 2)
	script.Debug("script failed", "error", errors.New("exit status 1"))
	script.With(ProcedureKey, "a.vbs[p1]").Debug("interpreter exited", "exitCode", 1)
	run.WithGroup("detail").Info("grouped", ScriptKey, "b.vbs")

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.True(t, strings.HasSuffix(lines[0], `WARN: 0192f3a1: run cancelled { "skipped": 2 }`), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], `DEBUG: 0192f3a1 a.vbs: script failed { "error": "exit status 1" }`), lines[1])
	assert.True(t, strings.HasSuffix(lines[2], `DEBUG: 0192f3a1 a.vbs[p1]: interpreter exited { "exitCode": 1 }`), lines[2])
	// Only top level attributes form the scope.
	assert.True(t, strings.HasSuffix(lines[3], `INFO: 0192f3a1: grouped { "detail": { "script": "b.vbs" } }`), lines[3])
}

func TestConsoleHandler_Groups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	h := NewConsoleHandler(nil, WithDestinationWriter(&buf))
	logger := slog.New(h.WithAttrs([]slog.Attr{slog.Int("a", 1)}).WithGroup("g").WithAttrs([]slog.Attr{slog.Int("b", 2)}))

	logger.Info("m", "c", 3, slog.Group("h", "d", 4), slog.Group("", "e", 5), slog.Group("empty"))

	assert.True(t, strings.HasSuffix(buf.String(),
		`INFO: m { "a": 1, "g": { "b": 2, "c": 3, "e": 5, "h": { "d": 4 } } }`+"\n"), buf.String())
}

func TestConsoleHandler_ReplaceAttr(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	replace := func(_ []string, a slog.Attr) slog.Attr {
		switch a.Key {
		case slog.TimeKey:
			return slog.Attr{}
		case "param":
			return slog.String("param", "[hidden]")
		}

		return a
	}

	h := NewConsoleHandler(&slog.HandlerOptions{ReplaceAttr: replace}, WithDestinationWriter(&buf))
	r := slog.NewRecord(recordTime, slog.LevelWarn, "executing", 0)
	r.Add("param", "secret", "exitCode", 2)

	require.NoError(t, h.Handle(context.Background(), r))
	assert.Equal(t, `WARN: executing { "exitCode": 2, "param": "[hidden]" }`+"\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestConsoleHandler_WriteError(t *testing.T) {
	t.Parallel()

	h := NewConsoleHandler(nil, WithDestinationWriter(failingWriter{}))
	r := slog.NewRecord(time.Now(), slog.LevelError, "boom", 0)

	err := h.Handle(context.Background(), r)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIoWrite)
}

func TestConsoleHandler_AutoColour(t *testing.T) {
	t.Setenv(color.NoColor, "")
	t.Setenv(color.ForceColor, "1")

	var coloured bytes.Buffer

	h := NewConsoleHandler(nil, WithDestinationWriter(&coloured), WithAutoColour())
	assert.True(t, h.colour)

	require.NoError(t, h.Handle(context.Background(), slog.NewRecord(recordTime, slog.LevelError, "boom", 0)))
	assert.Contains(t, coloured.String(), "\033[31mERROR:\033[0m")

	t.Setenv(color.NoColor, "1")

	var plain bytes.Buffer

	h = NewConsoleHandler(nil, WithDestinationWriter(&plain), WithAutoColour())
	r := slog.NewRecord(recordTime, slog.LevelError, "boom", 0)
	r.Add("script", "a.vbs", "exitCode", 1)

	require.NoError(t, h.Handle(context.Background(), r))
	assert.NotContains(t, plain.String(), "\033[")
}

func TestConsoleHandler_ConcurrentHandle(t *testing.T) {
	t.Parallel()

	var buf syncBuffer

	logger := slog.New(NewConsoleHandler(nil, WithDestinationWriter(&buf)))

	done := make(chan struct{})

	for i := range 8 {
		go func() {
			defer func() { done <- struct{}{} }()

			logger.Warn("worker", "id", i)
		}()
	}

	for range 8 {
		<-done
	}

	assert.Equal(t, 8, strings.Count(buf.String(), "\n"))
}
