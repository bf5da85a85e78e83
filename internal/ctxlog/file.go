// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFileEnvVar names a file that receives JSON logs in addition to the console.
const LogFileEnvVar = "VBSC_LOG_FILE"

const (
	logFileMaxSizeMB  = 16
	logFileMaxBackups = 3
	logFileMaxAgeDays = 28
)

// RotatingFile returns a size-rotated log file writer.
func RotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logFileMaxSizeMB,
		MaxBackups: logFileMaxBackups,
		MaxAge:     logFileMaxAgeDays,
	}
}

// FromEnv returns DefaultLogger, or when VBSC_LOG_FILE is set, a logger that
// also writes JSON lines to that file. The closer releases the file.
func FromEnv() (*slog.Logger, io.Closer) {
	path := os.Getenv(LogFileEnvVar)
	if path == "" {
		return DefaultLogger, nopCloser{}
	}

	f := RotatingFile(path)
	file := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: LevelVar})

	return slog.New(Tee(DefaultLogger.Handler(), file)), f
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Tee returns a handler that passes each record to every handler that is
// enabled for its level.
func Tee(handlers ...slog.Handler) slog.Handler {
	return teeHandler(handlers)
}

type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error

	for _, h := range t {
		if !h.Enabled(ctx, r.Level) {
			continue
		}

		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}

	return out
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}

	return out
}
