// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTee(t *testing.T) {
	t.Parallel()

	var warnOnly, all bytes.Buffer

	logger := slog.New(Tee(
		slog.NewTextHandler(&warnOnly, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewJSONHandler(&all, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)).With("run", "r1").WithGroup("target")

	logger.Debug("queued", "index", 1)
	logger.Warn("skipped", "index", 2)

	assert.NotContains(t, warnOnly.String(), "queued")
	assert.Contains(t, warnOnly.String(), "target.index=2")
	assert.Contains(t, warnOnly.String(), "run=r1")

	lines := bytes.Split(bytes.TrimSpace(all.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	assert.Equal(t, "queued", first["msg"])
	assert.Equal(t, "r1", first["run"])
	assert.Equal(t, map[string]any{"index": float64(1)}, first["target"])
}

func TestTee_EnabledIfAny(t *testing.T) {
	t.Parallel()

	h := Tee(
		slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}),
		slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)

	assert.True(t, h.Enabled(t.Context(), slog.LevelInfo))
	assert.False(t, h.Enabled(t.Context(), slog.LevelDebug))
}

func TestFromEnv(t *testing.T) {
	t.Setenv(LogFileEnvVar, "")

	logger, closer := FromEnv()
	assert.Same(t, DefaultLogger, logger)
	require.NoError(t, closer.Close())

	path := filepath.Join(t.TempDir(), "vbsc.log")
	t.Setenv(LogFileEnvVar, path)

	original := LevelVar.Level()
	defer LevelVar.Set(original)

	LevelVar.Set(slog.LevelInfo)

	logger, closer = FromEnv()
	logger.Info("written to file", "script", "a.vbs")
	require.NoError(t, closer.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"written to file"`)
	assert.Contains(t, string(content), `"script":"a.vbs"`)
}
