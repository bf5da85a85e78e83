// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/vbsc/internal/color"
)

// ErrIoWrite is returned when a log line cannot be written.
var ErrIoWrite = errors.New("error when writing to output")

// TimeFormat is the format used for timestamps in console log lines.
const TimeFormat = "[15:04:05.000]"

// Keys of the attributes naming what a record is about. The console handler
// prints them as a scope in front of the message.
const (
	RunKey       = "run"
	ScriptKey    = "script"
	ProcedureKey = "procedure"
)

const shortRunIDLen = 8

// ConsoleHandler writes one line per record, for example:
//
//	[15:04:05.000] DEBUG: 0192f3a1 a.vbs: script failed { "error": "exit status 1" }
//
// Top level run, script and procedure attributes form the scope. A run ID is
// shortened and a script is shown by its base name; a procedure, whose name
// already includes the script, replaces the script. The remaining attributes
// follow as JSON.
type ConsoleHandler struct {
	level  slog.Leveler
	rep    func([]string, slog.Attr) slog.Attr
	bound  []boundAttrs
	groups []string
	mu     *sync.Mutex
	writer io.Writer
	colour bool
	auto   bool
}

// boundAttrs are attributes added with WithAttrs under the groups open at the time.
type boundAttrs struct {
	groups []string
	attrs  []slog.Attr
}

// Option configures a ConsoleHandler.
type Option func(h *ConsoleHandler)

// WithDestinationWriter sets where log lines are written. The default is stderr.
func WithDestinationWriter(writer io.Writer) Option {
	return func(h *ConsoleHandler) {
		h.writer = writer
	}
}

// WithAutoColour colours the output when the destination writer wants colour.
func WithAutoColour() Option {
	return func(h *ConsoleHandler) {
		h.auto = true
	}
}

// NewConsoleHandler creates a ConsoleHandler. Only Level and ReplaceAttr of
// opts are used.
func NewConsoleHandler(opts *slog.HandlerOptions, options ...Option) *ConsoleHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	h := &ConsoleHandler{
		level:  opts.Level,
		rep:    opts.ReplaceAttr,
		mu:     &sync.Mutex{},
		writer: os.Stderr,
	}

	if h.level == nil {
		h.level = slog.LevelInfo
	}

	for _, opt := range options {
		opt(h)
	}

	if h.auto {
		h.colour = color.Enabled(h.writer)
	}

	return h
}

// Enabled implements slog.Handler.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// WithAttrs implements slog.Handler.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h
	c.bound = append(slices.Clip(h.bound), boundAttrs{groups: h.groups, attrs: attrs})

	return &c
}

// WithGroup implements slog.Handler.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(slices.Clip(h.groups), name)

	return &c
}

// Handle implements slog.Handler.
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make(map[string]any)

	for _, b := range h.bound {
		dst := descend(fields, b.groups)
		for _, a := range b.attrs {
			h.insert(dst, b.groups, a)
		}
	}

	if r.NumAttrs() > 0 {
		dst := descend(fields, h.groups)
		r.Attrs(func(a slog.Attr) bool {
			h.insert(dst, h.groups, a)
			return true
		})
	}

	parts := make([]string, 0, 5)

	if !r.Time.IsZero() {
		if ts, ok := h.builtin(slog.String(slog.TimeKey, r.Time.Format(TimeFormat))); ok {
			parts = append(parts, h.paint(ts, color.Faint))
		}
	}

	if lvl, ok := h.builtin(slog.Any(slog.LevelKey, r.Level)); ok {
		parts = append(parts, h.paint(lvl+":", levelColour(r.Level)))
	}

	if scope := takeScope(fields); scope != "" {
		parts = append(parts, h.paint(scope+":", color.Bold))
	}

	if msg, ok := h.builtin(slog.String(slog.MessageKey, r.Message)); ok && msg != "" {
		parts = append(parts, msg)
	}

	if len(fields) > 0 {
		out, _ := newJSONFormatter(h.colour).Marshal(fields)
		parts = append(parts, string(out))
	}

	line := strings.Join(parts, " ") + "\n"

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := io.WriteString(h.writer, line); err != nil {
		return errors.Join(ErrIoWrite, err)
	}

	return nil
}

// builtin applies ReplaceAttr to a time, level or message attribute. It
// reports false when the attribute was removed.
func (h *ConsoleHandler) builtin(a slog.Attr) (string, bool) {
	if h.rep != nil {
		a = h.rep(nil, a)
	}

	if a.Key == "" {
		return "", false
	}

	return a.Value.Resolve().String(), true
}

// insert adds a to dst, the map of the innermost of groups. Empty keys are
// dropped, groups nest and a group without a key is inlined.
func (h *ConsoleHandler) insert(dst map[string]any, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if h.rep != nil && a.Value.Kind() != slog.KindGroup {
		a = h.rep(groups, a)
		a.Value = a.Value.Resolve()
	}

	if a.Value.Kind() != slog.KindGroup {
		if a.Key != "" {
			dst[a.Key] = plain(a.Value)
		}

		return
	}

	members := a.Value.Group()
	if len(members) == 0 {
		return
	}

	if a.Key != "" {
		dst = descend(dst, []string{a.Key})
		groups = append(slices.Clip(groups), a.Key)
	}

	for _, m := range members {
		h.insert(dst, groups, m)
	}
}

func (h *ConsoleHandler) paint(s string, codes ...color.Code) string {
	if !h.colour {
		return s
	}

	return color.Wrap(s, codes...)
}

func descend(m map[string]any, groups []string) map[string]any {
	for _, g := range groups {
		sub, ok := m[g].(map[string]any)
		if !ok {
			sub = make(map[string]any)
			m[g] = sub
		}

		m = sub
	}

	return m
}

// takeScope removes the scope attributes from fields and renders them.
func takeScope(fields map[string]any) string {
	var parts []string

	if run, ok := fields[RunKey].(string); ok {
		delete(fields, RunKey)
		parts = append(parts, run[:min(len(run), shortRunIDLen)])
	}

	script, hasScript := fields[ScriptKey].(string)
	if hasScript {
		delete(fields, ScriptKey)
	}

	if proc, ok := fields[ProcedureKey].(string); ok {
		delete(fields, ProcedureKey)
		parts = append(parts, proc)
	} else if hasScript {
		parts = append(parts, filepath.Base(script))
	}

	return strings.Join(parts, " ")
}

func levelColour(level slog.Level) color.Code {
	switch {
	case level < slog.LevelInfo:
		return color.FgWhite
	case level < slog.LevelWarn:
		return color.FgCyan
	case level < slog.LevelError:
		return color.FgYellow
	default:
		return color.FgRed
	}
}

// plain converts a resolved value into the types colorjson can print.
func plain(v slog.Value) any {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return json.Number(strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		return json.Number(strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		return v.Float64()
	case slog.KindBool:
		return v.Bool()
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	}

	switch x := v.Any().(type) {
	case nil:
		return nil
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	default:
		return normalize(x)
	}
}

// normalize turns any JSON encodable value into maps, slices and scalars.
func normalize(x any) any {
	b, err := json.Marshal(x)
	if err != nil {
		return fmt.Sprint(x)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return fmt.Sprint(x)
	}

	return out
}

func newJSONFormatter(colour bool) *colorjson.Formatter {
	f := colorjson.NewFormatter()
	f.Indent = 0
	f.DisabledColor = !colour

	if !colour {
		f.KeyColor.DisableColor()
	}

	return f
}
