/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package log sets up slog for the snapguide tools: a compact console line
// format or JSON on stderr, plus an optional rotating JSON log file.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	lj "gopkg.in/natefinch/lumberjack.v2"

	"snapguide/internal/version"
)

// Environment variables read by FromEnv.
const (
	EnvLevel  = "SNAP_LOG_LEVEL"  // debug|info|warn|error
	EnvFormat = "SNAP_LOG_FORMAT" // console|json
	EnvSource = "SNAP_LOG_SOURCE" // true|false
	EnvFile   = "SNAP_LOG_FILE"   // path, enables rotated file output
)

// Options controls logger initialization. Defaults: info, console, no source.
type Options struct {
	Level     string
	Format    string
	AddSource bool
	File      string
}

var (
	mu      sync.RWMutex
	current *slog.Logger
)

// L returns the process logger, initializing it from the environment on first use.
func L() *slog.Logger {
	mu.RLock()
	l := current
	mu.RUnlock()
	if l != nil {
		return l
	}
	return Init(FromEnv())
}

// Init builds the process logger from opts, installs it as slog.Default and returns it.
func Init(opts Options) *slog.Logger {
	l := New(opts, os.Stderr)
	mu.Lock()
	current = l
	mu.Unlock()
	slog.SetDefault(l)
	return l
}

// New builds a logger writing console output to w and, if opts.File is set,
// JSON records to a rotated file.
func New(opts Options, w io.Writer) *slog.Logger {
	lvl := parseLevel(opts.Level)
	hopts := &slog.HandlerOptions{Level: lvl, AddSource: opts.AddSource}

	var hs []slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		hs = append(hs, slog.NewJSONHandler(w, hopts))
	} else {
		hs = append(hs, &lineHandler{level: lvl, source: opts.AddSource, w: w})
	}
	if f := strings.TrimSpace(opts.File); f != "" {
		rot := &lj.Logger{Filename: f, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
		hs = append(hs, slog.NewJSONHandler(rot, hopts))
	}

	h := hs[0]
	if len(hs) > 1 {
		h = fanout(hs)
	}
	return slog.New(h).With(
		slog.String("app", "snapguide"),
		slog.String("ver", version.String()),
	)
}

// FromEnv builds Options from SNAP_LOG_* variables.
func FromEnv() Options {
	return Options{
		Level:     getenv(EnvLevel, "info"),
		Format:    getenv(EnvFormat, "console"),
		AddSource: strings.EqualFold(getenv(EnvSource, "false"), "true"),
		File:      os.Getenv(EnvFile),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// WithComponent returns a logger with the component attribute pre-set.
func WithComponent(name string) *slog.Logger { return L().With(slog.String("component", name)) }

// WithOperation annotates the logger with an operation name.
func WithOperation(l *slog.Logger, op string) *slog.Logger { return l.With(slog.String("op", op)) }

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// fanout sends every record to all handlers.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

// lineHandler prints one human-friendly line per record:
// ts level msg key=val ... [src=file:line]
type lineHandler struct {
	level  slog.Level
	source bool
	w      io.Writer
	attrs  []slog.Attr
	prefix string
}

func (h *lineHandler) Enabled(_ context.Context, level slog.Level) bool { return level >= h.level }

func (h *lineHandler) Handle(_ context.Context, r slog.Record) error {
	b := &strings.Builder{}
	b.Grow(256)
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	b.WriteString(ts.Format(time.RFC3339))
	b.WriteByte(' ')
	b.WriteString(levelTag(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)
	for _, a := range h.attrs {
		writeAttr(b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(b, h.prefix, a)
		return true
	})
	if h.source && r.PC != 0 {
		// resolved from the PC; Record.Source only exists from Go 1.25
		f, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		if f.File != "" {
			b.WriteString(" src=")
			b.WriteString(f.File)
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(f.Line))
		}
	}
	b.WriteByte('\n')
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	n := *h
	n.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	n.attrs = append(n.attrs, h.attrs...)
	for _, a := range attrs {
		n.attrs = append(n.attrs, slog.Attr{Key: h.prefix + a.Key, Value: a.Value})
	}
	return &n
}

func (h *lineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	n := *h
	n.attrs = append([]slog.Attr(nil), h.attrs...)
	n.prefix = h.prefix + name + "."
	return &n
}

func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteString(valueString(a.Value.Resolve()))
}

func levelTag(l slog.Level) string {
	switch l {
	case slog.LevelDebug:
		return "DBG"
	case slog.LevelInfo:
		return "INF"
	case slog.LevelWarn:
		return "WRN"
	case slog.LevelError:
		return "ERR"
	default:
		return l.String()
	}
}

func valueString(v slog.Value) string {
	switch v.Kind() {
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindString:
		s := v.String()
		if strings.ContainsAny(s, " \t\n\"=") {
			return strconv.Quote(s)
		}
		return s
	default:
		return v.String()
	}
}
