// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

const (
	LevelTrace slog.Level = -8
	LevelDebug            = slog.LevelDebug
	LevelInfo             = slog.LevelInfo
	LevelWarn             = slog.LevelWarn
	LevelError            = slog.LevelError
	LevelCrit  slog.Level = 12
)

// Logger writes key/value pairs to a handler.
type Logger interface {
	With(ctx ...any) Logger
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	// Crit logs and exits the process.
	Crit(msg string, ctx ...any)
	Enabled(level slog.Level) bool
}

var root atomic.Pointer[slog.Logger]

func init() {
	root.Store(slog.New(DiscardHandler()))
}

// SetDefault replaces the handler all loggers write to, including those created earlier.
func SetDefault(h slog.Handler) {
	root.Store(slog.New(h))
}

// Root returns the root logger.
func Root() Logger {
	return &lazyLogger{}
}

// WithContext returns a logger that prefixes every record with ctx.
// It is meant to be assigned to package level variables before SetDefault runs.
func WithContext(ctx ...any) Logger {
	return &lazyLogger{ctx: ctx}
}

type lazyLogger struct {
	ctx []any
}

func (l *lazyLogger) With(ctx ...any) Logger {
	merged := make([]any, 0, len(l.ctx)+len(ctx))
	merged = append(merged, l.ctx...)
	return &lazyLogger{ctx: append(merged, ctx...)}
}

func (l *lazyLogger) write(level slog.Level, msg string, ctx []any) {
	lg := root.Load()
	if !lg.Enabled(context.Background(), level) {
		return
	}
	if len(l.ctx) > 0 {
		lg = lg.With(l.ctx...)
	}
	lg.Log(context.Background(), level, msg, ctx...)
}

func (l *lazyLogger) Enabled(level slog.Level) bool {
	return root.Load().Enabled(context.Background(), level)
}

func (l *lazyLogger) Trace(msg string, ctx ...any) { l.write(LevelTrace, msg, ctx) }
func (l *lazyLogger) Debug(msg string, ctx ...any) { l.write(LevelDebug, msg, ctx) }
func (l *lazyLogger) Info(msg string, ctx ...any)  { l.write(LevelInfo, msg, ctx) }
func (l *lazyLogger) Warn(msg string, ctx ...any)  { l.write(LevelWarn, msg, ctx) }
func (l *lazyLogger) Error(msg string, ctx ...any) { l.write(LevelError, msg, ctx) }

func (l *lazyLogger) Crit(msg string, ctx ...any) {
	l.write(LevelCrit, msg, ctx)
	os.Exit(1)
}

// FromLegacyLevel maps a 0 (crit) .. 5 (trace) verbosity to a level.
func FromLegacyLevel(verbosity int) slog.Level {
	switch {
	case verbosity <= 0:
		return LevelCrit
	case verbosity == 1:
		return LevelError
	case verbosity == 2:
		return LevelWarn
	case verbosity == 3:
		return LevelInfo
	case verbosity == 4:
		return LevelDebug
	default:
		return LevelTrace
	}
}

// LevelString returns a 5-character string containing the name of a level.
func LevelString(l slog.Level) string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO "
	case LevelWarn:
		return "WARN "
	case LevelError:
		return "ERROR"
	case LevelCrit:
		return "CRIT "
	default:
		return "unknown level"
	}
}
