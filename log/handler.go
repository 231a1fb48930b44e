// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"reflect"
	"strconv"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/holiman/uint256"
)

const (
	timeFormat     = "2006-01-02T15:04:05-0700"
	termTimeFormat = "01-02|15:04:05.000"
	termMsgJust    = 40
)

type discardHandler struct{}

// DiscardHandler returns a no-op handler
func DiscardHandler() slog.Handler {
	return &discardHandler{}
}

func (h *discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h *discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (h *discardHandler) WithGroup(string) slog.Handler             { return h }
func (h *discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }

// TerminalHandler formats records for humans:
//
//	INFO [01-02|15:04:05.000] pool created            pkg=engine id=1
type TerminalHandler struct {
	mu       *sync.Mutex
	wr       io.Writer
	lvl      *slog.LevelVar
	useColor bool
	attrs    []slog.Attr
}

// NewTerminalHandlerWithLevel returns a terminal handler that drops records below lvl.
func NewTerminalHandlerWithLevel(wr io.Writer, lvl *slog.LevelVar, useColor bool) *TerminalHandler {
	return &TerminalHandler{
		mu:       new(sync.Mutex),
		wr:       wr,
		lvl:      lvl,
		useColor: useColor,
	}
}

func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl.Level()
}

func (h *TerminalHandler) WithGroup(string) slog.Handler {
	return h
}

func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	return &TerminalHandler{
		mu:       h.mu,
		wr:       h.wr,
		lvl:      h.lvl,
		useColor: h.useColor,
		attrs:    append(merged, attrs...),
	}
}

func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	var b bytes.Buffer
	lvl := LevelString(r.Level)
	if h.useColor {
		color := 0
		switch r.Level {
		case LevelCrit:
			color = 35
		case LevelError:
			color = 31
		case LevelWarn:
			color = 33
		case LevelInfo:
			color = 32
		case LevelDebug:
			color = 36
		case LevelTrace:
			color = 34
		}
		fmt.Fprintf(&b, "\x1b[%dm%s\x1b[0m", color, lvl)
	} else {
		b.WriteString(lvl)
	}
	b.WriteString("[")
	b.WriteString(r.Time.Format(termTimeFormat))
	b.WriteString("] ")
	b.WriteString(r.Message)
	if r.NumAttrs()+len(h.attrs) > 0 {
		if pad := termMsgJust - utf8.RuneCountInString(r.Message); pad > 0 {
			b.Write(bytes.Repeat([]byte{' '}, pad))
		}
	}
	writeAttr := func(a slog.Attr) {
		a = replaceValue(a)
		b.WriteByte(' ')
		if h.useColor {
			fmt.Fprintf(&b, "\x1b[%dm%s\x1b[0m=", 36, a.Key)
		} else {
			b.WriteString(a.Key)
			b.WriteByte('=')
		}
		b.WriteString(quoteIfNeeded(a.Value.String()))
	}
	for _, a := range h.attrs {
		writeAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.wr.Write(b.Bytes())
	return err
}

func quoteIfNeeded(s string) string {
	for _, r := range s {
		if r <= ' ' || r == '=' || r == '"' {
			return strconv.Quote(s)
		}
	}
	return s
}

type leveler struct{ minLevel *slog.LevelVar }

func (l *leveler) Level() slog.Level {
	return l.minLevel.Level()
}

// JSONHandlerWithLevel returns a handler which prints records at or above level in JSON format.
func JSONHandlerWithLevel(wr io.Writer, level *slog.LevelVar) slog.Handler {
	return slog.NewJSONHandler(wr, &slog.HandlerOptions{
		ReplaceAttr: builtinReplaceJSON,
		Level:       &leveler{level},
	})
}

func builtinReplaceJSON(_ []string, attr slog.Attr) slog.Attr {
	switch attr.Key {
	case slog.TimeKey:
		if attr.Value.Kind() == slog.KindTime {
			return slog.String("t", attr.Value.Time().Format(timeFormat))
		}
	case slog.LevelKey:
		if l, ok := attr.Value.Any().(slog.Level); ok {
			return slog.String("lvl", LevelString(l))
		}
	}
	return replaceValue(attr)
}

func replaceValue(attr slog.Attr) slog.Attr {
	switch v := attr.Value.Any().(type) {
	case time.Time:
		attr.Value = slog.StringValue(v.Format(timeFormat))
	case *big.Int:
		if v == nil {
			attr.Value = slog.StringValue("<nil>")
		} else {
			attr.Value = slog.StringValue(v.String())
		}
	case *uint256.Int:
		if v == nil {
			attr.Value = slog.StringValue("<nil>")
		} else {
			attr.Value = slog.StringValue(v.Dec())
		}
	case error:
		if v != nil {
			attr.Value = slog.StringValue(v.Error())
		}
	case fmt.Stringer:
		if v == nil || (reflect.ValueOf(v).Kind() == reflect.Pointer && reflect.ValueOf(v).IsNil()) {
			attr.Value = slog.StringValue("<nil>")
		} else {
			attr.Value = slog.StringValue(v.String())
		}
	}
	return attr
}
