// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides the default [slog] set up used by
// rig tools, with a user-selectable verbosity level and
// colored level names on terminals.
package logx

import (
	"io"
	"log/slog"
	"strings"

	"github.com/muesli/termenv"
)

// UserLevel is the verbosity [slog.Level] that the user has selected for
// what logging and printing messages should be shown. Messages at
// levels at or above this level will be shown.
var UserLevel = defaultUserLevel

// LevelFromFlags returns the [slog.Level] object corresponding to the given
// user flag options. The flags correspond to the following values:
//   - vv: [slog.LevelDebug]
//   - v: [slog.LevelInfo]
//   - q: [slog.LevelError]
//   - (default: [slog.LevelWarn])
//
// The flags are evaluated in that order, so, for example, if both
// vv and q are specified, it will still return [slog.LevelDebug].
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// LevelFromString parses a level name such as "debug" or "warn".
// Unknown names return [slog.LevelWarn] and false.
func LevelFromString(s string) (slog.Level, bool) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelWarn, false
	}
	return l, true
}

// NewHandler returns a text [slog.Handler] writing to w that filters
// at [UserLevel] and colors level names when w is a terminal.
func NewHandler(w io.Writer) slog.Handler {
	out := termenv.NewOutput(w)
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: levelVar{},
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 || a.Key != slog.LevelKey {
				return a
			}
			lv, ok := a.Value.Any().(slog.Level)
			if !ok {
				return a
			}
			a.Value = slog.StringValue(out.String(lv.String()).Foreground(LevelColor(out, lv)).String())
			return a
		},
	})
}

// SetDefaultLogger installs [NewHandler] on w as the [slog] default.
func SetDefaultLogger(w io.Writer) {
	slog.SetDefault(slog.New(NewHandler(w)))
}

// LevelColor returns the color used to display the given level.
func LevelColor(out *termenv.Output, lv slog.Level) termenv.Color {
	switch {
	case lv >= slog.LevelError:
		return out.Color("1")
	case lv >= slog.LevelWarn:
		return out.Color("3")
	case lv >= slog.LevelInfo:
		return out.Color("4")
	default:
		return out.Color("8")
	}
}

// levelVar reads [UserLevel] at log time, so changes apply
// to already installed handlers.
type levelVar struct{}

func (levelVar) Level() slog.Level { return UserLevel }
