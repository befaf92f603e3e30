// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
)

// SetDefaultLogger sets the default [slog] logger to one that writes
// to stderr at [UserLevel], with level names colored when stderr is
// a terminal.
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, UserLevel)))
}

// NewHandler returns a text [slog.Handler] writing to w at the given
// minimum level. The level attribute is colored according to the
// color profile of w, so nothing is colored when w is not a terminal.
func NewHandler(w io.Writer, level slog.Leveler) slog.Handler {
	out := termenv.NewOutput(w)
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 || a.Key != slog.LevelKey {
				return a
			}
			lvl, ok := a.Value.Any().(slog.Level)
			if !ok {
				return a
			}
			return slog.String(slog.LevelKey, colorLevel(out, lvl))
		},
	})
}

// colorLevel returns the name of the given level styled for out.
func colorLevel(out *termenv.Output, lvl slog.Level) string {
	st := out.String(lvl.String())
	switch {
	case lvl >= slog.LevelError:
		st = st.Foreground(termenv.ANSIRed).Bold()
	case lvl >= slog.LevelWarn:
		st = st.Foreground(termenv.ANSIYellow)
	case lvl >= slog.LevelInfo:
		st = st.Foreground(termenv.ANSICyan)
	default:
		st = st.Faint()
	}
	return st.String()
}
