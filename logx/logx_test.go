// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false, false))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, true))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}

func TestLevelFromString(t *testing.T) {
	l, ok := LevelFromString("DEBUG")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelDebug, l)
	l, ok = LevelFromString("warning")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelWarn, l)
	_, ok = LevelFromString("loud")
	assert.False(t, ok)
}

func TestHandler(t *testing.T) {
	var buf bytes.Buffer
	lg := slog.New(NewHandler(&buf, slog.LevelInfo))
	lg.Debug("hidden")
	lg.Warn("texture swapped", "source", 13)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	// a bytes.Buffer is not a terminal, so the level is not colored
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "source=13")
}
