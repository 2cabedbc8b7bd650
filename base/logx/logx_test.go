// Copyright (c) 2024, Cogent Core. All rights reserved.
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
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false, true))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, false))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}

func TestLevelFromString(t *testing.T) {
	l, ok := LevelFromString("debug")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelDebug, l)
	l, ok = LevelFromString("loud")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelWarn, l)
}

func TestHandler(t *testing.T) {
	prev := UserLevel
	defer func() { UserLevel = prev }()

	var buf bytes.Buffer
	lg := slog.New(NewHandler(&buf))
	UserLevel = slog.LevelWarn
	lg.Info("hidden")
	assert.Empty(t, buf.String())
	lg.Warn("shown", "key", "Bone(root)")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "WARN")

	buf.Reset()
	UserLevel = slog.LevelDebug
	lg.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}
