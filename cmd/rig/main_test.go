// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cogentcore.org/rig/base/logx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runArgs(t *testing.T, args ...string) (string, error) {
	var b bytes.Buffer
	err := run(context.Background(), args, &b)
	return b.String(), err
}

func TestInspect(t *testing.T) {
	out, err := runArgs(t, "inspect", "testdata/arm.toml")
	require.NoError(t, err)
	assert.Contains(t, out, "Bone(root)\n  Bone(spine) [ArmSlot]\n")
	assert.Contains(t, out, "      Socket(hand)\n")
	assert.Contains(t, out, "Curve(blink)\n")
	assert.Contains(t, out, "Module Arm\n")
	assert.Contains(t, out, "Connector(Arm:Root) -> Bone(spine)\n")
	assert.Contains(t, out, "Connector(Arm:Extra) -> Socket(hand), Socket(hip)\n")
}

func TestResolve(t *testing.T) {
	out, err := runArgs(t, "resolve", "-q", "testdata/arm.toml", "Arm")
	require.NoError(t, err)
	assert.Contains(t, out, "Connector(Arm:Root) Success")
	assert.Contains(t, out, "DefaultTarget  Bone(spine)")
	assert.Contains(t, out, "PossibleTarget Socket(hip)")

	_, err = runArgs(t, "resolve", "testdata/arm.toml", "Leg")
	assert.Error(t, err)
}

func TestPose(t *testing.T) {
	out, err := runArgs(t, "pose", "--initial", "testdata/arm.toml", "Bone(spine)")
	require.NoError(t, err)
	assert.Contains(t, out, "Bone(spine)\n  local ")

	_, err = runArgs(t, "pose", "testdata/arm.toml", "Bone(nope)")
	assert.Error(t, err)
	_, err = runArgs(t, "pose", "testdata/arm.toml", "nope")
	assert.Error(t, err)
}

func TestUsage(t *testing.T) {
	_, err := runArgs(t, "explode")
	assert.Error(t, err)
	out, err := runArgs(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "arm.toml")
	src, err := os.ReadFile("testdata/arm.toml")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, src, 0666))

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	var b bytes.Buffer
	require.NoError(t, newTool().watch(ctx, file, &b))
	assert.Contains(t, b.String(), "Connector(Arm:Hand) Success")
}

func TestSettingsLogLevel(t *testing.T) {
	level, logger := logx.UserLevel, slog.Default()
	t.Cleanup(func() {
		logx.UserLevel = level
		slog.SetDefault(logger)
	})
	var logs bytes.Buffer
	logx.SetDefaultLogger(&logs)

	fn := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(fn, []byte("LogLevel = \"debug\"\n"), 0666))

	_, err := runArgs(t, "inspect", "--settings="+fn, "testdata/arm.toml")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, logx.UserLevel)
	assert.Contains(t, logs.String(), "rig: loaded")

	logs.Reset()
	_, err = runArgs(t, "inspect", "-q", "--settings="+fn, "testdata/arm.toml")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, logx.UserLevel)
	assert.NotContains(t, logs.String(), "rig: loaded")

	_, err = runArgs(t, "inspect", "--settings="+filepath.Join(t.TempDir(), "none.toml"), "testdata/arm.toml")
	assert.Error(t, err)
}
