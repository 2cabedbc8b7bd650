// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tomlx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name  string
	Count int
}

func TestSaveOpen(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "cfg.toml")
	require.NoError(t, Save(&testConfig{Name: "arm", Count: 3}, fn))

	var cfg testConfig
	require.NoError(t, Open(&cfg, fn, true))
	assert.Equal(t, testConfig{Name: "arm", Count: 3}, cfg)

	assert.Error(t, Open(&cfg, filepath.Join(t.TempDir(), "missing.toml"), false))
}

func TestStrict(t *testing.T) {
	var cfg testConfig
	data := []byte("Name = \"leg\"\nExtra = 1\n")
	assert.NoError(t, ReadBytes(&cfg, data, false))
	assert.Equal(t, "leg", cfg.Name)
	assert.Error(t, ReadBytes(&cfg, data, true))
}

func TestOpenFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.toml")
	over := filepath.Join(dir, "over.toml")
	require.NoError(t, Save(&testConfig{Name: "arm", Count: 3}, base))
	require.NoError(t, os.WriteFile(over, []byte("Count = 5\n"), 0666))

	var cfg testConfig
	require.NoError(t, OpenFiles(&cfg, true, base, over))
	assert.Equal(t, testConfig{Name: "arm", Count: 5}, cfg)

	err := OpenFiles(&cfg, true, base, filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
	assert.Equal(t, 3, cfg.Count)
}
