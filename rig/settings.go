// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import (
	"cogentcore.org/rig/base/errors"
	"cogentcore.org/rig/base/iox/tomlx"
)

// Settings are the behavior settings of a [Hierarchy].
type Settings struct {

	// EnableDirtyPropagation is whether pose edits mark dependent
	// elements dirty. Without it, dependents keep stale transforms
	// until they are set explicitly.
	EnableDirtyPropagation bool `default:"true"`

	// ContiguousPoseStorage is whether the cells of one transform
	// stack are allocated next to each other.
	ContiguousPoseStorage bool `default:"true"`

	// AutoShrinkRatio is the fraction of free transform slots above
	// which removing an element compacts the storage. Zero disables
	// automatic compaction.
	AutoShrinkRatio float32 `default:"0.5"`

	// AutoShrinkMinimum is the number of transform slots below which
	// no automatic compaction happens.
	AutoShrinkMinimum int `default:"64"`

	// LogLevel is the name of the minimum level of log messages
	// shown by tools operating on the hierarchy.
	LogLevel string `default:"warn"`
}

// Defaults sets the default settings.
func (s *Settings) Defaults() {
	s.EnableDirtyPropagation = true
	s.ContiguousPoseStorage = true
	s.AutoShrinkRatio = 0.5
	s.AutoShrinkMinimum = 64
	s.LogLevel = "warn"
}

// DefaultSettings returns settings with [Settings.Defaults] applied.
func DefaultSettings() Settings {
	var s Settings
	s.Defaults()
	return s
}

// OpenSettings reads settings from TOML files on top of the defaults.
// Later files override the values of earlier ones. Errors are logged
// in addition to being returned.
func OpenSettings(filenames ...string) (Settings, error) {
	s := DefaultSettings()
	err := tomlx.OpenFiles(&s, true, filenames...)
	return s, errors.Log(err)
}

// Save writes the settings to a TOML file.
func (s *Settings) Save(filename string) error {
	return errors.Log(tomlx.Save(s, filename))
}
