// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rigfile reads declarative rig descriptions in TOML or YAML
// and builds hierarchies and modular rigs from them.
package rigfile

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/rig/base/errors"
	"cogentcore.org/rig/base/iox/tomlx"
	"cogentcore.org/rig/base/iox/yamlx"
	"cogentcore.org/rig/rig"
	"github.com/Masterminds/semver/v3"
)

// VersionConstraint is the range of format versions this package reads.
const VersionConstraint = "^1"

// Format is the encoding of a description.
type Format int32

const (
	TOML Format = iota
	YAML
)

func (f Format) String() string {
	if f == YAML {
		return "YAML"
	}
	return "TOML"
}

// FormatFromFilename returns the format implied by the file extension.
func FormatFromFilename(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return TOML, errors.Errorf("rigfile: unknown format of %q", filename)
}

// Pose is a transform given as a translation, XYZ Euler angles in
// degrees and a scale. Missing parts are the identity.
type Pose struct {
	Translation []float32 `toml:"translation,omitempty" yaml:"translation,omitempty"`
	Rotation    []float32 `toml:"rotation,omitempty" yaml:"rotation,omitempty"`
	Scale       []float32 `toml:"scale,omitempty" yaml:"scale,omitempty"`
}

// Parent is an additional weighted parent of a multi parent element.
type Parent struct {
	Key    string  `toml:"key" yaml:"key"`
	Weight float32 `toml:"weight" yaml:"weight"`
	Label  string  `toml:"label,omitempty" yaml:"label,omitempty"`
}

// Element describes one element of the hierarchy. Elements are
// added in order, so parents must come before their children.
type Element struct {
	Type string `toml:"type" yaml:"type"`
	Name string `toml:"name" yaml:"name"`

	// Parent is the key of the parent in the Type(Name) form.
	Parent string `toml:"parent,omitempty" yaml:"parent,omitempty"`

	// Parents are further parents of nulls and controls.
	Parents []Parent `toml:"parents,omitempty" yaml:"parents,omitempty"`

	Transform Pose `toml:"transform,omitempty" yaml:"transform,omitempty"`

	// Global is whether Transform is a global transform.
	Global bool `toml:"global,omitempty" yaml:"global,omitempty"`

	Tags []string `toml:"tags,omitempty" yaml:"tags,omitempty"`

	// Value is the value of a curve.
	Value float32 `toml:"value,omitempty" yaml:"value,omitempty"`

	// Control is the control type name of a control.
	Control string `toml:"control,omitempty" yaml:"control,omitempty"`

	// RotationOrder is the Euler order of a control, such as "ZYX".
	RotationOrder string `toml:"rotation_order,omitempty" yaml:"rotation_order,omitempty"`

	// Offset is the offset transform of a control.
	Offset Pose `toml:"offset,omitempty" yaml:"offset,omitempty"`

	// Color and Description are socket display settings.
	Color       string `toml:"color,omitempty" yaml:"color,omitempty"`
	Description string `toml:"description,omitempty" yaml:"description,omitempty"`
}

// Connector describes a connector of a module.
type Connector struct {
	Name        string                    `toml:"name" yaml:"name"`
	Description string                    `toml:"description,omitempty" yaml:"description,omitempty"`
	Type        rig.ConnectorType         `toml:"type,omitempty" yaml:"type,omitempty"`
	Optional    bool                      `toml:"optional,omitempty" yaml:"optional,omitempty"`
	Array       bool                      `toml:"array,omitempty" yaml:"array,omitempty"`
	Rules       []rig.ConnectionRuleStash `toml:"rules,omitempty" yaml:"rules,omitempty"`
}

// Settings returns the connector settings.
func (c *Connector) Settings() rig.ConnectorSettings {
	return rig.ConnectorSettings{
		Description: c.Description,
		Type:        c.Type,
		Optional:    c.Optional,
		IsArray:     c.Array,
		Rules:       c.Rules,
	}
}

// Connection binds a connector of a module to targets.
type Connection struct {
	Connector string   `toml:"connector" yaml:"connector"`
	Targets   []string `toml:"targets" yaml:"targets"`
}

// Module describes a module instance.
type Module struct {
	Name        string       `toml:"name" yaml:"name"`
	Connectors  []Connector  `toml:"connectors,omitempty" yaml:"connectors,omitempty"`
	Connections []Connection `toml:"connections,omitempty" yaml:"connections,omitempty"`
}

// Description is a rig description.
type Description struct {
	// Version is the semantic version of the format.
	Version string `toml:"version" yaml:"version"`

	Elements []Element `toml:"elements,omitempty" yaml:"elements,omitempty"`

	Modules []Module `toml:"modules,omitempty" yaml:"modules,omitempty"`

	// AutoResolve is whether unbound connectors are bound to their
	// default targets after the explicit connections are made.
	AutoResolve bool `toml:"auto_resolve,omitempty" yaml:"auto_resolve,omitempty"`
}

// CheckVersion returns an error if the description version is
// missing or outside of [VersionConstraint].
func (d *Description) CheckVersion() error {
	if d.Version == "" {
		return errors.New("rigfile: missing version")
	}
	v, err := semver.NewVersion(d.Version)
	if err != nil {
		return errors.Errorf("rigfile: version %q: %w", d.Version, err)
	}
	c, err := semver.NewConstraint(VersionConstraint)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return errors.Errorf("rigfile: version %s does not satisfy %s", v, VersionConstraint)
	}
	return nil
}

// Read reads a description in the given format. Unknown fields are
// an error, as is an unsupported version.
func Read(r io.Reader, format Format) (*Description, error) {
	d := &Description{}
	var err error
	switch format {
	case YAML:
		err = yamlx.Read(d, r, true)
	default:
		err = tomlx.Read(d, r, true)
	}
	if err != nil {
		return nil, errors.Errorf("rigfile: %v: %w", format, err)
	}
	if err := d.CheckVersion(); err != nil {
		return nil, err
	}
	return d, nil
}

// ReadBytes reads a description from bytes.
func ReadBytes(b []byte, format Format) (*Description, error) {
	return Read(bytes.NewReader(b), format)
}

// Open reads a description from a file, with the format given by
// its extension.
func Open(filename string) (*Description, error) {
	format, err := FormatFromFilename(filename)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err)
	}
	defer f.Close()
	d, err := Read(f, format)
	if err != nil {
		return nil, errors.Errorf("%s: %w", filename, err)
	}
	return d, nil
}
