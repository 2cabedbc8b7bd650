// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import (
	"fmt"

	"cogentcore.org/rig/math32"
	"cogentcore.org/rig/storage"
	"github.com/jinzhu/copier"
)

// BoneType is the origin of a bone.
type BoneType uint8

const (
	// BoneImported is a bone that came from an imported skeleton.
	BoneImported BoneType = iota

	// BoneUser is a bone created by the user or a procedure.
	BoneUser
)

func (bt BoneType) String() string {
	if bt == BoneUser {
		return "User"
	}
	return "Imported"
}

// Bone is a skeleton joint with at most one parent.
type Bone struct {
	SingleParentElement

	BoneType BoneType
}

// Null is a transform without visual representation, blended
// from any number of parents.
type Null struct {
	MultiParentElement
}

// Reference is a single parent element whose global transform can
// be provided from outside the hierarchy.
type Reference struct {
	SingleParentElement

	// WorldTransform, if set, replaces the parent global transform
	// when computing the global transform of the reference.
	WorldTransform func(initial bool) math32.Transform
}

// Socket is a named attachment point used as a connector target.
// Its color, description and desired parent are kept as metadata.
type Socket struct {
	SingleParentElement
}

// Curve is a named scalar value.
type Curve struct {
	BaseElement

	value storage.Cell[float32]

	// IsValueSet is whether the value has been set since the last reset.
	IsValueSet bool
}

// Value returns the curve value.
func (c *Curve) Value() float32 {
	return c.value.Get()
}

// SetValue sets the value and marks it as set.
func (c *Curve) SetValue(v float32) {
	c.value.Set(v)
	c.IsValueSet = true
}

// UnsetValue resets the value to zero and marks it as not set.
func (c *Curve) UnsetValue() {
	c.value.Set(0)
	c.IsValueSet = false
}

// ConnectorType is the role of a connector within its module.
type ConnectorType uint8

const (
	// ConnectorPrimary is the connector that places a module in the rig.
	ConnectorPrimary ConnectorType = iota

	// ConnectorSecondary is any additional connector of a module.
	ConnectorSecondary
)

func (ct ConnectorType) String() string {
	if ct == ConnectorSecondary {
		return "Secondary"
	}
	return "Primary"
}

// MarshalText implements [encoding.TextMarshaler].
func (ct ConnectorType) MarshalText() ([]byte, error) {
	return []byte(ct.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (ct *ConnectorType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Primary", "primary", "":
		*ct = ConnectorPrimary
	case "Secondary", "secondary":
		*ct = ConnectorSecondary
	default:
		return fmt.Errorf("rig: unknown connector type %q", text)
	}
	return nil
}

// ConnectorSettings describes what a connector accepts.
type ConnectorSettings struct {
	Description string `toml:"description" yaml:"description"`

	Type ConnectorType `toml:"type" yaml:"type"`

	// Optional connectors may stay unresolved.
	Optional bool `toml:"optional" yaml:"optional"`

	// IsArray connectors may be bound to more than one target.
	IsArray bool `toml:"array" yaml:"array"`

	// Rules are the serialized connection rules, all of which a
	// target must satisfy.
	Rules []ConnectionRuleStash `toml:"rules" yaml:"rules"`
}

// DefaultConnectorSettings returns settings accepting any socket.
func DefaultConnectorSettings() ConnectorSettings {
	return ConnectorSettings{
		Rules: []ConnectionRuleStash{{Kind: RuleType, Types: ElementTypeSocket}},
	}
}

// RulesHash returns a hash of the connector rules.
func (cs *ConnectorSettings) RulesHash() uint64 {
	var h uint64
	for _, r := range cs.Rules {
		h = HashCombine(h, r.Hash())
	}
	return h
}

// Connector is an unresolved binding point of a modular rig.
// It has no pose.
type Connector struct {
	BaseElement

	Settings ConnectorSettings
}

// IsPrimary returns whether this is a primary connector.
func (c *Connector) IsPrimary() bool {
	return c.Settings.Type == ConnectorPrimary
}

// CopyFrom copies the structure and settings of other, which must be
// an element of the same type. Pose data is copied with [CopyPose].
func CopyFrom(dst, src Element) error {
	if dst.AsBase().Type() != src.AsBase().Type() {
		return fmt.Errorf("rig: cannot copy %v into %v", src.AsBase().Key(), dst.AsBase().Key())
	}
	dst.AsBase().copyFrom(src.AsBase())
	switch d := dst.(type) {
	case *Bone:
		d.BoneType = src.(*Bone).BoneType
	case *Reference:
		d.WorldTransform = src.(*Reference).WorldTransform
	case *Control:
		s := src.(*Control)
		if err := copier.CopyWithOption(&d.Settings, &s.Settings, copier.Option{DeepCopy: true}); err != nil {
			return err
		}
		d.PreferredEulerAngles = s.PreferredEulerAngles
	case *Connector:
		s := src.(*Connector)
		if err := copier.CopyWithOption(&d.Settings, &s.Settings, copier.Option{DeepCopy: true}); err != nil {
			return err
		}
	}
	return nil
}

// CopyPose copies the pose data of the selected phases from src to dst,
// which must be of the same type. For multi parent elements weights
// are copied when requested, matched by parent key.
func CopyPose(dst, src Element, current, initial, weights bool) error {
	if dst.AsBase().Type() != src.AsBase().Type() {
		return fmt.Errorf("rig: cannot copy pose of %v into %v", src.AsBase().Key(), dst.AsBase().Key())
	}
	switch d := dst.(type) {
	case *Curve:
		s := src.(*Curve)
		if current {
			d.value.Set(s.value.Get())
			d.IsValueSet = s.IsValueSet
		}
		return nil
	case *Connector:
		return nil
	}
	dt := dst.(Transformer).AsTransform()
	st := src.(Transformer).AsTransform()
	dt.Pose.copyValues(&st.Pose, current, initial)
	if dm, ok := dst.(MultiParented); ok && weights {
		dm.AsMultiParent().copyWeights(src.(MultiParented).AsMultiParent(), current, initial)
	}
	if dc, ok := dst.(*Control); ok {
		sc := src.(*Control)
		dc.Offset.copyValues(&sc.Offset, current, initial)
		dc.Shape.copyValues(&sc.Shape, current, initial)
		if current {
			dc.PreferredEulerAngles.Current = sc.PreferredEulerAngles.Current
		}
		if initial {
			dc.PreferredEulerAngles.Initial = sc.PreferredEulerAngles.Initial
		}
	}
	return nil
}
