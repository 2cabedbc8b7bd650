// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import (
	"fmt"

	"cogentcore.org/rig/math32"
)

// ControlType is the kind of value a control drives.
type ControlType uint8

const (
	ControlBool ControlType = iota
	ControlFloat
	ControlScaleFloat
	ControlInteger
	ControlVector2D
	ControlPosition
	ControlScale
	ControlRotator
	ControlTransform
	ControlTransformNoScale
	ControlEulerTransform
)

var controlTypeNames = [...]string{"Bool", "Float", "ScaleFloat", "Integer", "Vector2D",
	"Position", "Scale", "Rotator", "Transform", "TransformNoScale", "EulerTransform"}

func (ct ControlType) String() string {
	if int(ct) < len(controlTypeNames) {
		return controlTypeNames[ct]
	}
	return fmt.Sprintf("ControlType(%d)", ct)
}

// MarshalText implements [encoding.TextMarshaler].
func (ct ControlType) MarshalText() ([]byte, error) {
	return []byte(ct.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (ct *ControlType) UnmarshalText(text []byte) error {
	for i, n := range controlTypeNames {
		if n == string(text) {
			*ct = ControlType(i)
			return nil
		}
	}
	return fmt.Errorf("rig: unknown control type %q", text)
}

// NumChannels returns the number of scalar channels of the type,
// which is the length of its limit arrays.
func (ct ControlType) NumChannels() int {
	switch ct {
	case ControlBool:
		return 0
	case ControlFloat, ControlScaleFloat, ControlInteger:
		return 1
	case ControlVector2D:
		return 2
	case ControlPosition, ControlScale, ControlRotator:
		return 3
	case ControlTransformNoScale:
		return 6
	default:
		return 9
	}
}

// AnimationType is how a control participates in animation.
type AnimationType uint8

const (
	AnimationControl AnimationType = iota
	AnimationChannel
	ProxyControl
	VisualCue
)

func (at AnimationType) String() string {
	switch at {
	case AnimationChannel:
		return "AnimationChannel"
	case ProxyControl:
		return "ProxyControl"
	case VisualCue:
		return "VisualCue"
	}
	return "AnimationControl"
}

// LimitEnabled is whether the minimum and maximum of one channel apply.
type LimitEnabled struct {
	Minimum bool
	Maximum bool
}

// IsOn returns whether either side of the limit applies.
func (le LimitEnabled) IsOn() bool {
	return le.Minimum || le.Maximum
}

// ControlSettings are the authored settings of a control.
type ControlSettings struct {
	ControlType ControlType

	AnimationType AnimationType

	DisplayName string

	ShapeName string

	ShapeVisible bool

	// LimitEnabled has one entry per channel of the control type.
	LimitEnabled []LimitEnabled

	// Minimum and Maximum have one entry per channel.
	Minimum []float32
	Maximum []float32
}

// DefaultControlSettings returns settings for a transform control.
func DefaultControlSettings() ControlSettings {
	cs := ControlSettings{ControlType: ControlEulerTransform, ShapeVisible: true}
	cs.SetupLimitArrayForType(false, false, false)
	return cs
}

// SetupLimitArrayForType sizes the limit arrays for the control type
// and enables the translation, rotation and scale channel groups
// as requested. Channels of single value types count as translation.
func (cs *ControlSettings) SetupLimitArrayForType(limitTranslation, limitRotation, limitScale bool) {
	n := cs.ControlType.NumChannels()
	cs.LimitEnabled = make([]LimitEnabled, n)
	cs.Minimum = resizeFloats(cs.Minimum, n)
	cs.Maximum = resizeFloats(cs.Maximum, n)
	enable := func(from, to int, on bool) {
		for i := from; i < to && i < n; i++ {
			cs.LimitEnabled[i] = LimitEnabled{Minimum: on, Maximum: on}
		}
	}
	switch cs.ControlType {
	case ControlRotator:
		enable(0, 3, limitRotation)
	case ControlScale, ControlScaleFloat:
		enable(0, n, limitScale)
	case ControlTransform, ControlTransformNoScale, ControlEulerTransform:
		enable(0, 3, limitTranslation)
		enable(3, 6, limitRotation)
		enable(6, 9, limitScale)
	default:
		enable(0, n, limitTranslation)
	}
}

func resizeFloats(v []float32, n int) []float32 {
	if len(v) >= n {
		return v[:n]
	}
	return append(v, make([]float32, n-len(v))...)
}

// HasLimits returns whether any channel is limited.
func (cs *ControlSettings) HasLimits() bool {
	for _, le := range cs.LimitEnabled {
		if le.IsOn() {
			return true
		}
	}
	return false
}

func (cs *ControlSettings) clamp(ch int, v float32) float32 {
	if ch >= len(cs.LimitEnabled) || ch >= len(cs.Minimum) || ch >= len(cs.Maximum) {
		return v
	}
	le := cs.LimitEnabled[ch]
	if le.Minimum && v < cs.Minimum[ch] {
		v = cs.Minimum[ch]
	}
	if le.Maximum && v > cs.Maximum[ch] {
		v = cs.Maximum[ch]
	}
	return v
}

func (cs *ControlSettings) clampVector(first int, v math32.Vector3) math32.Vector3 {
	return math32.Vec3(cs.clamp(first, v.X), cs.clamp(first+1, v.Y), cs.clamp(first+2, v.Z))
}

// ApplyLimits clamps a local transform to the enabled limits.
// Rotation limits apply to the Euler angles in degrees, decomposed
// in the given order.
func (cs *ControlSettings) ApplyLimits(tr math32.Transform, order math32.EulerOrder) math32.Transform {
	if !cs.HasLimits() {
		return tr
	}
	rot := func(first int) {
		deg := tr.Rotation.ToEulerOrder(order).RadToDeg()
		c := cs.clampVector(first, deg)
		if c != deg {
			tr.Rotation = math32.NewQuatEulerOrder(c.DegToRad(), order)
		}
	}
	switch cs.ControlType {
	case ControlFloat, ControlInteger:
		tr.Translation.X = cs.clamp(0, tr.Translation.X)
	case ControlScaleFloat:
		tr.Scale.X = cs.clamp(0, tr.Scale.X)
	case ControlVector2D:
		tr.Translation.X = cs.clamp(0, tr.Translation.X)
		tr.Translation.Y = cs.clamp(1, tr.Translation.Y)
	case ControlPosition:
		tr.Translation = cs.clampVector(0, tr.Translation)
	case ControlScale:
		tr.Scale = cs.clampVector(0, tr.Scale)
	case ControlRotator:
		rot(0)
	case ControlTransform, ControlTransformNoScale, ControlEulerTransform:
		tr.Translation = cs.clampVector(0, tr.Translation)
		rot(3)
		if cs.ControlType != ControlTransformNoScale {
			tr.Scale = cs.clampVector(6, tr.Scale)
		}
	}
	return tr
}

// PreferredEulerAngles are the Euler angles in degrees that a control
// reports for its rotation, kept to disambiguate equivalent rotations.
type PreferredEulerAngles struct {
	RotationOrder math32.EulerOrder
	Current       math32.Vector3
	Initial       math32.Vector3
}

// Angles returns the angles of the given phase.
func (pe *PreferredEulerAngles) Angles(initial bool) math32.Vector3 {
	if initial {
		return pe.Initial
	}
	return pe.Current
}

// SetAngles sets the angles of the given phase.
func (pe *PreferredEulerAngles) SetAngles(v math32.Vector3, initial bool) {
	if initial {
		pe.Initial = v
	} else {
		pe.Current = v
	}
}

// SetFromRotation sets the angles of the given phase from a rotation,
// decomposed in the rotation order.
func (pe *PreferredEulerAngles) SetFromRotation(q math32.Quat, initial bool) {
	pe.SetAngles(q.ToEulerOrder(pe.RotationOrder).RadToDeg(), initial)
}

// Rotation returns the rotation of the angles of the given phase.
func (pe *PreferredEulerAngles) Rotation(initial bool) math32.Quat {
	return math32.NewQuatEulerOrder(pe.Angles(initial).DegToRad(), pe.RotationOrder)
}

// ResetCurrent sets the current angles to the initial ones.
func (pe *PreferredEulerAngles) ResetCurrent() {
	pe.Current = pe.Initial
}

// Control is an animatable, multi parent element with an offset
// and a shape transform stack. Its global transform is its local
// transform applied on top of the offset global transform, which
// in turn is the offset local transform under the blended parents.
type Control struct {
	MultiParentElement

	// Offset is the stack between the parents and the control pose.
	Offset TransformStorage

	// Shape is the stack of the displayed shape, relative to the pose.
	Shape TransformStorage

	Settings ControlSettings

	PreferredEulerAngles PreferredEulerAngles
}

// IsAnimationChannel returns whether the control is an animation channel.
func (c *Control) IsAnimationChannel() bool {
	return c.Settings.AnimationType == AnimationChannel
}

// Storage returns the requested transform stack.
func (c *Control) Storage(st TransformStorageType) *TransformStorage {
	switch st {
	case StorageOffset:
		return &c.Offset
	case StorageShape:
		return &c.Shape
	}
	return &c.Pose
}
