// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "fmt"

// Transform is a translation, rotation and scale, applied to
// points in the order scale, rotate, translate.
// Composition follows the convention that a.Mul(b) applies a first,
// so a child global transform is local.Mul(parentGlobal).
type Transform struct {
	Translation Vector3
	Rotation    Quat
	Scale       Vector3
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{Rotation: QuatIdentity(), Scale: Vector3Scalar(1)}
}

// NewTransform returns a transform with the given translation, rotation and scale.
func NewTransform(t Vector3, r Quat, s Vector3) Transform {
	return Transform{Translation: t, Rotation: r, Scale: s}
}

// Translate returns a transform that only translates.
func Translate(x, y, z float32) Transform {
	tr := Identity()
	tr.Translation = Vec3(x, y, z)
	return tr
}

// String implements the [fmt.Stringer] interface.
func (t Transform) String() string {
	return fmt.Sprintf("T%v R%v S%v", t.Translation, t.Rotation, t.Scale)
}

// IsZero returns whether this is the zero value, which is
// not a valid transform (zero rotation and zero scale).
func (t Transform) IsZero() bool {
	return t == Transform{}
}

// TransformPoint applies this transform to the point p.
func (t Transform) TransformPoint(p Vector3) Vector3 {
	return t.Rotation.RotateVector(p.Mul(t.Scale)).Add(t.Translation)
}

// Mul returns the composition of t followed by other.
func (t Transform) Mul(other Transform) Transform {
	return Transform{
		Rotation:    MulQuats(other.Rotation, t.Rotation),
		Scale:       t.Scale.Mul(other.Scale),
		Translation: other.Rotation.RotateVector(t.Translation.Mul(other.Scale)).Add(other.Translation),
	}
}

// Inverse returns the inverse of this transform. Zero scale
// components invert to zero.
func (t Transform) Inverse() Transform {
	inv := t.Rotation.Inverse()
	s := t.Scale.Reciprocal()
	return Transform{
		Rotation:    inv,
		Scale:       s,
		Translation: inv.RotateVector(t.Translation.Negate()).Mul(s),
	}
}

// Relative returns the transform of t relative to other,
// such that Relative(other).Mul(other) equals t.
func (t Transform) Relative(other Transform) Transform {
	return t.Mul(other.Inverse())
}

// IsEqualTol returns whether all channels are equal within tolerance tol.
func (t Transform) IsEqualTol(other Transform, tol float32) bool {
	return t.Translation.IsEqualTol(other.Translation, tol) &&
		t.Rotation.IsEqualTol(other.Rotation, tol) &&
		t.Scale.IsEqualTol(other.Scale, tol)
}

// Normalized returns a copy with a normalized rotation.
func (t Transform) Normalized() Transform {
	t.Rotation.Normalize()
	return t
}
