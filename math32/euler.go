// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "fmt"

// EulerOrder is the order in which the rotations about the X, Y
// and Z axes of a set of Euler angles are applied. EulerXYZ rotates
// about X first and about Z last, as [NewQuatEuler] does.
type EulerOrder uint8

const (
	EulerXYZ EulerOrder = iota
	EulerXZY
	EulerYXZ
	EulerYZX
	EulerZXY
	EulerZYX
)

var eulerOrderNames = [...]string{"XYZ", "XZY", "YXZ", "YZX", "ZXY", "ZYX"}

var eulerOrderAxes = [...][3]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}

func (o EulerOrder) String() string {
	if int(o) < len(eulerOrderNames) {
		return eulerOrderNames[o]
	}
	return fmt.Sprintf("EulerOrder(%d)", o)
}

// MarshalText implements [encoding.TextMarshaler].
func (o EulerOrder) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (o *EulerOrder) UnmarshalText(text []byte) error {
	for i, n := range eulerOrderNames {
		if n == string(text) {
			*o = EulerOrder(i)
			return nil
		}
	}
	return fmt.Errorf("math32: unknown euler order %q", text)
}

// axes returns the axis indexes in the order they are applied.
func (o EulerOrder) axes() [3]int {
	if int(o) < len(eulerOrderAxes) {
		return eulerOrderAxes[o]
	}
	return eulerOrderAxes[EulerXYZ]
}

// isOdd returns whether the axis order is an odd permutation of XYZ.
func (o EulerOrder) isOdd() bool {
	switch o {
	case EulerXZY, EulerYXZ, EulerZYX:
		return true
	}
	return false
}

func axisQuat(axis int, angle float32) Quat {
	var v Vector3
	v.SetDim(axis, 1)
	return NewQuatAxisAngle(v, angle)
}

// NewQuatEulerOrder returns the rotation for the given Euler angles
// in radians, applied in the given order. Each component of euler
// is the angle about its own axis.
func NewQuatEulerOrder(euler Vector3, order EulerOrder) Quat {
	ax := order.axes()
	q := axisQuat(ax[0], euler.Dim(ax[0]))
	q = MulQuats(axisQuat(ax[1], euler.Dim(ax[1])), q)
	return MulQuats(axisQuat(ax[2], euler.Dim(ax[2])), q)
}

// ToEulerOrder returns the Euler angles in radians of this
// quaternion for the given order, indexed by axis.
func (q Quat) ToEulerOrder(order EulerOrder) Vector3 {
	// relabel the axes so that the order becomes XYZ; an odd
	// relabeling mirrors space, which negates all angles.
	ax := order.axes()
	s := float32(1)
	if order.isOdd() {
		s = -1
	}
	v := Vec3(q.X, q.Y, q.Z)
	e := Quat{X: s * v.Dim(ax[0]), Y: s * v.Dim(ax[1]), Z: s * v.Dim(ax[2]), W: q.W}.ToEuler()
	var res Vector3
	res.SetDim(ax[0], s*e.X)
	res.SetDim(ax[1], s*e.Y)
	res.SetDim(ax[2], s*e.Z)
	return res
}
