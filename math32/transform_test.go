// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-4

func TestQuatRotate(t *testing.T) {
	q := NewQuatAxisAngle(Vec3(0, 0, 1), Pi/2)
	v := q.RotateVector(Vec3(1, 0, 0))
	assert.True(t, v.IsEqualTol(Vec3(0, 1, 0), tol), v.String())

	back := q.Inverse().RotateVector(v)
	assert.True(t, back.IsEqualTol(Vec3(1, 0, 0), tol), back.String())

	var z Quat
	z.Normalize()
	assert.True(t, z.IsIdentity())
}

func TestQuatEuler(t *testing.T) {
	e := Vec3(0.3, -0.2, 1.1)
	q := NewQuatEuler(e)
	assert.True(t, q.ToEuler().IsEqualTol(e, tol))
}

func TestTransformMul(t *testing.T) {
	a := NewTransform(Vec3(1, 2, 3), NewQuatAxisAngle(Vec3(0, 1, 0), 0.4), Vector3Scalar(2))
	b := NewTransform(Vec3(-4, 0, 1), NewQuatAxisAngle(Vec3(1, 0, 0), -1.2), Vector3Scalar(0.5))
	p := Vec3(0.5, -1, 2)

	c := a.Mul(b)
	want := b.TransformPoint(a.TransformPoint(p))
	assert.True(t, c.TransformPoint(p).IsEqualTol(want, tol))

	assert.True(t, Identity().Mul(a).IsEqualTol(a, tol))
	assert.True(t, a.Mul(Identity()).IsEqualTol(a, tol))
}

func TestTransformInverse(t *testing.T) {
	a := NewTransform(Vec3(1, 2, 3), NewQuatEuler(Vec3(0.1, 0.7, -0.3)), Vector3Scalar(3))
	assert.True(t, a.Mul(a.Inverse()).IsEqualTol(Identity(), tol))
	assert.True(t, a.Inverse().Mul(a).IsEqualTol(Identity(), tol))

	parent := NewTransform(Vec3(0, 5, 0), NewQuatAxisAngle(Vec3(0, 0, 1), 0.9), Vector3Scalar(1))
	global := NewTransform(Vec3(2, 1, 0), NewQuatAxisAngle(Vec3(0, 1, 0), 0.2), Vector3Scalar(1))
	local := global.Relative(parent)
	assert.True(t, local.Mul(parent).IsEqualTol(global, tol))
}

func TestQuatEulerOrder(t *testing.T) {
	e := Vec3(0.3, -0.5, 0.7)
	assert.True(t, NewQuatEulerOrder(e, EulerXYZ).IsEqualTol(NewQuatEuler(e), tol))
	for o := EulerXYZ; o <= EulerZYX; o++ {
		q := NewQuatEulerOrder(e, o)
		assert.True(t, q.ToEulerOrder(o).IsEqualTol(e, tol), "%v: %v", o, q.ToEulerOrder(o))
	}

	// rotating about Z first, then Y, then X
	zyx := MulQuats(NewQuatAxisAngle(Vec3(1, 0, 0), e.X),
		MulQuats(NewQuatAxisAngle(Vec3(0, 1, 0), e.Y), NewQuatAxisAngle(Vec3(0, 0, 1), e.Z)))
	assert.True(t, NewQuatEulerOrder(e, EulerZYX).IsEqualTol(zyx, tol))
	assert.False(t, zyx.ToEuler().IsEqualTol(e, 0.01))

	var o EulerOrder
	assert.NoError(t, o.UnmarshalText([]byte("YZX")))
	assert.Equal(t, EulerYZX, o)
	assert.Error(t, o.UnmarshalText([]byte("XXY")))
}
