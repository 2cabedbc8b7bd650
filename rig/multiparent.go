// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import (
	"slices"

	"cogentcore.org/rig/math32"
)

// ElementWeight is the per channel blend factor of a parent
// constraint. A zero channel means the parent contributes nothing
// to that channel. Weights are not normalized.
type ElementWeight struct {
	Location float32
	Rotation float32
	Scale    float32
}

// FullWeight returns a weight of one on all channels.
func FullWeight() ElementWeight {
	return ElementWeight{Location: 1, Rotation: 1, Scale: 1}
}

// IsAlmostZero returns whether all channels are close to zero.
func (w ElementWeight) IsAlmostZero() bool {
	return w.Location <= math32.SmallNumber && w.Rotation <= math32.SmallNumber && w.Scale <= math32.SmallNumber
}

// IsFull returns whether all channels are close to one.
func (w ElementWeight) IsFull() bool {
	return math32.NearlyEqual(w.Location, 1, math32.SmallNumber) &&
		math32.NearlyEqual(w.Rotation, 1, math32.SmallNumber) &&
		math32.NearlyEqual(w.Scale, 1, math32.SmallNumber)
}

// ConstraintCache is the cached contribution of one parent.
type ConstraintCache struct {
	Transform math32.Transform
	IsDirty   bool
}

// ParentConstraint is one weighted parent of a [MultiParentElement].
type ParentConstraint struct {
	// Parent is the key of the parent element.
	Parent ElementKey

	parentIndex int

	// Weight is the weight used for the current pose.
	Weight ElementWeight

	// InitialWeight is the weight used for the initial pose.
	InitialWeight ElementWeight

	// DisplayLabel is an optional label shown instead of the parent name.
	DisplayLabel string

	// Cache holds the global transform of the parent as of the
	// last blend, per phase.
	Cache CurrentAndInitial[ConstraintCache]
}

// ParentIndex returns the hierarchy index of the parent.
func (pc *ParentConstraint) ParentIndex() int { return pc.parentIndex }

// WeightFor returns the weight of the given phase.
func (pc *ParentConstraint) WeightFor(initial bool) ElementWeight {
	if initial {
		return pc.InitialWeight
	}
	return pc.Weight
}

// MarkCacheDirty flags the cached contributions of both phases.
func (pc *ParentConstraint) MarkCacheDirty() {
	pc.Cache.Current.IsDirty = true
	pc.Cache.Initial.IsDirty = true
}

// MultiParentElement is a transform element blended from any number
// of weighted parents.
type MultiParentElement struct {
	TransformElement

	// ParentConstraints is the ordered list of parents.
	ParentConstraints []ParentConstraint

	// indexLookup maps parent keys to constraint positions.
	indexLookup map[ElementKey]int
}

// AsMultiParent satisfies the [MultiParented] interface.
func (m *MultiParentElement) AsMultiParent() *MultiParentElement {
	return m
}

// NumParents returns the number of parent constraints.
func (m *MultiParentElement) NumParents() int {
	return len(m.ParentConstraints)
}

// ConstraintIndex returns the position of the constraint for the
// given parent, or [IndexNone].
func (m *MultiParentElement) ConstraintIndex(parent ElementKey) int {
	if i, ok := m.indexLookup[parent]; ok {
		return i
	}
	return IndexNone
}

// Constraint returns the constraint for the given parent, or nil.
func (m *MultiParentElement) Constraint(parent ElementKey) *ParentConstraint {
	i := m.ConstraintIndex(parent)
	if i == IndexNone {
		return nil
	}
	return &m.ParentConstraints[i]
}

func (m *MultiParentElement) addConstraint(pc ParentConstraint) {
	pc.MarkCacheDirty()
	m.ParentConstraints = append(m.ParentConstraints, pc)
	m.updateLookup()
}

func (m *MultiParentElement) removeConstraint(parent ElementKey) bool {
	i := m.ConstraintIndex(parent)
	if i == IndexNone {
		return false
	}
	m.ParentConstraints = slices.Delete(m.ParentConstraints, i, i+1)
	m.updateLookup()
	return true
}

func (m *MultiParentElement) updateLookup() {
	m.indexLookup = make(map[ElementKey]int, len(m.ParentConstraints))
	for i := range m.ParentConstraints {
		m.indexLookup[m.ParentConstraints[i].Parent] = i
	}
}

// copyWeights copies the weights of the selected phases from other,
// matching constraints by parent key. Constraints without an
// equivalent in other get zero weights.
func (m *MultiParentElement) copyWeights(other *MultiParentElement, current, initial bool) {
	for i := range m.ParentConstraints {
		pc := &m.ParentConstraints[i]
		src := other.Constraint(pc.Parent)
		if current {
			pc.Weight = ElementWeight{}
			if src != nil {
				pc.Weight = src.Weight
			}
			pc.Cache.Current.IsDirty = true
		}
		if initial {
			pc.InitialWeight = ElementWeight{}
			if src != nil {
				pc.InitialWeight = src.InitialWeight
			}
			pc.Cache.Initial.IsDirty = true
		}
	}
}

// BlendTransforms blends the given parent transforms with the given
// per channel weights. Translation and scale are weighted averages;
// rotation is the normalized, sign aligned, weighted quaternion sum.
// A channel whose weights sum to zero is the identity.
func BlendTransforms(transforms []math32.Transform, weights []ElementWeight) math32.Transform {
	res := math32.Identity()
	if len(transforms) == 1 && weights[0].IsFull() {
		return transforms[0]
	}
	var tsum, rsum, ssum float32
	var t, s math32.Vector3
	var r math32.Quat
	var ref math32.Quat
	hasRef := false
	for i, tr := range transforms {
		w := weights[i]
		if w.Location > 0 {
			t = t.Add(tr.Translation.MulScalar(w.Location))
			tsum += w.Location
		}
		if w.Scale > 0 {
			s = s.Add(tr.Scale.MulScalar(w.Scale))
			ssum += w.Scale
		}
		if w.Rotation > 0 {
			q := tr.Rotation
			if !hasRef {
				ref = q
				hasRef = true
			} else if ref.Dot(q) < 0 {
				q = math32.NewQuat(-q.X, -q.Y, -q.Z, -q.W)
			}
			r = math32.NewQuat(r.X+q.X*w.Rotation, r.Y+q.Y*w.Rotation, r.Z+q.Z*w.Rotation, r.W+q.W*w.Rotation)
			rsum += w.Rotation
		}
	}
	if tsum > 0 {
		res.Translation = t.MulScalar(1 / tsum)
	}
	if ssum > 0 {
		res.Scale = s.MulScalar(1 / ssum)
	}
	if rsum > 0 {
		res.Rotation = r.Normalized()
	}
	return res
}
