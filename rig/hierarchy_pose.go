// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import (
	"cogentcore.org/rig/base/errors"
	"cogentcore.org/rig/math32"
)

// Transform returns the pose of an element, recomputing it if dirty.
func (h *Hierarchy) Transform(key ElementKey, tt TransformType) (math32.Transform, error) {
	e, err := h.Transformer(key)
	if err != nil {
		return math32.Transform{}, err
	}
	return h.transformOf(e, tt), nil
}

// LocalTransform returns the local pose of the given phase.
func (h *Hierarchy) LocalTransform(key ElementKey, initial bool) (math32.Transform, error) {
	return h.Transform(key, TransformTypeOf(initial, true))
}

// GlobalTransform returns the global pose of the given phase.
func (h *Hierarchy) GlobalTransform(key ElementKey, initial bool) (math32.Transform, error) {
	return h.Transform(key, TransformTypeOf(initial, false))
}

// SetTransform sets the pose of an element. With affectChildren,
// dependent elements move along; otherwise they keep their global
// transforms. Local transforms of controls are clamped to their limits.
func (h *Hierarchy) SetTransform(key ElementKey, tt TransformType, v math32.Transform, affectChildren bool) error {
	e, err := h.Transformer(key)
	if err != nil {
		return err
	}
	h.SetTransformOf(e, tt, v, affectChildren)
	return nil
}

// SetLocalTransform sets the local pose of the given phase.
func (h *Hierarchy) SetLocalTransform(key ElementKey, v math32.Transform, initial, affectChildren bool) error {
	return h.SetTransform(key, TransformTypeOf(initial, true), v, affectChildren)
}

// SetGlobalTransform sets the global pose of the given phase.
func (h *Hierarchy) SetGlobalTransform(key ElementKey, v math32.Transform, initial, affectChildren bool) error {
	return h.SetTransform(key, TransformTypeOf(initial, false), v, affectChildren)
}

// SetRotationOrder sets the Euler order of a control. The limits of
// both phases are applied again in the new order and the preferred
// angles are recomputed from the local rotations.
func (h *Hierarchy) SetRotationOrder(key ElementKey, order math32.EulerOrder) error {
	c, err := FindAs[*Control](h, key)
	if err != nil {
		return err
	}
	c.PreferredEulerAngles.RotationOrder = order
	for _, initial := range []bool{true, false} {
		tt := TransformTypeOf(initial, true)
		h.SetTransformOf(c, tt, h.transformOf(c, tt), true)
	}
	return nil
}

// TransformOf returns the pose of e, recomputing it if dirty.
func (h *Hierarchy) TransformOf(e Transformer, tt TransformType) math32.Transform {
	return h.transformOf(e, tt)
}

// SetTransformOf is [Hierarchy.SetTransform] for an element.
func (h *Hierarchy) SetTransformOf(e Transformer, tt TransformType, v math32.Transform, affectChildren bool) {
	initial := tt.IsInitial()
	c, isControl := e.(*Control)
	if isControl && tt.IsLocal() {
		v = c.Settings.ApplyLimits(v, c.PreferredEulerAngles.RotationOrder)
	}
	h.PropagateDirtyFlags(e, initial, affectChildren)
	t := e.AsTransform()
	t.Pose.Set(tt, v)
	t.Pose.MarkClean(tt)
	if tt.IsLocal() {
		h.markGlobalDirty(e, initial)
	} else {
		t.Pose.MarkDirty(tt.MakeLocal())
		if isControl && !c.Shape.IsDirty(tt) {
			c.Shape.MarkDirty(tt)
		}
	}
	if isControl {
		c.PreferredEulerAngles.SetFromRotation(h.transformOf(e, tt.MakeLocal()).Rotation, initial)
	}
}

// transformOf returns the pose of e, recomputing it if dirty.
func (h *Hierarchy) transformOf(e Transformer, tt TransformType) math32.Transform {
	t := e.AsTransform()
	if !t.Pose.IsDirty(tt) {
		return t.Pose.Get(tt)
	}
	parent := h.parentGlobal(e, tt.IsInitial())
	var v math32.Transform
	if tt.IsLocal() {
		v = t.Pose.Get(tt.MakeGlobal()).Relative(parent)
	} else {
		v = t.Pose.Get(tt.MakeLocal()).Mul(parent)
	}
	t.Pose.Set(tt, v)
	t.Pose.MarkClean(tt)
	return v
}

// parentGlobal returns the global transform that the local pose of e
// is relative to.
func (h *Hierarchy) parentGlobal(e Transformer, initial bool) math32.Transform {
	switch p := e.(type) {
	case *Control:
		return h.offsetGlobal(p, initial)
	case *Reference:
		if p.WorldTransform != nil {
			return p.WorldTransform(initial)
		}
	case MultiParented:
		return h.parentBlend(p.AsMultiParent(), initial)
	}
	if sp, ok := e.(SingleParented); ok {
		s := sp.AsSingleParent()
		if !s.HasParent() {
			return math32.Identity()
		}
		return h.transformOf(h.elements[s.parentIndex].(Transformer), TransformTypeOf(initial, false))
	}
	return math32.Identity()
}

// parentBlend returns the weighted blend of the parents of m,
// refreshing dirty constraint caches.
func (h *Hierarchy) parentBlend(m *MultiParentElement, initial bool) math32.Transform {
	n := len(m.ParentConstraints)
	if n == 0 {
		return math32.Identity()
	}
	trs := make([]math32.Transform, n)
	ws := make([]ElementWeight, n)
	for i := range m.ParentConstraints {
		pc := &m.ParentConstraints[i]
		cache := pc.Cache.At(initial)
		if cache.IsDirty {
			cache.Transform = h.transformOf(h.elements[pc.parentIndex].(Transformer), TransformTypeOf(initial, false))
			cache.IsDirty = false
		}
		trs[i] = cache.Transform
		ws[i] = pc.WeightFor(initial)
	}
	return BlendTransforms(trs, ws)
}

// offsetGlobal returns the global offset transform of a control.
func (h *Hierarchy) offsetGlobal(c *Control, initial bool) math32.Transform {
	tt := TransformTypeOf(initial, false)
	if !c.Offset.IsDirty(tt) {
		return c.Offset.Get(tt)
	}
	v := c.Offset.Get(tt.MakeLocal()).Mul(h.parentBlend(&c.MultiParentElement, initial))
	c.Offset.Set(tt, v)
	c.Offset.MarkClean(tt)
	return v
}

// shapeGlobal returns the global shape transform of a control.
func (h *Hierarchy) shapeGlobal(c *Control, initial bool) math32.Transform {
	tt := TransformTypeOf(initial, false)
	if !c.Shape.IsDirty(tt) {
		return c.Shape.Get(tt)
	}
	v := c.Shape.Get(tt.MakeLocal()).Mul(h.transformOf(c, tt))
	c.Shape.Set(tt, v)
	c.Shape.MarkClean(tt)
	return v
}

// markGlobalDirty flags the global pose of e for recomputation.
// The local pose must be clean.
func (h *Hierarchy) markGlobalDirty(e Transformer, initial bool) {
	tt := TransformTypeOf(initial, false)
	t := e.AsTransform()
	if !t.Pose.IsDirty(tt) {
		t.Pose.MarkDirty(tt)
	}
	if c, ok := e.(*Control); ok {
		if !c.Offset.IsDirty(tt) {
			c.Offset.MarkDirty(tt)
		}
		if !c.Shape.IsDirty(tt) {
			c.Shape.MarkDirty(tt)
		}
	}
	markCachesDirty(e, initial)
}

// markLocalDirty flags the local pose of e for recomputation, for
// when its parents move and it keeps its global pose. The global
// pose must be clean.
func (h *Hierarchy) markLocalDirty(e Transformer, initial bool) {
	tt := TransformTypeOf(initial, true)
	t := e.AsTransform()
	if c, ok := e.(*Control); ok {
		gtt := tt.MakeGlobal()
		if !c.Offset.IsDirty(gtt) {
			c.Offset.MarkDirty(gtt)
		}
	}
	if !t.Pose.IsDirty(tt) {
		t.Pose.MarkDirty(tt)
	}
	markCachesDirty(e, initial)
}

func markCachesDirty(e Transformer, initial bool) {
	m, ok := e.(MultiParented)
	if !ok {
		return
	}
	mp := m.AsMultiParent()
	for i := range mp.ParentConstraints {
		mp.ParentConstraints[i].Cache.At(initial).IsDirty = true
	}
}

// updateElementsToDirty rebuilds the dependent lists of all transform
// elements if the topology changed since the last build.
func (h *Hierarchy) updateElementsToDirty() {
	if h.dirtyListsVersion == h.topologyVersion {
		return
	}
	children := h.childIndexes()
	for i, e := range h.elements {
		t, ok := e.(Transformer)
		if !ok {
			continue
		}
		te := t.AsTransform()
		te.ElementsToDirty = te.ElementsToDirty[:0]
		dist := map[int]int{i: 0}
		queue := []int{i}
		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]
			for _, c := range children[p] {
				if _, seen := dist[c]; seen {
					continue
				}
				dist[c] = dist[p] + 1
				te.AddElementToDirty(c, dist[c])
				queue = append(queue, c)
			}
		}
	}
	h.dirtyListsVersion = h.topologyVersion
}

// ElementsToDirty returns the dependents of an element, ordered by
// hierarchy distance.
func (h *Hierarchy) ElementsToDirty(key ElementKey) []ElementToDirty {
	e, err := h.Transformer(key)
	if err != nil {
		return nil
	}
	h.updateElementsToDirty()
	return e.AsTransform().ElementsToDirty
}

// PropagateDirtyFlags prepares the dependents of e for a change of
// the global transform of e in the given phase. With affectChildren,
// dependents keep their local transforms and their global transforms
// are flagged dirty, nearest first. Otherwise direct dependents keep
// their global transforms and their local transforms are flagged.
// It does nothing if [Settings.EnableDirtyPropagation] is off.
func (h *Hierarchy) PropagateDirtyFlags(e Transformer, initial, affectChildren bool) {
	if !h.Settings.EnableDirtyPropagation {
		return
	}
	h.updateElementsToDirty()
	deps := e.AsTransform().ElementsToDirty
	if affectChildren {
		ltt := TransformTypeOf(initial, true)
		// all locals are computed against the old state before any flag changes
		for _, d := range deps {
			h.transformOf(h.elements[d.Index].(Transformer), ltt)
		}
		for _, d := range deps {
			h.markGlobalDirty(h.elements[d.Index].(Transformer), initial)
		}
		return
	}
	gtt := TransformTypeOf(initial, false)
	for _, d := range deps {
		if d.HierarchyDistance > 1 {
			break
		}
		h.transformOf(h.elements[d.Index].(Transformer), gtt)
	}
	for _, d := range deps {
		if d.HierarchyDistance > 1 {
			break
		}
		h.markLocalDirty(h.elements[d.Index].(Transformer), initial)
	}
}

// ControlOffset returns the offset transform of a control.
func (h *Hierarchy) ControlOffset(key ElementKey, tt TransformType) (math32.Transform, error) {
	c, err := FindAs[*Control](h, key)
	if err != nil {
		return math32.Transform{}, err
	}
	if tt.IsGlobal() {
		return h.offsetGlobal(c, tt.IsInitial()), nil
	}
	return c.Offset.Get(tt), nil
}

// SetControlOffset sets the offset transform of a control. The control
// keeps its local pose and moves with the offset; with affectChildren
// its dependents move along.
func (h *Hierarchy) SetControlOffset(key ElementKey, tt TransformType, v math32.Transform, affectChildren bool) error {
	c, err := FindAs[*Control](h, key)
	if err != nil {
		return err
	}
	initial := tt.IsInitial()
	h.PropagateDirtyFlags(c, initial, affectChildren)
	ltt := TransformTypeOf(initial, true)
	h.transformOf(c, ltt)
	if tt.IsGlobal() {
		v = v.Relative(h.parentBlend(&c.MultiParentElement, initial))
	}
	c.Offset.Set(ltt, v)
	c.Offset.MarkClean(ltt)
	h.markGlobalDirty(c, initial)
	return nil
}

// ControlShape returns the shape transform of a control.
func (h *Hierarchy) ControlShape(key ElementKey, tt TransformType) (math32.Transform, error) {
	c, err := FindAs[*Control](h, key)
	if err != nil {
		return math32.Transform{}, err
	}
	if tt.IsGlobal() {
		return h.shapeGlobal(c, tt.IsInitial()), nil
	}
	return c.Shape.Get(tt), nil
}

// SetControlShape sets the shape transform of a control.
func (h *Hierarchy) SetControlShape(key ElementKey, tt TransformType, v math32.Transform) error {
	c, err := FindAs[*Control](h, key)
	if err != nil {
		return err
	}
	ltt := tt.MakeLocal()
	if tt.IsGlobal() {
		v = v.Relative(h.transformOf(c, tt))
	}
	c.Shape.Set(ltt, v)
	c.Shape.MarkClean(ltt)
	if gtt := ltt.MakeGlobal(); !c.Shape.IsDirty(gtt) {
		c.Shape.MarkDirty(gtt)
	}
	return nil
}

// ParentWeights returns the weights of all parents of a multi parent element.
func (h *Hierarchy) ParentWeights(key ElementKey, initial bool) ([]ElementWeight, error) {
	m, err := FindAs[MultiParented](h, key)
	if err != nil {
		return nil, err
	}
	mp := m.AsMultiParent()
	res := make([]ElementWeight, len(mp.ParentConstraints))
	for i := range mp.ParentConstraints {
		res[i] = mp.ParentConstraints[i].WeightFor(initial)
	}
	return res, nil
}

// SetParentWeight sets the weight of one parent. With affectChildren
// the element moves to the new blend; otherwise it keeps its global
// transform and its local transform changes.
func (h *Hierarchy) SetParentWeight(child, parent ElementKey, w ElementWeight, initial, affectChildren bool) error {
	m, err := FindAs[MultiParented](h, child)
	if err != nil {
		return err
	}
	pc := m.AsMultiParent().Constraint(parent)
	if pc == nil {
		return errors.Errorf("rig: %v is not a parent of %v: %w", parent, child, ErrElementNotFound)
	}
	if affectChildren {
		h.PropagateDirtyFlags(m, initial, true)
		h.transformOf(m, TransformTypeOf(initial, true))
	} else {
		h.transformOf(m, TransformTypeOf(initial, false))
		if c, ok := m.(*Control); ok {
			h.offsetGlobal(c, initial)
		}
	}
	if initial {
		pc.InitialWeight = w
	} else {
		pc.Weight = w
	}
	if affectChildren {
		h.markGlobalDirty(m, initial)
	} else {
		h.markLocalDirty(m, initial)
	}
	return nil
}

// ResetPoseToInitial copies the initial pose onto the current pose of
// all elements of the given types, including control offsets, shapes,
// preferred angles and parent weights.
func (h *Hierarchy) ResetPoseToInitial(mask ElementType) {
	for _, e := range h.elements {
		if t, ok := e.(Transformer); ok && e.AsBase().key.IsTypeOf(mask) {
			h.PropagateDirtyFlags(t, false, true)
		}
	}
	for _, e := range h.elements {
		if !e.AsBase().key.IsTypeOf(mask) {
			continue
		}
		for _, ts := range stacks(e) {
			for _, local := range []bool{true, false} {
				itt := TransformTypeOf(true, local)
				ctt := itt.MakeCurrent()
				ts.Set(ctt, ts.Get(itt))
				ts.Dirty.Cell(ctt).Set(ts.IsDirty(itt))
			}
		}
		if m, ok := e.(MultiParented); ok {
			mp := m.AsMultiParent()
			for i := range mp.ParentConstraints {
				mp.ParentConstraints[i].Weight = mp.ParentConstraints[i].InitialWeight
			}
			markCachesDirty(m, false)
		}
		if c, ok := e.(*Control); ok {
			c.PreferredEulerAngles.ResetCurrent()
		}
	}
}

// ComputeAllTransforms recomputes every dirty transform.
func (h *Hierarchy) ComputeAllTransforms() {
	for _, e := range h.elements {
		t, ok := e.(Transformer)
		if !ok {
			continue
		}
		for tt := range TransformType(NumTransformTypes) {
			h.transformOf(t, tt)
		}
		if c, ok := e.(*Control); ok {
			for _, initial := range []bool{false, true} {
				h.offsetGlobal(c, initial)
				h.shapeGlobal(c, initial)
			}
		}
	}
}

// CurveValue returns the value of a curve and whether it was set.
func (h *Hierarchy) CurveValue(key ElementKey) (float32, bool, error) {
	c, err := FindAs[*Curve](h, key)
	if err != nil {
		return 0, false, err
	}
	return c.Value(), c.IsValueSet, nil
}

// SetCurveValue sets the value of a curve.
func (h *Hierarchy) SetCurveValue(key ElementKey, v float32) error {
	c, err := FindAs[*Curve](h, key)
	if err != nil {
		return err
	}
	c.SetValue(v)
	return nil
}

// UnsetCurveValue resets a curve to zero and marks it as not set.
func (h *Hierarchy) UnsetCurveValue(key ElementKey) error {
	c, err := FindAs[*Curve](h, key)
	if err != nil {
		return err
	}
	c.UnsetValue()
	return nil
}

// ResetCurveValues unsets all curves.
func (h *Hierarchy) ResetCurveValues() {
	for _, e := range h.elements {
		if c, ok := e.(*Curve); ok {
			c.UnsetValue()
		}
	}
}

// CopyPose copies the pose of the selected phases from elements of
// other onto the elements of h with the same keys. Elements missing
// in either hierarchy are skipped and keep their local transforms.
// Weights are matched by parent key.
func (h *Hierarchy) CopyPose(other *Hierarchy, current, initial, weights bool) error {
	var phases []bool
	if current {
		phases = append(phases, false)
	}
	if initial {
		phases = append(phases, true)
	}
	for _, e := range h.elements {
		if t, ok := e.(Transformer); ok {
			for _, ph := range phases {
				h.transformOf(t, TransformTypeOf(ph, true))
			}
		}
	}
	var errs []error
	for _, e := range h.elements {
		src := other.Find(e.AsBase().key)
		if src == nil {
			continue
		}
		if t, ok := src.(Transformer); ok {
			// flags are copied too, so the source must be resolved
			for tt := range TransformType(NumTransformTypes) {
				other.transformOf(t, tt)
			}
		}
		errs = append(errs, CopyPose(e, src, current, initial, weights))
	}
	for _, e := range h.elements {
		if t, ok := e.(Transformer); ok {
			for _, ph := range phases {
				h.markGlobalDirty(t, ph)
			}
		}
	}
	return errors.Join(errs...)
}
