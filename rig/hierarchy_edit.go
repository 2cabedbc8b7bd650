// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import (
	"log/slog"
	"slices"

	"cogentcore.org/rig/base/errors"
	"cogentcore.org/rig/math32"
)

// PoseSpec is the initial pose of a new element: a transform
// in local or global space, used for both the initial and the
// current phase.
type PoseSpec struct {
	Transform math32.Transform
	Global    bool
}

// LocalPose returns a [PoseSpec] in local space.
func LocalPose(tr math32.Transform) PoseSpec {
	return PoseSpec{Transform: tr}
}

// GlobalPose returns a [PoseSpec] in global space.
func GlobalPose(tr math32.Transform) PoseSpec {
	return PoseSpec{Transform: tr, Global: true}
}

// AddBone adds a bone under parent, which may be empty for a root bone.
func (h *Hierarchy) AddBone(name string, parent ElementKey, pose PoseSpec, boneType BoneType) (*Bone, error) {
	b := &Bone{BoneType: boneType}
	b.init(BoneKey(name), h.instruction)
	b.setParent(parent, IndexNone)
	return b, h.insertPosed(b, pose)
}

// AddNull adds a null under parent, which may be empty.
func (h *Hierarchy) AddNull(name string, parent ElementKey, pose PoseSpec) (*Null, error) {
	n := &Null{}
	n.init(NullKey(name), h.instruction)
	if parent.IsValid() {
		n.addConstraint(ParentConstraint{Parent: parent, parentIndex: IndexNone, Weight: FullWeight(), InitialWeight: FullWeight()})
	}
	return n, h.insertPosed(n, pose)
}

// AddControl adds a control under parent, which may be empty.
// The offset is in local space; the pose is relative to the offset.
func (h *Hierarchy) AddControl(name string, parent ElementKey, settings ControlSettings, offset math32.Transform, pose, shape math32.Transform) (*Control, error) {
	c := &Control{Settings: settings}
	c.init(ControlKey(name), h.instruction)
	if parent.IsValid() {
		c.addConstraint(ParentConstraint{Parent: parent, parentIndex: IndexNone, Weight: FullWeight(), InitialWeight: FullWeight()})
	}
	if err := h.insert(c); err != nil {
		return nil, err
	}
	pose = settings.ApplyLimits(pose, c.PreferredEulerAngles.RotationOrder)
	for _, initial := range []bool{false, true} {
		h.setStack(&c.Offset, offset, initial)
		h.setStack(&c.Pose, pose, initial)
		h.setStack(&c.Shape, shape, initial)
		c.PreferredEulerAngles.SetFromRotation(pose.Rotation, initial)
	}
	return c, nil
}

// AddCurve adds a curve with the given initial value, which is
// not marked as set.
func (h *Hierarchy) AddCurve(name string, value float32) (*Curve, error) {
	c := &Curve{}
	c.init(CurveKey(name), h.instruction)
	if err := h.insert(c); err != nil {
		return nil, err
	}
	c.value.Set(value)
	return c, nil
}

// AddReference adds a reference under parent, which may be empty.
// world may be nil.
func (h *Hierarchy) AddReference(name string, parent ElementKey, pose PoseSpec, world func(initial bool) math32.Transform) (*Reference, error) {
	r := &Reference{WorldTransform: world}
	r.init(Key(ElementTypeReference, name), h.instruction)
	r.setParent(parent, IndexNone)
	return r, h.insertPosed(r, pose)
}

// AddConnector adds a connector.
func (h *Hierarchy) AddConnector(name string, settings ConnectorSettings) (*Connector, error) {
	c := &Connector{Settings: settings}
	c.init(ConnectorKey(name), h.instruction)
	return c, h.insert(c)
}

// Socket metadata names.
const (
	SocketColorMetadata         = "SocketColor"
	SocketDescriptionMetadata   = "SocketDescription"
	SocketDesiredParentMetadata = "SocketDesiredParent"
)

// AddSocket adds a socket under parent with the given display color
// and description, which are stored as metadata.
func (h *Hierarchy) AddSocket(name string, parent ElementKey, pose PoseSpec, color, description string) (*Socket, error) {
	s := &Socket{}
	s.init(SocketKey(name), h.instruction)
	s.setParent(parent, IndexNone)
	if err := h.insertPosed(s, pose); err != nil {
		return nil, err
	}
	if color != "" {
		h.Metadata.Set(s.key, SocketColorMetadata, color)
	}
	if description != "" {
		h.Metadata.Set(s.key, SocketDescriptionMetadata, description)
	}
	return s, nil
}

// insertPosed inserts a transform element and sets its pose.
func (h *Hierarchy) insertPosed(e Transformer, pose PoseSpec) error {
	if err := h.insert(e); err != nil {
		return err
	}
	tr := pose.Transform
	if tr.IsZero() {
		tr = math32.Identity()
	}
	for _, initial := range []bool{false, true} {
		t := e.AsTransform()
		if pose.Global {
			tt := TransformTypeOf(initial, false)
			t.Pose.Set(tt, tr)
			t.Pose.MarkDirty(tt.MakeLocal())
		} else {
			h.setStack(&t.Pose, tr, initial)
		}
	}
	return nil
}

// setStack sets the local value of a new stack and marks its global dirty.
func (h *Hierarchy) setStack(ts *TransformStorage, tr math32.Transform, initial bool) {
	tt := TransformTypeOf(initial, true)
	ts.Set(tt, tr)
	ts.MarkDirty(tt.MakeGlobal())
}

// insert validates and appends a new element and allocates its storage.
func (h *Hierarchy) insert(e Element) error {
	b := e.AsBase()
	if !b.key.IsValid() {
		return errors.Errorf("rig: add %v: %w", b.key, ErrInvalidKey)
	}
	if h.Contains(b.key) {
		return errors.Errorf("rig: add %v: %w", b.key, ErrDuplicateKey)
	}
	for _, pk := range parentKeys(e) {
		if err := h.checkParent(pk); err != nil {
			return errors.Errorf("rig: add %v: %w", b.key, err)
		}
	}
	h.insertUnchecked(e)
	return nil
}

func (h *Hierarchy) checkParent(pk ElementKey) error {
	p := h.Find(pk)
	if p == nil {
		return errors.Errorf("parent %v: %w", pk, ErrElementNotFound)
	}
	if _, ok := p.(Transformer); !ok {
		return errors.Errorf("parent %v: %w", pk, ErrNotTransform)
	}
	return nil
}

func (h *Hierarchy) insertUnchecked(e Element) {
	b := e.AsBase()
	b.index = len(h.elements)
	h.elements = append(h.elements, e)
	h.lookup[b.key] = b.index
	h.allocateStorage(e)
	h.topologyChanged()
}

// topologyChanged bumps the topology version and refreshes all
// indexes derived from keys.
func (h *Hierarchy) topologyChanged() {
	h.topologyVersion++
	h.reindex()
}

// reindex recomputes element, sub and parent indexes from the
// element order and keys.
func (h *Hierarchy) reindex() {
	clear(h.lookup)
	subs := map[ElementType]int{}
	for i, e := range h.elements {
		b := e.AsBase()
		b.index = i
		b.subIndex = subs[b.key.Type]
		subs[b.key.Type]++
		h.lookup[b.key] = i
	}
	for _, e := range h.elements {
		switch p := e.(type) {
		case SingleParented:
			sp := p.AsSingleParent()
			sp.parentIndex = h.IndexOf(sp.parent)
		case MultiParented:
			mp := p.AsMultiParent()
			for i := range mp.ParentConstraints {
				pc := &mp.ParentConstraints[i]
				pc.parentIndex = h.IndexOf(pc.Parent)
			}
			mp.updateLookup()
		}
	}
	h.reindexComponents()
}

func (h *Hierarchy) reindexComponents() {
	clear(h.componentLookup)
	for _, e := range h.elements {
		e.AsBase().components = e.AsBase().components[:0]
	}
	for i, c := range h.components {
		c.index = i
		h.componentLookup[c.key] = i
		c.elementIndex = h.IndexOf(c.key.Element)
		if c.elementIndex != IndexNone {
			b := h.elements[c.elementIndex].AsBase()
			b.components = append(b.components, i)
		}
	}
}

// Remove removes an element. Its children are moved to its first
// parent, keeping their global transforms, and weighted parent
// constraints on it are dropped. Its components and metadata are
// removed and its storage is released.
func (h *Hierarchy) Remove(key ElementKey) error {
	idx := h.IndexOf(key)
	if idx == IndexNone {
		return errors.Errorf("rig: remove %v: %w", key, ErrElementNotFound)
	}
	e := h.elements[idx]
	newParent := ElementKey{}
	if ps := parentKeys(e); len(ps) > 0 {
		newParent = ps[0]
	}
	for _, ci := range slices.Clone(h.childIndexes()[idx]) {
		child := h.elements[ci]
		h.maintainGlobal(child.(Transformer), func() {
			switch c := child.(type) {
			case SingleParented:
				c.AsSingleParent().setParent(newParent, IndexNone)
			case MultiParented:
				mp := c.AsMultiParent()
				mp.removeConstraint(key)
				if mp.NumParents() == 0 && newParent.IsValid() {
					mp.addConstraint(ParentConstraint{Parent: newParent, parentIndex: IndexNone, Weight: FullWeight(), InitialWeight: FullWeight()})
				}
			}
		})
	}
	h.components = slices.DeleteFunc(h.components, func(c *Component) bool { return c.key.Element == key })
	h.Metadata.RemoveAll(key)
	h.deallocateStorage(e)
	h.elements = slices.Delete(h.elements, idx, idx+1)
	delete(h.lookup, key)
	e.AsBase().index = IndexNone
	h.topologyChanged()
	h.autoShrink()
	return nil
}

// Rename renames an element, updating all references to its key.
func (h *Hierarchy) Rename(key ElementKey, name string) (ElementKey, error) {
	e := h.Find(key)
	if e == nil {
		return ElementKey{}, errors.Errorf("rig: rename %v: %w", key, ErrElementNotFound)
	}
	nk := Key(key.Type, name)
	if !nk.IsValid() {
		return ElementKey{}, errors.Errorf("rig: rename %v to %q: %w", key, name, ErrInvalidKey)
	}
	if nk == key {
		return nk, nil
	}
	if h.Contains(nk) {
		return ElementKey{}, errors.Errorf("rig: rename %v: %v: %w", key, nk, ErrDuplicateKey)
	}
	e.AsBase().key = nk
	for _, o := range h.elements {
		switch p := o.(type) {
		case SingleParented:
			if sp := p.AsSingleParent(); sp.parent == key {
				sp.parent = nk
			}
		case MultiParented:
			mp := p.AsMultiParent()
			for i := range mp.ParentConstraints {
				if mp.ParentConstraints[i].Parent == key {
					mp.ParentConstraints[i].Parent = nk
				}
			}
		}
	}
	for _, c := range h.components {
		if c.key.Element == key {
			c.key.Element = nk
		}
	}
	h.Metadata.Rename(key, nk)
	h.topologyChanged()
	return nk, nil
}

// SetParent makes parent the only parent of child. An empty parent
// makes child a root element. With maintainGlobal, the global
// transform of child is kept and its local transform changes;
// otherwise the local transform is kept and child moves with its
// new parent.
func (h *Hierarchy) SetParent(child, parent ElementKey, maintainGlobal bool) error {
	c, err := h.Transformer(child)
	if err != nil {
		return err
	}
	if parent.IsValid() {
		if err := h.checkNewParent(child, parent); err != nil {
			return err
		}
	}
	edit := func() {
		switch p := c.(type) {
		case SingleParented:
			p.AsSingleParent().setParent(parent, IndexNone)
		case MultiParented:
			mp := p.AsMultiParent()
			mp.ParentConstraints = nil
			if parent.IsValid() {
				mp.addConstraint(ParentConstraint{Parent: parent, parentIndex: IndexNone, Weight: FullWeight(), InitialWeight: FullWeight()})
			} else {
				mp.updateLookup()
			}
		}
	}
	if maintainGlobal {
		h.maintainGlobal(c, edit)
	} else {
		h.maintainLocal(c, edit)
	}
	return nil
}

// AddParent adds a weighted parent to a multi parent element.
func (h *Hierarchy) AddParent(child, parent ElementKey, weight ElementWeight, maintainGlobal bool, label string) error {
	c, err := FindAs[MultiParented](h, child)
	if err != nil {
		return err
	}
	if err := h.checkNewParent(child, parent); err != nil {
		return err
	}
	mp := c.AsMultiParent()
	if mp.Constraint(parent) != nil {
		return errors.Errorf("rig: %v already has parent %v: %w", child, parent, ErrDuplicateKey)
	}
	edit := func() {
		mp.addConstraint(ParentConstraint{Parent: parent, parentIndex: IndexNone, Weight: weight, InitialWeight: weight, DisplayLabel: label})
	}
	if maintainGlobal {
		h.maintainGlobal(c, edit)
	} else {
		h.maintainLocal(c, edit)
	}
	return nil
}

// RemoveParent removes one parent of child.
func (h *Hierarchy) RemoveParent(child, parent ElementKey, maintainGlobal bool) error {
	c, err := h.Transformer(child)
	if err != nil {
		return err
	}
	if !slices.Contains(parentKeys(c), parent) {
		return errors.Errorf("rig: %v is not a parent of %v: %w", parent, child, ErrElementNotFound)
	}
	edit := func() {
		switch p := c.(type) {
		case SingleParented:
			p.AsSingleParent().setParent(ElementKey{}, IndexNone)
		case MultiParented:
			p.AsMultiParent().removeConstraint(parent)
		}
	}
	if maintainGlobal {
		h.maintainGlobal(c, edit)
	} else {
		h.maintainLocal(c, edit)
	}
	return nil
}

func (h *Hierarchy) checkNewParent(child, parent ElementKey) error {
	if err := h.checkParent(parent); err != nil {
		return errors.Errorf("rig: parent %v to %v: %w", child, parent, err)
	}
	if parent == child || h.IsParentedTo(parent, child) {
		return errors.Errorf("rig: parent %v to %v: %w", child, parent, ErrCycle)
	}
	return nil
}

// maintainGlobal runs a parent edit on e keeping its global transforms.
func (h *Hierarchy) maintainGlobal(e Transformer, edit func()) {
	var offsets [2]math32.Transform
	for i, initial := range []bool{false, true} {
		h.transformOf(e, TransformTypeOf(initial, false))
		if c, ok := e.(*Control); ok {
			offsets[i] = h.offsetGlobal(c, initial)
		}
	}
	edit()
	h.topologyChanged()
	for i, initial := range []bool{false, true} {
		if c, ok := e.(*Control); ok {
			// the pose stays relative to an unchanged offset global
			ltt := TransformTypeOf(initial, true)
			c.Offset.Set(ltt, offsets[i].Relative(h.parentBlend(&c.MultiParentElement, initial)))
			c.Offset.MarkClean(ltt)
			c.Offset.MarkClean(ltt.MakeGlobal())
			c.Offset.Set(ltt.MakeGlobal(), offsets[i])
			continue
		}
		h.markLocalDirty(e, initial)
	}
}

// maintainLocal runs a parent edit on e keeping its local transforms.
func (h *Hierarchy) maintainLocal(e Transformer, edit func()) {
	for _, initial := range []bool{false, true} {
		h.PropagateDirtyFlags(e, initial, true)
		h.transformOf(e, TransformTypeOf(initial, true))
	}
	edit()
	h.topologyChanged()
	for _, initial := range []bool{false, true} {
		h.markGlobalDirty(e, initial)
	}
}

// AddComponent adds a component of the given type to an element, or
// a top level component for an empty element key.
func (h *Hierarchy) AddComponent(element ElementKey, name, typ string, singleton bool) (*Component, error) {
	key := ComponentKey{Element: element, Name: name}
	if !key.IsValid() {
		return nil, errors.Errorf("rig: add %v: %w", key, ErrInvalidKey)
	}
	if !key.IsTopLevel() && !h.Contains(element) {
		return nil, errors.Errorf("rig: add %v: %w", key, ErrElementNotFound)
	}
	if h.ComponentIndexOf(key) != IndexNone {
		return nil, errors.Errorf("rig: add %v: %w", key, ErrDuplicateKey)
	}
	for _, c := range h.components {
		if c.key.Element == element && c.Type == typ && (c.Singleton || singleton) {
			return nil, errors.Errorf("rig: add %v: %v is a singleton of type %q: %w", key, c.key, typ, ErrDuplicateKey)
		}
	}
	c := &Component{key: key, Type: typ, Singleton: singleton, createdAtInstruction: h.instruction}
	h.components = append(h.components, c)
	h.topologyChanged()
	return c, nil
}

// RemoveComponent removes a component.
func (h *Hierarchy) RemoveComponent(key ComponentKey) error {
	i := h.ComponentIndexOf(key)
	if i == IndexNone {
		return errors.Errorf("rig: remove %v: %w", key, ErrComponentNotFound)
	}
	h.components = slices.Delete(h.components, i, i+1)
	h.topologyChanged()
	return nil
}

// autoShrink compacts the storage when enough slots are free.
func (h *Hierarchy) autoShrink() {
	s := &h.Settings
	n := h.transforms.Len()
	if s.AutoShrinkRatio <= 0 || n < s.AutoShrinkMinimum || n == 0 {
		return
	}
	if float32(h.transforms.NumFree())/float32(n) > s.AutoShrinkRatio {
		freed := h.ShrinkStorage()
		slog.Debug("rig: compacted storage", "freed", freed)
	}
}
