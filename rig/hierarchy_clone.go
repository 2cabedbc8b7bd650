// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import (
	"slices"

	"cogentcore.org/rig/base/errors"
	"cogentcore.org/rig/base/metadata"
)

// newElementOf returns a new, empty element of the same type as e.
func newElementOf(e Element) Element {
	switch e.(type) {
	case *Bone:
		return &Bone{}
	case *Null:
		return &Null{}
	case *Control:
		return &Control{}
	case *Curve:
		return &Curve{}
	case *Reference:
		return &Reference{}
	case *Connector:
		return &Connector{}
	case *Socket:
		return &Socket{}
	}
	return nil
}

// Clone returns a deep copy of the hierarchy with its own storage.
// Selection, components, metadata and both pose phases are copied.
func (h *Hierarchy) Clone() *Hierarchy {
	c := NewHierarchy()
	c.Settings = h.Settings
	c.instruction = h.instruction
	c.Metadata = h.Metadata.Clone()
	for _, e := range h.elements {
		// resolve so that copied flags stand on their own
		if t, ok := e.(Transformer); ok {
			for tt := range TransformType(NumTransformTypes) {
				h.transformOf(t, tt)
			}
		}
		ne := newElementOf(e)
		nb := ne.AsBase()
		nb.init(e.AsBase().key, IndexNone)
		errors.Log(CopyFrom(ne, e))
		switch p := ne.(type) {
		case SingleParented:
			sp := e.(SingleParented).AsSingleParent()
			p.AsSingleParent().setParent(sp.parent, IndexNone)
		case MultiParented:
			mp := p.AsMultiParent()
			mp.ParentConstraints = slices.Clone(e.(MultiParented).AsMultiParent().ParentConstraints)
			mp.updateLookup()
		}
		c.elements = append(c.elements, ne)
		c.allocateStorage(ne)
		errors.Log(CopyPose(ne, e, true, true, true))
	}
	for _, comp := range h.components {
		nc := *comp
		nc.Content = metadata.Data{}
		nc.Content.Copy(comp.Content)
		c.components = append(c.components, &nc)
	}
	c.topologyChanged()
	return c
}
