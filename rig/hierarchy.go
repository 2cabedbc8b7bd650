// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rig provides the element hierarchy of an animation rig:
// typed elements (bones, nulls, controls, curves, references,
// connectors and sockets) with lazily recomputed poses, references
// to elements that revalidate themselves cheaply after structural
// edits, and key redirection for modular rigs.
//
// A [Hierarchy] is not safe for concurrent use. Structural edits
// must be serialized by the owner; read only lookups through
// [CachedElement] may run concurrently only while no edit happens.
package rig

import (
	"slices"

	"cogentcore.org/rig/base/errors"
	"cogentcore.org/rig/base/metadata"
	"cogentcore.org/rig/math32"
	"cogentcore.org/rig/storage"
)

// Hierarchy owns a table of elements, the arenas holding their pose
// and curve data, their components and their metadata. Every
// structural edit bumps [Hierarchy.TopologyVersion].
type Hierarchy struct {
	Settings Settings

	// Metadata holds named values and tags per element.
	Metadata metadata.Store[ElementKey]

	elements []Element

	lookup map[ElementKey]int

	components []*Component

	componentLookup map[ComponentKey]int

	topologyVersion int

	// instruction stamps new elements and components, see
	// [Hierarchy.SetInstructionIndex].
	instruction int

	transforms storage.Reusable[math32.Transform]
	dirty      storage.Reusable[bool]
	curves     storage.Reusable[float32]

	// linked are the arena generations the cells were last linked at.
	linked [3]uint64

	children HierarchyCache[[][]int]

	// dirtyListsVersion is the topology version of ElementsToDirty.
	dirtyListsVersion int
}

// NewHierarchy returns an empty hierarchy with default settings.
func NewHierarchy() *Hierarchy {
	h := &Hierarchy{
		Settings:          DefaultSettings(),
		lookup:            map[ElementKey]int{},
		componentLookup:   map[ComponentKey]int{},
		instruction:       IndexNone,
		dirtyListsVersion: IndexNone,
	}
	return h
}

// TopologyVersion returns a counter bumped on every structural edit.
func (h *Hierarchy) TopologyVersion() int {
	return h.topologyVersion
}

// Len returns the number of elements.
func (h *Hierarchy) Len() int {
	return len(h.elements)
}

// Get returns the element at index, or nil.
func (h *Hierarchy) Get(index int) Element {
	if index < 0 || index >= len(h.elements) {
		return nil
	}
	return h.elements[index]
}

// IndexOf returns the index of the element with the key, or [IndexNone].
func (h *Hierarchy) IndexOf(key ElementKey) int {
	if i, ok := h.lookup[key]; ok {
		return i
	}
	return IndexNone
}

// Find returns the element with the key, or nil.
func (h *Hierarchy) Find(key ElementKey) Element {
	return h.Get(h.IndexOf(key))
}

// Contains returns whether an element with the key exists.
func (h *Hierarchy) Contains(key ElementKey) bool {
	_, ok := h.lookup[key]
	return ok
}

// FindAs returns the element with the key as type T.
func FindAs[T Element](h *Hierarchy, key ElementKey) (T, error) {
	var zero T
	e := h.Find(key)
	if e == nil {
		return zero, errors.Errorf("rig: %v: %w", key, ErrElementNotFound)
	}
	t, ok := e.(T)
	if !ok {
		return zero, errors.Errorf("rig: %v is a %T, not a %T: %w", key, e, zero, ErrWrongType)
	}
	return t, nil
}

// Transformer returns the element with the key as a [Transformer].
func (h *Hierarchy) Transformer(key ElementKey) (Transformer, error) {
	return FindAs[Transformer](h, key)
}

// Keys returns the keys of all elements of the given types, in
// hierarchy order.
func (h *Hierarchy) Keys(mask ElementType) []ElementKey {
	var res []ElementKey
	for _, e := range h.elements {
		if k := e.AsBase().key; k.IsTypeOf(mask) {
			res = append(res, k)
		}
	}
	return res
}

// ForEach calls fun for every element in hierarchy order
// until fun returns false.
func (h *Hierarchy) ForEach(fun func(e Element) bool) {
	for _, e := range h.elements {
		if !fun(e) {
			return
		}
	}
}

// NumOfType returns the number of elements of the given types.
func (h *Hierarchy) NumOfType(mask ElementType) int {
	n := 0
	for _, e := range h.elements {
		if e.AsBase().key.IsTypeOf(mask) {
			n++
		}
	}
	return n
}

// SetInstructionIndex sets the procedural instruction that elements
// and components added from now on are attributed to.
// [IndexNone] marks them as user authored.
func (h *Hierarchy) SetInstructionIndex(index int) {
	h.instruction = index
}

// Select sets the selection state of an element.
func (h *Hierarchy) Select(key ElementKey, selected bool) error {
	e := h.Find(key)
	if e == nil {
		return errors.Errorf("rig: select %v: %w", key, ErrElementNotFound)
	}
	e.AsBase().selected = selected
	return nil
}

// Selected returns the keys of the selected elements.
func (h *Hierarchy) Selected() []ElementKey {
	var res []ElementKey
	for _, e := range h.elements {
		if b := e.AsBase(); b.selected {
			res = append(res, b.key)
		}
	}
	return res
}

// parentIndexes returns the parent indexes of e.
func parentIndexes(e Element) []int {
	switch p := e.(type) {
	case SingleParented:
		if sp := p.AsSingleParent(); sp.HasParent() {
			return []int{sp.parentIndex}
		}
	case MultiParented:
		mp := p.AsMultiParent()
		res := make([]int, len(mp.ParentConstraints))
		for i := range mp.ParentConstraints {
			res[i] = mp.ParentConstraints[i].parentIndex
		}
		return res
	}
	return nil
}

// parentKeys returns the parent keys of e.
func parentKeys(e Element) []ElementKey {
	switch p := e.(type) {
	case SingleParented:
		if sp := p.AsSingleParent(); sp.parent.IsValid() {
			return []ElementKey{sp.parent}
		}
	case MultiParented:
		mp := p.AsMultiParent()
		res := make([]ElementKey, len(mp.ParentConstraints))
		for i := range mp.ParentConstraints {
			res[i] = mp.ParentConstraints[i].Parent
		}
		return res
	}
	return nil
}

// Parents returns the keys of the direct parents of the element.
func (h *Hierarchy) Parents(key ElementKey) []ElementKey {
	e := h.Find(key)
	if e == nil {
		return nil
	}
	return parentKeys(e)
}

// FirstParent returns the key of the first parent, or an empty key.
func (h *Hierarchy) FirstParent(key ElementKey) ElementKey {
	ps := h.Parents(key)
	if len(ps) == 0 {
		return ElementKey{}
	}
	return ps[0]
}

// childIndexes returns the child index lists of all elements,
// cached per topology version.
func (h *Hierarchy) childIndexes() [][]int {
	return h.children.Ensure(h.topologyVersion, func() [][]int {
		res := make([][]int, len(h.elements))
		for i, e := range h.elements {
			for _, p := range parentIndexes(e) {
				if p >= 0 && !slices.Contains(res[p], i) {
					res[p] = append(res[p], i)
				}
			}
		}
		return res
	})
}

// Children returns the keys of the children of the element, or of
// all its descendants in breadth first order when recursive is set.
// An empty key returns the root elements.
func (h *Hierarchy) Children(key ElementKey, recursive bool) []ElementKey {
	var start []int
	if key == (ElementKey{}) {
		for i, e := range h.elements {
			if len(parentIndexes(e)) == 0 {
				start = append(start, i)
			}
		}
	} else {
		i := h.IndexOf(key)
		if i == IndexNone {
			return nil
		}
		start = h.childIndexes()[i]
	}
	var res []ElementKey
	seen := map[int]bool{}
	queue := slices.Clone(start)
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if seen[c] {
			continue
		}
		seen[c] = true
		res = append(res, h.elements[c].AsBase().key)
		if recursive {
			queue = append(queue, h.childIndexes()[c]...)
		}
	}
	return res
}

// IsParentedTo returns whether child descends from ancestor through
// any chain of parents, including weighted parents with zero weight.
func (h *Hierarchy) IsParentedTo(child, ancestor ElementKey) bool {
	ci, ai := h.IndexOf(child), h.IndexOf(ancestor)
	if ci == IndexNone || ai == IndexNone || ci == ai {
		return false
	}
	return h.isParentedTo(ci, ai, map[int]bool{})
}

func (h *Hierarchy) isParentedTo(ci, ai int, seen map[int]bool) bool {
	if seen[ci] {
		return false
	}
	seen[ci] = true
	for _, p := range parentIndexes(h.elements[ci]) {
		if p == ai || h.isParentedTo(p, ai, seen) {
			return true
		}
	}
	return false
}

// Component returns the component at index, or nil.
func (h *Hierarchy) Component(index int) *Component {
	if index < 0 || index >= len(h.components) {
		return nil
	}
	return h.components[index]
}

// ComponentIndexOf returns the index of the component, or [IndexNone].
func (h *Hierarchy) ComponentIndexOf(key ComponentKey) int {
	if i, ok := h.componentLookup[key]; ok {
		return i
	}
	return IndexNone
}

// FindComponent returns the component with the key, or nil.
func (h *Hierarchy) FindComponent(key ComponentKey) *Component {
	return h.Component(h.ComponentIndexOf(key))
}

// ComponentsOf returns the components of the element, in order.
func (h *Hierarchy) ComponentsOf(key ElementKey) []*Component {
	e := h.Find(key)
	if e == nil {
		return nil
	}
	var res []*Component
	for _, ci := range e.AsBase().components {
		res = append(res, h.components[ci])
	}
	return res
}

// TopLevelComponents returns the components not attached to an element.
func (h *Hierarchy) TopLevelComponents() []*Component {
	var res []*Component
	for _, c := range h.components {
		if c.key.IsTopLevel() {
			res = append(res, c)
		}
	}
	return res
}
