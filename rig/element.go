// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import (
	"slices"
)

// IndexNone is the index of something that does not exist.
const IndexNone = -1

// Element is implemented by all element types of a [Hierarchy]:
// [*Bone], [*Null], [*Control], [*Curve], [*Reference],
// [*Connector] and [*Socket]. Elements are created and destroyed
// only by their hierarchy.
//
// Capabilities are exposed through the As* accessors of the
// [Transformer], [SingleParented] and [MultiParented] interfaces,
// in the same way that every element exposes its [BaseElement]
// through AsBase.
type Element interface {
	// AsBase returns the [BaseElement] shared by all element types.
	AsBase() *BaseElement
}

// Transformer is implemented by elements that carry a pose.
type Transformer interface {
	Element
	AsTransform() *TransformElement
}

// SingleParented is implemented by elements with at most one parent.
type SingleParented interface {
	Transformer
	AsSingleParent() *SingleParentElement
}

// MultiParented is implemented by elements with weighted parent constraints.
type MultiParented interface {
	Transformer
	AsMultiParent() *MultiParentElement
}

// BaseElement holds the fields shared by all elements.
type BaseElement struct {
	key ElementKey

	// index is the position of the element in the hierarchy element table.
	index int

	// subIndex is the position of the element among elements of its type.
	subIndex int

	// createdAtInstruction is the index of the procedural instruction
	// that created the element, or [IndexNone] if user authored.
	createdAtInstruction int

	selected bool

	// components are indexes into the hierarchy component table.
	components []int
}

// AsBase satisfies the [Element] interface.
func (b *BaseElement) AsBase() *BaseElement {
	return b
}

// Key returns the key of the element.
func (b *BaseElement) Key() ElementKey { return b.key }

// Type returns the element type.
func (b *BaseElement) Type() ElementType { return b.key.Type }

// Name returns the element name.
func (b *BaseElement) Name() string { return b.key.Name }

// Index returns the index of the element in its hierarchy.
// It is only valid for the topology version it was read at.
func (b *BaseElement) Index() int { return b.index }

// SubIndex returns the index of the element among elements of the same type.
func (b *BaseElement) SubIndex() int { return b.subIndex }

// CreatedAtInstructionIndex returns the procedural instruction that
// created this element, or [IndexNone].
func (b *BaseElement) CreatedAtInstructionIndex() int { return b.createdAtInstruction }

// IsProcedural returns whether the element was created by an instruction.
func (b *BaseElement) IsProcedural() bool { return b.createdAtInstruction != IndexNone }

// IsSelected returns the selection state.
func (b *BaseElement) IsSelected() bool { return b.selected }

// Components returns the indexes of the components owned by the element.
func (b *BaseElement) Components() []int { return b.components }

// NumComponents returns the number of owned components.
func (b *BaseElement) NumComponents() int { return len(b.components) }

func (b *BaseElement) init(key ElementKey, instruction int) {
	b.key = key
	b.index = IndexNone
	b.subIndex = IndexNone
	b.createdAtInstruction = instruction
}

func (b *BaseElement) copyFrom(other *BaseElement) {
	b.selected = other.selected
	b.createdAtInstruction = other.createdAtInstruction
}

// ElementToDirty is an entry of [TransformElement.ElementsToDirty]:
// a dependent element and its distance in the hierarchy.
type ElementToDirty struct {
	Index int

	// HierarchyDistance is 1 for direct children and grows by
	// one per generation.
	HierarchyDistance int
}

// TransformElement holds the pose of an element and the elements
// whose global transforms depend on it.
type TransformElement struct {
	BaseElement

	// Pose is the main transform stack.
	Pose TransformStorage

	// ElementsToDirty lists every element whose global transform
	// depends on this one, ordered by hierarchy distance.
	// It is maintained by the hierarchy.
	ElementsToDirty []ElementToDirty
}

// AsTransform satisfies the [Transformer] interface.
func (t *TransformElement) AsTransform() *TransformElement {
	return t
}

// AddElementToDirty records a dependent, keeping the smallest
// distance and the list order. It returns false if the entry
// already existed with a distance no larger than the given one.
func (t *TransformElement) AddElementToDirty(index, distance int) bool {
	i := slices.IndexFunc(t.ElementsToDirty, func(e ElementToDirty) bool { return e.Index == index })
	if i >= 0 {
		if t.ElementsToDirty[i].HierarchyDistance <= distance {
			return false
		}
		t.ElementsToDirty = slices.Delete(t.ElementsToDirty, i, i+1)
	}
	pos, _ := slices.BinarySearchFunc(t.ElementsToDirty, distance, func(e ElementToDirty, d int) int {
		if e.HierarchyDistance <= d {
			return -1
		}
		return 1
	})
	t.ElementsToDirty = slices.Insert(t.ElementsToDirty, pos, ElementToDirty{Index: index, HierarchyDistance: distance})
	return true
}

// RemoveElementToDirty removes the dependent, returning whether it was present.
func (t *TransformElement) RemoveElementToDirty(index int) bool {
	n := len(t.ElementsToDirty)
	t.ElementsToDirty = slices.DeleteFunc(t.ElementsToDirty, func(e ElementToDirty) bool { return e.Index == index })
	return len(t.ElementsToDirty) != n
}

// SingleParentElement is a transform element with at most one parent.
type SingleParentElement struct {
	TransformElement

	parent ElementKey

	parentIndex int
}

// AsSingleParent satisfies the [SingleParented] interface.
func (s *SingleParentElement) AsSingleParent() *SingleParentElement {
	return s
}

// Parent returns the parent key, which is empty for root elements.
func (s *SingleParentElement) Parent() ElementKey { return s.parent }

// ParentIndex returns the parent index, or [IndexNone].
func (s *SingleParentElement) ParentIndex() int { return s.parentIndex }

// HasParent returns whether the element has a parent.
func (s *SingleParentElement) HasParent() bool { return s.parentIndex != IndexNone }

func (s *SingleParentElement) setParent(key ElementKey, index int) {
	s.parent = key
	s.parentIndex = index
}
