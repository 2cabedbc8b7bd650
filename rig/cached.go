// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import "math"

// Snapshot is the read access to a hierarchy that cached
// references resolve against. [*Hierarchy] implements it.
type Snapshot interface {
	// TopologyVersion returns a counter bumped on every structural edit.
	TopologyVersion() int

	// Get returns the element at index, or nil if there is none.
	Get(index int) Element

	// IndexOf returns the index of the element with the key, or [IndexNone].
	IndexOf(key ElementKey) int

	// Component returns the component at index, or nil if there is none.
	Component(index int) *Component

	// ComponentIndexOf returns the index of the component with the key, or [IndexNone].
	ComponentIndexOf(key ComponentKey) int
}

// InvalidIndex is the index of an unresolved [CachedElement].
const InvalidIndex = math.MaxUint16

// CacheState is the result of the last resolution attempt of a cached reference.
type CacheState uint8

const (
	// CacheNotAttempted is the state before the first resolution.
	CacheNotAttempted CacheState = iota

	// CacheValid is the state of a resolved reference.
	CacheValid

	// CacheInvalid is the state of a reference whose key was not found.
	// The key is kept.
	CacheInvalid
)

func (cs CacheState) String() string {
	switch cs {
	case CacheValid:
		return "Valid"
	case CacheInvalid:
		return "Invalid"
	}
	return "NotAttempted"
}

// CachedElement is a reference to an element by key that remembers
// the index it was found at and the topology version it was found in,
// so that it can revalidate itself cheaply after edits.
type CachedElement struct {
	key     ElementKey
	index   uint16
	version int
	state   CacheState
}

// NewCachedElement returns a reference to key resolved against h.
// If h is nil, the reference is left unresolved.
func NewCachedElement(key ElementKey, h Snapshot) CachedElement {
	c := CachedElement{key: key, index: InvalidIndex, version: IndexNone}
	if h != nil {
		c.UpdateCache(h)
	}
	return c
}

// Key returns the referenced key.
func (c *CachedElement) Key() ElementKey { return c.key }

// Index returns the last resolved index, or [IndexNone].
func (c *CachedElement) Index() int {
	if c.index == InvalidIndex {
		return IndexNone
	}
	return int(c.index)
}

// Version returns the topology version of the last resolution, or [IndexNone].
func (c *CachedElement) Version() int { return c.version }

// State returns the result of the last resolution.
func (c *CachedElement) State() CacheState { return c.state }

// IsValid returns whether the reference has a key and an index.
func (c *CachedElement) IsValid() bool {
	return c.index != InvalidIndex && c.key.IsValid()
}

// IsIdentical returns whether the reference has the given key and was
// resolved in the current topology version of h.
func (c *CachedElement) IsIdentical(key ElementKey, h Snapshot) bool {
	return c.key == key && c.version == h.TopologyVersion()
}

// Reset clears the resolution, keeping the key.
func (c *CachedElement) Reset() {
	c.index = InvalidIndex
	c.version = IndexNone
	c.state = CacheNotAttempted
}

// UpdateCache revalidates the reference against h and returns whether
// it is valid. A reference resolved in the current topology version is
// accepted as is. Otherwise, if the element at the cached index still
// has the key, only the version is refreshed; failing that, the key is
// looked up. A key that cannot be found leaves the reference invalid
// but named.
func (c *CachedElement) UpdateCache(h Snapshot) bool {
	v := h.TopologyVersion()
	if c.state == CacheValid && c.index != InvalidIndex && c.version == v {
		if h.Get(int(c.index)) != nil {
			return true
		}
	}
	if !c.key.IsValid() {
		c.invalidate()
		return false
	}
	if c.index != InvalidIndex {
		if e := h.Get(int(c.index)); e != nil && e.AsBase().Key() == c.key {
			c.version = v
			c.state = CacheValid
			return true
		}
	}
	idx := h.IndexOf(c.key)
	if idx < 0 || idx >= InvalidIndex {
		c.invalidate()
		return false
	}
	c.index = uint16(idx)
	c.version = v
	c.state = CacheValid
	return true
}

func (c *CachedElement) invalidate() {
	c.index = InvalidIndex
	c.version = IndexNone
	c.state = CacheInvalid
}

// Element returns the referenced element after revalidating, or nil.
// The result is only valid for the current topology version.
func (c *CachedElement) Element(h Snapshot) Element {
	if !c.UpdateCache(h) {
		return nil
	}
	return h.Get(int(c.index))
}

// CachedComponent is a reference to a component that revalidates its
// owning element first and then the component itself.
type CachedComponent struct {
	Element CachedElement

	key     ComponentKey
	index   int
	version int
	state   CacheState
}

// NewCachedComponent returns a reference to key resolved against h.
// If h is nil, the reference is left unresolved.
func NewCachedComponent(key ComponentKey, h Snapshot) CachedComponent {
	c := CachedComponent{
		Element: NewCachedElement(key.Element, nil),
		key:     key,
		index:   IndexNone,
		version: IndexNone,
	}
	if h != nil {
		c.UpdateCache(h)
	}
	return c
}

// Key returns the referenced component key.
func (c *CachedComponent) Key() ComponentKey { return c.key }

// Index returns the last resolved component index, or [IndexNone].
func (c *CachedComponent) Index() int { return c.index }

// State returns the result of the last resolution.
func (c *CachedComponent) State() CacheState { return c.state }

// IsValid returns whether the component reference is resolved.
func (c *CachedComponent) IsValid() bool {
	return c.index != IndexNone && c.key.IsValid()
}

// IsIdentical returns whether the reference has the given key and was
// resolved in the current topology version of h.
func (c *CachedComponent) IsIdentical(key ComponentKey, h Snapshot) bool {
	return c.key == key && c.version == h.TopologyVersion()
}

// UpdateCache revalidates the owning element and then the component,
// returning whether the component reference is valid.
func (c *CachedComponent) UpdateCache(h Snapshot) bool {
	if !c.key.IsTopLevel() && !c.Element.UpdateCache(h) {
		c.invalidate()
		return false
	}
	v := h.TopologyVersion()
	if c.state == CacheValid && c.version == v && h.Component(c.index) != nil {
		return true
	}
	if c.index != IndexNone {
		if cm := h.Component(c.index); cm != nil && cm.Key() == c.key {
			c.version = v
			c.state = CacheValid
			return true
		}
	}
	idx := h.ComponentIndexOf(c.key)
	if idx == IndexNone {
		c.invalidate()
		return false
	}
	c.index = idx
	c.version = v
	c.state = CacheValid
	return true
}

func (c *CachedComponent) invalidate() {
	c.index = IndexNone
	c.version = IndexNone
	c.state = CacheInvalid
}

// Component returns the referenced component after revalidating, or nil.
func (c *CachedComponent) Component(h Snapshot) *Component {
	if !c.UpdateCache(h) {
		return nil
	}
	return h.Component(c.index)
}

// HierarchyCache is a value derived from a hierarchy, valid for one
// topology version.
type HierarchyCache[T any] struct {
	value   T
	version int
	valid   bool
}

// IsValid returns whether the value was computed for the given version.
func (hc *HierarchyCache[T]) IsValid(version int) bool {
	return hc.valid && hc.version == version
}

// Get returns the stored value, regardless of validity.
func (hc *HierarchyCache[T]) Get() T {
	return hc.value
}

// Set stores the value for the given version.
func (hc *HierarchyCache[T]) Set(v T, version int) {
	hc.value = v
	hc.version = version
	hc.valid = true
}

// Reset invalidates the value.
func (hc *HierarchyCache[T]) Reset() {
	var zero T
	hc.value = zero
	hc.valid = false
}

// Ensure returns the value for the given version, computing it
// with fun if the stored value is stale.
func (hc *HierarchyCache[T]) Ensure(version int, fun func() T) T {
	if !hc.IsValid(version) {
		hc.Set(fun(), version)
	}
	return hc.value
}
