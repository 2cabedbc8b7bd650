// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import (
	"slices"
	"strings"
)

// KeyCollection is an ordered list of element keys, used to pass
// sets of elements around.
type KeyCollection []ElementKey

// Contains returns whether the collection contains the key.
func (kc KeyCollection) Contains(key ElementKey) bool {
	return slices.Contains(kc, key)
}

// FromChildren returns the children of parent of the given types,
// optionally recursive and including parent itself first.
func FromChildren(h *Hierarchy, parent ElementKey, recursive, includeParent bool, mask ElementType) KeyCollection {
	var res KeyCollection
	if !h.Contains(parent) {
		return res
	}
	if includeParent && parent.IsTypeOf(mask) {
		res = append(res, parent)
	}
	for _, k := range h.Children(parent, recursive) {
		if k.IsTypeOf(mask) {
			res = append(res, k)
		}
	}
	return res
}

// FromName returns all elements of the given types whose name
// contains partial.
func FromName(h *Hierarchy, partial string, mask ElementType) KeyCollection {
	return FromHierarchy(h, mask).FilterByName(partial)
}

// FromChain returns the chain of first parents from first down to
// last, which must descend from first. It is empty if they are not
// on one chain.
func FromChain(h *Hierarchy, first, last ElementKey, reverse bool) KeyCollection {
	if !h.Contains(first) || !h.Contains(last) {
		return nil
	}
	var res KeyCollection
	for k := last; k.IsValid(); k = h.FirstParent(k) {
		res = append(res, k)
		if k == first {
			if !reverse {
				slices.Reverse(res)
			}
			return res
		}
		if len(res) > h.Len() {
			break
		}
	}
	return nil
}

// FromHierarchy returns all elements of the given types in hierarchy order.
func FromHierarchy(h *Hierarchy, mask ElementType) KeyCollection {
	return KeyCollection(h.Keys(mask))
}

// Union returns the keys of a followed by those of b. Unless
// allowDuplicates is set, keys of b already present are skipped.
func Union(a, b KeyCollection, allowDuplicates bool) KeyCollection {
	res := slices.Clone(a)
	for _, k := range b {
		if allowDuplicates || !res.Contains(k) {
			res = append(res, k)
		}
	}
	return res
}

// Intersection returns the keys of a that are also in b.
func Intersection(a, b KeyCollection) KeyCollection {
	var res KeyCollection
	for _, k := range a {
		if b.Contains(k) {
			res = append(res, k)
		}
	}
	return res
}

// Difference returns the keys of a that are not in b.
func Difference(a, b KeyCollection) KeyCollection {
	var res KeyCollection
	for _, k := range a {
		if !b.Contains(k) {
			res = append(res, k)
		}
	}
	return res
}

// Reversed returns the collection in reverse order.
func (kc KeyCollection) Reversed() KeyCollection {
	res := slices.Clone(kc)
	slices.Reverse(res)
	return res
}

// FilterByType returns the keys of the given types.
func (kc KeyCollection) FilterByType(mask ElementType) KeyCollection {
	var res KeyCollection
	for _, k := range kc {
		if k.IsTypeOf(mask) {
			res = append(res, k)
		}
	}
	return res
}

// FilterByName returns the keys whose name contains partial.
func (kc KeyCollection) FilterByName(partial string) KeyCollection {
	var res KeyCollection
	for _, k := range kc {
		if strings.Contains(k.Name, partial) {
			res = append(res, k)
		}
	}
	return res
}
