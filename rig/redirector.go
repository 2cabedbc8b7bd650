// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import (
	"log/slog"
	"slices"
)

// KeyRedirector maps source keys to one or more target keys, as used
// by modular rigs to route a module's connector keys to the elements
// they are connected to. Targets are held as [CachedElement]s resolved
// when the entry is added. The zero value is an empty redirector.
type KeyRedirector struct {
	// order is the insertion order of the sources.
	order []ElementKey

	external map[ElementKey][]ElementKey

	internal map[ElementKey][]CachedElement

	// entryHashes holds the hash of every entry; hash is their sum,
	// which does not depend on insertion order.
	entryHashes map[ElementKey]uint64
	hash        uint64
}

// NewKeyRedirector returns a redirector built from the given map,
// resolved against h. Sources are added in key order.
func NewKeyRedirector(m map[ElementKey][]ElementKey, h Snapshot) *KeyRedirector {
	kr := &KeyRedirector{}
	sources := make([]ElementKey, 0, len(m))
	for k := range m {
		sources = append(sources, k)
	}
	slices.SortFunc(sources, CompareKeys)
	for _, s := range sources {
		kr.Add(s, m[s], h)
	}
	return kr
}

// Add binds source to targets, replacing an existing binding of source.
// Bindings without targets or that include the source among their
// targets are dropped, as are invalid target keys; Add returns whether
// an entry was stored. Targets are resolved against h, and targets that
// cannot be found are kept as named but unresolved references.
func (kr *KeyRedirector) Add(source ElementKey, targets []ElementKey, h Snapshot) bool {
	if !source.IsValid() || len(targets) == 0 || slices.Contains(targets, source) {
		slog.Debug("rig: dropping key redirect", "source", source, "targets", len(targets))
		return false
	}
	valid := make([]ElementKey, 0, len(targets))
	for _, t := range targets {
		if t.IsValid() {
			valid = append(valid, t)
		}
	}
	if len(valid) == 0 {
		return false
	}
	kr.Remove(source)
	cached := make([]CachedElement, len(valid))
	for i, t := range valid {
		cached[i] = NewCachedElement(t, h)
	}
	if kr.external == nil {
		kr.external = make(map[ElementKey][]ElementKey)
		kr.internal = make(map[ElementKey][]CachedElement)
		kr.entryHashes = make(map[ElementKey]uint64)
	}
	kr.order = append(kr.order, source)
	kr.external[source] = valid
	kr.internal[source] = cached
	eh := source.Hash()
	for _, t := range valid {
		eh = HashCombine(eh, t.Hash())
	}
	kr.entryHashes[source] = eh
	kr.hash += eh
	return true
}

// Remove removes the binding of source, returning whether it existed.
func (kr *KeyRedirector) Remove(source ElementKey) bool {
	if _, ok := kr.external[source]; !ok {
		return false
	}
	kr.hash -= kr.entryHashes[source]
	delete(kr.entryHashes, source)
	delete(kr.external, source)
	delete(kr.internal, source)
	kr.order = slices.DeleteFunc(kr.order, func(k ElementKey) bool { return k == source })
	return true
}

// Len returns the number of bindings.
func (kr *KeyRedirector) Len() int {
	return len(kr.order)
}

// Keys returns the sources in insertion order.
func (kr *KeyRedirector) Keys() []ElementKey {
	return slices.Clone(kr.order)
}

// Contains returns whether source has a binding.
func (kr *KeyRedirector) Contains(source ElementKey) bool {
	_, ok := kr.external[source]
	return ok
}

// FindExternal returns the authored targets of source, or nil.
func (kr *KeyRedirector) FindExternal(source ElementKey) []ElementKey {
	return kr.external[source]
}

// Find returns the cached targets of source after revalidating them
// against h, or nil if source has no binding. The returned slice
// is owned by the redirector.
func (kr *KeyRedirector) Find(source ElementKey, h Snapshot) []CachedElement {
	targets, ok := kr.internal[source]
	if !ok {
		return nil
	}
	for i := range targets {
		targets[i].UpdateCache(h)
	}
	return targets
}

// FindReverse returns the first source, in insertion order, whose
// targets include key. It scans all bindings.
func (kr *KeyRedirector) FindReverse(key ElementKey) (ElementKey, bool) {
	for _, s := range kr.order {
		for _, t := range kr.internal[s] {
			if t.Key() == key {
				return s, true
			}
		}
	}
	return ElementKey{}, false
}

// Hash returns a hash of all bindings that does not depend on the
// order in which they were added.
func (kr *KeyRedirector) Hash() uint64 {
	return kr.hash
}

// Equal returns whether both redirectors hold the same bindings.
// A nil redirector is only equal to nil.
func (kr *KeyRedirector) Equal(other *KeyRedirector) bool {
	if kr == nil || other == nil {
		return kr == other
	}
	if kr.hash != other.hash || kr.Len() != other.Len() {
		return false
	}
	for s, ts := range kr.external {
		if !slices.Equal(ts, other.external[s]) {
			return false
		}
	}
	return true
}
