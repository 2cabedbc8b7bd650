// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metadata provides a map of named any elements
// with generic support for type-safe Get and nil-safe Set,
// and a [Store] of such maps keyed by their owner.
// Metadata keys often function as optional fields in a struct,
// and therefore a CamelCase naming convention is typical.
package metadata

import (
	"fmt"
	"maps"
	"slices"

	"cogentcore.org/rig/base/errors"
)

// TagsKey is the standard key under which [Data.Tags] are stored.
const TagsKey = "Tags"

// Data is metadata as a map of named any elements
// with generic support for type-safe Get and nil-safe Set.
type Data map[string]any

func (md *Data) init() {
	if *md == nil {
		*md = make(map[string]any)
	}
}

// Set sets key to given value, ensuring that
// the map is created if not previously.
func (md *Data) Set(key string, value any) {
	md.init()
	(*md)[key] = value
}

// Delete removes the given key, returning whether it was present.
func (md Data) Delete(key string) bool {
	if _, ok := md[key]; !ok {
		return false
	}
	delete(md, key)
	return true
}

// Get gets metadata value of given type.
// returns error if not present or item is a different type.
func Get[T any](md Data, key string) (T, error) {
	var z T
	x, ok := md[key]
	if !ok {
		return z, fmt.Errorf("key %q not found in metadata", key)
	}
	v, ok := x.(T)
	if !ok {
		return z, fmt.Errorf("key %q has a different type than expected %T: is %T", key, z, x)
	}
	return v, nil
}

// Copy does a shallow copy of metadata from source.
// Any pointer-based values will still point to the same
// underlying data as the source, but the two maps remain
// distinct. Tag lists are cloned.
func (md *Data) Copy(src Data) {
	if src == nil {
		return
	}
	md.init()
	maps.Copy(*md, src)
	if tags := src.Tags(); tags != nil {
		(*md)[TagsKey] = slices.Clone(tags)
	}
}

// Tags returns the "Tags" standard key value (nil if not set).
func (md Data) Tags() []string {
	return errors.Ignore1(Get[[]string](md, TagsKey))
}

// HasTag returns whether the given tag is in [Data.Tags].
func (md Data) HasTag(tag string) bool {
	return slices.Contains(md.Tags(), tag)
}

// SetTag adds the given tag, returning false if it was already present.
func (md *Data) SetTag(tag string) bool {
	tags := md.Tags()
	if slices.Contains(tags, tag) {
		return false
	}
	md.Set(TagsKey, append(tags, tag))
	return true
}

// RemoveTag removes the given tag, returning whether it was present.
func (md Data) RemoveTag(tag string) bool {
	tags := md.Tags()
	i := slices.Index(tags, tag)
	if i < 0 {
		return false
	}
	md[TagsKey] = slices.Delete(tags, i, i+1)
	return true
}
