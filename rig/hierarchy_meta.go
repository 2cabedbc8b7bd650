// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import (
	"cogentcore.org/rig/base/errors"
	"cogentcore.org/rig/base/metadata"
)

// SetTag adds a tag to an element.
func (h *Hierarchy) SetTag(key ElementKey, tag string) error {
	if !h.Contains(key) {
		return errors.Errorf("rig: tag %v: %w", key, ErrElementNotFound)
	}
	h.Metadata.SetTag(key, tag)
	return nil
}

// HasTag returns whether an element has the given tag.
func (h *Hierarchy) HasTag(key ElementKey, tag string) bool {
	return h.Metadata.HasTag(key, tag)
}

// RemoveTag removes a tag from an element.
func (h *Hierarchy) RemoveTag(key ElementKey, tag string) bool {
	return h.Metadata.RemoveTag(key, tag)
}

// Tags returns the tags of an element.
func (h *Hierarchy) Tags(key ElementKey) []string {
	return h.Metadata.Tags(key)
}

// KeysWithTag returns the keys of all elements with the given tag.
func (h *Hierarchy) KeysWithTag(tag string) []ElementKey {
	var res []ElementKey
	for _, e := range h.elements {
		if k := e.AsBase().key; h.Metadata.HasTag(k, tag) {
			res = append(res, k)
		}
	}
	return res
}

// SetMetadata sets a named metadata value on an element.
func (h *Hierarchy) SetMetadata(key ElementKey, name string, value any) error {
	if !h.Contains(key) {
		return errors.Errorf("rig: metadata %v: %w", key, ErrElementNotFound)
	}
	h.Metadata.Set(key, name, value)
	return nil
}

// SocketColor returns the display color of a socket.
func (h *Hierarchy) SocketColor(key ElementKey) string {
	v, _ := metadata.GetFor[string](&h.Metadata, key, SocketColorMetadata)
	return v
}

// SocketDescription returns the description of a socket.
func (h *Hierarchy) SocketDescription(key ElementKey) string {
	v, _ := metadata.GetFor[string](&h.Metadata, key, SocketDescriptionMetadata)
	return v
}

// SocketDesiredParent returns the element a socket asks to be
// parented to when its module is connected, if any.
func (h *Hierarchy) SocketDesiredParent(key ElementKey) (ElementKey, bool) {
	v, err := metadata.GetFor[ElementKey](&h.Metadata, key, SocketDesiredParentMetadata)
	return v, err == nil && v.IsValid()
}

// SetSocketDesiredParent records the element a socket asks to be
// parented to.
func (h *Hierarchy) SetSocketDesiredParent(key, parent ElementKey) error {
	if _, err := FindAs[*Socket](h, key); err != nil {
		return err
	}
	h.Metadata.Set(key, SocketDesiredParentMetadata, parent)
	return nil
}
