// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import "cogentcore.org/rig/storage"

// stacks returns the transform stacks of e.
func stacks(e Element) []*TransformStorage {
	switch t := e.(type) {
	case *Control:
		return []*TransformStorage{&t.Pose, &t.Offset, &t.Shape}
	case Transformer:
		return []*TransformStorage{&t.AsTransform().Pose}
	}
	return nil
}

func (h *Hierarchy) allocateStorage(e Element) {
	contiguous := h.Settings.ContiguousPoseStorage
	for _, ts := range stacks(e) {
		ts.allocate(&h.transforms, &h.dirty, contiguous)
	}
	if c, ok := e.(*Curve); ok {
		c.value = storage.NewCell[float32](h.curves.Allocate(1, 0, false)[0])
	}
	if h.storageMoved() {
		h.LinkStorage()
		return
	}
	h.linkElement(e)
}

func (h *Hierarchy) deallocateStorage(e Element) {
	for _, ts := range stacks(e) {
		ts.deallocate(&h.transforms, &h.dirty)
	}
	if c, ok := e.(*Curve); ok {
		c.value.Deallocate(&h.curves)
	}
}

// storageMoved returns whether any arena reallocated since the last link.
func (h *Hierarchy) storageMoved() bool {
	return h.linked != [3]uint64{h.transforms.Generation(), h.dirty.Generation(), h.curves.Generation()}
}

func (h *Hierarchy) linkElement(e Element) {
	for _, ts := range stacks(e) {
		ts.link(&h.transforms, &h.dirty)
	}
	if c, ok := e.(*Curve); ok {
		c.value.Link(&h.curves)
	}
}

// LinkStorage links the cells of all elements to the arenas. It is
// called whenever the arenas reallocate, and may be called after
// [Hierarchy.UnlinkStorage].
func (h *Hierarchy) LinkStorage() {
	for _, e := range h.elements {
		h.linkElement(e)
	}
	h.linked = [3]uint64{h.transforms.Generation(), h.dirty.Generation(), h.curves.Generation()}
}

// UnlinkStorage clears the cell pointers of all elements, keeping
// their indexes. Pose access panics until [Hierarchy.LinkStorage].
func (h *Hierarchy) UnlinkStorage() {
	for _, e := range h.elements {
		for _, ts := range stacks(e) {
			ts.unlink()
		}
		if c, ok := e.(*Curve); ok {
			c.value.Unlink()
		}
	}
	h.linked = [3]uint64{}
}

// ShrinkStorage compacts the arenas, relinking all cells, and
// returns the number of slots released.
func (h *Hierarchy) ShrinkStorage() int {
	freed := h.transforms.NumFree() + h.dirty.NumFree() + h.curves.NumFree()
	tmap := h.transforms.Shrink(nil)
	dmap := h.dirty.Shrink(nil)
	cmap := h.curves.Shrink(nil)
	for _, e := range h.elements {
		for _, ts := range stacks(e) {
			ts.relink(tmap, &h.transforms, dmap, &h.dirty)
		}
		if c, ok := e.(*Curve); ok {
			c.value.Relink(cmap, &h.curves)
		}
	}
	h.linked = [3]uint64{h.transforms.Generation(), h.dirty.Generation(), h.curves.Generation()}
	return freed
}

// StorageStats reports the number of live and free slots of the
// transform arena.
func (h *Hierarchy) StorageStats() (live, free int) {
	return h.transforms.NumLive(), h.transforms.NumFree()
}
