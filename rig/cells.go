// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import (
	"cogentcore.org/rig/base/errors"
	"cogentcore.org/rig/math32"
	"cogentcore.org/rig/storage"
)

// LocalAndGlobal holds a local and a global value.
type LocalAndGlobal[T any] struct {
	Local  T
	Global T
}

// At returns the local or global value.
func (lg *LocalAndGlobal[T]) At(local bool) *T {
	if local {
		return &lg.Local
	}
	return &lg.Global
}

// CurrentAndInitial holds a current and an initial value.
type CurrentAndInitial[T any] struct {
	Current T
	Initial T
}

// At returns the current or initial value.
func (ci *CurrentAndInitial[T]) At(initial bool) *T {
	if initial {
		return &ci.Initial
	}
	return &ci.Current
}

// TransformCells is a 2x2 group of cells addressed by [TransformType].
type TransformCells[T any] struct {
	CurrentAndInitial[LocalAndGlobal[storage.Cell[T]]]
}

// Cell returns the cell for the given transform type.
func (tc *TransformCells[T]) Cell(tt TransformType) *storage.Cell[T] {
	return tc.At(tt.IsInitial()).At(tt.IsLocal())
}

func (tc *TransformCells[T]) forEach(fun func(tt TransformType, c *storage.Cell[T])) {
	for tt := range TransformType(NumTransformTypes) {
		fun(tt, tc.Cell(tt))
	}
}

// allocate assigns the four cells, in [TransformType] order.
func (tc *TransformCells[T]) allocate(st *storage.Reusable[T], def T, contiguous bool) {
	idx := st.Allocate(NumTransformTypes, def, contiguous)
	tc.forEach(func(tt TransformType, c *storage.Cell[T]) {
		*c = storage.NewCell[T](idx[tt])
	})
}

// TransformStorage is one transform stack of an element: a value
// and a dirty flag for each [TransformType], all held in arenas.
// A dirty representation must be recomputed from the other space of
// the same phase, so local and global are never dirty together.
type TransformStorage struct {
	Transform TransformCells[math32.Transform]
	Dirty     TransformCells[bool]
}

// IsValid returns whether the cells have been allocated.
func (ts *TransformStorage) IsValid() bool {
	return ts.Transform.Current.Local.IsValid()
}

// Get returns the stored value, which may be stale if [TransformStorage.IsDirty].
func (ts *TransformStorage) Get(tt TransformType) math32.Transform {
	return ts.Transform.Cell(tt).Get()
}

// Set stores the value without touching the dirty flags.
func (ts *TransformStorage) Set(tt TransformType, v math32.Transform) {
	ts.Transform.Cell(tt).Set(v)
}

// IsDirty returns whether the value needs to be recomputed.
func (ts *TransformStorage) IsDirty(tt TransformType) bool {
	return ts.Dirty.Cell(tt).Get()
}

// MarkDirty flags the value for recomputation. It panics if the
// other space of the same phase is dirty too.
func (ts *TransformStorage) MarkDirty(tt TransformType) {
	errors.Assert(!ts.IsDirty(tt.SwapLocalAndGlobal()), "rig: cannot mark %v dirty: %v is already dirty", tt, tt.SwapLocalAndGlobal())
	ts.Dirty.Cell(tt).Set(true)
}

// MarkClean clears the dirty flag.
func (ts *TransformStorage) MarkClean(tt TransformType) {
	ts.Dirty.Cell(tt).Set(false)
}

// allocate assigns all cells with identity transforms, all clean.
func (ts *TransformStorage) allocate(transforms *storage.Reusable[math32.Transform], dirty *storage.Reusable[bool], contiguous bool) {
	ts.Transform.allocate(transforms, math32.Identity(), contiguous)
	ts.Dirty.allocate(dirty, false, contiguous)
}

func (ts *TransformStorage) link(transforms *storage.Reusable[math32.Transform], dirty *storage.Reusable[bool]) {
	ts.Transform.forEach(func(_ TransformType, c *storage.Cell[math32.Transform]) { c.Link(transforms) })
	ts.Dirty.forEach(func(_ TransformType, c *storage.Cell[bool]) { c.Link(dirty) })
}

func (ts *TransformStorage) unlink() {
	ts.Transform.forEach(func(_ TransformType, c *storage.Cell[math32.Transform]) { c.Unlink() })
	ts.Dirty.forEach(func(_ TransformType, c *storage.Cell[bool]) { c.Unlink() })
}

func (ts *TransformStorage) relink(tmap map[int]int, transforms *storage.Reusable[math32.Transform], dmap map[int]int, dirty *storage.Reusable[bool]) {
	ts.Transform.forEach(func(_ TransformType, c *storage.Cell[math32.Transform]) { c.Relink(tmap, transforms) })
	ts.Dirty.forEach(func(_ TransformType, c *storage.Cell[bool]) { c.Relink(dmap, dirty) })
}

func (ts *TransformStorage) deallocate(transforms *storage.Reusable[math32.Transform], dirty *storage.Reusable[bool]) {
	ts.Transform.forEach(func(_ TransformType, c *storage.Cell[math32.Transform]) { c.Deallocate(transforms) })
	ts.Dirty.forEach(func(_ TransformType, c *storage.Cell[bool]) { c.Deallocate(dirty) })
}

// copyValues copies the values and flags of the selected phases.
func (ts *TransformStorage) copyValues(other *TransformStorage, current, initial bool) {
	for tt := range TransformType(NumTransformTypes) {
		if (tt.IsCurrent() && !current) || (tt.IsInitial() && !initial) {
			continue
		}
		ts.Set(tt, other.Get(tt))
		ts.Dirty.Cell(tt).Set(other.IsDirty(tt))
	}
}
