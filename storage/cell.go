// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import (
	"cogentcore.org/rig/base/errors"
)

// Cell is a handle to one slot of a [Reusable] arena: the slot
// index plus a linked pointer used for fast access. The zero value
// is an unallocated cell.
type Cell[T any] struct {
	// slot is the index plus one, so the zero value is unallocated.
	slot int
	ptr  *T
}

// NewCell returns an unlinked cell for the given slot index.
func NewCell[T any](index int) Cell[T] {
	return Cell[T]{slot: index + 1}
}

// Index returns the slot index, or -1 if the cell is unallocated.
func (c *Cell[T]) Index() int {
	return c.slot - 1
}

// IsValid returns whether the cell refers to a slot.
func (c *Cell[T]) IsValid() bool {
	return c.slot > 0
}

// IsLinked returns whether the cell has a pointer to its slot.
func (c *Cell[T]) IsLinked() bool {
	return c.ptr != nil
}

// Link sets the cell pointer from the given arena.
func (c *Cell[T]) Link(st *Reusable[T]) {
	if c.slot == 0 {
		c.ptr = nil
		return
	}
	c.ptr = st.At(c.slot - 1)
}

// Unlink clears the cell pointer, keeping the index.
func (c *Cell[T]) Unlink() {
	c.ptr = nil
}

// Relink applies a [Reusable.Shrink] map to the cell index and links
// it again. Cells whose slot was removed become unallocated.
func (c *Cell[T]) Relink(remap map[int]int, st *Reusable[T]) {
	if c.slot == 0 {
		return
	}
	ni, ok := remap[c.slot-1]
	if !ok {
		*c = Cell[T]{}
		return
	}
	c.slot = ni + 1
	c.Link(st)
}

// Deallocate returns the slot to the arena and resets the cell.
func (c *Cell[T]) Deallocate(st *Reusable[T]) {
	if c.slot == 0 {
		return
	}
	st.Deallocate(c.slot - 1)
	*c = Cell[T]{}
}

// Get returns the linked value. It panics if the cell is not linked.
func (c *Cell[T]) Get() T {
	errors.Assert(c.ptr != nil, "storage: get on unlinked cell %d", c.slot-1)
	return *c.ptr
}

// Ref returns the linked pointer. It panics if the cell is not linked.
func (c *Cell[T]) Ref() *T {
	errors.Assert(c.ptr != nil, "storage: ref on unlinked cell %d", c.slot-1)
	return c.ptr
}

// Set sets the linked value. It panics if the cell is not linked.
func (c *Cell[T]) Set(v T) {
	errors.Assert(c.ptr != nil, "storage: set on unlinked cell %d", c.slot-1)
	*c.ptr = v
}
