// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package storage provides [Reusable], a typed slot arena with
// free-list reuse and compaction, and [Cell], a handle to one slot.
//
// Slots are addressed by index. Pointers into an arena, as held by
// linked cells, are only valid until the arena grows, deallocates or
// shrinks; holders compare [Reusable.Generation] to know when to relink.
package storage

import (
	"slices"

	"cogentcore.org/rig/base/errors"
)

// Reusable is a growable slab of T plus a sorted free list
// of reclaimed slot indices. The zero value is ready to use.
//
// Misuse (double free, out-of-range access, reading a freed slot)
// panics in all builds.
type Reusable[T any] struct {
	values []T

	// free is sorted ascending.
	free []int

	// isFree parallels values.
	isFree []bool

	// generation is bumped whenever slot addresses may have changed.
	generation uint64
}

// Len returns the total number of slots, live or free.
func (st *Reusable[T]) Len() int {
	return len(st.values)
}

// NumFree returns the number of slots on the free list.
func (st *Reusable[T]) NumFree() int {
	return len(st.free)
}

// NumLive returns the number of allocated slots.
func (st *Reusable[T]) NumLive() int {
	return len(st.values) - len(st.free)
}

// Generation returns a counter that changes whenever pointers
// obtained through [Reusable.At] may have been invalidated,
// which happens when the arena grows past its capacity, shrinks
// or is reset.
func (st *Reusable[T]) Generation() uint64 {
	return st.generation
}

// IsFree returns whether the slot at index is on the free list.
// Out-of-range indices report true.
func (st *Reusable[T]) IsFree(index int) bool {
	if index < 0 || index >= len(st.values) {
		return true
	}
	return st.isFree[index]
}

// Allocate returns count slot indices, each set to def.
// Free slots are reused before the arena grows. In contiguous mode
// the returned indices are numerically adjacent and ascending: a run
// of adjacent free slots is used if one exists, a free run at the end
// of the arena is extended, and otherwise new slots are appended.
// Allocate never fails.
func (st *Reusable[T]) Allocate(count int, def T, contiguous bool) []int {
	if count <= 0 {
		return nil
	}
	var indexes []int
	if contiguous {
		indexes = st.allocateContiguous(count)
	} else {
		n := min(count, len(st.free))
		indexes = slices.Clone(st.free[:n])
		st.free = slices.Delete(st.free, 0, n)
		for i := n; i < count; i++ {
			indexes = append(indexes, st.grow())
		}
	}
	for _, i := range indexes {
		st.values[i] = def
		st.isFree[i] = false
	}
	return indexes
}

func (st *Reusable[T]) allocateContiguous(count int) []int {
	start, n := st.findRun(count)
	if n == count {
		res := slices.Clone(st.free[start : start+count])
		st.free = slices.Delete(st.free, start, start+count)
		return res
	}
	// a trailing free run is extended by appending
	res := make([]int, 0, count)
	if n > 0 {
		res = append(res, st.free[start:start+n]...)
		st.free = slices.Delete(st.free, start, start+n)
	}
	for len(res) < count {
		res = append(res, st.grow())
	}
	return res
}

// findRun returns the free-list position of the first run of count
// adjacent free indices. If there is none, it returns the position
// and length of the free run that ends at the last slot, if any.
func (st *Reusable[T]) findRun(count int) (start, n int) {
	runStart := 0
	for i := range st.free {
		if i > 0 && st.free[i] != st.free[i-1]+1 {
			runStart = i
		}
		if i-runStart+1 == count {
			return runStart, count
		}
	}
	if len(st.free) > 0 && st.free[len(st.free)-1] == len(st.values)-1 {
		return runStart, len(st.free) - runStart
	}
	return 0, 0
}

// grow appends a new slot and returns its index.
func (st *Reusable[T]) grow() int {
	var zero T
	if len(st.values) == cap(st.values) {
		st.generation++
	}
	st.values = append(st.values, zero)
	st.isFree = append(st.isFree, false)
	return len(st.values) - 1
}

// Deallocate returns the slot at index to the free list and
// resets its value. It panics if the slot is out of range or
// already free.
func (st *Reusable[T]) Deallocate(index int) {
	errors.Assert(index >= 0 && index < len(st.values), "storage: deallocate of out-of-range index %d (len %d)", index, len(st.values))
	errors.Assert(!st.isFree[index], "storage: double free of index %d", index)
	var zero T
	st.values[index] = zero
	st.isFree[index] = true
	pos, _ := slices.BinarySearch(st.free, index)
	st.free = slices.Insert(st.free, pos, index)
}

// At returns a pointer to the live slot at index. The pointer is
// valid until [Reusable.Generation] changes.
func (st *Reusable[T]) At(index int) *T {
	errors.Assert(index >= 0 && index < len(st.values), "storage: index %d out of range (len %d)", index, len(st.values))
	errors.Assert(!st.isFree[index], "storage: access to freed index %d", index)
	return &st.values[index]
}

// Get returns the value of the live slot at index.
func (st *Reusable[T]) Get(index int) T {
	return *st.At(index)
}

// Set sets the value of the live slot at index.
func (st *Reusable[T]) Set(index int, v T) {
	*st.At(index) = v
}

// Shrink removes all free slots, moving live slots down so that
// they keep their relative order. onDestroy, if non-nil, is called
// with the original index of every removed slot. The result maps the
// original index of every live slot to its new index; all holders of
// indices must apply it. Shrink of an arena without free slots is a
// no-op returning the identity map.
func (st *Reusable[T]) Shrink(onDestroy func(index int)) map[int]int {
	remap := make(map[int]int, st.NumLive())
	if len(st.free) == 0 {
		for i := range st.values {
			remap[i] = i
		}
		return remap
	}
	next := 0
	for i := range st.values {
		if st.isFree[i] {
			if onDestroy != nil {
				onDestroy(i)
			}
			continue
		}
		remap[i] = next
		st.values[next] = st.values[i]
		next++
	}
	var zero T
	for i := next; i < len(st.values); i++ {
		st.values[i] = zero
	}
	st.values = slices.Clip(st.values[:next])
	st.isFree = make([]bool, next)
	st.free = st.free[:0]
	st.generation++
	return remap
}

// Reset removes all slots.
func (st *Reusable[T]) Reset() {
	st.values = nil
	st.free = nil
	st.isFree = nil
	st.generation++
}

// Live calls fun for every live slot in index order.
func (st *Reusable[T]) Live(fun func(index int, v *T) bool) {
	for i := range st.values {
		if st.isFree[i] {
			continue
		}
		if !fun(i, &st.values[i]) {
			return
		}
	}
}
