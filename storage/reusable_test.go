// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocate(t *testing.T) {
	var st Reusable[float32]
	idx := st.Allocate(3, 1.5, false)
	assert.Equal(t, []int{0, 1, 2}, idx)
	assert.Equal(t, float32(1.5), st.Get(1))
	assert.Nil(t, st.Allocate(0, 0, false))

	st.Deallocate(2)
	st.Deallocate(0)
	assert.Equal(t, 2, st.NumFree())
	assert.True(t, st.IsFree(0))
	assert.Equal(t, float32(0), st.values[0])

	idx = st.Allocate(3, 7, false)
	assert.Equal(t, []int{0, 2, 3}, idx)
	assert.Equal(t, 0, st.NumFree())
	assert.Equal(t, 4, st.NumLive())
	for _, i := range idx {
		assert.Equal(t, float32(7), st.Get(i))
	}
}

func TestAllocateContiguous(t *testing.T) {
	var st Reusable[int]
	st.Allocate(8, 0, true)
	for _, i := range []int{1, 3, 4, 5, 7} {
		st.Deallocate(i)
	}
	// run 3,4,5
	assert.Equal(t, []int{3, 4}, st.Allocate(2, 9, true))
	assert.Equal(t, []int{1, 5, 7}, st.free)

	// no run of 2: the trailing free slot 7 is extended
	assert.Equal(t, []int{7, 8}, st.Allocate(2, 9, true))
	assert.Equal(t, []int{1, 5}, st.free)

	// no run and no trailing free slot: append
	assert.Equal(t, []int{9, 10, 11}, st.Allocate(3, 9, true))
	assert.Equal(t, 12, st.Len())
}

func TestDeallocateMisuse(t *testing.T) {
	var st Reusable[int]
	st.Allocate(2, 0, false)
	st.Deallocate(1)
	assert.Panics(t, func() { st.Deallocate(1) })
	assert.Panics(t, func() { st.Deallocate(5) })
	assert.Panics(t, func() { st.Deallocate(-1) })
	assert.Panics(t, func() { st.Get(1) })
}

func TestShrinkAllLive(t *testing.T) {
	var st Reusable[int]
	st.Allocate(4, 3, false)
	gen := st.Generation()
	called := 0
	remap := st.Shrink(func(int) { called++ })
	assert.Equal(t, map[int]int{0: 0, 1: 1, 2: 2, 3: 3}, remap)
	assert.Equal(t, 0, called)
	assert.Equal(t, 4, st.Len())
	assert.Equal(t, gen, st.Generation())
}

func TestShrinkAllFree(t *testing.T) {
	var st Reusable[int]
	st.Allocate(3, 3, false)
	for i := range 3 {
		st.Deallocate(i)
	}
	var destroyed []int
	remap := st.Shrink(func(i int) { destroyed = append(destroyed, i) })
	assert.Empty(t, remap)
	assert.Equal(t, []int{0, 1, 2}, destroyed)
	assert.Equal(t, 0, st.Len())
	assert.Equal(t, 0, st.NumFree())
}

func TestShrinkMixed(t *testing.T) {
	var st Reusable[int]
	idx := st.Allocate(5, 0, false)
	for _, i := range idx {
		st.Set(i, 100+i)
	}
	st.Deallocate(1)
	st.Deallocate(3)

	var destroyed []int
	gen := st.Generation()
	remap := st.Shrink(func(i int) { destroyed = append(destroyed, i) })
	assert.Equal(t, map[int]int{0: 0, 2: 1, 4: 2}, remap)
	assert.Equal(t, []int{1, 3}, destroyed)
	assert.Equal(t, 3, st.Len())
	assert.Equal(t, 3, st.NumLive())
	assert.NotEqual(t, gen, st.Generation())
	for old, nw := range remap {
		assert.Equal(t, 100+old, st.Get(nw))
	}
}

func TestShrinkRoundTrip(t *testing.T) {
	var st Reusable[int]
	var cells []Cell[int]
	for _, i := range st.Allocate(40, 0, false) {
		st.Set(i, i*i)
		cells = append(cells, NewCell[int](i))
	}
	for i := range cells {
		if i%3 == 0 || i%7 == 0 {
			cells[i].Deallocate(&st)
		}
	}
	want := map[int]int{}
	for i := range cells {
		if cells[i].IsValid() {
			want[i] = i * i
		}
	}
	remap := st.Shrink(nil)
	for i := range cells {
		cells[i].Relink(remap, &st)
	}
	for i := range cells {
		if v, ok := want[i]; ok {
			require.True(t, cells[i].IsLinked())
			assert.Equal(t, v, cells[i].Get())
		} else {
			assert.False(t, cells[i].IsValid())
		}
	}
	var live []int
	st.Live(func(i int, v *int) bool {
		live = append(live, *v)
		return true
	})
	assert.True(t, slices.IsSorted(live))
	assert.Len(t, live, len(want))
}

func TestCell(t *testing.T) {
	var st Reusable[string]
	var c Cell[string]
	assert.False(t, c.IsValid())
	assert.Equal(t, -1, c.Index())
	assert.Panics(t, func() { c.Get() })

	c = NewCell[string](st.Allocate(1, "a", false)[0])
	assert.False(t, c.IsLinked())
	c.Link(&st)
	assert.Equal(t, "a", c.Get())
	c.Set("b")
	assert.Equal(t, "b", st.Get(0))
	c.Deallocate(&st)
	assert.False(t, c.IsValid())
	assert.True(t, st.IsFree(0))
}
