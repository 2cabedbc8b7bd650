// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyCollection(t *testing.T) {
	h := newTestHierarchy(t)
	all := FromHierarchy(h, ElementTypeAll)
	assert.Len(t, all, 5)
	assert.Equal(t, KeyCollection{BoneKey("root"), BoneKey("spine"), BoneKey("head")}, all.FilterByType(ElementTypeBone))

	assert.Equal(t, KeyCollection{BoneKey("spine"), BoneKey("head")},
		FromChildren(h, BoneKey("spine"), true, true, ElementTypeBone))
	assert.Equal(t, KeyCollection{BoneKey("head"), ControlKey("head_ctrl")},
		FromChildren(h, BoneKey("spine"), false, false, ElementTypeAll))
	assert.Nil(t, FromChildren(h, BoneKey("nope"), true, true, ElementTypeAll))

	assert.Equal(t, KeyCollection{BoneKey("head"), ControlKey("head_ctrl")}, FromName(h, "head", ElementTypeAll))

	chain := FromChain(h, BoneKey("root"), BoneKey("head"), false)
	assert.Equal(t, KeyCollection{BoneKey("root"), BoneKey("spine"), BoneKey("head")}, chain)
	assert.Equal(t, chain.Reversed(), FromChain(h, BoneKey("root"), BoneKey("head"), true))
	assert.Nil(t, FromChain(h, BoneKey("head"), BoneKey("root"), false))

	a := KeyCollection{BoneKey("a"), BoneKey("b")}
	b := KeyCollection{BoneKey("b"), BoneKey("c")}
	assert.Equal(t, KeyCollection{BoneKey("a"), BoneKey("b"), BoneKey("c")}, Union(a, b, false))
	assert.Len(t, Union(a, b, true), 4)
	assert.Equal(t, KeyCollection{BoneKey("b")}, Intersection(a, b))
	assert.Equal(t, KeyCollection{BoneKey("a")}, Difference(a, b))
}

func TestSuggestKeys(t *testing.T) {
	h := newTestHierarchy(t)
	s := SuggestKeys(h, BoneKey("hed"), 3)
	if assert.NotEmpty(t, s) {
		assert.Equal(t, BoneKey("head"), s[0])
	}
	assert.Empty(t, SuggestKeys(h, BoneKey("zzzzzz"), 3))
}
