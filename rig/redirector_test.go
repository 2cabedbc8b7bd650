// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyRedirectorAdd(t *testing.T) {
	fs := newFakeSnapshot(BoneKey("hand"), BoneKey("arm"))
	var kr KeyRedirector
	src := ConnectorKey("Root")

	assert.False(t, kr.Add(src, []ElementKey{BoneKey("hand"), src}, fs))
	assert.False(t, kr.Add(src, nil, fs))
	assert.False(t, kr.Add(src, []ElementKey{{}}, fs))
	assert.Equal(t, 0, kr.Len())
	assert.Equal(t, uint64(0), kr.Hash())

	require.True(t, kr.Add(src, []ElementKey{BoneKey("hand"), BoneKey("missing")}, fs))
	assert.True(t, kr.Contains(src))
	assert.Equal(t, []ElementKey{BoneKey("hand"), BoneKey("missing")}, kr.FindExternal(src))
	found := kr.Find(src, fs)
	require.Len(t, found, 2)
	assert.True(t, found[0].IsValid())
	assert.Equal(t, 0, found[0].Index())
	assert.False(t, found[1].IsValid())
	assert.Equal(t, BoneKey("missing"), found[1].Key())

	// replacing a binding
	require.True(t, kr.Add(src, []ElementKey{BoneKey("arm")}, fs))
	assert.Equal(t, 1, kr.Len())
	assert.Equal(t, []ElementKey{BoneKey("arm")}, kr.FindExternal(src))

	assert.Nil(t, kr.Find(ConnectorKey("other"), fs))
	assert.True(t, kr.Remove(src))
	assert.False(t, kr.Remove(src))
	assert.Equal(t, uint64(0), kr.Hash())
}

func TestKeyRedirectorFindRevalidates(t *testing.T) {
	fs := newFakeSnapshot(BoneKey("a"))
	var kr KeyRedirector
	kr.Add(ConnectorKey("c"), []ElementKey{BoneKey("late")}, fs)
	assert.False(t, kr.Find(ConnectorKey("c"), fs)[0].IsValid())
	fs.add(BoneKey("late"))
	found := kr.Find(ConnectorKey("c"), fs)
	assert.True(t, found[0].IsValid())
	assert.Equal(t, 1, found[0].Index())
}

func TestKeyRedirectorHash(t *testing.T) {
	fs := newFakeSnapshot(BoneKey("a"), BoneKey("b"))
	var a, b KeyRedirector
	a.Add(ConnectorKey("x"), []ElementKey{BoneKey("a")}, fs)
	a.Add(ConnectorKey("y"), []ElementKey{BoneKey("b")}, fs)
	b.Add(ConnectorKey("y"), []ElementKey{BoneKey("b")}, fs)
	b.Add(ConnectorKey("x"), []ElementKey{BoneKey("a")}, fs)
	assert.Equal(t, a.Hash(), b.Hash())
	assert.True(t, a.Equal(&b))

	b.Add(ConnectorKey("x"), []ElementKey{BoneKey("b")}, fs)
	assert.NotEqual(t, a.Hash(), b.Hash())
	assert.False(t, a.Equal(&b))

	// target order matters within one binding
	var c, d KeyRedirector
	c.Add(ConnectorKey("x"), []ElementKey{BoneKey("a"), BoneKey("b")}, fs)
	d.Add(ConnectorKey("x"), []ElementKey{BoneKey("b"), BoneKey("a")}, fs)
	assert.False(t, c.Equal(&d))

	var none *KeyRedirector
	assert.False(t, c.Equal(none))
	assert.False(t, none.Equal(&c))
	assert.True(t, none.Equal(nil))
}

func TestKeyRedirectorFindReverse(t *testing.T) {
	fs := newFakeSnapshot(BoneKey("shared"))
	var kr KeyRedirector
	kr.Add(ConnectorKey("second"), []ElementKey{BoneKey("shared")}, fs)
	kr.Add(ConnectorKey("first"), []ElementKey{BoneKey("other"), BoneKey("shared")}, fs)
	src, ok := kr.FindReverse(BoneKey("shared"))
	require.True(t, ok)
	assert.Equal(t, ConnectorKey("second"), src)
	assert.Equal(t, []ElementKey{ConnectorKey("second"), ConnectorKey("first")}, kr.Keys())

	_, ok = kr.FindReverse(BoneKey("none"))
	assert.False(t, ok)
}

func TestNewKeyRedirector(t *testing.T) {
	fs := newFakeSnapshot(BoneKey("a"))
	kr := NewKeyRedirector(map[ElementKey][]ElementKey{
		ConnectorKey("b"): {BoneKey("a")},
		ConnectorKey("a"): {BoneKey("a")},
		ConnectorKey("c"): {ConnectorKey("c")},
	}, fs)
	assert.Equal(t, []ElementKey{ConnectorKey("a"), ConnectorKey("b")}, kr.Keys())
}
