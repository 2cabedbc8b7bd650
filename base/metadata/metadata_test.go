// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestData(t *testing.T) {
	var md Data
	md.Set("Color", "red")
	v, err := Get[string](md, "Color")
	require.NoError(t, err)
	assert.Equal(t, "red", v)

	_, err = Get[int](md, "Color")
	assert.Error(t, err)
	_, err = Get[int](md, "Missing")
	assert.Error(t, err)

	assert.True(t, md.Delete("Color"))
	assert.False(t, md.Delete("Color"))
}

func TestTags(t *testing.T) {
	var md Data
	assert.False(t, md.HasTag("IK"))
	assert.True(t, md.SetTag("IK"))
	assert.False(t, md.SetTag("IK"))
	assert.True(t, md.SetTag("Arm"))
	assert.Equal(t, []string{"IK", "Arm"}, md.Tags())

	var cp Data
	cp.Copy(md)
	assert.True(t, md.RemoveTag("IK"))
	assert.False(t, md.HasTag("IK"))
	assert.True(t, cp.HasTag("IK"))
}

func TestStore(t *testing.T) {
	var st Store[string]
	assert.False(t, st.HasTag("hand", "IK"))
	assert.True(t, st.SetTag("hand", "IK"))
	assert.True(t, st.HasTag("hand", "IK"))
	st.Set("hand", "Description", "left hand")

	d, err := GetFor[string](&st, "hand", "Description")
	require.NoError(t, err)
	assert.Equal(t, "left hand", d)

	st.Rename("hand", "hand_l")
	assert.False(t, st.HasTag("hand", "IK"))
	assert.True(t, st.HasTag("hand_l", "IK"))
	assert.Equal(t, 1, st.Len())

	assert.True(t, st.Remove("hand_l", "Description"))
	assert.True(t, st.Remove("hand_l", TagsKey))
	assert.Equal(t, 0, st.Len())
}
