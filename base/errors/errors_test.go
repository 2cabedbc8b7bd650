// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil))
	err := Wrap(fs.ErrNotExist)
	var e *Error
	assert.True(t, As(err, &e))
	assert.True(t, Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), fs.ErrNotExist.Error())
}

func TestErrorf(t *testing.T) {
	err := Errorf("element %q: %w", "Bone(root)", fs.ErrInvalid)
	assert.True(t, Is(err, fs.ErrInvalid))
	assert.Contains(t, err.Error(), `element "Bone(root)"`)
}

func TestAssert(t *testing.T) {
	assert.NotPanics(t, func() { Assert(true, "never") })
	defer func() {
		r := recover()
		err, ok := r.(error)
		assert.True(t, ok)
		var e *Error
		assert.True(t, As(err, &e))
		assert.Equal(t, "bad index 3", e.Base.Error())
	}()
	Assert(false, "bad index %d", 3)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, 2, Log1(2, nil))
	assert.Equal(t, 0, Ignore1(0, fs.ErrClosed))
	assert.Equal(t, 5, Must1(5, nil))
	assert.Panics(t, func() { Must(fs.ErrClosed) })
	assert.NoError(t, Log(nil))
	assert.Error(t, Log(fs.ErrClosed))
}
