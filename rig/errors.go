// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import "errors"

var (
	// ErrElementNotFound is returned for keys without an element.
	ErrElementNotFound = errors.New("element not found")

	// ErrDuplicateKey is returned when adding or renaming to a key in use.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidKey is returned for keys without a type or a name.
	ErrInvalidKey = errors.New("invalid key")

	// ErrCycle is returned when parenting would create a cycle.
	ErrCycle = errors.New("parent cycle")

	// ErrNotTransform is returned when a pose operation is applied
	// to an element that has no pose.
	ErrNotTransform = errors.New("element has no transform")

	// ErrWrongType is returned when an operation does not apply to
	// the type of the element.
	ErrWrongType = errors.New("wrong element type")

	// ErrComponentNotFound is returned for component keys without a component.
	ErrComponentNotFound = errors.New("component not found")
)
