// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import (
	"cogentcore.org/rig/base/metadata"
)

// Component is a named sub object attached to an element, or to
// the hierarchy itself for top level components.
type Component struct {
	key ComponentKey

	index int

	elementIndex int

	createdAtInstruction int

	// Type is the kind of the component.
	Type string

	// Singleton components are the only component of their type
	// on their element.
	Singleton bool

	// Content is the user data of the component.
	Content metadata.Data
}

// Key returns the component key.
func (c *Component) Key() ComponentKey { return c.key }

// Index returns the index in the hierarchy component table.
func (c *Component) Index() int { return c.index }

// ElementIndex returns the index of the owning element, or [IndexNone].
func (c *Component) ElementIndex() int { return c.elementIndex }

// CreatedAtInstructionIndex returns the creating instruction, or [IndexNone].
func (c *Component) CreatedAtInstructionIndex() int { return c.createdAtInstruction }

// IsProcedural returns whether an instruction created the component.
func (c *Component) IsProcedural() bool { return c.createdAtInstruction != IndexNone }
