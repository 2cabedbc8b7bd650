// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rules

import "cogentcore.org/rig/rig"

// Hierarchy is the read access to a hierarchy that rules and the
// resolver need. [*rig.Hierarchy] implements it.
type Hierarchy interface {
	rig.Snapshot

	// Keys returns the keys of all elements of the given types.
	Keys(mask rig.ElementType) []rig.ElementKey

	// IsParentedTo returns whether child descends from ancestor.
	IsParentedTo(child, ancestor rig.ElementKey) bool
}

// TagStore answers tag queries for the Tag rule. [*rig.Hierarchy]
// implements it.
type TagStore interface {
	HasTag(key rig.ElementKey, tag string) bool
}

// ModuleInstance is the module a connector belongs to.
type ModuleInstance interface {
	// Name returns the module name.
	Name() string

	// PrimaryConnectorTarget returns the element the primary
	// connector of the module is bound to.
	PrimaryConnectorTarget() (rig.ElementKey, bool)
}

// Context is what rules are evaluated against.
type Context struct {
	Hierarchy Hierarchy

	Tags TagStore

	// Module is the module of the connector, if any.
	Module ModuleInstance

	// Connector is the connector being resolved, if any.
	Connector *rig.Connector
}

// NewContext returns a context for h, which is also used as tag store.
func NewContext(h *rig.Hierarchy, module ModuleInstance) *Context {
	return &Context{Hierarchy: h, Tags: h, Module: module}
}
