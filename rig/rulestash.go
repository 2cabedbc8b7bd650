// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import (
	"github.com/cespare/xxhash"
)

// Connection rule kinds stored in a [ConnectionRuleStash].
const (
	RuleType           = "Type"
	RuleTag            = "Tag"
	RuleAnd            = "And"
	RuleOr             = "Or"
	RuleChildOfPrimary = "ChildOfPrimary"
)

// ConnectionRuleStash is the serialized form of a connection rule,
// as stored in [ConnectorSettings]. Only the fields used by the
// rule kind are set.
type ConnectionRuleStash struct {
	Kind string `toml:"kind" yaml:"kind"`

	// Types is the accepted type mask of a Type rule.
	Types ElementType `toml:"types,omitempty" yaml:"types,omitempty"`

	// Tag is the required tag of a Tag rule.
	Tag string `toml:"tag,omitempty" yaml:"tag,omitempty"`

	// Default marks elements carrying the tag of a Tag rule as
	// default targets.
	Default bool `toml:"default,omitempty" yaml:"default,omitempty"`

	// Children are the sub rules of an And or Or rule.
	Children []ConnectionRuleStash `toml:"children,omitempty" yaml:"children,omitempty"`
}

// Hash returns a structural hash of the rule.
func (rs ConnectionRuleStash) Hash() uint64 {
	b := make([]byte, 0, len(rs.Kind)+len(rs.Tag)+2)
	b = append(b, rs.Kind...)
	b = append(b, 0, byte(rs.Types))
	if rs.Default {
		b = append(b, 1)
	}
	b = append(b, rs.Tag...)
	h := xxhash.Sum64(b)
	for _, c := range rs.Children {
		h = HashCombine(h, c.Hash())
	}
	return h
}

// HashCombine mixes b into a. It is order dependent.
func HashCombine(a, b uint64) uint64 {
	return a ^ (b + 0x9e3779b97f4a7c15 + (a << 6) + (a >> 2))
}
