// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rules provides the connection rules that decide which
// elements of a hierarchy a connector of a modular rig may be bound
// to, and a resolver that applies them to all candidate elements.
package rules

import (
	"fmt"

	"cogentcore.org/rig/rig"
)

// ResolveState is the verdict of a rule for one candidate element.
type ResolveState uint8

const (
	// InvalidTarget means the element cannot be bound.
	InvalidTarget ResolveState = iota

	// PossibleTarget means the element may be bound.
	PossibleTarget

	// DefaultTarget means the element may be bound and should be
	// chosen when nothing else is specified.
	DefaultTarget
)

func (rs ResolveState) String() string {
	switch rs {
	case PossibleTarget:
		return "PossibleTarget"
	case DefaultTarget:
		return "DefaultTarget"
	}
	return "InvalidTarget"
}

// IsValid returns whether the state allows binding.
func (rs ResolveState) IsValid() bool {
	return rs != InvalidTarget
}

// Result is the verdict of a rule with an explanation.
type Result struct {
	State   ResolveState
	Message string
}

// Invalid returns an [InvalidTarget] result with a formatted message.
func Invalid(format string, a ...any) Result {
	return Result{State: InvalidTarget, Message: fmt.Sprintf(format, a...)}
}

// Possible returns a [PossibleTarget] result.
func Possible() Result {
	return Result{State: PossibleTarget}
}

// Default returns a [DefaultTarget] result.
func Default() Result {
	return Result{State: DefaultTarget}
}

// Rule decides whether a candidate element is a valid target.
type Rule interface {
	// Resolve returns the verdict for target in the given context.
	Resolve(target rig.Element, ctx *Context) Result

	// Stash returns the serialized form of the rule.
	Stash() rig.ConnectionRuleStash
}

// TypeRule accepts elements of the given types.
type TypeRule struct {
	Types rig.ElementType
}

func (r *TypeRule) Resolve(target rig.Element, ctx *Context) Result {
	k := target.AsBase().Key()
	if !k.IsTypeOf(r.Types) {
		return Invalid("%v is not of type %v", k, r.Types)
	}
	return Possible()
}

func (r *TypeRule) Stash() rig.ConnectionRuleStash {
	return rig.ConnectionRuleStash{Kind: rig.RuleType, Types: r.Types}
}

// TagRule accepts elements carrying a metadata tag. With Default,
// tagged elements are default targets.
type TagRule struct {
	Tag     string
	Default bool
}

func (r *TagRule) Resolve(target rig.Element, ctx *Context) Result {
	k := target.AsBase().Key()
	if ctx.Tags == nil || !ctx.Tags.HasTag(k, r.Tag) {
		return Invalid("%v does not have tag %q", k, r.Tag)
	}
	if r.Default {
		return Default()
	}
	return Possible()
}

func (r *TagRule) Stash() rig.ConnectionRuleStash {
	return rig.ConnectionRuleStash{Kind: rig.RuleTag, Tag: r.Tag, Default: r.Default}
}

// AndRule requires all children to accept the element. It stops at
// the first invalid child; otherwise the result of the last child
// is returned, so a later child can weaken a default to a possible
// target. An empty AndRule accepts everything.
type AndRule struct {
	Children []Rule
}

func (r *AndRule) Resolve(target rig.Element, ctx *Context) Result {
	res := Possible()
	for _, c := range r.Children {
		res = c.Resolve(target, ctx)
		if !res.State.IsValid() {
			return res
		}
	}
	return res
}

func (r *AndRule) Stash() rig.ConnectionRuleStash {
	return rig.ConnectionRuleStash{Kind: rig.RuleAnd, Children: stashAll(r.Children)}
}

// OrRule requires one child to accept the element, and returns the
// result of the first that does. If none does, the result of the
// last child is returned. An empty OrRule accepts nothing.
type OrRule struct {
	Children []Rule
}

func (r *OrRule) Resolve(target rig.Element, ctx *Context) Result {
	res := Invalid("no rule accepts %v", target.AsBase().Key())
	for _, c := range r.Children {
		res = c.Resolve(target, ctx)
		if res.State.IsValid() {
			return res
		}
	}
	return res
}

func (r *OrRule) Stash() rig.ConnectionRuleStash {
	return rig.ConnectionRuleStash{Kind: rig.RuleOr, Children: stashAll(r.Children)}
}

// ChildOfPrimaryRule accepts elements below the element that the
// primary connector of the module is bound to. It cannot be used
// on primary connectors.
type ChildOfPrimaryRule struct{}

func (r *ChildOfPrimaryRule) Resolve(target rig.Element, ctx *Context) Result {
	if ctx.Connector != nil && ctx.Connector.IsPrimary() {
		return Invalid("%v is a primary connector", ctx.Connector.Key())
	}
	if ctx.Module == nil {
		return Invalid("no module to find the primary connector of")
	}
	primary, ok := ctx.Module.PrimaryConnectorTarget()
	if !ok {
		return Invalid("primary connector of module %q is not resolved", ctx.Module.Name())
	}
	k := target.AsBase().Key()
	if ctx.Hierarchy == nil || !ctx.Hierarchy.IsParentedTo(k, primary) {
		return Invalid("%v is not a child of primary target %v", k, primary)
	}
	return Possible()
}

func (r *ChildOfPrimaryRule) Stash() rig.ConnectionRuleStash {
	return rig.ConnectionRuleStash{Kind: rig.RuleChildOfPrimary}
}

func stashAll(rules []Rule) []rig.ConnectionRuleStash {
	res := make([]rig.ConnectionRuleStash, len(rules))
	for i, r := range rules {
		res[i] = r.Stash()
	}
	return res
}
