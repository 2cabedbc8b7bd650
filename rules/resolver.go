// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rules

import (
	"fmt"
	"log/slog"
	"strings"

	"cogentcore.org/rig/base/errors"
	"cogentcore.org/rig/rig"
)

// Match is the verdict for one candidate element.
type Match struct {
	Key rig.ElementKey
	Result
}

// ResultState is the outcome of resolving a connector.
type ResultState uint8

const (
	ResultSuccess ResultState = iota
	ResultError
)

func (rs ResultState) String() string {
	if rs == ResultError {
		return "Error"
	}
	return "Success"
}

// ResolveResult is the outcome of resolving one connector against
// all candidate elements of a hierarchy.
type ResolveResult struct {
	Connector rig.ElementKey

	// Matches are the accepted candidates, in hierarchy order.
	Matches []Match

	// Excluded are the rejected candidates with the reason.
	Excluded []Match

	State ResultState

	// Message explains an error state.
	Message string
}

// IsValid returns whether the resolution succeeded.
func (rr *ResolveResult) IsValid() bool {
	return rr.State == ResultSuccess
}

// ContainsMatch returns whether key is among the matches.
func (rr *ResolveResult) ContainsMatch(key rig.ElementKey) bool {
	return rr.FindMatch(key) != nil
}

// FindMatch returns the match for key, or nil.
func (rr *ResolveResult) FindMatch(key rig.ElementKey) *Match {
	for i := range rr.Matches {
		if rr.Matches[i].Key == key {
			return &rr.Matches[i]
		}
	}
	return nil
}

// DefaultMatch returns the first default match, or nil.
func (rr *ResolveResult) DefaultMatch() *Match {
	for i := range rr.Matches {
		if rr.Matches[i].State == DefaultTarget {
			return &rr.Matches[i]
		}
	}
	return nil
}

// Resolver applies the rules of connectors to the elements of a hierarchy.
type Resolver struct {
	Context *Context

	// Candidates are the element types considered. Connectors are
	// never candidates.
	Candidates rig.ElementType

	// PromoteSingleMatch makes a single possible match the default.
	PromoteSingleMatch bool
}

// NewResolver returns a resolver for all transform elements.
func NewResolver(ctx *Context) *Resolver {
	return &Resolver{Context: ctx, Candidates: rig.ElementTypeTransforms, PromoteSingleMatch: true}
}

// Resolve evaluates the rules of the connector for every candidate.
// An error is returned only if the connector or its rules are
// unusable; an ambiguous default is reported in the result.
func (r *Resolver) Resolve(connector rig.ElementKey) (*ResolveResult, error) {
	h := r.Context.Hierarchy
	ci := h.IndexOf(connector)
	c, ok := h.Get(ci).(*rig.Connector)
	if !ok {
		return nil, errors.Errorf("rules: resolve %v: %w", connector, rig.ErrElementNotFound)
	}
	rule, err := FromConnector(&c.Settings)
	if err != nil {
		return nil, errors.Errorf("rules: resolve %v: %w", connector, err)
	}
	ctx := *r.Context
	ctx.Connector = c
	return r.ResolveRule(connector, rule, &ctx), nil
}

// ResolveRule evaluates rule for every candidate.
func (r *Resolver) ResolveRule(connector rig.ElementKey, rule Rule, ctx *Context) *ResolveResult {
	h := ctx.Hierarchy
	res := &ResolveResult{Connector: connector}
	for _, k := range h.Keys(r.Candidates &^ rig.ElementTypeConnector) {
		e := h.Get(h.IndexOf(k))
		m := Match{Key: k, Result: rule.Resolve(e, ctx)}
		if m.State.IsValid() {
			res.Matches = append(res.Matches, m)
		} else {
			res.Excluded = append(res.Excluded, m)
		}
	}
	var defaults []string
	for _, m := range res.Matches {
		if m.State == DefaultTarget {
			defaults = append(defaults, m.Key.String())
		}
	}
	switch {
	case len(defaults) > 1:
		res.State = ResultError
		res.Message = fmt.Sprintf("%v has more than one default target: %s", connector, strings.Join(defaults, ", "))
		slog.Warn("rules: ambiguous default target", "connector", connector, "defaults", len(defaults))
	case len(defaults) == 0 && len(res.Matches) == 1 && r.PromoteSingleMatch:
		res.Matches[0].State = DefaultTarget
	}
	return res
}
