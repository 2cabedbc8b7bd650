// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rules

import (
	"testing"

	"cogentcore.org/rig/math32"
	"cogentcore.org/rig/rig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRule returns a fixed result and counts its evaluations.
type fixedRule struct {
	result Result
	calls  int
}

func (r *fixedRule) Resolve(target rig.Element, ctx *Context) Result {
	r.calls++
	return r.result
}

func (r *fixedRule) Stash() rig.ConnectionRuleStash {
	return rig.ConnectionRuleStash{Kind: "Fixed"}
}

type testModule struct {
	primary rig.ElementKey
}

func (m *testModule) Name() string { return "Arm" }

func (m *testModule) PrimaryConnectorTarget() (rig.ElementKey, bool) {
	return m.primary, m.primary.IsValid()
}

func newRulesHierarchy(t *testing.T) *rig.Hierarchy {
	h := rig.NewHierarchy()
	_, err := h.AddBone("root", rig.ElementKey{}, rig.LocalPose(math32.Identity()), rig.BoneImported)
	require.NoError(t, err)
	_, err = h.AddBone("arm", rig.BoneKey("root"), rig.LocalPose(math32.Translate(1, 0, 0)), rig.BoneImported)
	require.NoError(t, err)
	_, err = h.AddSocket("hand", rig.BoneKey("arm"), rig.LocalPose(math32.Translate(1, 0, 0)), "", "")
	require.NoError(t, err)
	_, err = h.AddSocket("hip", rig.BoneKey("root"), rig.LocalPose(math32.Identity()), "", "")
	require.NoError(t, err)
	return h
}

func TestAndOrShortCircuit(t *testing.T) {
	ctx := &Context{}
	target := &rig.Null{}
	r1 := &fixedRule{result: Invalid("no")}
	r2 := &fixedRule{result: Possible()}

	and := &AndRule{Children: []Rule{r1, r2}}
	assert.Equal(t, InvalidTarget, and.Resolve(target, ctx).State)
	assert.Equal(t, 0, r2.calls)

	or := &OrRule{Children: []Rule{r1, r2}}
	assert.Equal(t, PossibleTarget, or.Resolve(target, ctx).State)
	assert.Equal(t, 1, r2.calls)

	// the last result wins in an And
	def := &fixedRule{result: Default()}
	and = &AndRule{Children: []Rule{def, r2}}
	assert.Equal(t, PossibleTarget, and.Resolve(target, ctx).State)
	and = &AndRule{Children: []Rule{r2, def}}
	assert.Equal(t, DefaultTarget, and.Resolve(target, ctx).State)

	// the first valid result wins in an Or
	or = &OrRule{Children: []Rule{def, r2}}
	assert.Equal(t, DefaultTarget, or.Resolve(target, ctx).State)

	r3 := &fixedRule{result: Invalid("last")}
	res := (&OrRule{Children: []Rule{r1, r3}}).Resolve(target, ctx)
	assert.Equal(t, InvalidTarget, res.State)
	assert.Equal(t, "last", res.Message)

	assert.Equal(t, PossibleTarget, (&AndRule{}).Resolve(target, ctx).State)
	assert.Equal(t, InvalidTarget, (&OrRule{}).Resolve(target, ctx).State)
}

func TestSocketAndTag(t *testing.T) {
	h := newRulesHierarchy(t)
	require.NoError(t, h.SetTag(rig.SocketKey("hand"), "IK"))
	require.NoError(t, h.SetTag(rig.BoneKey("arm"), "IK"))
	ctx := NewContext(h, nil)
	rule := &AndRule{Children: []Rule{&TypeRule{Types: rig.ElementTypeSocket}, &TagRule{Tag: "IK"}}}

	resolve := func(k rig.ElementKey) Result {
		return rule.Resolve(h.Find(k), ctx)
	}
	assert.Equal(t, InvalidTarget, resolve(rig.SocketKey("hip")).State)
	res := resolve(rig.BoneKey("arm"))
	assert.Equal(t, InvalidTarget, res.State)
	assert.Contains(t, res.Message, "not of type Socket")
	assert.Equal(t, PossibleTarget, resolve(rig.SocketKey("hand")).State)
}

func TestChildOfPrimary(t *testing.T) {
	h := newRulesHierarchy(t)
	rule := &ChildOfPrimaryRule{}
	ctx := NewContext(h, &testModule{primary: rig.BoneKey("arm")})
	assert.Equal(t, PossibleTarget, rule.Resolve(h.Find(rig.SocketKey("hand")), ctx).State)
	assert.Equal(t, InvalidTarget, rule.Resolve(h.Find(rig.SocketKey("hip")), ctx).State)
	assert.Equal(t, InvalidTarget, rule.Resolve(h.Find(rig.BoneKey("arm")), ctx).State)

	assert.Equal(t, InvalidTarget, rule.Resolve(h.Find(rig.SocketKey("hand")), NewContext(h, nil)).State)
	unresolved := NewContext(h, &testModule{})
	assert.Equal(t, InvalidTarget, rule.Resolve(h.Find(rig.SocketKey("hand")), unresolved).State)
}

func TestStashRoundTrip(t *testing.T) {
	rule := &AndRule{Children: []Rule{
		&TypeRule{Types: rig.ElementTypeSocket | rig.ElementTypeBone},
		&OrRule{Children: []Rule{&TagRule{Tag: "IK", Default: true}, &ChildOfPrimaryRule{}}},
	}}
	st := rule.Stash()
	back, err := FromStash(st)
	require.NoError(t, err)
	assert.Equal(t, Rule(rule), back)
	assert.Equal(t, st.Hash(), back.Stash().Hash())

	_, err = FromStash(rig.ConnectionRuleStash{Kind: "Nope"})
	assert.Error(t, err)
	_, err = FromStash(rig.ConnectionRuleStash{Kind: rig.RuleAnd, Children: []rig.ConnectionRuleStash{{Kind: rig.RuleTag}}})
	assert.Error(t, err)
}

func TestResolver(t *testing.T) {
	h := newRulesHierarchy(t)
	_, err := h.AddConnector("Attach", rig.DefaultConnectorSettings())
	require.NoError(t, err)
	r := NewResolver(NewContext(h, nil))

	res, err := r.Resolve(rig.ConnectorKey("Attach"))
	require.NoError(t, err)
	assert.True(t, res.IsValid())
	assert.True(t, res.ContainsMatch(rig.SocketKey("hand")))
	assert.True(t, res.ContainsMatch(rig.SocketKey("hip")))
	assert.False(t, res.ContainsMatch(rig.BoneKey("arm")))
	assert.Len(t, res.Excluded, 2)
	assert.Nil(t, res.DefaultMatch())

	_, err = r.Resolve(rig.ConnectorKey("missing"))
	assert.ErrorIs(t, err, rig.ErrElementNotFound)
}

func TestResolverDefaults(t *testing.T) {
	h := newRulesHierarchy(t)
	cs := rig.ConnectorSettings{Rules: []rig.ConnectionRuleStash{
		{Kind: rig.RuleType, Types: rig.ElementTypeSocket},
		{Kind: rig.RuleTag, Tag: "IK", Default: true},
	}}
	_, err := h.AddConnector("IK", cs)
	require.NoError(t, err)
	r := NewResolver(NewContext(h, nil))

	require.NoError(t, h.SetTag(rig.SocketKey("hand"), "IK"))
	res, err := r.Resolve(rig.ConnectorKey("IK"))
	require.NoError(t, err)
	require.True(t, res.IsValid())
	require.NotNil(t, res.DefaultMatch())
	assert.Equal(t, rig.SocketKey("hand"), res.DefaultMatch().Key)

	require.NoError(t, h.SetTag(rig.SocketKey("hip"), "IK"))
	res, err = r.Resolve(rig.ConnectorKey("IK"))
	require.NoError(t, err)
	assert.False(t, res.IsValid())
	assert.Equal(t, ResultError, res.State)
	assert.Contains(t, res.Message, "Socket(hand)")
	assert.Contains(t, res.Message, "Socket(hip)")
}

func TestResolverPromotesSingleMatch(t *testing.T) {
	h := newRulesHierarchy(t)
	cs := rig.ConnectorSettings{Rules: []rig.ConnectionRuleStash{{Kind: rig.RuleTag, Tag: "only"}}}
	_, err := h.AddConnector("One", cs)
	require.NoError(t, err)
	require.NoError(t, h.SetTag(rig.BoneKey("arm"), "only"))
	r := NewResolver(NewContext(h, nil))
	res, err := r.Resolve(rig.ConnectorKey("One"))
	require.NoError(t, err)
	require.NotNil(t, res.DefaultMatch())
	assert.Equal(t, rig.BoneKey("arm"), res.DefaultMatch().Key)

	r.PromoteSingleMatch = false
	res, err = r.Resolve(rig.ConnectorKey("One"))
	require.NoError(t, err)
	assert.Nil(t, res.DefaultMatch())
}
