// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package modular

import (
	"testing"

	"cogentcore.org/rig/math32"
	"cogentcore.org/rig/rig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func armConnectors() []ConnectorSpec {
	return []ConnectorSpec{
		{Name: "Root", Settings: rig.ConnectorSettings{
			Type: rig.ConnectorPrimary,
			Rules: []rig.ConnectionRuleStash{
				{Kind: rig.RuleType, Types: rig.ElementTypeBone | rig.ElementTypeSocket},
				{Kind: rig.RuleTag, Tag: "ArmSlot", Default: true},
			},
		}},
		{Name: "Hand", Settings: rig.ConnectorSettings{
			Type: rig.ConnectorSecondary,
			Rules: []rig.ConnectionRuleStash{
				{Kind: rig.RuleType, Types: rig.ElementTypeSocket},
				{Kind: rig.RuleChildOfPrimary},
			},
		}},
	}
}

func newTestRig(t *testing.T) *Rig {
	h := rig.NewHierarchy()
	pose := rig.LocalPose(math32.Translate(0, 1, 0))
	_, err := h.AddBone("root", rig.ElementKey{}, pose, rig.BoneImported)
	require.NoError(t, err)
	_, err = h.AddBone("spine", rig.BoneKey("root"), pose, rig.BoneImported)
	require.NoError(t, err)
	_, err = h.AddBone("arm", rig.BoneKey("spine"), pose, rig.BoneImported)
	require.NoError(t, err)
	_, err = h.AddSocket("hand", rig.BoneKey("arm"), pose, "", "")
	require.NoError(t, err)
	_, err = h.AddSocket("hip", rig.BoneKey("root"), pose, "", "")
	require.NoError(t, err)
	require.NoError(t, h.SetTag(rig.BoneKey("spine"), "ArmSlot"))
	return New(h)
}

func TestAddModule(t *testing.T) {
	r := newTestRig(t)
	m, err := r.AddModule("Arm", armConnectors()...)
	require.NoError(t, err)
	assert.Equal(t, []rig.ElementKey{rig.ConnectorKey("Arm:Root"), rig.ConnectorKey("Arm:Hand")}, m.Connectors)
	assert.True(t, r.Hierarchy.Contains(rig.ConnectorKey("Arm:Hand")))
	pk, ok := m.PrimaryConnector()
	assert.True(t, ok)
	assert.Equal(t, rig.ConnectorKey("Arm:Root"), pk)
	assert.Same(t, m, r.ModuleOf(rig.ConnectorKey("arm:Hand")))

	_, err = r.AddModule("Arm")
	assert.ErrorIs(t, err, rig.ErrDuplicateKey)
	_, err = r.AddModule("Leg:L")
	assert.Error(t, err)
	_, err = r.AddModule("Leg", armConnectors()[0], armConnectors()[0])
	assert.Error(t, err)
	assert.Nil(t, r.Module("Leg"))

	require.NoError(t, r.RemoveModule("Arm"))
	assert.False(t, r.Hierarchy.Contains(rig.ConnectorKey("Arm:Root")))
	assert.ErrorIs(t, r.RemoveModule("Arm"), ErrModuleNotFound)
}

func TestConnect(t *testing.T) {
	r := newTestRig(t)
	m, err := r.AddModule("Arm", armConnectors()...)
	require.NoError(t, err)

	// the primary target is not resolved yet
	assert.ErrorIs(t, r.Connect("Arm", "Hand", rig.SocketKey("hand")), ErrInvalidTarget)

	assert.ErrorIs(t, r.Connect("Arm", "Root", rig.BoneKey("arm")), ErrInvalidTarget)
	assert.ErrorIs(t, r.Connect("Arm", "Root", rig.BoneKey("nope")), rig.ErrElementNotFound)
	assert.ErrorIs(t, r.Connect("Arm", "Foot", rig.BoneKey("spine")), ErrConnectorNotFound)
	assert.ErrorIs(t, r.Connect("Leg", "Root", rig.BoneKey("spine")), ErrModuleNotFound)
	assert.Error(t, r.Connect("Arm", "Root"))
	assert.Error(t, r.Connect("Arm", "Root", rig.BoneKey("spine"), rig.BoneKey("spine")))

	require.NoError(t, r.Connect("Arm", "Root", rig.BoneKey("spine")))
	target, ok := m.PrimaryConnectorTarget()
	assert.True(t, ok)
	assert.Equal(t, rig.BoneKey("spine"), target)

	assert.ErrorIs(t, r.Connect("Arm", "Hand", rig.SocketKey("hip")), ErrInvalidTarget)
	require.NoError(t, r.Connect("Arm", "Hand", rig.SocketKey("hand")))
	assert.Equal(t, []rig.ElementKey{rig.SocketKey("hand")}, r.Connections(rig.ConnectorKey("Arm:Hand")))

	ok, err = r.Disconnect("Arm", "Hand")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = r.Disconnect("Arm", "Hand")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArrayConnector(t *testing.T) {
	r := newTestRig(t)
	cs := rig.DefaultConnectorSettings()
	cs.IsArray = true
	_, err := r.AddModule("Fx", ConnectorSpec{Name: "Sockets", Settings: cs})
	require.NoError(t, err)
	require.NoError(t, r.Connect("Fx", "Sockets", rig.SocketKey("hand"), rig.SocketKey("hip")))
	assert.Len(t, r.Connections(rig.ConnectorKey("Fx:Sockets")), 2)
}

func TestAutoResolve(t *testing.T) {
	r := newTestRig(t)
	m, err := r.AddModule("Arm", armConnectors()...)
	require.NoError(t, err)
	bound, err := r.AutoResolve()
	require.NoError(t, err)
	assert.Equal(t, []rig.ElementKey{rig.ConnectorKey("Arm:Root"), rig.ConnectorKey("Arm:Hand")}, bound)
	target, ok := m.PrimaryConnectorTarget()
	assert.True(t, ok)
	assert.Equal(t, rig.BoneKey("spine"), target)
	assert.Equal(t, []rig.ElementKey{rig.SocketKey("hand")}, r.Connections(rig.ConnectorKey("Arm:Hand")))

	bound, err = r.AutoResolve()
	require.NoError(t, err)
	assert.Empty(t, bound)
}

func TestAutoResolveErrors(t *testing.T) {
	r := newTestRig(t)
	optional := rig.DefaultConnectorSettings()
	optional.Type = rig.ConnectorSecondary
	optional.Optional = true
	_, err := r.AddModule("Fx",
		ConnectorSpec{Name: "Any", Settings: rig.DefaultConnectorSettings()},
		ConnectorSpec{Name: "Maybe", Settings: optional},
	)
	require.NoError(t, err)
	bound, err := r.AutoResolve()
	assert.Empty(t, bound)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Connector(Fx:Any)")
	assert.NotContains(t, err.Error(), "Maybe")
}

func TestRedirector(t *testing.T) {
	r := newTestRig(t)
	_, err := r.AddModule("Arm", armConnectors()...)
	require.NoError(t, err)
	_, err = r.AutoResolve()
	require.NoError(t, err)

	kr, err := r.Redirector("Arm")
	require.NoError(t, err)
	assert.Equal(t, 2, kr.Len())
	assert.Equal(t, []rig.ElementKey{rig.SocketKey("hand")}, kr.FindExternal(rig.ConnectorKey("Arm:Hand")))
	src, ok := kr.FindReverse(rig.BoneKey("spine"))
	assert.True(t, ok)
	assert.Equal(t, rig.ConnectorKey("Arm:Root"), src)
	targets := kr.Find(rig.ConnectorKey("Arm:Hand"), r.Hierarchy)
	require.Len(t, targets, 1)
	assert.Equal(t, r.Hierarchy.IndexOf(rig.SocketKey("hand")), targets[0].Index())

	same, err := r.Redirector("Arm")
	require.NoError(t, err)
	assert.Same(t, kr, same)

	_, err = r.Disconnect("Arm", "Hand")
	require.NoError(t, err)
	kr, err = r.Redirector("Arm")
	require.NoError(t, err)
	assert.False(t, kr.Contains(rig.ConnectorKey("Arm:Hand")))

	_, err = r.Redirector("Leg")
	assert.ErrorIs(t, err, ErrModuleNotFound)
}

func TestElementEditsUpdateConnections(t *testing.T) {
	r := newTestRig(t)
	m, err := r.AddModule("Arm", armConnectors()...)
	require.NoError(t, err)
	_, err = r.AutoResolve()
	require.NoError(t, err)
	hand := rig.ConnectorKey("Arm:Hand")

	palm, err := r.RenameElement(rig.SocketKey("hand"), "palm")
	require.NoError(t, err)
	assert.Equal(t, rig.SocketKey("palm"), palm)
	assert.Equal(t, []rig.ElementKey{palm}, r.Connections(hand))
	kr, err := r.Redirector("Arm")
	require.NoError(t, err)
	assert.Equal(t, []rig.ElementKey{palm}, kr.FindExternal(hand))

	require.NoError(t, r.RemoveElement(palm))
	assert.False(t, r.IsConnected(hand))
	kr, err = r.Redirector("Arm")
	require.NoError(t, err)
	assert.False(t, kr.Contains(hand))

	// renamed behind the rig's back
	_, err = r.Hierarchy.Rename(rig.BoneKey("spine"), "chest")
	require.NoError(t, err)
	_, ok := m.PrimaryConnectorTarget()
	assert.False(t, ok)
	assert.Empty(t, r.ConnectionMap())

	assert.Error(t, r.RemoveElement(rig.ConnectorKey("Arm:Root")))
	_, err = r.RenameElement(hand, "Arm:Wrist")
	assert.Error(t, err)
	assert.ErrorIs(t, r.RemoveElement(rig.BoneKey("nope")), rig.ErrElementNotFound)
}
