// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package modular assembles rigs from modules. A module owns a set
// of connectors in the hierarchy of its [Rig], named Module:Connector,
// and each connector is bound to one or more elements of the
// hierarchy that satisfy its connection rules.
package modular

import (
	"log/slog"
	"slices"
	"strings"

	"cogentcore.org/rig/base/errors"
	"cogentcore.org/rig/rig"
)

var (
	// ErrModuleNotFound is returned for unknown module names.
	ErrModuleNotFound = errors.New("module not found")

	// ErrConnectorNotFound is returned for connectors a module does not have.
	ErrConnectorNotFound = errors.New("connector not found")

	// ErrInvalidTarget is returned when a target does not satisfy
	// the rules of a connector.
	ErrInvalidTarget = errors.New("invalid connection target")
)

// ConnectorSpec describes a connector of a new module.
type ConnectorSpec struct {
	// Name is the connector name within the module.
	Name string

	Settings rig.ConnectorSettings
}

// Module is a module instance of a [Rig].
type Module struct {
	// Name is unique within the rig.
	Name string

	// Connectors are the keys of the connectors of the module,
	// in the order they were added.
	Connectors []rig.ElementKey

	rig *Rig
}

// ConnectorKey returns the key of the named connector of the module.
func (m *Module) ConnectorKey(name string) rig.ElementKey {
	return rig.ConnectorKey(string(rig.JoinModulePath(m.Name, name)))
}

// HasConnector returns whether key is a connector of the module.
func (m *Module) HasConnector(key rig.ElementKey) bool {
	return slices.Contains(m.Connectors, key)
}

// PrimaryConnector returns the key of the primary connector.
func (m *Module) PrimaryConnector() (rig.ElementKey, bool) {
	for _, k := range m.Connectors {
		if c, err := rig.FindAs[*rig.Connector](m.rig.Hierarchy, k); err == nil && c.IsPrimary() {
			return k, true
		}
	}
	return rig.ElementKey{}, false
}

// PrimaryConnectorTarget returns the element the primary connector
// is bound to.
func (m *Module) PrimaryConnectorTarget() (rig.ElementKey, bool) {
	pk, ok := m.PrimaryConnector()
	if !ok {
		return rig.ElementKey{}, false
	}
	m.rig.prune()
	ts := m.rig.connections[pk]
	if len(ts) == 0 {
		return rig.ElementKey{}, false
	}
	return ts[0], true
}

// Rig is a hierarchy together with the modules placed in it and
// the bindings of their connectors.
//
// Elements should be removed and renamed through [Rig.RemoveElement]
// and [Rig.RenameElement], which keep the bindings up to date. After
// edits made directly on the hierarchy, bindings to elements that no
// longer exist are dropped the next time the bindings are read.
type Rig struct {
	Hierarchy *rig.Hierarchy

	// Modules are the modules in the order they were added.
	Modules []*Module

	// connections maps connector keys to their targets.
	connections map[rig.ElementKey][]rig.ElementKey

	redirectors map[string]*rig.HierarchyCache[*rig.KeyRedirector]

	// prunedVersion is the topology version the bindings were
	// last checked against.
	prunedVersion int
}

// New returns a rig on the given hierarchy.
func New(h *rig.Hierarchy) *Rig {
	return &Rig{
		Hierarchy:     h,
		connections:   map[rig.ElementKey][]rig.ElementKey{},
		redirectors:   map[string]*rig.HierarchyCache[*rig.KeyRedirector]{},
		prunedVersion: h.TopologyVersion(),
	}
}

// Module returns the named module, or nil.
func (r *Rig) Module(name string) *Module {
	for _, m := range r.Modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// ModuleOf returns the module that owns the element, based on the
// module part of its name, or nil.
func (r *Rig) ModuleOf(key rig.ElementKey) *Module {
	p := rig.ModulePath(key.Name)
	for _, m := range r.Modules {
		if p.HasModuleName(m.Name) {
			return m
		}
	}
	return nil
}

// AddModule adds a module and its connectors to the hierarchy.
// A module has at most one primary connector.
func (r *Rig) AddModule(name string, connectors ...ConnectorSpec) (*Module, error) {
	if name == "" || strings.Contains(name, rig.ModuleSeparator) {
		return nil, errors.Errorf("modular: invalid module name %q", name)
	}
	if r.Module(name) != nil {
		return nil, errors.Errorf("modular: module %q: %w", name, rig.ErrDuplicateKey)
	}
	primaries := 0
	for _, cs := range connectors {
		if cs.Settings.Type == rig.ConnectorPrimary {
			primaries++
		}
	}
	if primaries > 1 {
		return nil, errors.Errorf("modular: module %q has %d primary connectors", name, primaries)
	}
	m := &Module{Name: name, rig: r}
	for _, cs := range connectors {
		c, err := r.Hierarchy.AddConnector(string(rig.JoinModulePath(name, cs.Name)), cs.Settings)
		if err != nil {
			for _, k := range m.Connectors {
				errors.Log(r.Hierarchy.Remove(k))
			}
			return nil, errors.Errorf("modular: module %q: %w", name, err)
		}
		m.Connectors = append(m.Connectors, c.Key())
	}
	r.Modules = append(r.Modules, m)
	slog.Debug("modular: added module", "module", name, "connectors", len(m.Connectors))
	return m, nil
}

// RemoveModule removes a module, its connectors and their bindings.
func (r *Rig) RemoveModule(name string) error {
	m := r.Module(name)
	if m == nil {
		return errors.Errorf("modular: remove %q: %w", name, ErrModuleNotFound)
	}
	var errs []error
	for _, k := range m.Connectors {
		delete(r.connections, k)
		errs = append(errs, r.Hierarchy.Remove(k))
	}
	r.Modules = slices.DeleteFunc(r.Modules, func(o *Module) bool { return o == m })
	delete(r.redirectors, name)
	return errors.Join(errs...)
}

// RemoveElement removes an element from the hierarchy and from the
// bindings it is a target of. Connectors are removed with their
// module through [Rig.RemoveModule].
func (r *Rig) RemoveElement(key rig.ElementKey) error {
	if key.IsTypeOf(rig.ElementTypeConnector) && r.ModuleOf(key) != nil {
		return errors.Errorf("modular: remove %v: connectors are removed with their module", key)
	}
	if err := r.Hierarchy.Remove(key); err != nil {
		return err
	}
	r.prune()
	return nil
}

// RenameElement renames an element of the hierarchy and updates the
// bindings it is a target of. It returns the new key.
func (r *Rig) RenameElement(key rig.ElementKey, name string) (rig.ElementKey, error) {
	if key.IsTypeOf(rig.ElementTypeConnector) && r.ModuleOf(key) != nil {
		return rig.ElementKey{}, errors.Errorf("modular: rename %v: connectors are named by their module", key)
	}
	r.prune()
	nk, err := r.Hierarchy.Rename(key, name)
	if err != nil || nk == key {
		return nk, err
	}
	for _, ts := range r.connections {
		for i, t := range ts {
			if t == key {
				ts[i] = nk
			}
		}
	}
	r.prunedVersion = r.Hierarchy.TopologyVersion()
	r.connectionsChanged()
	return nk, nil
}

// prune drops the bindings of missing connectors and the targets
// that are no longer in the hierarchy.
func (r *Rig) prune() {
	v := r.Hierarchy.TopologyVersion()
	if v == r.prunedVersion {
		return
	}
	r.prunedVersion = v
	changed := false
	for ck, ts := range r.connections {
		kept := slices.DeleteFunc(ts, func(t rig.ElementKey) bool {
			return !r.Hierarchy.Contains(t)
		})
		if len(kept) != len(ts) {
			slog.Debug("modular: dropped missing targets", "connector", ck, "dropped", len(ts)-len(kept))
			changed = true
		}
		if len(kept) == 0 || !r.Hierarchy.Contains(ck) {
			delete(r.connections, ck)
			changed = true
			continue
		}
		r.connections[ck] = kept
	}
	if changed {
		r.connectionsChanged()
	}
}

// Connections returns the targets of a connector.
func (r *Rig) Connections(connector rig.ElementKey) []rig.ElementKey {
	r.prune()
	return slices.Clone(r.connections[connector])
}

// IsConnected returns whether a connector has targets.
func (r *Rig) IsConnected(connector rig.ElementKey) bool {
	r.prune()
	return len(r.connections[connector]) > 0
}

// ConnectionMap returns a copy of all bindings.
func (r *Rig) ConnectionMap() map[rig.ElementKey][]rig.ElementKey {
	r.prune()
	res := make(map[rig.ElementKey][]rig.ElementKey, len(r.connections))
	for k, ts := range r.connections {
		res[k] = slices.Clone(ts)
	}
	return res
}

// Redirector returns the key redirector of a module, which maps its
// connectors to their targets. It is rebuilt when the hierarchy
// topology or the bindings change.
func (r *Rig) Redirector(module string) (*rig.KeyRedirector, error) {
	m := r.Module(module)
	if m == nil {
		return nil, errors.Errorf("modular: redirector %q: %w", module, ErrModuleNotFound)
	}
	r.prune()
	hc := r.redirectors[module]
	if hc == nil {
		hc = &rig.HierarchyCache[*rig.KeyRedirector]{}
		r.redirectors[module] = hc
	}
	return hc.Ensure(r.Hierarchy.TopologyVersion(), func() *rig.KeyRedirector {
		bindings := map[rig.ElementKey][]rig.ElementKey{}
		for _, k := range m.Connectors {
			if ts := r.connections[k]; len(ts) > 0 {
				bindings[k] = ts
			}
		}
		return rig.NewKeyRedirector(bindings, r.Hierarchy)
	}), nil
}

// connectionsChanged drops all cached redirectors.
func (r *Rig) connectionsChanged() {
	for _, hc := range r.redirectors {
		hc.Reset()
	}
}
