// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package modular

import (
	"log/slog"
	"slices"

	"cogentcore.org/rig/base/errors"
	"cogentcore.org/rig/rig"
	"cogentcore.org/rig/rules"
)

// connector returns the module and the key of one of its connectors.
func (r *Rig) connector(module, connector string) (*Module, rig.ElementKey, error) {
	m := r.Module(module)
	if m == nil {
		return nil, rig.ElementKey{}, errors.Errorf("modular: %q: %w", module, ErrModuleNotFound)
	}
	ck := m.ConnectorKey(connector)
	if !m.HasConnector(ck) {
		return nil, rig.ElementKey{}, errors.Errorf("modular: %v: %w", ck, ErrConnectorNotFound)
	}
	return m, ck, nil
}

// Resolve evaluates the rules of a connector of a module against
// the hierarchy.
func (r *Rig) Resolve(module, connector string) (*rules.ResolveResult, error) {
	m, ck, err := r.connector(module, connector)
	if err != nil {
		return nil, err
	}
	return rules.NewResolver(rules.NewContext(r.Hierarchy, m)).Resolve(ck)
}

// Connect binds a connector of a module to the given targets,
// replacing its previous binding. Every target must satisfy the
// rules of the connector, and only array connectors take more than
// one target.
func (r *Rig) Connect(module, connector string, targets ...rig.ElementKey) error {
	_, ck, err := r.connector(module, connector)
	if err != nil {
		return err
	}
	c, err := rig.FindAs[*rig.Connector](r.Hierarchy, ck)
	if err != nil {
		return err
	}
	switch {
	case len(targets) == 0:
		return errors.Errorf("modular: connect %v: no targets", ck)
	case len(targets) > 1 && !c.Settings.IsArray:
		return errors.Errorf("modular: connect %v: %d targets for a connector that is not an array", ck, len(targets))
	}
	res, err := r.Resolve(module, connector)
	if err != nil {
		return err
	}
	for _, t := range targets {
		if err := checkTarget(r.Hierarchy, res, t); err != nil {
			return errors.Errorf("modular: connect %v: %w", ck, err)
		}
	}
	r.connections[ck] = slices.Clone(targets)
	r.connectionsChanged()
	slog.Debug("modular: connected", "connector", ck, "targets", len(targets))
	return nil
}

func checkTarget(h *rig.Hierarchy, res *rules.ResolveResult, t rig.ElementKey) error {
	if res.ContainsMatch(t) {
		return nil
	}
	if !h.Contains(t) {
		return errors.Errorf("%v: %w", t, rig.ErrElementNotFound)
	}
	for _, m := range res.Excluded {
		if m.Key == t {
			return errors.Errorf("%s: %w", m.Message, ErrInvalidTarget)
		}
	}
	return errors.Errorf("%v is not a candidate: %w", t, ErrInvalidTarget)
}

// Disconnect removes the binding of a connector, returning whether
// it had one.
func (r *Rig) Disconnect(module, connector string) (bool, error) {
	_, ck, err := r.connector(module, connector)
	if err != nil {
		return false, err
	}
	if _, ok := r.connections[ck]; !ok {
		return false, nil
	}
	delete(r.connections, ck)
	r.connectionsChanged()
	return true, nil
}

// AutoResolve binds every unbound connector that is not optional to
// its default target. Primary connectors of a module are resolved
// before its other connectors. It returns the connectors that were
// bound, and an error listing the connectors that could not be.
func (r *Rig) AutoResolve() ([]rig.ElementKey, error) {
	var bound []rig.ElementKey
	var errs []error
	for _, m := range r.Modules {
		cks := slices.Clone(m.Connectors)
		if pk, ok := m.PrimaryConnector(); ok {
			cks = slices.DeleteFunc(cks, func(k rig.ElementKey) bool { return k == pk })
			cks = slices.Insert(cks, 0, pk)
		}
		for _, ck := range cks {
			if r.IsConnected(ck) {
				continue
			}
			c, err := rig.FindAs[*rig.Connector](r.Hierarchy, ck)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if c.Settings.Optional {
				continue
			}
			name := rig.ModulePath(ck.Name).ElementName()
			res, err := r.Resolve(m.Name, name)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if !res.IsValid() {
				errs = append(errs, errors.Errorf("modular: auto resolve %v: %s", ck, res.Message))
				continue
			}
			def := res.DefaultMatch()
			if def == nil {
				errs = append(errs, errors.Errorf("modular: auto resolve %v: no default target among %d matches", ck, len(res.Matches)))
				continue
			}
			if err := r.Connect(m.Name, name, def.Key); err != nil {
				errs = append(errs, err)
				continue
			}
			slog.Info("modular: auto resolved", "connector", ck, "target", def.Key)
			bound = append(bound, ck)
		}
	}
	return bound, errors.Join(errs...)
}
