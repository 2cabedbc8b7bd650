// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rigfile

import (
	"fmt"
	"log/slog"
	"strings"

	"cogentcore.org/rig/base/errors"
	"cogentcore.org/rig/math32"
	"cogentcore.org/rig/modular"
	"cogentcore.org/rig/rig"
)

// Transform returns the transform of the pose, with the rotation
// angles applied in XYZ order.
func (p *Pose) Transform() (math32.Transform, error) {
	return p.TransformOrder(math32.EulerXYZ)
}

// TransformOrder returns the transform of the pose, with the rotation
// angles applied in the given order.
func (p *Pose) TransformOrder(order math32.EulerOrder) (math32.Transform, error) {
	tr := math32.Identity()
	vec := func(name string, v []float32, def math32.Vector3) (math32.Vector3, error) {
		switch len(v) {
		case 0:
			return def, nil
		case 3:
			return math32.Vec3(v[0], v[1], v[2]), nil
		}
		return def, errors.Errorf("%s has %d values, not 3", name, len(v))
	}
	var err error
	if tr.Translation, err = vec("translation", p.Translation, tr.Translation); err != nil {
		return tr, err
	}
	if tr.Scale, err = vec("scale", p.Scale, tr.Scale); err != nil {
		return tr, err
	}
	deg, err := vec("rotation", p.Rotation, math32.Vector3{})
	if err != nil {
		return tr, err
	}
	tr.Rotation = math32.NewQuatEulerOrder(deg.DegToRad(), order)
	return tr, nil
}

// Build builds the hierarchy and the modules of the description,
// makes the connections and, if enabled, resolves the remaining
// connectors. Unknown keys are reported with suggestions.
func (d *Description) Build() (*modular.Rig, error) {
	return d.BuildWith(rig.DefaultSettings())
}

// BuildWith is [Description.Build] with the given hierarchy settings.
func (d *Description) BuildWith(settings rig.Settings) (*modular.Rig, error) {
	h := rig.NewHierarchy()
	h.Settings = settings
	for i := range d.Elements {
		if err := d.Elements[i].add(h); err != nil {
			return nil, errors.Errorf("rigfile: element %d %q: %w", i, d.Elements[i].Name, err)
		}
	}
	r := modular.New(h)
	for _, md := range d.Modules {
		specs := make([]modular.ConnectorSpec, len(md.Connectors))
		for i := range md.Connectors {
			specs[i] = modular.ConnectorSpec{Name: md.Connectors[i].Name, Settings: md.Connectors[i].Settings()}
		}
		if _, err := r.AddModule(md.Name, specs...); err != nil {
			return nil, errors.Errorf("rigfile: %w", err)
		}
	}
	for _, md := range d.Modules {
		for _, c := range md.Connections {
			targets := make([]rig.ElementKey, len(c.Targets))
			for i, t := range c.Targets {
				k, err := existingKey(h, t)
				if err != nil {
					return nil, errors.Errorf("rigfile: module %q connector %q: %w", md.Name, c.Connector, err)
				}
				targets[i] = k
			}
			if err := r.Connect(md.Name, c.Connector, targets...); err != nil {
				return nil, errors.Errorf("rigfile: %w", err)
			}
		}
	}
	if d.AutoResolve {
		bound, err := r.AutoResolve()
		if err != nil {
			return nil, errors.Errorf("rigfile: %w", err)
		}
		slog.Debug("rigfile: auto resolved connectors", "count", len(bound))
	}
	return r, nil
}

// existingKey parses a key and checks that the element exists.
func existingKey(h *rig.Hierarchy, s string) (rig.ElementKey, error) {
	k, err := rig.ParseElementKey(s)
	if err != nil {
		return k, err
	}
	if !h.Contains(k) {
		return k, errors.Errorf("%v%s: %w", k, didYouMean(h, k), rig.ErrElementNotFound)
	}
	return k, nil
}

// didYouMean returns a suggestion suffix for an unknown key.
func didYouMean(h *rig.Hierarchy, k rig.ElementKey) string {
	sug := rig.SuggestKeys(h, k, 3)
	if len(sug) == 0 {
		return ""
	}
	names := make([]string, len(sug))
	for i, s := range sug {
		names[i] = s.String()
	}
	return fmt.Sprintf(" (did you mean %s?)", strings.Join(names, " or "))
}

func (e *Element) add(h *rig.Hierarchy) error {
	typ, err := rig.ParseElementType(e.Type)
	if err != nil {
		return err
	}
	if !typ.IsSingle() {
		return errors.Errorf("type %q is not a single element type", e.Type)
	}
	var parent rig.ElementKey
	if e.Parent != "" {
		if parent, err = existingKey(h, e.Parent); err != nil {
			return errors.Errorf("parent: %w", err)
		}
	}
	order := math32.EulerXYZ
	if e.RotationOrder != "" {
		if typ != rig.ElementTypeControl {
			return errors.Errorf("rotation_order only applies to controls, not to %v elements", typ)
		}
		if err := order.UnmarshalText([]byte(e.RotationOrder)); err != nil {
			return err
		}
	}
	tr, err := e.Transform.TransformOrder(order)
	if err != nil {
		return err
	}
	pose := rig.LocalPose(tr)
	if e.Global {
		pose = rig.GlobalPose(tr)
	}
	var key rig.ElementKey
	switch typ {
	case rig.ElementTypeBone:
		_, err = h.AddBone(e.Name, parent, pose, rig.BoneImported)
		key = rig.BoneKey(e.Name)
	case rig.ElementTypeNull:
		_, err = h.AddNull(e.Name, parent, pose)
		key = rig.NullKey(e.Name)
	case rig.ElementTypeControl:
		key = rig.ControlKey(e.Name)
		err = e.addControl(h, parent, tr, order)
	case rig.ElementTypeCurve:
		_, err = h.AddCurve(e.Name, e.Value)
		key = rig.CurveKey(e.Name)
	case rig.ElementTypeReference:
		_, err = h.AddReference(e.Name, parent, pose, nil)
		key = rig.Key(rig.ElementTypeReference, e.Name)
	case rig.ElementTypeSocket:
		_, err = h.AddSocket(e.Name, parent, pose, e.Color, e.Description)
		key = rig.SocketKey(e.Name)
	default:
		return errors.Errorf("%v elements are declared by modules", typ)
	}
	if err != nil {
		return err
	}
	for _, p := range e.Parents {
		pk, err := existingKey(h, p.Key)
		if err != nil {
			return errors.Errorf("parents: %w", err)
		}
		w := rig.ElementWeight{Location: p.Weight, Rotation: p.Weight, Scale: p.Weight}
		if err := h.AddParent(key, pk, w, false, p.Label); err != nil {
			return err
		}
	}
	for _, t := range e.Tags {
		if err := h.SetTag(key, t); err != nil {
			return err
		}
	}
	return nil
}

func (e *Element) addControl(h *rig.Hierarchy, parent rig.ElementKey, tr math32.Transform, order math32.EulerOrder) error {
	if e.Global {
		return errors.New("controls take a local transform relative to their offset")
	}
	cs := rig.DefaultControlSettings()
	if e.Control != "" {
		if err := cs.ControlType.UnmarshalText([]byte(e.Control)); err != nil {
			return err
		}
		cs.SetupLimitArrayForType(false, false, false)
	}
	offset, err := e.Offset.Transform()
	if err != nil {
		return errors.Errorf("offset: %w", err)
	}
	c, err := h.AddControl(e.Name, parent, cs, offset, tr, math32.Identity())
	if err != nil || order == math32.EulerXYZ {
		return err
	}
	return h.SetRotationOrder(c.Key(), order)
}
