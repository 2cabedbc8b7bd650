// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/cespare/xxhash"
)

// ElementKey identifies an element independent of its storage
// location: an element type and a name unique within that type.
// Keys order by type and then lexically by name.
type ElementKey struct {
	Type ElementType
	Name string
}

// Key returns a new [ElementKey].
func Key(typ ElementType, name string) ElementKey {
	return ElementKey{Type: typ, Name: name}
}

// BoneKey returns the key of the named bone.
func BoneKey(name string) ElementKey { return Key(ElementTypeBone, name) }

// NullKey returns the key of the named null.
func NullKey(name string) ElementKey { return Key(ElementTypeNull, name) }

// ControlKey returns the key of the named control.
func ControlKey(name string) ElementKey { return Key(ElementTypeControl, name) }

// CurveKey returns the key of the named curve.
func CurveKey(name string) ElementKey { return Key(ElementTypeCurve, name) }

// ConnectorKey returns the key of the named connector.
func ConnectorKey(name string) ElementKey { return Key(ElementTypeConnector, name) }

// SocketKey returns the key of the named socket.
func SocketKey(name string) ElementKey { return Key(ElementTypeSocket, name) }

// IsValid returns whether the key names exactly one element type
// and has a non-empty name.
func (k ElementKey) IsValid() bool {
	return k.Type.IsSingle() && k.Name != ""
}

// IsTypeOf returns whether the key type is in the given type mask.
func (k ElementKey) IsTypeOf(mask ElementType) bool {
	return mask.Intersects(k.Type)
}

// String returns the key as Type(Name), for example Control(Hand_L).
func (k ElementKey) String() string {
	return k.Type.String() + "(" + k.Name + ")"
}

// Compare returns -1, 0 or +1 comparing by type and then name.
func (k ElementKey) Compare(other ElementKey) int {
	if c := cmp.Compare(k.Type, other.Type); c != 0 {
		return c
	}
	return strings.Compare(k.Name, other.Name)
}

// Hash returns a stable 64 bit hash of the key.
func (k ElementKey) Hash() uint64 {
	b := make([]byte, 0, len(k.Name)+1)
	b = append(b, byte(k.Type))
	b = append(b, k.Name...)
	return xxhash.Sum64(b)
}

// MarshalText implements [encoding.TextMarshaler].
func (k ElementKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *ElementKey) UnmarshalText(text []byte) error {
	v, err := ParseElementKey(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ParseElementKey parses a key in the Type(Name) form.
func ParseElementKey(s string) (ElementKey, error) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return ElementKey{}, fmt.Errorf("rig: invalid element key %q: want Type(Name)", s)
	}
	typ, err := ParseElementType(s[:open])
	if err != nil {
		return ElementKey{}, err
	}
	k := Key(typ, s[open+1:len(s)-1])
	if !k.IsValid() {
		return ElementKey{}, fmt.Errorf("rig: invalid element key %q", s)
	}
	return k, nil
}

// CompareKeys is [ElementKey.Compare] as a function, for use with slices.SortFunc.
func CompareKeys(a, b ElementKey) int {
	return a.Compare(b)
}

// ComponentKey identifies a named component attached to an element.
// A component with an empty element key is a top level component.
type ComponentKey struct {
	Element ElementKey
	Name    string
}

// IsValid returns whether the component has a name.
func (k ComponentKey) IsValid() bool {
	return k.Name != ""
}

// IsTopLevel returns whether the component is not attached to an element.
func (k ComponentKey) IsTopLevel() bool {
	return k.Element == ElementKey{}
}

// String returns the key as Component(Name,Type(Element)).
func (k ComponentKey) String() string {
	if k.IsTopLevel() {
		return "Component(" + k.Name + ")"
	}
	return "Component(" + k.Name + "," + k.Element.String() + ")"
}

// Compare returns -1, 0 or +1 comparing by element and then name.
func (k ComponentKey) Compare(other ComponentKey) int {
	if c := k.Element.Compare(other.Element); c != 0 {
		return c
	}
	return strings.Compare(k.Name, other.Name)
}

// ParseComponentKey parses a key in the Component(Name,Type(Element)) form.
func ParseComponentKey(s string) (ComponentKey, error) {
	s = strings.TrimSpace(s)
	inner, ok := strings.CutPrefix(s, "Component(")
	if !ok || !strings.HasSuffix(inner, ")") {
		return ComponentKey{}, fmt.Errorf("rig: invalid component key %q", s)
	}
	inner = inner[:len(inner)-1]
	name, elem, hasElem := strings.Cut(inner, ",")
	k := ComponentKey{Name: name}
	if hasElem {
		ek, err := ParseElementKey(elem)
		if err != nil {
			return ComponentKey{}, err
		}
		k.Element = ek
	}
	if !k.IsValid() {
		return ComponentKey{}, fmt.Errorf("rig: invalid component key %q", s)
	}
	return k, nil
}
