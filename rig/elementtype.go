// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import (
	"fmt"
	"strings"
)

// ElementType is the type of an element. Types are bit flags so
// that a single value can describe a set of types for filtering.
type ElementType uint8

const (
	ElementTypeNone      ElementType = 0
	ElementTypeBone      ElementType = 0x01
	ElementTypeNull      ElementType = 0x02
	ElementTypeControl   ElementType = 0x04
	ElementTypeCurve     ElementType = 0x08
	ElementTypeReference ElementType = 0x20
	ElementTypeConnector ElementType = 0x40
	ElementTypeSocket    ElementType = 0x80

	// ElementTypeAll is the union of all element types.
	ElementTypeAll = ElementTypeBone | ElementTypeNull | ElementTypeControl | ElementTypeCurve |
		ElementTypeReference | ElementTypeConnector | ElementTypeSocket

	// ElementTypeTransforms is the union of all types that carry a pose.
	ElementTypeTransforms = ElementTypeBone | ElementTypeNull | ElementTypeControl |
		ElementTypeReference | ElementTypeSocket
)

var elementTypeNames = []struct {
	typ  ElementType
	name string
}{
	{ElementTypeBone, "Bone"},
	{ElementTypeNull, "Null"},
	{ElementTypeControl, "Control"},
	{ElementTypeCurve, "Curve"},
	{ElementTypeReference, "Reference"},
	{ElementTypeConnector, "Connector"},
	{ElementTypeSocket, "Socket"},
}

// ElementTypes returns all single element types in declaration order.
func ElementTypes() []ElementType {
	res := make([]ElementType, len(elementTypeNames))
	for i, tn := range elementTypeNames {
		res[i] = tn.typ
	}
	return res
}

// Has returns whether all of the bits of other are set in et.
func (et ElementType) Has(other ElementType) bool {
	return other != 0 && et&other == other
}

// Intersects returns whether any bit of other is set in et.
func (et ElementType) Intersects(other ElementType) bool {
	return et&other != 0
}

// IsSingle returns whether et is exactly one element type.
func (et ElementType) IsSingle() bool {
	return et != 0 && et&(et-1) == 0
}

// String returns the type name, or the names of all set types
// joined by "|" for a set of types.
func (et ElementType) String() string {
	switch et {
	case ElementTypeNone:
		return "None"
	case ElementTypeAll:
		return "All"
	}
	var names []string
	rest := et
	for _, tn := range elementTypeNames {
		if et&tn.typ != 0 {
			names = append(names, tn.name)
			rest &^= tn.typ
		}
	}
	if rest != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint8(rest)))
	}
	return strings.Join(names, "|")
}

// MarshalText implements [encoding.TextMarshaler].
func (et ElementType) MarshalText() ([]byte, error) {
	return []byte(et.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (et *ElementType) UnmarshalText(text []byte) error {
	v, err := ParseElementType(string(text))
	if err != nil {
		return err
	}
	*et = v
	return nil
}

// ParseElementType parses a type name or a "|" separated list of
// type names, case-insensitively. "All" and "None" are accepted.
func ParseElementType(s string) (ElementType, error) {
	var res ElementType
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		switch {
		case strings.EqualFold(part, "None"):
			continue
		case strings.EqualFold(part, "All"):
			res |= ElementTypeAll
			continue
		}
		found := false
		for _, tn := range elementTypeNames {
			if strings.EqualFold(part, tn.name) {
				res |= tn.typ
				found = true
				break
			}
		}
		if !found {
			return ElementTypeNone, fmt.Errorf("rig: unknown element type %q", part)
		}
	}
	return res, nil
}
