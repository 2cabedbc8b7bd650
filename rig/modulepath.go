// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import "strings"

// ModuleSeparator separates the module name from the element
// name in a [ModulePath].
const ModuleSeparator = ":"

// ModulePath is an element name qualified by the module that
// created it, in the Module:Element form. A path without a
// separator has no module.
type ModulePath string

// JoinModulePath returns the path of element within module.
func JoinModulePath(module, element string) ModulePath {
	if module == "" {
		return ModulePath(element)
	}
	return ModulePath(module + ModuleSeparator + element)
}

// IsValid returns whether both the module and element parts are set.
func (p ModulePath) IsValid() bool {
	m, e, ok := strings.Cut(string(p), ModuleSeparator)
	return ok && m != "" && e != ""
}

// ModuleName returns the module part, or "" if there is none.
func (p ModulePath) ModuleName() string {
	m, _, ok := strings.Cut(string(p), ModuleSeparator)
	if !ok {
		return ""
	}
	return m
}

// ElementName returns the element part.
func (p ModulePath) ElementName() string {
	_, e, ok := strings.Cut(string(p), ModuleSeparator)
	if !ok {
		return string(p)
	}
	return e
}

// HasModuleName returns whether the module part equals name, ignoring case.
func (p ModulePath) HasModuleName(name string) bool {
	return strings.EqualFold(p.ModuleName(), name)
}

// ReplaceModuleName returns the path with its module part set to name.
func (p ModulePath) ReplaceModuleName(name string) ModulePath {
	return JoinModulePath(name, p.ElementName())
}
