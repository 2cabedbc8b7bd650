// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

// TransformType selects one of the four representations of an
// element pose: the current or initial phase, in local or global space.
type TransformType uint8

const (
	InitialLocal TransformType = iota
	CurrentLocal
	InitialGlobal
	CurrentGlobal

	NumTransformTypes = 4
)

func (tt TransformType) String() string {
	switch tt {
	case InitialLocal:
		return "InitialLocal"
	case CurrentLocal:
		return "CurrentLocal"
	case InitialGlobal:
		return "InitialGlobal"
	case CurrentGlobal:
		return "CurrentGlobal"
	}
	return "Invalid"
}

// IsLocal returns whether tt is a local space type.
func (tt TransformType) IsLocal() bool {
	return tt == InitialLocal || tt == CurrentLocal
}

// IsGlobal returns whether tt is a global space type.
func (tt TransformType) IsGlobal() bool {
	return !tt.IsLocal()
}

// IsInitial returns whether tt is an initial phase type.
func (tt TransformType) IsInitial() bool {
	return tt == InitialLocal || tt == InitialGlobal
}

// IsCurrent returns whether tt is a current phase type.
func (tt TransformType) IsCurrent() bool {
	return !tt.IsInitial()
}

// SwapCurrentAndInitial returns the type of the other phase in the same space.
func (tt TransformType) SwapCurrentAndInitial() TransformType {
	switch tt {
	case CurrentLocal:
		return InitialLocal
	case CurrentGlobal:
		return InitialGlobal
	case InitialLocal:
		return CurrentLocal
	default:
		return CurrentGlobal
	}
}

// SwapLocalAndGlobal returns the type of the other space in the same phase.
func (tt TransformType) SwapLocalAndGlobal() TransformType {
	switch tt {
	case CurrentLocal:
		return CurrentGlobal
	case CurrentGlobal:
		return CurrentLocal
	case InitialLocal:
		return InitialGlobal
	default:
		return InitialLocal
	}
}

// MakeLocal returns the local type of the same phase.
func (tt TransformType) MakeLocal() TransformType {
	if tt.IsLocal() {
		return tt
	}
	return tt.SwapLocalAndGlobal()
}

// MakeGlobal returns the global type of the same phase.
func (tt TransformType) MakeGlobal() TransformType {
	if tt.IsGlobal() {
		return tt
	}
	return tt.SwapLocalAndGlobal()
}

// MakeInitial returns the initial type of the same space.
func (tt TransformType) MakeInitial() TransformType {
	if tt.IsInitial() {
		return tt
	}
	return tt.SwapCurrentAndInitial()
}

// MakeCurrent returns the current type of the same space.
func (tt TransformType) MakeCurrent() TransformType {
	if tt.IsCurrent() {
		return tt
	}
	return tt.SwapCurrentAndInitial()
}

// TransformTypeOf returns the type for the given phase and space.
func TransformTypeOf(initial, local bool) TransformType {
	switch {
	case initial && local:
		return InitialLocal
	case initial:
		return InitialGlobal
	case local:
		return CurrentLocal
	default:
		return CurrentGlobal
	}
}

// TransformStorageType selects one of the transform stacks of an element.
// Only controls carry offset and shape stacks.
type TransformStorageType uint8

const (
	StoragePose TransformStorageType = iota
	StorageOffset
	StorageShape
)

func (st TransformStorageType) String() string {
	switch st {
	case StoragePose:
		return "Pose"
	case StorageOffset:
		return "Offset"
	case StorageShape:
		return "Shape"
	}
	return "Invalid"
}
