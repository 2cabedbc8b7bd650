// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metadata

// Store holds one [Data] map per owner key.
// Owners without metadata take no space.
type Store[K comparable] struct {
	items map[K]Data
}

// Data returns the metadata for the given owner, or nil.
// The result must not be written to; use [Store.Set].
func (st *Store[K]) Data(key K) Data {
	return st.items[key]
}

// Set sets the named value for the given owner.
func (st *Store[K]) Set(key K, name string, value any) {
	md := st.ensure(key)
	md.Set(name, value)
}

// Remove removes the named value for the given owner.
func (st *Store[K]) Remove(key K, name string) bool {
	md, ok := st.items[key]
	if !ok {
		return false
	}
	res := md.Delete(name)
	if len(md) == 0 {
		delete(st.items, key)
	}
	return res
}

// RemoveAll removes all metadata of the given owner.
func (st *Store[K]) RemoveAll(key K) {
	delete(st.items, key)
}

// Rename moves the metadata of one owner to another key,
// replacing anything stored there.
func (st *Store[K]) Rename(from, to K) {
	md, ok := st.items[from]
	if !ok {
		return
	}
	delete(st.items, from)
	if st.items == nil {
		st.items = make(map[K]Data)
	}
	st.items[to] = md
}

// HasTag returns whether the given owner carries the tag.
func (st *Store[K]) HasTag(key K, tag string) bool {
	return st.items[key].HasTag(tag)
}

// SetTag adds a tag to the given owner.
func (st *Store[K]) SetTag(key K, tag string) bool {
	md := st.ensure(key)
	return md.SetTag(tag)
}

// RemoveTag removes a tag from the given owner.
func (st *Store[K]) RemoveTag(key K, tag string) bool {
	return st.items[key].RemoveTag(tag)
}

// Tags returns the tags of the given owner.
func (st *Store[K]) Tags(key K) []string {
	return st.items[key].Tags()
}

// Len returns the number of owners holding metadata.
func (st *Store[K]) Len() int {
	return len(st.items)
}

func (st *Store[K]) ensure(key K) *Data {
	if st.items == nil {
		st.items = make(map[K]Data)
	}
	md := st.items[key]
	if md == nil {
		md = make(Data)
		st.items[key] = md
	}
	return &md
}

// GetFor gets the typed named value of the given owner.
func GetFor[T any, K comparable](st *Store[K], key K, name string) (T, error) {
	return Get[T](st.items[key], name)
}

// Clone returns a copy of the store. Values are copied shallowly;
// tag lists are copied.
func (st *Store[K]) Clone() Store[K] {
	res := Store[K]{}
	for k, md := range st.items {
		cp := Data{}
		cp.Copy(md)
		if res.items == nil {
			res.items = make(map[K]Data, len(st.items))
		}
		res.items[k] = cp
	}
	return res
}
