// Copyright (c) 2026 The hashmape authors
// SPDX-License-Identifier: MIT

package hashmape

import "iter"

// Dictionary is a thin, ergonomic wrapper around a DictionaryCoder and
// a decoded map, grounding the teacher's iter.Seq-based iterator
// methods (Table.Supernets, Table.All, ...) without changing the
// semantics of Load/Store/LoadRoot/StoreRoot underneath (SPEC_FULL.md
// §4).
type Dictionary[K comparable, V any] struct {
	coder *DictionaryCoder[K, V]
	data  map[K]V
}

// LoadDictionary decodes a dictionary from s using coder.
func LoadDictionary[K comparable, V any](coder *DictionaryCoder[K, V], s *Slice) (*Dictionary[K, V], error) {
	m, err := coder.Load(s)
	if err != nil {
		return nil, err
	}
	return &Dictionary[K, V]{coder: coder, data: m}, nil
}

// NewDictionary wraps an in-memory map for storage via coder.
func NewDictionary[K comparable, V any](coder *DictionaryCoder[K, V], m map[K]V) *Dictionary[K, V] {
	if m == nil {
		m = make(map[K]V)
	}
	return &Dictionary[K, V]{coder: coder, data: m}
}

// Get looks up a key, reporting whether it was present.
func (d *Dictionary[K, V]) Get(key K) (V, bool) {
	v, ok := d.data[key]
	return v, ok
}

// Len returns the number of entries.
func (d *Dictionary[K, V]) Len() int { return len(d.data) }

// Store re-encodes the dictionary's current contents via Store.
func (d *Dictionary[K, V]) Store(b *Builder) error {
	return d.coder.Store(d.data, b)
}

// All returns an iterator over the dictionary's key/value pairs.
func (d *Dictionary[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for k, v := range d.data {
			if !yield(k, v) {
				return
			}
		}
	}
}
