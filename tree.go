// Copyright (c) 2026 The hashmape authors
// SPDX-License-Identifier: MIT

package hashmape

import (
	"fmt"
	"slices"
)

// edge is the compressed-prefix edge of the in-memory Patricia tree
// built while encoding (spec.md §3 Edge<T>). It is ephemeral: built
// during Store/StoreRoot, consumed by the write traversal, then
// dropped (spec.md §5).
type edge[T any] struct {
	label BitString
	node  node[T]
}

// node is the tagged union from spec.md §3: either a leaf carrying a
// value, or a fork with two non-empty child edges.
type node[T any] struct {
	isLeaf bool
	value  T       // valid iff isLeaf
	left   *edge[T] // valid iff !isLeaf
	right  *edge[T] // valid iff !isLeaf
}

func leafNode[T any](v T) node[T] {
	return node[T]{isLeaf: true, value: v}
}

func forkNode[T any](left, right *edge[T]) node[T] {
	return node[T]{left: left, right: right}
}

// paddedMap is the in-memory representation of spec.md §3 PaddedMap:
// a mapping from uniform-length BitString keys to values. BitString is
// comparable (see bitstring.go), so a plain Go map suffices — no
// custom tree structure is needed to hold it.
type paddedMap[T any] map[BitString]T

// findCommonPrefix returns the longest common bit prefix of every key
// in keys (spec.md §4.2). Implemented by sorting the keys and
// comparing only the lexicographic minimum and maximum, since the
// common prefix of the extremes equals the common prefix of the whole
// set; O(N log N · keyLength). A single linear min/max scan would be
// O(N · keyLength) with identical results (spec.md §9); the sorted
// order is used only to pick the two extremes.
func findCommonPrefix[T any](m paddedMap[T]) BitString {
	keys := make([]BitString, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	if len(keys) == 1 {
		return keys[0]
	}
	slices.SortFunc(keys, func(a, b BitString) int { return a.Compare(b) })
	return commonPrefix(keys[0], keys[len(keys)-1])
}

func commonPrefix(a, b BitString) BitString {
	n := a.Length()
	if b.Length() < n {
		n = b.Length()
	}
	i := 0
	for i < n && a.At(i) == b.At(i) {
		i++
	}
	return a.Substring(0, i)
}

// removePrefix drops the first length bits of every key in m,
// returning m unchanged when length is 0 (spec.md §4.2).
func removePrefix[T any](m paddedMap[T], length int) paddedMap[T] {
	if length == 0 {
		return m
	}
	out := make(paddedMap[T], len(m))
	for k, v := range m {
		out[k.DropFirst(length)] = v
	}
	return out
}

// forkMap partitions m by the first bit of each key, dropping that
// bit, into (left for bit 0, right for bit 1). The caller guarantees
// len(m) >= 2 after the common prefix has already been stripped, so
// the invariant in spec.md §4.2 ("splitting by first bit yields two
// non-empty sides") holds — any violation is ErrInternalInvariant.
func forkMap[T any](m paddedMap[T]) (left, right paddedMap[T], err error) {
	left = make(paddedMap[T])
	right = make(paddedMap[T])
	for k, v := range m {
		if k.Length() == 0 {
			return nil, nil, fmt.Errorf("%w: fork on a map with a zero-length remaining key", ErrInternalInvariant)
		}
		rest := k.DropFirst(1)
		if k.At(0) == 0 {
			left[rest] = v
		} else {
			right[rest] = v
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return nil, nil, fmt.Errorf("%w: fork produced an empty side", ErrInternalInvariant)
	}
	return left, right, nil
}

// buildNode implements spec.md §4.2 buildNode: a singleton map becomes
// a leaf, otherwise the map is split on its first bit into a fork of
// two edges.
func buildNode[T any](m paddedMap[T]) (node[T], error) {
	if len(m) == 0 {
		return node[T]{}, fmt.Errorf("%w: buildNode called with an empty map", ErrInternalInvariant)
	}
	if len(m) == 1 {
		for _, v := range m {
			return leafNode(v), nil
		}
	}
	left, right, err := forkMap(m)
	if err != nil {
		return node[T]{}, err
	}
	leftEdge, err := buildEdge(left)
	if err != nil {
		return node[T]{}, err
	}
	rightEdge, err := buildEdge(right)
	if err != nil {
		return node[T]{}, err
	}
	return forkNode(leftEdge, rightEdge), nil
}

// buildEdge implements spec.md §4.2 buildEdge: the edge's label is the
// longest common prefix of the map's keys, and its node is built from
// whatever remains once that prefix is stripped.
func buildEdge[T any](m paddedMap[T]) (*edge[T], error) {
	label := findCommonPrefix(m)
	n, err := buildNode(removePrefix(m, label.Length()))
	if err != nil {
		return nil, err
	}
	return &edge[T]{label: label, node: n}, nil
}
