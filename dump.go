// Copyright (c) 2026 The hashmape authors
// SPDX-License-Identifier: MIT

package hashmape

import (
	"fmt"
	"io"
	"strings"
)

// DumpListNode represents one level of the Patricia tree as a
// recursive, JSON-friendly structure, adapted from the teacher's own
// DumpListNode[V] (serialize.go) from a CIDR-subnet shape to a
// binary-label shape.
type DumpListNode[V any] struct {
	Label string           `json:"label"`
	Value *V               `json:"value,omitempty"`
	Left  *DumpListNode[V] `json:"left,omitempty"`
	Right *DumpListNode[V] `json:"right,omitempty"`
}

// Dump builds the Patricia tree that StoreRoot would serialize for m
// and returns it as a DumpListNode tree, without touching any Cell or
// Builder. Useful for inspection/debugging; it does not mutate m or
// cache anything across calls (spec.md §1 Non-goals).
func (d *DictionaryCoder[K, V]) Dump(m map[K]V) (*DumpListNode[V], error) {
	if len(m) == 0 {
		return nil, nil
	}
	padded := make(paddedMap[V], len(m))
	for k, v := range m {
		kb := NewBuilder()
		if err := d.keyCoder.Serialize(k, kb); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUpstreamCodec, err)
		}
		bits := kb.Bitstring()
		if bits.Length() != d.keyLength {
			return nil, fmt.Errorf("%w: key serialized to %d bits, configured keyLength is %d", ErrKeyLengthMismatch, bits.Length(), d.keyLength)
		}
		padded[bits.PadLeft(d.keyLength)] = v
	}
	root, err := buildEdge(padded)
	if err != nil {
		return nil, err
	}
	return dumpEdge(root), nil
}

func dumpEdge[V any](e *edge[V]) *DumpListNode[V] {
	out := &DumpListNode[V]{Label: e.label.String()}
	if e.node.isLeaf {
		v := e.node.value
		out.Value = &v
		return out
	}
	out.Left = dumpEdge(e.node.left)
	out.Right = dumpEdge(e.node.right)
	return out
}

// Fprint writes a hierarchical ASCII tree diagram of m to w, in the
// same spirit as the teacher's Table.Fprint (a diagram of CIDR
// coverage) but rendering the Patricia tree's binary labels.
func (d *DictionaryCoder[K, V]) Fprint(w io.Writer, m map[K]V) error {
	root, err := d.Dump(m)
	if err != nil {
		return err
	}
	if root == nil {
		_, err := fmt.Fprintln(w, "▼ (empty)")
		return err
	}
	if _, err := fmt.Fprintln(w, "▼"); err != nil {
		return err
	}
	return fprintNode(w, root, "")
}

func fprintNode[V any](w io.Writer, n *DumpListNode[V], indent string) error {
	label := n.Label
	if label == "" {
		label = "ε"
	}
	if n.Value != nil {
		_, err := fmt.Fprintf(w, "%s└─ %s (%v)\n", indent, label, *n.Value)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s├─ %s\n", indent, label); err != nil {
		return err
	}
	childIndent := indent + "│  "
	if err := fprintNode(w, n.Left, childIndent); err != nil {
		return err
	}
	return fprintNode(w, n.Right, childIndent)
}

// String renders m as an ASCII tree diagram; panics on encode failure,
// mirroring the teacher's Table.String wrapper around Fprint.
func (d *DictionaryCoder[K, V]) String(m map[K]V) string {
	var sb strings.Builder
	if err := d.Fprint(&sb, m); err != nil {
		panic(err)
	}
	return sb.String()
}
