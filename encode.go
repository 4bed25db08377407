// Copyright (c) 2026 The hashmape authors
// SPDX-License-Identifier: MIT

package hashmape

import "fmt"

// writeEdge implements spec.md §4.3 writeEdge: write the edge's label
// against the remaining key budget, then write its node with the
// budget reduced by the label's length.
func writeEdge[T any](e *edge[T], remaining int, valueCoder TypeCoder[T], b *Builder) error {
	if err := WriteLabel(e.label, remaining, b); err != nil {
		return err
	}
	return writeNode(e.node, remaining-e.label.Length(), valueCoder, b)
}

// writeNode implements spec.md §4.3 writeNode: a leaf serializes its
// value inline into the current builder; a fork writes each child
// edge into a fresh builder, finalizes it, and stores it as a
// reference (left then right), consuming one bit of budget for the
// branch direction.
func writeNode[T any](n node[T], remaining int, valueCoder TypeCoder[T], b *Builder) error {
	if n.isLeaf {
		if remaining != 0 {
			return fmt.Errorf("%w: leaf reached with %d key bits still unconsumed", ErrInternalInvariant, remaining)
		}
		if err := valueCoder.Serialize(n.value, b); err != nil {
			return fmt.Errorf("%w: %w", ErrUpstreamCodec, err)
		}
		return nil
	}

	leftBuilder := NewBuilder()
	if err := writeEdge(n.left, remaining-1, valueCoder, leftBuilder); err != nil {
		return err
	}
	rightBuilder := NewBuilder()
	if err := writeEdge(n.right, remaining-1, valueCoder, rightBuilder); err != nil {
		return err
	}
	if err := b.StoreRef(leftBuilder.EndCell()); err != nil {
		return err
	}
	return b.StoreRef(rightBuilder.EndCell())
}
