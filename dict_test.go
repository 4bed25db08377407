// Copyright (c) 2026 The hashmape authors
// SPDX-License-Identifier: MIT

package hashmape

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// storeLoadRoundTrip stores m through coder's maybe-ref envelope and
// loads it back, returning the decoded map alongside the envelope cell
// for callers that want to inspect the wire shape directly.
func storeLoadRoundTrip(t *testing.T, coder *DictionaryCoder[uint64, uint64], m map[uint64]uint64) (map[uint64]uint64, *Cell) {
	t.Helper()
	b := NewBuilder()
	require.NoError(t, coder.Store(m, b))
	envelope := b.EndCell()
	got, err := coder.Load(envelope.BeginParse())
	require.NoError(t, err)
	return got, envelope
}

// Scenario 1 (spec.md §8): an empty dictionary serializes to exactly
// one 0 bit and loads back as an empty map.
func TestScenarioEmptyDictIsSingleZeroBit(t *testing.T) {
	coder := newUint64Coder(8)
	b := NewBuilder()
	require.NoError(t, coder.Store(map[uint64]uint64{}, b))
	bits := b.Bitstring()
	require.Equal(t, "0", bits.String())

	got, err := coder.Load(b.EndCell().BeginParse())
	require.NoError(t, err)
	require.Empty(t, got)
}

// Scenario 2 (spec.md §8): a singleton dictionary's root label covers
// the full key using the "same" scheme when the key is constant-bit.
func TestScenarioSingletonUsesSameLabelWhenUniform(t *testing.T) {
	coder := newUint64Coder(8)
	m := map[uint64]uint64{0: 55}
	got, envelope := storeLoadRoundTrip(t, coder, m)
	require.Equal(t, m, got)

	root := envelope.BeginParse()
	ref, err := root.LoadMaybeRef()
	require.NoError(t, err)
	require.NotNil(t, ref)

	s := ref.BeginParse()
	label, err := ReadLabel(s, 8)
	require.NoError(t, err)
	require.Equal(t, 8, label.Length())
	require.Equal(t, labelSame, chooseLabelScheme(label, 8))
}

// Scenario 3 (spec.md §8): two keys sharing a 7-bit prefix fork on
// their single differing low bit.
func TestScenarioTwoKeysSharedPrefix(t *testing.T) {
	coder := newUint64Coder(8)
	m := map[uint64]uint64{0b00000000: 1, 0b00000001: 2}
	got, _ := storeLoadRoundTrip(t, coder, m)
	require.Equal(t, m, got)

	dump, err := coder.Dump(m)
	require.NoError(t, err)
	require.Equal(t, "0000000", dump.Label)
	require.NotNil(t, dump.Left)
	require.NotNil(t, dump.Right)
}

// Scenario 4 (spec.md §8): two keys with no common prefix fork
// immediately at the root with an empty root label.
func TestScenarioTwoKeysNoCommonPrefix(t *testing.T) {
	coder := newUint64Coder(8)
	m := map[uint64]uint64{0b00000000: 1, 0b10000000: 2}
	got, _ := storeLoadRoundTrip(t, coder, m)
	require.Equal(t, m, got)

	dump, err := coder.Dump(m)
	require.NoError(t, err)
	require.Equal(t, "", dump.Label)
}

// P1: Store followed by Load reproduces the original map exactly,
// across a variety of key distributions.
func TestPropertyStoreLoadRoundTrip(t *testing.T) {
	coder := newUint64Coder(16)
	cases := []map[uint64]uint64{
		{},
		{7: 1},
		{0: 1, 1: 2, 2: 3, 3: 4},
		{0xFFFF: 1, 0x0000: 2, 0xAAAA: 3, 0x5555: 4},
		{1: 10, 100: 20, 1000: 30, 10000: 40, 60000: 50},
	}
	for _, m := range cases {
		got, _ := storeLoadRoundTrip(t, coder, m)
		require.Equal(t, m, got)
	}
}

// P2: StoreRoot followed by LoadRoot reproduces the original map,
// independent of the maybe-ref envelope.
func TestPropertyStoreRootLoadRootRoundTrip(t *testing.T) {
	coder := newUint64Coder(16)
	m := map[uint64]uint64{0: 1, 1: 2, 65535: 3}
	b := NewBuilder()
	require.NoError(t, coder.StoreRoot(m, b))
	got, err := coder.LoadRoot(b.EndCell().BeginParse())
	require.NoError(t, err)
	require.Equal(t, m, got)
}

// P3: encoding the same map twice produces bit-identical output.
func TestPropertyDeterministicEncoding(t *testing.T) {
	coder := newUint64Coder(16)
	m := map[uint64]uint64{3: 1, 9000: 2, 12: 3, 40000: 4}

	b1 := NewBuilder()
	require.NoError(t, coder.Store(m, b1))
	b2 := NewBuilder()
	require.NoError(t, coder.Store(m, b2))
	require.True(t, b1.Bitstring().Equal(b2.Bitstring()))
}

// P4: the empty envelope is exactly the single 0 bit, never more.
func TestPropertyEmptyEnvelopeIsExactlyOneBit(t *testing.T) {
	coder := newUint64Coder(32)
	b := NewBuilder()
	require.NoError(t, coder.Store(map[uint64]uint64{}, b))
	require.Equal(t, 1, b.Bitstring().Length())
}

// P5: StoreRoot fails on an empty map, since every stored root
// requires at least one label-prefixed entry.
func TestPropertyStoreRootRejectsEmptyMap(t *testing.T) {
	coder := newUint64Coder(8)
	b := NewBuilder()
	err := coder.StoreRoot(map[uint64]uint64{}, b)
	require.ErrorIs(t, err, ErrEmptyRoot)
}

// P6: a key serialized to the wrong bit width is rejected rather than
// silently truncated or padded, preserving the keyLength invariant.
func TestPropertyKeyLengthMismatchRejected(t *testing.T) {
	coder := NewDictionaryCoder[uint64, uint64](8, NewUintCoder(16), NewUintCoder(64))
	b := NewBuilder()
	err := coder.StoreRoot(map[uint64]uint64{1: 1}, b)
	require.ErrorIs(t, err, ErrKeyLengthMismatch)
}

// P7: an exotic (pruned) cell referenced at the top level is tolerated
// as an empty result, not an error, and reported to the Observer.
func TestPropertyTopLevelExoticToleratedAsEmpty(t *testing.T) {
	coder := newUint64Coder(8)
	var observed []bool
	coder.Observer = func(prefix BitString, atRoot bool) {
		observed = append(observed, atRoot)
	}

	b := NewBuilder()
	require.NoError(t, b.WriteBit(1))
	require.NoError(t, b.StoreRef(NewExoticCell(BitsFromUint(0, 1))))
	envelope := b.EndCell()

	got, err := coder.Load(envelope.BeginParse())
	require.NoError(t, err)
	require.Empty(t, got)
	require.Equal(t, []bool{true}, observed)
}

// P7b: an exotic cell nested inside a fork is skipped during parse
// without aborting the sibling subtree, and reported to the Observer
// with atRoot=false.
func TestPropertyNestedExoticSubtreeSkipped(t *testing.T) {
	coder := newUint64Coder(2)
	var observed []bool
	coder.Observer = func(prefix BitString, atRoot bool) {
		observed = append(observed, atRoot)
	}

	// Root label is empty (two children at bit 0), right child is an
	// ordinary leaf for key 0b11, left child is a pruned placeholder.
	rightLeafBuilder := NewBuilder()
	require.NoError(t, WriteLabel(BitsFromUint(1, 1), 1, rightLeafBuilder))
	require.NoError(t, NewUintCoder(64).Serialize(9, rightLeafBuilder))
	rightLeaf := rightLeafBuilder.EndCell()

	rootBuilder := NewBuilder()
	require.NoError(t, WriteLabel(BitString{}, 2, rootBuilder))
	require.NoError(t, rootBuilder.StoreRef(NewExoticCell(BitString{})))
	require.NoError(t, rootBuilder.StoreRef(rightLeaf))
	rootCell := rootBuilder.EndCell()

	got, err := coder.LoadRoot(rootCell.BeginParse())
	require.NoError(t, err)
	require.Equal(t, map[uint64]uint64{0b11: 9}, got)
	require.Equal(t, []bool{false}, observed)
}

// P8: the tree built from a key set always factors out the longest
// shared prefix at each fork; no fork's label could be extended
// without losing uniformity across all of that fork's descendants.
func TestPropertyCommonPrefixIsMaximal(t *testing.T) {
	coder := newUint64Coder(8)
	m := map[uint64]uint64{0b00000000: 1, 0b00000010: 2, 0b00000011: 3}
	dump, err := coder.Dump(m)
	require.NoError(t, err)

	// All three keys share bits 0b000000 (6 bits); the 7th bit diverges
	// only between key 0 and the {2,3} group, so the maximal common
	// root label is "000000", not shorter and not longer.
	require.Equal(t, "000000", dump.Label)
}
