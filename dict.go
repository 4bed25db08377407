// Copyright (c) 2026 The hashmape authors
// SPDX-License-Identifier: MIT

package hashmape

import "fmt"

// ExoticObserver is an optional diagnostic hook invoked whenever Load
// or LoadRoot encounters an exotic cell that is treated as an absent
// subtree rather than an error (spec.md §4.4, §9 Open Question). atRoot
// is true when the exotic cell was the dictionary's outer envelope
// cell rather than an internal fork.
type ExoticObserver func(prefix BitString, atRoot bool)

// DictionaryCoder is the orchestrator from spec.md §4.5: a small
// configuration record pairing a fixed keyLength with the key and
// value TypeCoders, exposing the load/store (maybe-ref envelope) and
// loadRoot/storeRoot (raw root) operations. Grounded on bart.Table's
// role as the top-level struct that owns configuration and delegates
// to the tree/label internals (see DESIGN.md).
type DictionaryCoder[K comparable, V any] struct {
	keyLength  int
	keyCoder   TypeCoder[K]
	valueCoder TypeCoder[V]

	// Observer, if set, is invoked on every exotic cell encountered
	// during Load/LoadRoot (spec.md §9 Open Question).
	Observer ExoticObserver
}

// NewDictionaryCoder constructs a DictionaryCoder for dictionaries
// keyed by keyLength-bit values. keyCoder's StaticSize must equal
// keyLength on every key it serializes (spec.md §4.5).
func NewDictionaryCoder[K comparable, V any](keyLength int, keyCoder TypeCoder[K], valueCoder TypeCoder[V]) *DictionaryCoder[K, V] {
	return &DictionaryCoder[K, V]{keyLength: keyLength, keyCoder: keyCoder, valueCoder: valueCoder}
}

// KeyLength returns the configured key bit width.
func (d *DictionaryCoder[K, V]) KeyLength() int { return d.keyLength }

// Store writes the HashmapE "maybe-ref" envelope (spec.md §4.5,
// §6): a single 0 bit if m is empty, or a 1 bit followed by a
// reference to a freshly built root cell otherwise.
func (d *DictionaryCoder[K, V]) Store(m map[K]V, b *Builder) error {
	if len(m) == 0 {
		return b.WriteBit(0)
	}
	if err := b.WriteBit(1); err != nil {
		return err
	}
	root := NewBuilder()
	if err := d.StoreRoot(m, root); err != nil {
		return err
	}
	return b.StoreRef(root.EndCell())
}

// StoreRoot writes the dictionary body directly, without the
// maybe-ref envelope (spec.md §4.5). Fails with ErrEmptyRoot if m is
// empty — every stored root begins with a label prefix (spec.md §3
// invariant I5), which requires at least one entry.
func (d *DictionaryCoder[K, V]) StoreRoot(m map[K]V, b *Builder) error {
	if len(m) == 0 {
		return ErrEmptyRoot
	}

	padded := make(paddedMap[V], len(m))
	for k, v := range m {
		kb := NewBuilder()
		if err := d.keyCoder.Serialize(k, kb); err != nil {
			return fmt.Errorf("%w: %w", ErrUpstreamCodec, err)
		}
		bits := kb.Bitstring()
		if bits.Length() != d.keyLength {
			return fmt.Errorf("%w: key serialized to %d bits, configured keyLength is %d", ErrKeyLengthMismatch, bits.Length(), d.keyLength)
		}
		padded[bits.PadLeft(d.keyLength)] = v
	}

	root, err := buildEdge(padded)
	if err != nil {
		return err
	}
	return writeEdge(root, d.keyLength, d.valueCoder, b)
}

// Load reads the HashmapE "maybe-ref" envelope: an empty map if the
// leading bit is 0, otherwise the root parsed from the referenced
// cell. A top-level exotic referenced cell yields an empty map rather
// than an error — spec.md §9's Open Question, preserved as-is and
// reported through Observer when set.
func (d *DictionaryCoder[K, V]) Load(s *Slice) (map[K]V, error) {
	ref, err := s.LoadMaybeRef()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedLabel, err)
	}
	if ref == nil {
		return map[K]V{}, nil
	}
	if ref.IsExotic() {
		if d.Observer != nil {
			d.Observer(BitString{}, true)
		}
		return map[K]V{}, nil
	}
	return d.LoadRoot(ref.BeginParse())
}

// LoadRoot parses a dictionary body directly from s, with no
// maybe-ref envelope (spec.md §4.5).
func (d *DictionaryCoder[K, V]) LoadRoot(s *Slice) (map[K]V, error) {
	out := make(map[K]V)
	if err := d.doParse(BitString{}, s, d.keyLength, out); err != nil {
		return nil, err
	}
	return out, nil
}

// doParse implements spec.md §4.4: read one label/fork level, and
// either record a leaf value (accumulated prefix fully consumed) or
// recurse into both children, skipping any exotic child silently.
func (d *DictionaryCoder[K, V]) doParse(prefix BitString, s *Slice, n int, out map[K]V) error {
	label, err := ReadLabel(s, n)
	if err != nil {
		return err
	}
	prefix = prefix.Append(label)
	remaining := n - label.Length()

	if remaining == 0 {
		keyBuilder := NewBuilder()
		if err := keyBuilder.WriteBits(prefix); err != nil {
			return err
		}
		keyCell := keyBuilder.EndCell()
		key, err := d.keyCoder.Parse(keyCell.BeginParse())
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUpstreamCodec, err)
		}
		value, err := d.valueCoder.Parse(s)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUpstreamCodec, err)
		}
		out[key] = value
		return nil
	}

	left, err := s.LoadRef()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedLabel, err)
	}
	if left.IsExotic() {
		if d.Observer != nil {
			d.Observer(prefix.Append(BitsFromUint(0, 1)), false)
		}
	} else if err := d.doParse(prefix.Append(BitsFromUint(0, 1)), left.BeginParse(), remaining-1, out); err != nil {
		return err
	}

	right, err := s.LoadRef()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedLabel, err)
	}
	if right.IsExotic() {
		if d.Observer != nil {
			d.Observer(prefix.Append(BitsFromUint(1, 1)), false)
		}
		return nil
	}
	return d.doParse(prefix.Append(BitsFromUint(1, 1)), right.BeginParse(), remaining-1, out)
}
