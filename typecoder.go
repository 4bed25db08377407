// Copyright (c) 2026 The hashmape authors
// SPDX-License-Identifier: MIT

package hashmape

import (
	"fmt"
	"math/big"
)

// TypeCoder serializes and parses values of type T against a Builder
// and Slice (spec.md §6 EXTERNAL INTERFACES).
type TypeCoder[T any] interface {
	Serialize(value T, b *Builder) error
	Parse(s *Slice) (T, error)
}

// StaticSize is implemented by key coders whose serialized bit-length
// is a compile-time constant, as spec.md §4.5 requires of keyCoder.
type StaticSize interface {
	Size() int
}

// UintCoder serializes fixed-width unsigned integers (up to 64 bits),
// the natural key coder for HashmapE dictionaries keyed by small
// integers.
type UintCoder struct {
	Bits int
}

// NewUintCoder returns a UintCoder for values of the given bit width.
func NewUintCoder(bits int) UintCoder {
	return UintCoder{Bits: bits}
}

// Size returns the configured bit width.
func (c UintCoder) Size() int { return c.Bits }

// Serialize writes v in c.Bits bits, most-significant bit first.
func (c UintCoder) Serialize(v uint64, b *Builder) error {
	if c.Bits < 64 && v>>uint(c.Bits) != 0 {
		return fmt.Errorf("%w: value %d does not fit in %d bits", ErrUpstreamCodec, v, c.Bits)
	}
	if err := b.WriteUint(v, c.Bits); err != nil {
		return fmt.Errorf("%w: %w", ErrUpstreamCodec, err)
	}
	return nil
}

// Parse reads c.Bits bits as an unsigned integer.
func (c UintCoder) Parse(s *Slice) (uint64, error) {
	v, err := s.LoadUint(c.Bits)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUpstreamCodec, err)
	}
	return v, nil
}

// BigIntCoder serializes arbitrary-width unsigned values backed by
// math/big, for dictionaries keyed wider than 64 bits (spec.md §1
// names BigInt arithmetic as an external collaborator; math/big is
// the concrete backend, see DESIGN.md).
type BigIntCoder struct {
	Bits int
}

// NewBigIntCoder returns a BigIntCoder for values of the given bit width.
func NewBigIntCoder(bits int) BigIntCoder {
	return BigIntCoder{Bits: bits}
}

// Size returns the configured bit width.
func (c BigIntCoder) Size() int { return c.Bits }

// Serialize writes v in c.Bits bits, most-significant bit first.
func (c BigIntCoder) Serialize(v *big.Int, b *Builder) error {
	if v.Sign() < 0 {
		return fmt.Errorf("%w: BigIntCoder does not support negative values", ErrUpstreamCodec)
	}
	if v.BitLen() > c.Bits {
		return fmt.Errorf("%w: value needs %d bits, coder width is %d", ErrUpstreamCodec, v.BitLen(), c.Bits)
	}
	bytes := v.Bytes()
	full := make([]byte, byteLen(c.Bits))
	copy(full[len(full)-len(bytes):], bytes)
	bits := NewBitString(full, byteLen(c.Bits)*8).DropFirst(byteLen(c.Bits)*8 - c.Bits)
	if err := b.WriteBits(bits); err != nil {
		return fmt.Errorf("%w: %w", ErrUpstreamCodec, err)
	}
	return nil
}

// Parse reads c.Bits bits as an unsigned big.Int.
func (c BigIntCoder) Parse(s *Slice) (*big.Int, error) {
	bits, err := s.LoadBits(c.Bits)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamCodec, err)
	}
	padded := bits.PadLeft((bits.Length() + 7) / 8 * 8)
	return new(big.Int).SetBytes(padded.Bytes()), nil
}

// BytesCoder serializes a fixed-width byte slice value, using the
// Size it was constructed with as its bit length (sizeBytes*8).
type BytesCoder struct {
	SizeBytes int
}

// NewBytesCoder returns a BytesCoder for values of sizeBytes bytes.
func NewBytesCoder(sizeBytes int) BytesCoder {
	return BytesCoder{SizeBytes: sizeBytes}
}

// Size returns the configured bit width.
func (c BytesCoder) Size() int { return c.SizeBytes * 8 }

// Serialize writes v, which must be exactly c.SizeBytes long.
func (c BytesCoder) Serialize(v []byte, b *Builder) error {
	if len(v) != c.SizeBytes {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrUpstreamCodec, c.SizeBytes, len(v))
	}
	if err := b.WriteBits(NewBitString(v, c.SizeBytes*8)); err != nil {
		return fmt.Errorf("%w: %w", ErrUpstreamCodec, err)
	}
	return nil
}

// Parse reads c.SizeBytes bytes.
func (c BytesCoder) Parse(s *Slice) ([]byte, error) {
	bits, err := s.LoadBits(c.SizeBytes * 8)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamCodec, err)
	}
	return bits.Bytes(), nil
}

// BoolCoder serializes a single-bit boolean value.
type BoolCoder struct{}

// Size returns 1.
func (BoolCoder) Size() int { return 1 }

// Serialize writes v as a single bit.
func (BoolCoder) Serialize(v bool, b *Builder) error {
	bit := 0
	if v {
		bit = 1
	}
	if err := b.WriteBit(bit); err != nil {
		return fmt.Errorf("%w: %w", ErrUpstreamCodec, err)
	}
	return nil
}

// Parse reads a single bit as a bool.
func (BoolCoder) Parse(s *Slice) (bool, error) {
	bit, err := s.LoadBit()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrUpstreamCodec, err)
	}
	return bit == 1, nil
}
