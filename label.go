// Copyright (c) 2026 The hashmape authors
// SPDX-License-Identifier: MIT

package hashmape

import (
	"fmt"
	"math/bits"
)

// labelKeyBits returns k = ceil(log2(maxLen+1)), the minimum number of
// bits needed to represent any value in [0, maxLen] (spec.md §4.1).
func labelKeyBits(maxLen int) int {
	if maxLen == 0 {
		return 0
	}
	return bits.Len(uint(maxLen))
}

// labelScheme identifies which of the three HmLabel encodings
// (spec.md §4.1) was chosen.
type labelScheme int

const (
	labelShort labelScheme = iota
	labelLong
	labelSame
)

// chooseLabelScheme implements the deterministic selection rule from
// spec.md §4.1: same wins only when it is strictly cheaper than both
// short and long; otherwise long wins only when strictly cheaper than
// short; short is the default. Every comparison is strict, so when two
// schemes cost the same number of bits the one with the shorter header
// wins (short over long, long over same), which is what reproduces the
// reference implementation bit-for-bit.
func chooseLabelScheme(label BitString, maxLen int) labelScheme {
	n := label.Length()
	k := labelKeyBits(maxLen)

	if n > 1 {
		if _, uniform := label.RepeatsSameBit(); uniform && k < 2*n-1 {
			return labelSame
		}
	}
	if k < n {
		return labelLong
	}
	return labelShort
}

// WriteLabel encodes label (whose length must be <= maxLen) into b
// using whichever of the three schemes in spec.md §4.1 yields the
// fewest bits, per the deterministic tie-break rule.
func WriteLabel(label BitString, maxLen int, b *Builder) error {
	n := label.Length()
	if n > maxLen {
		return fmt.Errorf("%w: label length %d exceeds budget %d", ErrMalformedLabel, n, maxLen)
	}
	k := labelKeyBits(maxLen)

	switch chooseLabelScheme(label, maxLen) {
	case labelSame:
		bit, _ := label.RepeatsSameBit()
		if err := b.WriteBit(1); err != nil {
			return err
		}
		if err := b.WriteBit(1); err != nil {
			return err
		}
		if err := b.WriteBit(bit); err != nil {
			return err
		}
		return b.WriteUint(uint64(n), k)

	case labelLong:
		if err := b.WriteBit(1); err != nil {
			return err
		}
		if err := b.WriteBit(0); err != nil {
			return err
		}
		if err := b.WriteUint(uint64(n), k); err != nil {
			return err
		}
		return b.WriteBits(label)

	default: // labelShort
		if err := b.WriteBit(0); err != nil {
			return err
		}
		if err := b.WriteUnary(n); err != nil {
			return err
		}
		return b.WriteBits(label)
	}
}

// ReadLabel decodes a label of length <= maxLen from s, per spec.md
// §4.1's decode procedure. k is derived from maxLen exactly as it was
// at encode time.
func ReadLabel(s *Slice, maxLen int) (BitString, error) {
	k := labelKeyBits(maxLen)

	tag, err := s.LoadBit()
	if err != nil {
		return BitString{}, fmt.Errorf("%w: %w", ErrMalformedLabel, err)
	}

	if tag == 0 {
		// short: unary length then payload.
		n, err := s.LoadUnary(maxLen)
		if err != nil {
			return BitString{}, fmt.Errorf("%w: %w", ErrMalformedLabel, err)
		}
		if n > maxLen {
			return BitString{}, fmt.Errorf("%w: short label length %d exceeds budget %d", ErrMalformedLabel, n, maxLen)
		}
		return s.LoadBits(n)
	}

	sub, err := s.LoadBit()
	if err != nil {
		return BitString{}, fmt.Errorf("%w: %w", ErrMalformedLabel, err)
	}

	if sub == 0 {
		// long: n in k bits, then payload.
		n64, err := s.LoadUint(k)
		if err != nil {
			return BitString{}, fmt.Errorf("%w: %w", ErrMalformedLabel, err)
		}
		n := int(n64)
		if n > maxLen {
			return BitString{}, fmt.Errorf("%w: long label length %d exceeds budget %d", ErrMalformedLabel, n, maxLen)
		}
		return s.LoadBits(n)
	}

	// same: repeated bit, then n in k bits.
	bit, err := s.LoadBit()
	if err != nil {
		return BitString{}, fmt.Errorf("%w: %w", ErrMalformedLabel, err)
	}
	n64, err := s.LoadUint(k)
	if err != nil {
		return BitString{}, fmt.Errorf("%w: %w", ErrMalformedLabel, err)
	}
	n := int(n64)
	if n > maxLen {
		return BitString{}, fmt.Errorf("%w: same label length %d exceeds budget %d", ErrMalformedLabel, n, maxLen)
	}
	return repeatedBit(bit, n), nil
}

// repeatedBit returns an n-bit BitString with every bit equal to bit.
func repeatedBit(bit, n int) BitString {
	buf := make([]byte, byteLen(n))
	if bit != 0 {
		for i := range buf {
			buf[i] = 0xFF
		}
		clearTrailingBits(buf, n)
	}
	return BitString{bits: string(buf), length: n}
}
