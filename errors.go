// Copyright (c) 2026 The hashmape authors
// SPDX-License-Identifier: MIT

package hashmape

import "errors"

// Sentinel errors for the failure kinds enumerated in spec.md §7.
// Every failure from Load/Store/LoadRoot/StoreRoot wraps one of these
// with errors.Is-compatible %w wrapping, never swallowed or retried.
var (
	// ErrMalformedLabel is returned when a label header is inconsistent
	// or its length field exceeds the remaining key budget.
	ErrMalformedLabel = errors.New("hashmape: malformed label")

	// ErrBudgetExhausted is returned when a builder lacks the bits
	// needed to hold a label payload.
	ErrBudgetExhausted = errors.New("hashmape: builder budget exhausted")

	// ErrEmptyRoot is returned by StoreRoot when given an empty map.
	ErrEmptyRoot = errors.New("hashmape: storeRoot called with empty map")

	// ErrKeyLengthMismatch is returned when a serialized key's bit
	// length does not equal the configured keyLength.
	ErrKeyLengthMismatch = errors.New("hashmape: key length mismatch")

	// ErrInternalInvariant marks a violation of an invariant the tree
	// builder is supposed to guarantee (empty map passed to buildNode,
	// or a fork producing an empty side). Seeing it means a bug.
	ErrInternalInvariant = errors.New("hashmape: internal invariant violated")

	// ErrUpstreamCodec wraps a failure returned by a key or value
	// TypeCoder.
	ErrUpstreamCodec = errors.New("hashmape: upstream codec failed")
)
