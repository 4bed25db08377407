// Copyright (c) 2026 The hashmape authors
// SPDX-License-Identifier: MIT

package hashmape

import (
	"encoding/binary"

	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
)

// maxRefs is the maximum number of child-cell references a Cell may
// carry, per the TON cell format (spec.md §1/§6).
const maxRefs = 4

// maxCellBits is the maximum number of data bits a single Cell may
// carry (1023, per spec.md §5 and the TL-B cell format).
const maxCellBits = 1023

// cellCodec is the multicodec tag used when minting a Cell's CID.
// 0x90 ("ton-cell" in this module's private convention) is unassigned
// in the public multicodec table; only used locally for content
// addressing, never placed on the wire.
const cellCodec = 0x90

// Cell is an immutable record carrying a bitstring payload and up to
// four child-cell references (spec.md §6 EXTERNAL INTERFACES). Cells
// are content-addressed: two cells with identical data, identical
// exotic flag and identical child CIDs are indistinguishable and hash
// identically.
//
// Cell construction and traversal are the external collaborators
// spec.md scopes out of the core codec; this is a concrete, minimal
// implementation sufficient to drive and test the codec, grounded on
// the IPLD Merkle-Patricia-trie codecs in the retrieval pack (see
// DESIGN.md).
type Cell struct {
	data   BitString
	refs   []*Cell
	exotic bool
}

// NewDataCell constructs an ordinary (non-exotic) cell from a
// bitstring with no references, as spec.md §6 requires for
// "Cell: ... constructible from a BitString with no refs".
func NewDataCell(data BitString) *Cell {
	return &Cell{data: data}
}

// NewExoticCell constructs an exotic cell (e.g. a pruned-branch
// placeholder in a Merkle proof) wrapping the given representation.
// Its contents must never be parsed as ordinary data (spec.md §9).
func NewExoticCell(data BitString, refs ...*Cell) *Cell {
	return &Cell{data: data, refs: append([]*Cell(nil), refs...), exotic: true}
}

// IsExotic reports whether c is a non-ordinary cell (e.g. pruned
// branch) whose contents must not be interpreted as data.
func (c *Cell) IsExotic() bool {
	return c != nil && c.exotic
}

// BeginParse returns a read cursor positioned at the start of c's
// bits and references.
func (c *Cell) BeginParse() *Slice {
	return &Slice{cell: c}
}

// RefCount reports how many child references c carries.
func (c *Cell) RefCount() int {
	if c == nil {
		return 0
	}
	return len(c.refs)
}

// Data returns the cell's raw bit payload.
func (c *Cell) Data() BitString { return c.data }

// representation returns the canonical byte serialization hashed for
// CID computation: a one-byte exotic flag, the bit length, the data
// bytes, and each child's CID bytes in order. Two structurally equal
// cells always produce the same representation.
func (c *Cell) representation() []byte {
	out := make([]byte, 0, 5+len(c.data.bits)+c.RefCount()*40)
	if c.exotic {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(c.data.length))
	out = append(out, lenBuf[:]...)
	out = append(out, c.data.Bytes()...)
	for _, r := range c.refs {
		rc := r.CID()
		out = append(out, rc.Bytes()...)
	}
	return out
}

// CID returns the content identifier of c, computed deterministically
// from its representation via a SHA2-256 multihash. Callers may use
// it as a stable cache or map key; the core codec itself never
// memoizes across calls (spec.md §1 Non-goals).
func (c *Cell) CID() cid.Cid {
	sum, err := mh.Sum(c.representation(), mh.SHA2_256, -1)
	if err != nil {
		// mh.Sum only fails for unsupported hash functions or negative
		// explicit lengths; SHA2_256 with -1 (default length) never does.
		panic("hashmape: multihash sum failed: " + err.Error())
	}
	return cid.NewCidV1(cellCodec, sum)
}
