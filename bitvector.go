// bitvector.go -- simple bitvector implementation
//
// (c) Sudhi Herle 2018
//
// License GPLv2
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package msmp

import (
	"math/bits"
)

// bitVector tracks claimed slots of the packed array. It is owned by a
// single packer and is not safe for concurrent use.
type bitVector struct {
	v []uint64
	n uint64
}

// newBitVector creates a bitvector to hold atleast 'sz' bits.
// The backing array is rounded-up to the next multiple of 64.
func newBitVector(sz uint64) *bitVector {
	words := (sz + 63) / 64
	bv := &bitVector{
		v: make([]uint64, words),
		n: sz,
	}

	return bv
}

// Size returns the number of usable bits in this bitvector
func (b *bitVector) Size() uint64 {
	return b.n
}

// Set sets the bit 'i' in the bitvector
func (b *bitVector) Set(i uint64) {
	b.v[i/64] |= uint64(1) << (i % 64)
}

// IsSet() returns true if the bit 'i' is set, false otherwise
func (b *bitVector) IsSet(i uint64) bool {
	return 1 == (1 & (b.v[i/64] >> (i % 64)))
}

// Count returns the population count of the bitvector
func (b *bitVector) Count() uint64 {
	var p uint64
	for _, w := range b.v {
		p += uint64(bits.OnesCount64(w))
	}
	return p
}

// FirstClear returns the lowest unset bit below Size(), or Size() if
// every bit is set.
func (b *bitVector) FirstClear() uint64 {
	for i, w := range b.v {
		if w == ^uint64(0) {
			continue
		}

		j := uint64(i)*64 + uint64(bits.TrailingZeros64(^w))
		if j < b.n {
			return j
		}
		break
	}
	return b.n
}
