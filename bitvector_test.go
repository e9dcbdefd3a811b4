// bitvector_test.go -- test suite for bitvector
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
	"testing"
)

func TestBV(t *testing.T) {
	assert := newAsserter(t)

	bv := newBitVector(100)
	assert(bv.Size() == 100, "size mismatch; exp 100, saw %d", bv.Size())
	assert(bv.FirstClear() == 0, "empty: first clear %d", bv.FirstClear())

	var i uint64
	for i = 0; i < bv.Size(); i++ {
		if 1 == (i & 1) {
			bv.Set(i)
		}
	}

	for i = 0; i < bv.Size(); i++ {
		if 1 == (i & 1) {
			assert(bv.IsSet(i), "%d not set", i)
		} else {
			assert(!bv.IsSet(i), "%d is set", i)
		}
	}

	assert(bv.Count() == 50, "popcount: exp 50, saw %d", bv.Count())
	assert(bv.FirstClear() == 0, "first clear: exp 0, saw %d", bv.FirstClear())
}

func TestBVFirstClear(t *testing.T) {
	assert := newAsserter(t)

	bv := newBitVector(130)

	var i uint64
	for i = 0; i < 70; i++ {
		bv.Set(i)
	}
	assert(bv.FirstClear() == 70, "exp 70, saw %d", bv.FirstClear())

	for i = 70; i < 130; i++ {
		bv.Set(i)
	}
	assert(bv.Count() == 130, "popcount: exp 130, saw %d", bv.Count())

	// the padding bits past 130 are never claimed
	assert(bv.FirstClear() == 130, "full: exp 130, saw %d", bv.FirstClear())
}
