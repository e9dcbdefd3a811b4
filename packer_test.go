// packer_test.go -- test suite for row packing
//
// (c) Sudhi Herle 2018
//
// License GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package msmp

import (
	"errors"
	"testing"
)

func TestPackPascal(t *testing.T) {
	assert := newAsserter(t)

	m, err := BuildSparseMatrix(NewKeys(pascal), DefaultElcAlgorithm())
	assert(err == nil, "build: %s", err)

	tbl, err := Pack(m)
	assert(err == nil, "pack: %s", err)
	assert(tbl.Size() == len(pascal), "size: exp %d, saw %d", len(pascal), tbl.Size())
	assert(tbl.Len() == len(pascalOffsets), "rows: exp %d, saw %d", len(pascalOffsets), tbl.Len())

	offs := tbl.Offsets()
	for i, exp := range pascalOffsets {
		assert(offs[i] == exp, "row %d: exp offset %d, saw %d", i, exp, offs[i])
	}
	assert(tbl.String() == "[1, -6, -14, 0, -3]", "string: saw %s", tbl)

	// row 3 has no keys
	o, ok := tbl.Offset(3)
	assert(ok && o == 0, "row 3: exp 0, saw %d", o)
	_, ok = tbl.Offset(5)
	assert(!ok, "row 5 is in the table")
	_, ok = tbl.Offset(-1)
	assert(!ok, "row -1 is in the table")

	// ENTER: row 4, col 17
	s, ok := tbl.Slot(4, 17)
	assert(ok && s == 6, "ENTER: exp slot 6, saw %d", s)
}

func TestPackOrder(t *testing.T) {
	assert := newAsserter(t)

	// row A: cols 0,1,2 packs first at offset 0; row B needs offset 3
	m, err := BuildSparseMatrix(NewKeys([]string{"BA", "AA", "BB", "AB", "AC"}), DefaultElcAlgorithm())
	assert(err == nil, "build: %s", err)

	tbl, err := Pack(m)
	assert(err == nil, "pack: %s", err)

	offs := tbl.Offsets()
	assert(len(offs) == 2 && offs[0] == 0 && offs[1] == 3, "offsets: saw %v", offs)

	exp := map[[2]int]int{
		{0, 0}: 0,
		{0, 1}: 1,
		{0, 2}: 2,
		{1, 0}: 3,
		{1, 1}: 4,
	}
	for c, e := range exp {
		s, _ := tbl.Slot(c[0], c[1])
		assert(s == e, "cell %v: exp slot %d, saw %d", c, e, s)
	}
}

func TestPackCongruent(t *testing.T) {
	assert := newAsserter(t)

	// cols 0 and 8 of row A are both 0 mod 2
	m, err := BuildSparseMatrix(NewKeys([]string{"AA", "AI"}), DefaultElcAlgorithm())
	assert(err == nil, "build: %s", err)

	_, err = Pack(m)
	assert(errors.Is(err, ErrPacking), "exp packing error, saw %v", err)

	var pe *PackingError
	assert(errors.As(err, &pe), "exp *PackingError, saw %T", err)
	assert(pe.Row == 0, "exp row 0, saw %d", pe.Row)
}

func TestPackSingleRow(t *testing.T) {
	assert := newAsserter(t)

	m, err := BuildSparseMatrix(NewKeys([]string{"QED"}), DefaultElcAlgorithm())
	assert(err == nil, "build: %s", err)

	tbl, err := Pack(m)
	assert(err == nil, "pack: %s", err)
	assert(tbl.Len() == 17, "rows: exp 17, saw %d", tbl.Len())

	// the first offset tried lands on slot 0
	o, _ := tbl.Offset(16)
	assert(o == -3, "exp offset -3, saw %d", o)
	for i := 0; i < 16; i++ {
		o, _ := tbl.Offset(i)
		assert(o == 0, "empty row %d: exp 0, saw %d", i, o)
	}
}

func TestPackOneKeyPerRow(t *testing.T) {
	assert := newAsserter(t)

	algo, err := NewElcAlgorithm(2, 26)
	assert(err == nil, "new: %s", err)

	words := prefixWords(500)
	m, err := BuildSparseMatrix(NewKeys(words), algo)
	assert(err == nil, "build: %s", err)

	tbl, err := Pack(m)
	assert(err == nil, "pack: %s", err)

	seen := newBitVector(uint64(len(words)))
	for _, r := range m.Rows() {
		for _, c := range m.Cols(r) {
			s, ok := tbl.Slot(r, c)
			assert(ok, "row %d missing", r)
			assert(!seen.IsSet(uint64(s)), "slot %d claimed twice", s)
			seen.Set(uint64(s))
		}
	}
	assert(seen.Count() == uint64(len(words)), "exp %d slots, saw %d", len(words), seen.Count())
}
