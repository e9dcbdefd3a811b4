// matrix_test.go -- test suite for the sparse matrix
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

func TestMatrixSimple(t *testing.T) {
	assert := newAsserter(t)
	algo := DefaultElcAlgorithm()

	m, err := BuildSparseMatrix(NewKeys([]string{"WORD"}), algo)
	assert(err == nil, "build: %s", err)
	assert(m.Len() == 1, "len: exp 1, saw %d", m.Len())
	assert(len(m.Rows()) == 1, "rows: exp 1, saw %d", len(m.Rows()))

	m, err = BuildSparseMatrix(NewKeys([]string{"WORD", "WIRE", "ABLE"}), algo)
	assert(err == nil, "build: %s", err)
	assert(m.Len() == 3, "len: exp 3, saw %d", m.Len())

	rows := m.Rows()
	assert(len(rows) == 2 && rows[0] == 0 && rows[1] == 22, "rows: saw %v", rows)
	assert(m.MaxRow() == 22, "max row: exp 22, saw %d", m.MaxRow())
	assert(m.Occupancy(22) == 2, "row 22: exp 2 keys, saw %d", m.Occupancy(22))
	assert(m.Occupancy(0) == 1, "row 0: exp 1 key, saw %d", m.Occupancy(0))
	assert(m.Occupancy(5) == 0, "row 5: exp 0 keys, saw %d", m.Occupancy(5))

	cols := m.Cols(22)
	assert(len(cols) == 2 && cols[0] == 3 && cols[1] == 4, "row 22 cols: saw %v", cols)

	k, ok := m.At(22, 3)
	assert(ok && k.Word == "WORD" && k.Pos == 0, "cell (22, 3): saw %v", k)
	k, ok = m.At(22, 4)
	assert(ok && k.Word == "WIRE" && k.Pos == 1, "cell (22, 4): saw %v", k)
	_, ok = m.At(22, 5)
	assert(!ok, "cell (22, 5) is occupied")
}

func TestMatrixCollision(t *testing.T) {
	assert := newAsserter(t)

	_, err := BuildSparseMatrix(NewKeys([]string{"WORD", "WIRE", "ABLE", "WILD"}), DefaultElcAlgorithm())
	assert(errors.Is(err, ErrCollision), "exp collision, saw %v", err)

	var ce *CollisionError
	assert(errors.As(err, &ce), "exp *CollisionError, saw %T", err)
	assert(ce.Row == 22 && ce.Col == 3, "bad cell (%d, %d)", ce.Row, ce.Col)
	assert(ce.First.Word == "WORD" && ce.First.Pos == 0, "bad first key %v", ce.First)
	assert(ce.Second.Word == "WILD" && ce.Second.Pos == 3, "bad second key %v", ce.Second)
}

func TestMatrixInvalid(t *testing.T) {
	assert := newAsserter(t)
	algo := DefaultElcAlgorithm()

	_, err := BuildSparseMatrix(nil, algo)
	assert(err == ErrEmptyInput, "exp ErrEmptyInput, saw %v", err)

	_, err = BuildSparseMatrix(NewKeys([]string{"AND", "BEGIN", "and"}), algo)
	assert(errors.Is(err, ErrInvalidIndex), "exp invalid index, saw %v", err)
	assert(errors.Is(err, ErrKeyDomain), "exp key domain, saw %v", err)

	var ie *InvalidIndexError
	assert(errors.As(err, &ie), "exp *InvalidIndexError, saw %T", err)
	assert(ie.Key.Word == "and" && ie.Key.Pos == 2, "bad key %v", ie.Key)

	_, err = BuildSparseMatrix(NewKeys([]string{"AND", "BEGIN", "AND"}), algo)
	assert(errors.Is(err, ErrInvalidIndex), "exp invalid index, saw %v", err)
	assert(errors.Is(err, ErrDuplicateKey), "exp duplicate, saw %v", err)

	// radix 4 can't represent 'Z' inside 4 columns
	small, err := NewElcAlgorithm(1, 4)
	assert(err == nil, "new: %s", err)
	_, err = BuildSparseMatrix(NewKeys([]string{"ABC", "ABZ"}), small)
	assert(errors.As(err, &ie), "exp *InvalidIndexError, saw %v", err)
	assert(ie.Key.Word == "ABZ" && ie.Col == 25 && ie.Columns == 4, "bad error %s", ie)
}

type fixedAlgo struct {
	row, col, cols int
}

func (f *fixedAlgo) RowIndex(string) (int, error) { return f.row, nil }
func (f *fixedAlgo) ColIndex(string) (int, error) { return f.col, nil }
func (f *fixedAlgo) Columns() int                 { return f.cols }

func TestMatrixBadAlgorithm(t *testing.T) {
	assert := newAsserter(t)

	_, err := BuildSparseMatrix(NewKeys([]string{"X"}), &fixedAlgo{0, 10, 10})
	assert(errors.Is(err, ErrInvalidIndex), "col == columns accepted: %v", err)

	_, err = BuildSparseMatrix(NewKeys([]string{"X"}), &fixedAlgo{-1, 0, 10})
	assert(errors.Is(err, ErrInvalidIndex), "negative row accepted: %v", err)

	_, err = BuildSparseMatrix(NewKeys([]string{"X"}), &fixedAlgo{0, -1, 10})
	assert(errors.Is(err, ErrInvalidIndex), "negative col accepted: %v", err)
}

func TestMatrixParallel(t *testing.T) {
	assert := newAsserter(t)

	algo, err := NewElcAlgorithm(2, 26)
	assert(err == nil, "new: %s", err)

	// 4 letter words: first two letters pick the row, last two the column
	n := MinParallelKeys + 1000
	words := make([]string, n)
	for i := range words {
		b := []byte{
			byte('A' + (i/17576)%26),
			byte('A' + (i/676)%26),
			byte('A' + (i/26)%26),
			byte('A' + i%26),
		}
		words[i] = string(b)
	}
	keys := NewKeys(words)

	ms, err := BuildSparseMatrix(keys, algo, WithWorkers(1))
	assert(err == nil, "serial build: %s", err)
	mp, err := BuildSparseMatrix(keys, algo, WithWorkers(4))
	assert(err == nil, "parallel build: %s", err)

	assert(ms.Len() == mp.Len(), "len mismatch %d vs %d", ms.Len(), mp.Len())
	rows := ms.Rows()
	assert(len(rows) == len(mp.Rows()), "row count mismatch")
	for _, r := range rows {
		a, b := ms.Cols(r), mp.Cols(r)
		assert(len(a) == len(b), "row %d: %d vs %d cols", r, len(a), len(b))
		for i := range a {
			assert(a[i] == b[i], "row %d col %d: %d vs %d", r, i, a[i], b[i])
		}
	}

	// the earliest bad key wins no matter which shard fails first
	words[n-1] = "abcd"
	words[n/2] = "AB1D"
	_, err = BuildSparseMatrix(NewKeys(words), algo, WithWorkers(4))

	var ie *InvalidIndexError
	assert(errors.As(err, &ie), "exp *InvalidIndexError, saw %v", err)
	assert(ie.Key.Pos == n/2, "exp error at %d, saw %d", n/2, ie.Key.Pos)
}
