// algorithm.go - index algorithm interface and the end-letter-count algorithm
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
	"fmt"
)

// Key is a single word of the input along with its 0-based position
// in the input list.
type Key struct {
	Word string
	Pos  int
}

// IndexAlgorithm maps a key to a cell of the sparse matrix. Implementations
// must be pure: the same key always yields the same (row, col) pair.
// Every column index must lie in [0, Columns()).
type IndexAlgorithm interface {
	// RowIndex returns the row of the sparse matrix for 'key'
	RowIndex(key string) (int, error)

	// ColIndex returns the column of the sparse matrix for 'key'
	ColIndex(key string) (int, error)

	// Columns returns the number of columns in each row
	Columns() int
}

// Describer is optionally implemented by an IndexAlgorithm to render its
// row and column computations in the pseudocode of a hash function.
type Describer interface {
	Describe() (row, col string)
}

// ElcAlgorithm is the end-letter-count index algorithm. The row index
// is built from the first 'letters' characters of a key and the column
// index from the last 'letters' characters, read from the end backwards.
// Each character contributes its offset from 'A' as one base-'radix' digit.
// Keys must be upper case ASCII.
//
// Rows and columns both range over radix^letters values and the offset
// table holds one entry per row up to the largest one used; so
// radix^letters is capped at MaxElcColumns.
type ElcAlgorithm struct {
	letters int
	radix   int
	columns int
}

// MaxElcColumns is the largest radix^letters NewElcAlgorithm accepts
const MaxElcColumns = 1 << 20

var (
	_ IndexAlgorithm = &ElcAlgorithm{}
	_ Describer      = &ElcAlgorithm{}
)

// NewElcAlgorithm creates an end-letter-count algorithm consuming 'letters'
// characters from each end of a key. 'radix' is the base in which the
// letters are combined; use 26 to cover the whole alphabet.
func NewElcAlgorithm(letters, radix int) (*ElcAlgorithm, error) {
	if letters <= 0 {
		return nil, fmt.Errorf("elc: invalid letter count %d", letters)
	}
	if radix <= 0 || radix > 26 {
		return nil, fmt.Errorf("elc: invalid radix %d", radix)
	}

	cols := 1
	for i := 0; i < letters; i++ {
		if cols > MaxElcColumns/radix {
			return nil, fmt.Errorf("elc: %d letters in radix %d exceeds %d columns", letters, radix, MaxElcColumns)
		}
		cols *= radix
	}

	e := &ElcAlgorithm{
		letters: letters,
		radix:   radix,
		columns: cols,
	}
	return e, nil
}

// DefaultElcAlgorithm returns the end-letter-count algorithm with one
// letter from each end and 26 columns.
func DefaultElcAlgorithm() *ElcAlgorithm {
	return &ElcAlgorithm{
		letters: 1,
		radix:   26,
		columns: 26,
	}
}

// Letters returns the number of letters consumed from each end of a key
func (e *ElcAlgorithm) Letters() int {
	return e.letters
}

// Radix returns the base used to fold letters into an index
func (e *ElcAlgorithm) Radix() int {
	return e.radix
}

// Columns returns radix^letters
func (e *ElcAlgorithm) Columns() int {
	return e.columns
}

// RowIndex folds the leading letters of 'key'
func (e *ElcAlgorithm) RowIndex(key string) (int, error) {
	if err := e.check(key); err != nil {
		return 0, err
	}

	var v int
	for i := 0; i < e.letters; i++ {
		v = e.step(v, key[i])
	}
	return v, nil
}

// ColIndex folds the trailing letters of 'key', last character first
func (e *ElcAlgorithm) ColIndex(key string) (int, error) {
	if err := e.check(key); err != nil {
		return 0, err
	}

	var v int
	n := len(key)
	for i := 1; i <= e.letters; i++ {
		v = e.step(v, key[n-i])
	}
	return v, nil
}

// Describe renders the row and column computations
func (e *ElcAlgorithm) Describe() (string, string) {
	row := fmt.Sprintf("fold(v*%d + (ch - 'A')) over key[0:%d]", e.radix, e.letters)
	col := fmt.Sprintf("fold(v*%d + (ch - 'A')) over key[len-1] down to key[len-%d]", e.radix, e.letters)
	return row, col
}

func (e *ElcAlgorithm) String() string {
	return fmt.Sprintf("elc<letters %d, radix %d>", e.letters, e.radix)
}

func (e *ElcAlgorithm) step(acc int, ch byte) int {
	return acc*e.radix + int(ch-'A')
}

// both ends of the key must be long enough and upper case
func (e *ElcAlgorithm) check(key string) error {
	n := len(key)
	if n < e.letters {
		return fmt.Errorf("%w: length %d is less than %d letters", ErrKeyDomain, n, e.letters)
	}

	for i := 0; i < e.letters; i++ {
		if !isUpper(key[i]) || !isUpper(key[n-1-i]) {
			return fmt.Errorf("%w: unexpected character in %q", ErrKeyDomain, key)
		}
	}
	return nil
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}
