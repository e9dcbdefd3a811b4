// hashed.go - index algorithm built on general purpose string hashes
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

	"github.com/cespare/xxhash/v2"
	"github.com/opencoff/go-fasthash"
)

// HashedAlgorithm derives the row from a seeded fasthash and the column
// from xxhash of the key. Unlike ElcAlgorithm it accepts any byte string.
// Collisions are likely unless rows*cols is much larger than the number
// of keys; callers that hit a CollisionError can retry with a new seed.
type HashedAlgorithm struct {
	rows uint64
	cols uint64
	seed uint64
}

var (
	_ IndexAlgorithm = &HashedAlgorithm{}
	_ Describer      = &HashedAlgorithm{}
)

// NewHashedAlgorithm creates a hashed index algorithm with 'rows' rows
// and 'cols' columns.
func NewHashedAlgorithm(rows, cols int, seed uint64) (*HashedAlgorithm, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("hashed: invalid geometry %d x %d", rows, cols)
	}

	h := &HashedAlgorithm{
		rows: uint64(rows),
		cols: uint64(cols),
		seed: seed,
	}
	return h, nil
}

// Rows returns the number of rows this algorithm spreads keys over
func (h *HashedAlgorithm) Rows() int {
	return int(h.rows)
}

// Seed returns the hash seed
func (h *HashedAlgorithm) Seed() uint64 {
	return h.seed
}

// Columns returns the number of columns
func (h *HashedAlgorithm) Columns() int {
	return int(h.cols)
}

// RowIndex returns fasthash(seed, key) mod rows
func (h *HashedAlgorithm) RowIndex(key string) (int, error) {
	if len(key) == 0 {
		return 0, fmt.Errorf("%w: empty key", ErrKeyDomain)
	}
	return int(fasthash.Hash64(h.seed, []byte(key)) % h.rows), nil
}

// ColIndex returns mix(xxhash(key) ^ seed) mod cols
func (h *HashedAlgorithm) ColIndex(key string) (int, error) {
	if len(key) == 0 {
		return 0, fmt.Errorf("%w: empty key", ErrKeyDomain)
	}
	v := mix(xxhash.Sum64String(key) ^ h.seed)
	return int(v % h.cols), nil
}

// Describe renders the row and column computations
func (h *HashedAlgorithm) Describe() (string, string) {
	row := fmt.Sprintf("fasthash64(%#x, key) mod %d", h.seed, h.rows)
	col := fmt.Sprintf("mix(xxhash64(key) ^ %#x) mod %d", h.seed, h.cols)
	return row, col
}

func (h *HashedAlgorithm) String() string {
	return fmt.Sprintf("hashed<%d x %d, seed %#x>", h.rows, h.cols, h.seed)
}
