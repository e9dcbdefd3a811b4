// matrix.go - sparse 2-D matrix of keys
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
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SparseMatrix holds every key at the (row, col) cell chosen by an
// IndexAlgorithm. Each cell holds at most one key.
type SparseMatrix struct {
	keys    []Key
	rows    map[int]*matrixRow
	maxRow  int
	columns int
}

// a single populated row; cells are sorted by column
type matrixRow struct {
	index int
	cells []cell
}

type cell struct {
	col int
	key int // index into SparseMatrix.keys
}

type coord struct {
	row, col int
}

// NewKeys assigns input positions to 'words'
func NewKeys(words []string) []Key {
	keys := make([]Key, len(words))
	for i, w := range words {
		keys[i] = Key{Word: w, Pos: i}
	}
	return keys
}

// BuildSparseMatrix places every key in 'keys' into a sparse matrix using
// 'algo'. It fails with the first collision in input order; no other
// algorithm is attempted.
func BuildSparseMatrix(keys []Key, algo IndexAlgorithm, opts ...Option) (*SparseMatrix, error) {
	return buildMatrix(keys, algo, newConfig(opts))
}

func buildMatrix(keys []Key, algo IndexAlgorithm, c *config) (*SparseMatrix, error) {
	if len(keys) == 0 {
		return nil, ErrEmptyInput
	}

	if err := checkDuplicates(keys); err != nil {
		return nil, err
	}

	xy, err := computeIndices(keys, algo, c)
	if err != nil {
		return nil, err
	}

	m := &SparseMatrix{
		keys:    keys,
		rows:    make(map[int]*matrixRow),
		columns: algo.Columns(),
	}

	occ := make(map[coord]int, len(keys))
	for i, p := range xy {
		if j, ok := occ[p]; ok {
			return nil, &CollisionError{
				Row:    p.row,
				Col:    p.col,
				First:  keys[j],
				Second: keys[i],
			}
		}
		occ[p] = i

		r, ok := m.rows[p.row]
		if !ok {
			r = &matrixRow{index: p.row}
			m.rows[p.row] = r
		}
		r.cells = append(r.cells, cell{col: p.col, key: i})

		if p.row > m.maxRow {
			m.maxRow = p.row
		}
	}

	for _, r := range m.rows {
		sort.Slice(r.cells, func(i, j int) bool {
			return r.cells[i].col < r.cells[j].col
		})
	}

	c.log.Debug("sparse matrix populated",
		zap.Int("keys", len(keys)),
		zap.Int("rows", len(m.rows)),
		zap.Int("max-row", m.maxRow),
		zap.Int("columns", m.columns))
	return m, nil
}

// Len returns the number of keys in the matrix
func (m *SparseMatrix) Len() int {
	return len(m.keys)
}

// MaxRow returns the largest populated row index
func (m *SparseMatrix) MaxRow() int {
	return m.maxRow
}

// Rows returns the populated row indices in ascending order
func (m *SparseMatrix) Rows() []int {
	v := make([]int, 0, len(m.rows))
	for i := range m.rows {
		v = append(v, i)
	}
	sort.Ints(v)
	return v
}

// Occupancy returns the number of keys in row 'row'
func (m *SparseMatrix) Occupancy(row int) int {
	if r, ok := m.rows[row]; ok {
		return len(r.cells)
	}
	return 0
}

// Cols returns the occupied columns of row 'row' in ascending order
func (m *SparseMatrix) Cols(row int) []int {
	r, ok := m.rows[row]
	if !ok {
		return nil
	}

	v := make([]int, len(r.cells))
	for i, c := range r.cells {
		v[i] = c.col
	}
	return v
}

// At returns the key in cell (row, col)
func (m *SparseMatrix) At(row, col int) (Key, bool) {
	r, ok := m.rows[row]
	if !ok {
		return Key{}, false
	}

	i := sort.Search(len(r.cells), func(i int) bool {
		return r.cells[i].col >= col
	})
	if i < len(r.cells) && r.cells[i].col == col {
		return m.keys[r.cells[i].key], true
	}
	return Key{}, false
}

// compute (row, col) for every key; large key sets are sharded across
// goroutines. Errors are reported for the earliest key in input order.
func computeIndices(keys []Key, algo IndexAlgorithm, c *config) ([]coord, error) {
	xy := make([]coord, len(keys))

	ncpu := c.workers
	if ncpu > len(keys) {
		ncpu = len(keys)
	}

	if ncpu <= 1 || len(keys) <= MinParallelKeys {
		if err := indexShard(keys, xy, algo); err != nil {
			return nil, err
		}
		return xy, nil
	}

	n := len(keys)
	z := n / ncpu
	r := n % ncpu

	errs := make([]error, ncpu)

	var g errgroup.Group
	g.SetLimit(ncpu)
	for i := 0; i < ncpu; i++ {
		i := i
		x := z * i
		y := x + z
		if i == (ncpu - 1) {
			y += r
		}
		g.Go(func() error {
			errs[i] = indexShard(keys[x:y], xy[x:y], algo)
			return errs[i]
		})
	}

	err := g.Wait()
	if err == nil {
		c.log.Debug("indices computed", zap.Int("keys", n), zap.Int("workers", ncpu))
		return xy, nil
	}

	// errgroup returns whichever shard failed first in time
	for _, e := range errs {
		if e != nil {
			return nil, e
		}
	}
	return nil, err
}

func indexShard(keys []Key, xy []coord, algo IndexAlgorithm) error {
	cols := algo.Columns()
	for i, k := range keys {
		row, err := algo.RowIndex(k.Word)
		if err != nil {
			return &InvalidIndexError{Key: k, Columns: cols, Err: err}
		}

		col, err := algo.ColIndex(k.Word)
		if err != nil {
			return &InvalidIndexError{Key: k, Row: row, Columns: cols, Err: err}
		}

		if row < 0 || col < 0 || col >= cols {
			return &InvalidIndexError{Key: k, Row: row, Col: col, Columns: cols}
		}
		xy[i] = coord{row, col}
	}
	return nil
}

func checkDuplicates(keys []Key) error {
	seen := make(map[string]int, len(keys))
	for _, k := range keys {
		if p, ok := seen[k.Word]; ok {
			return &InvalidIndexError{
				Key: k,
				Err: fmt.Errorf("%w: first seen at %d", ErrDuplicateKey, p),
			}
		}
		seen[k.Word] = k.Pos
	}
	return nil
}
