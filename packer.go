// packer.go - pack the rows of a sparse matrix into a 1-D array
//
// This is the row displacement scheme of Brain & Tharp, "Perfect hashing
// using sparse matrix packing" (Information Systems, 1990).
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
)

type packRow struct {
	index int
	cols  []int
}

type packRows []packRow

func (p packRows) Len() int {
	return len(p)
}

// densest rows first; ties go to the lower row index
func (p packRows) Less(i, j int) bool {
	a, b := len(p[i].cols), len(p[j].cols)
	if a != b {
		return a > b
	}
	return p[i].index < p[j].index
}

func (p packRows) Swap(i, j int) {
	p[i], p[j] = p[j], p[i]
}

// Pack computes a row offset for every populated row of 'm' such that
// (offset + col) mod n is unique for every key and covers [0, n) exactly.
// Rows are placed greedily in decreasing order of occupancy; each row
// takes the first offset, starting at -(smallest column), whose slots are
// all free. Since n consecutive offsets cover every residue, a row that
// doesn't fit in n tries never fits and Pack returns a *PackingError.
func Pack(m *SparseMatrix, opts ...Option) (*RowOffsetTable, error) {
	return pack(m, newConfig(opts))
}

func pack(m *SparseMatrix, c *config) (*RowOffsetTable, error) {
	n := m.Len()
	if n == 0 {
		return nil, ErrEmptyInput
	}

	rows := make(packRows, 0, len(m.rows))
	for i := range m.rows {
		rows = append(rows, packRow{index: i, cols: m.Cols(i)})
	}
	sort.Sort(rows)

	occ := newBitVector(uint64(n))
	offsets := make([]int, m.maxRow+1)

	var tries int
	for i := range rows {
		r := &rows[i]
		if err := checkResidues(r, n); err != nil {
			return nil, err
		}

		o, t, ok := place(occ, r.cols, n)
		tries += t
		if !ok {
			free := uint64(n) - occ.Count()
			return nil, &PackingError{
				Row:    r.index,
				Reason: fmt.Sprintf("no offset fits %d keys into %d free slots", len(r.cols), free),
			}
		}
		offsets[r.index] = o
	}

	if z := occ.Count(); z != uint64(n) {
		return nil, &PackingError{
			Row:    -1,
			Reason: fmt.Sprintf("%d of %d slots claimed; slot %d is free", z, n, occ.FirstClear()),
		}
	}

	c.log.Debug("rows packed",
		zap.Int("keys", n),
		zap.Int("rows", len(rows)),
		zap.Int("table", len(offsets)),
		zap.Int("tries", tries))

	t := &RowOffsetTable{
		offsets: offsets,
		n:       n,
	}
	return t, nil
}

// place finds the first offset for 'cols' whose slots are all free and
// claims them. Returns the offset and the number of rejected offsets.
func place(occ *bitVector, cols []int, n int) (int, int, bool) {
	start := -cols[0]

nextOffset:
	for t := 0; t < n; t++ {
		o := start + t
		for _, c := range cols {
			if occ.IsSet(uint64((o + c) % n)) {
				continue nextOffset
			}
		}

		for _, c := range cols {
			occ.Set(uint64((o + c) % n))
		}
		return o, t, true
	}

	return 0, n, false
}

// Two columns of a row that are congruent mod n land on the same slot for
// every offset; such a row can never be placed.
func checkResidues(r *packRow, n int) error {
	cols := r.cols
	if cols[len(cols)-1]-cols[0] < n {
		return nil
	}

	seen := make(map[int]int, len(cols))
	for _, c := range cols {
		s := c % n
		if p, ok := seen[s]; ok {
			return &PackingError{
				Row:    r.index,
				Reason: fmt.Sprintf("columns %d and %d are congruent mod %d", p, c, n),
			}
		}
		seen[s] = c
	}
	return nil
}
