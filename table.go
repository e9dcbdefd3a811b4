// table.go - row offset table
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
	"strings"
)

// RowOffsetTable holds one signed offset for every row index from 0 to
// the largest populated row. Rows without keys carry an offset of 0.
// A key in row r and column c lives in slot (offset[r] + c) mod n of the
// packed array.
type RowOffsetTable struct {
	offsets []int

	// number of keys == length of the packed array
	n int
}

// Len returns the number of rows in the table
func (t *RowOffsetTable) Len() int {
	return len(t.offsets)
}

// Size returns the length of the packed array
func (t *RowOffsetTable) Size() int {
	return t.n
}

// Offset returns the offset of row 'row'
func (t *RowOffsetTable) Offset(row int) (int, bool) {
	if row < 0 || row >= len(t.offsets) {
		return 0, false
	}
	return t.offsets[row], true
}

// Offsets returns a copy of the table
func (t *RowOffsetTable) Offsets() []int {
	v := make([]int, len(t.offsets))
	copy(v, t.offsets)
	return v
}

// Slot returns the packed array slot of cell (row, col)
func (t *RowOffsetTable) Slot(row, col int) (int, bool) {
	o, ok := t.Offset(row)
	if !ok {
		return 0, false
	}
	return modn(o+col, t.n), true
}

// String renders the table as "[o0, o1, ...]"
func (t *RowOffsetTable) String() string {
	var b strings.Builder

	b.WriteByte('[')
	for i, o := range t.offsets {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d", o)
	}
	b.WriteByte(']')
	return b.String()
}
