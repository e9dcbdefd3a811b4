// hash.go - minimal perfect hash function built from a packed table
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
	"io"
	"strings"
)

// HashFunction is a frozen minimal perfect hash function:
//
//	hash(key) = (offset[row(key)] + col(key)) mod n
//
// It is immutable and safe for concurrent use.
type HashFunction struct {
	algo  IndexAlgorithm
	table *RowOffsetTable
	text  string
}

// Generate composes the row offset table 't' and 'algo' into a hash
// function. Every key of 'm' is checked to land on a distinct slot of
// [0, n). Returns the pseudocode of the function along with it.
func Generate(m *SparseMatrix, t *RowOffsetTable, algo IndexAlgorithm) (string, *HashFunction, error) {
	n := m.Len()
	if n == 0 {
		return "", nil, ErrEmptyInput
	}
	if t.Size() != n {
		return "", nil, &PackingError{
			Row:    -1,
			Reason: fmt.Sprintf("table packs %d slots for %d keys", t.Size(), n),
		}
	}

	seen := newBitVector(uint64(n))
	for _, row := range m.Rows() {
		for _, c := range m.rows[row].cells {
			s, ok := t.Slot(row, c.col)
			if !ok {
				return "", nil, &PackingError{Row: row, Reason: "row missing from offset table"}
			}
			if seen.IsSet(uint64(s)) {
				k := m.keys[c.key]
				return "", nil, &PackingError{
					Row:    row,
					Reason: fmt.Sprintf("key %q lands on claimed slot %d", k.Word, s),
				}
			}
			seen.Set(uint64(s))
		}
	}

	h := newHashFunction(algo, t)
	return h.text, h, nil
}

func newHashFunction(algo IndexAlgorithm, t *RowOffsetTable) *HashFunction {
	h := &HashFunction{
		algo:  algo,
		table: t,
	}
	h.text = h.render()
	return h
}

// Len returns the number of keys; every hash value is in [0, Len())
func (h *HashFunction) Len() int {
	return h.table.Size()
}

// Find returns the unique integer in [0, Len()) for key 'k'.
// The return value is meaningful ONLY for keys in the original key set
// (provided at the time of construction of the minimal-hash).
// Other keys still hash deterministically; it returns false only when
// the algorithm can't index 'k' or its row is outside the table.
func (h *HashFunction) Find(k string) (uint64, bool) {
	row, err := h.algo.RowIndex(k)
	if err != nil {
		return 0, false
	}
	col, err := h.algo.ColIndex(k)
	if err != nil {
		return 0, false
	}

	s, ok := h.table.Slot(row, col)
	if !ok {
		return 0, false
	}
	return uint64(s), true
}

// Offsets returns a copy of the row offset table
func (h *HashFunction) Offsets() []int {
	return h.table.Offsets()
}

// Table returns the row offset table
func (h *HashFunction) Table() *RowOffsetTable {
	return h.table
}

// Algorithm returns the index algorithm
func (h *HashFunction) Algorithm() IndexAlgorithm {
	return h.algo
}

// Pseudocode returns a human readable rendering of the hash function.
// It is descriptive only and not meant to be parsed.
func (h *HashFunction) Pseudocode() string {
	return h.text
}

// DumpMeta dumps the metadata of the hash function to io.Writer 'w'
func (h *HashFunction) DumpMeta(w io.Writer) {
	fmt.Fprintf(w, "  MSMP: %d keys, %d rows, algorithm %s\n",
		h.table.Size(), h.table.Len(), algoName(h.algo))
	fmt.Fprintf(w, "  offsets %s\n", h.table)
}

func (h *HashFunction) render() string {
	var b strings.Builder

	row, col := describe(h.algo)
	n := h.table.Size()

	fmt.Fprintf(&b, "n      = %d\n", n)
	fmt.Fprintf(&b, "offset = %s\n", h.table)
	fmt.Fprintf(&b, "row    = %s\n", row)
	fmt.Fprintf(&b, "col    = %s\n", col)
	fmt.Fprintf(&b, "hash   = (offset[row] + col) mod %d\n", n)
	return b.String()
}

func describe(a IndexAlgorithm) (string, string) {
	if d, ok := a.(Describer); ok {
		return d.Describe()
	}

	nm := algoName(a)
	return nm + ".RowIndex(key)", nm + ".ColIndex(key)"
}

func algoName(a IndexAlgorithm) string {
	if s, ok := a.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", a)
}
