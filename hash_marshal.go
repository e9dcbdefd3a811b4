// hash_marshal.go -- marshal/unmarshal a HashFunction
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
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Marshalled header - 4 x 64-bit words
const _hashHeaderSize = 32

const (
	_AlgoElc    byte = 1
	_AlgoHashed byte = 2
)

// MarshalBinary encodes the hash into a binary form suitable for durable
// storage. Only the algorithms in this package can be encoded; others
// fail with ErrUnsupportedAlgorithm.
func (h *HashFunction) MarshalBinary(w io.Writer) (int, error) {
	// Header: 4 64-bit words:
	//   o version byte
	//   o algorithm byte
	//   o resv [2]byte
	//   o nrows uint32
	//   o nkeys uint64
	//   o param0 uint32
	//   o param1 uint32
	//   o seed uint64
	//
	// Body:
	//   o <nrows> int64 offsets laid out sequentially

	var x [_hashHeaderSize]byte

	le := binary.LittleEndian
	switch a := h.algo.(type) {
	case *ElcAlgorithm:
		x[1] = _AlgoElc
		le.PutUint32(x[16:20], uint32(a.letters))
		le.PutUint32(x[20:24], uint32(a.radix))

	case *HashedAlgorithm:
		if a.rows > math.MaxUint32 || a.cols > math.MaxUint32 {
			return 0, fmt.Errorf("%w: hashed geometry %d x %d doesn't fit 32 bits",
				ErrUnsupportedAlgorithm, a.rows, a.cols)
		}
		x[1] = _AlgoHashed
		le.PutUint32(x[16:20], uint32(a.rows))
		le.PutUint32(x[20:24], uint32(a.cols))
		le.PutUint64(x[24:32], a.seed)

	default:
		return 0, fmt.Errorf("%w: %T", ErrUnsupportedAlgorithm, h.algo)
	}

	x[0] = 1
	le.PutUint32(x[4:8], uint32(h.table.Len()))
	le.PutUint64(x[8:16], uint64(h.table.Size()))

	wr := newErrWriter(w)
	n, _ := wr.Write(x[:])

	var o [8]byte
	for _, v := range h.table.offsets {
		le.PutUint64(o[:], uint64(int64(v)))
		m, _ := wr.Write(o[:])
		n += m
	}

	return n, wr.Error()
}

// marshalSize returns the number of bytes MarshalBinary writes
func (h *HashFunction) marshalSize() uint64 {
	return _hashHeaderSize + uint64(h.table.Len())*8
}

// UnmarshalHashFunction reads a previously marshalled hash function from
// 'buf' and returns it. 'buf' may be memory mapped; nothing is retained.
func UnmarshalHashFunction(buf []byte) (*HashFunction, error) {
	if len(buf) < _hashHeaderSize {
		return nil, ErrTooSmall
	}

	le := binary.LittleEndian
	hdr := buf[:_hashHeaderSize]
	buf = buf[_hashHeaderSize:]
	if hdr[0] != 1 {
		return nil, fmt.Errorf("msmp: no support to un-marshal version %d", hdr[0])
	}

	nrows := le.Uint32(hdr[4:8])
	nkeys := le.Uint64(hdr[8:16])
	p0 := le.Uint32(hdr[16:20])
	p1 := le.Uint32(hdr[20:24])
	seed := le.Uint64(hdr[24:32])

	if nkeys == 0 || nkeys > (1<<31) {
		return nil, fmt.Errorf("msmp: invalid key count %d", nkeys)
	}
	if uint64(len(buf)) < uint64(nrows)*8 {
		return nil, fmt.Errorf("msmp: partial offset table (exp %d bytes, saw %d)",
			uint64(nrows)*8, len(buf))
	}

	var algo IndexAlgorithm
	var err error

	switch hdr[1] {
	case _AlgoElc:
		algo, err = NewElcAlgorithm(int(p0), int(p1))
	case _AlgoHashed:
		algo, err = NewHashedAlgorithm(int(p0), int(p1), seed)
	default:
		return nil, fmt.Errorf("msmp: unknown algorithm %d", hdr[1])
	}
	if err != nil {
		return nil, fmt.Errorf("msmp: bad algorithm parameters: %w", err)
	}

	offsets := make([]int, nrows)
	for i := range offsets {
		j := i * 8
		offsets[i] = int(int64(le.Uint64(buf[j : j+8])))
	}

	t := &RowOffsetTable{
		offsets: offsets,
		n:       int(nkeys),
	}
	return newHashFunction(algo, t), nil
}
