// dbwriter.go -- Constant keyword DB built on top of the packed MPH
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
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/dchest/siphash"
	"go.uber.org/zap"
)

// The on-disk DB has the following general structure:
//   - 64 byte file header: big-endian encoding of all multibyte ints
//      * magic    [4]byte
//      * flags    uint32 (indicates if DB is keys-only or keys+vals)
//      * salt     [16]byte random salt for siphash record integrity
//      * nkeys    uint64  Number of keys in the DB
//      * offtbl   uint64  File offset of the index table (page-aligned)
//
//   - Contiguous series of records; each record is a key/value pair:
//      * cksum    uint64  Siphash checksum of offset, key, value (big endian)
//      * key      []byte  key bytes
//      * val      []byte  value bytes
//
//   - Possibly a gap until the next PageSize boundary
//   - The index table: one 16 byte entry per hash slot, little-endian:
//      * off      uint64  file offset of the record
//      * klen     uint32  key length
//      * vlen     uint32  value length
//   - Marshaled hash function (see hash_marshal.go)
//   - 32 bytes of strong checksum (SHA512_256); this checksum is done over
//     the file header, index table and marshaled hash function.

const (
	// Flags
	_DB_KeysOnly = 1 << iota

	_Magic = "MSMP"

	_DBHeaderSize = 64
	_IndexEntry   = 16
)

// writer state
type wstate int

const (
	_Aborted wstate = -1
	_Open    wstate = 0
	_Frozen  wstate = 1
)

// DBWriter represents an abstraction to construct a read-only keyword
// database. The index is a minimal perfect hash function built by
// sparse matrix packing, so every key of the DB must be acceptable to
// the chosen IndexAlgorithm. Records are stored sequentially along with
// a siphash-2-4 checksum; the DB meta-data and hash tables are protected
// by a strong checksum (SHA512-256).
type DBWriter struct {
	fd *os.File
	bb *Builder

	log *zap.Logger

	// to detect duplicates
	keymap map[string]*value

	// siphash key: just binary encoded salt
	salt []byte

	// running count of current offset within fd where we are writing
	// records
	off uint64

	valSize uint64

	fntmp string // tmp file name
	fn    string // final file holding the DB
	state wstate
}

// things associated with each key/value pair
type value struct {
	off  uint64
	klen uint32
	vlen uint32
}

// NewDBWriter prepares file 'fn' to hold a constant DB indexed by a
// minimal perfect hash built with 'algo'. Once written, the DB is "frozen"
// and readers will open it using NewDBReader() to do constant time lookups
// of key to value.
func NewDBWriter(fn string, algo IndexAlgorithm, opts ...Option) (*DBWriter, error) {
	tmp := fmt.Sprintf("%s.tmp.%d", fn, rand32())
	fd, err := os.OpenFile(tmp, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, err
	}

	cfg := newConfig(opts)
	w := &DBWriter{
		fd:     fd,
		bb:     NewBuilder(algo, opts...),
		log:    cfg.log,
		keymap: make(map[string]*value),
		salt:   randbytes(16),
		off:    _DBHeaderSize, // starting offset past the header
		fn:     fn,
		fntmp:  tmp,
	}

	// Leave some space for a header; we will fill this in when we
	// are done Freezing.
	var z [_DBHeaderSize]byte
	if _, err := writeAll(fd, z[:]); err != nil {
		w.abort()
		return nil, err
	}

	return w, nil
}

// Len returns the total number of distinct keys in the DB
func (w *DBWriter) Len() int {
	return len(w.keymap)
}

// Filename returns the filename of the underlying db
func (w *DBWriter) Filename() string {
	return w.fn
}

// AddKeyVals adds a series of key-value matched pairs to the db. If they are of
// unequal length, only the smaller of the lengths are used. Records with duplicate
// keys are discarded.
// Returns number of records added.
func (w *DBWriter) AddKeyVals(keys []string, vals [][]byte) (int, error) {
	if w.state != _Open {
		return 0, ErrFrozen
	}

	n := len(keys)
	if len(vals) < n {
		n = len(vals)
	}

	var z int
	for i := 0; i < n; i++ {
		if ok, err := w.addRecord(keys[i], vals[i]); err != nil {
			if err == ErrExists {
				continue
			}
			return z, err
		} else if ok {
			z++
		}
	}

	return z, nil
}

// Add adds a single key,value pair.
func (w *DBWriter) Add(key string, val []byte) error {
	if w.state != _Open {
		return ErrFrozen
	}

	if _, err := w.addRecord(key, val); err != nil {
		return err
	}
	return nil
}

// Abort a construction
func (w *DBWriter) Abort() error {
	if w.state != _Open {
		return ErrFrozen
	}

	return w.abort()
}

func (w *DBWriter) abort() error {
	w.state = _Aborted

	// fd may already be closed if we failed late in Freeze()
	w.fd.Close()
	return os.Remove(w.fntmp)
}

// Freeze builds the minimal perfect hash, writes the DB and closes it.
func (w *DBWriter) Freeze() (err error) {
	if w.state != _Open {
		return ErrFrozen
	}

	defer func(e *error) {
		// undo the tmpfile
		if *e != nil {
			w.abort()
		}
	}(&err)

	var mp *HashFunction

	mp, err = w.bb.Freeze()
	if err != nil {
		return fmt.Errorf("%s: %w", w.fn, err)
	}

	// We align the index table to pagesize - so we can mmap it when we read it back.
	pgsz := uint64(os.Getpagesize())
	offtbl := (w.off + pgsz - 1) &^ (pgsz - 1)
	if offtbl > w.off {
		zeroes := make([]byte, offtbl-w.off)
		if _, err = writeAll(w.fd, zeroes); err != nil {
			return err
		}
		w.off = offtbl
	}

	// header is encoded in big-endian format
	var ehdr [_DBHeaderSize]byte

	be := binary.BigEndian
	copy(ehdr[:4], _Magic)

	i := 4
	if w.valSize == 0 {
		be.PutUint32(ehdr[i:i+4], uint32(_DB_KeysOnly))
	}
	i += 4

	i += copy(ehdr[i:], w.salt)
	be.PutUint64(ehdr[i:i+8], uint64(mp.Len()))
	i += 8
	be.PutUint64(ehdr[i:i+8], offtbl)

	// calculate strong checksum for the header and everything after offtbl
	h := sha512.New512_256()
	h.Write(ehdr[:])

	wr := newErrWriter(io.MultiWriter(w.fd, h))
	w.marshalIndex(wr, mp)
	mp.MarshalBinary(wr)
	if err = wr.Error(); err != nil {
		return err
	}
	w.off += wr.Written()

	// Trailer is the checksum of everything
	cksum := h.Sum(nil)
	if _, err = writeAll(w.fd, cksum[:]); err != nil {
		return err
	}

	// Finally, write the header at start of file
	if _, err = w.fd.WriteAt(ehdr[:], 0); err != nil {
		return err
	}

	if err = w.fd.Sync(); err != nil {
		return err
	}

	if err = w.fd.Close(); err != nil {
		return err
	}

	if err = os.Rename(w.fntmp, w.fn); err != nil {
		return err
	}
	w.state = _Frozen

	w.log.Debug("db written",
		zap.String("file", w.fn),
		zap.Int("keys", mp.Len()),
		zap.Uint64("values", w.valSize),
		zap.Uint64("size", w.off+32))
	return nil
}

// write the index table ordered by hash slot
func (w *DBWriter) marshalIndex(wr *errWriter, mp *HashFunction) {
	le := binary.LittleEndian
	tbl := make([]byte, mp.Len()*_IndexEntry)

	for k, r := range w.keymap {
		i, ok := mp.Find(k)
		if !ok {
			wr.err = fmt.Errorf("dbwriter: panic: can't find key %q", k)
			return
		}

		j := i * _IndexEntry
		le.PutUint64(tbl[j:j+8], r.off)
		le.PutUint32(tbl[j+8:j+12], r.klen)
		le.PutUint32(tbl[j+12:j+16], r.vlen)
	}

	wr.Write(tbl)
}

// compute checksums and add a record to the file at the current offset.
func (w *DBWriter) addRecord(key string, val []byte) (bool, error) {
	if uint64(len(val)) > uint64(1<<32)-1 || uint64(len(key)) > uint64(1<<32)-1 {
		return false, ErrValueTooLarge
	}

	if _, ok := w.keymap[key]; ok {
		return false, ErrExists
	}

	// first add to the underlying MPH constructor
	if err := w.bb.Add(key); err != nil {
		return false, err
	}

	v := &value{
		off:  w.off,
		klen: uint32(len(key)),
		vlen: uint32(len(val)),
	}
	w.keymap[key] = v

	if err := w.writeRecord(key, val, v.off); err != nil {
		return false, err
	}

	w.valSize += uint64(len(val))
	return true, nil
}

// writeRecord writes a record and checksum at the offset
func (w *DBWriter) writeRecord(key string, val []byte, off uint64) error {
	var c [8]byte

	binary.BigEndian.PutUint64(c[:], recordChecksum(w.salt, off, []byte(key), val))

	// Checksum at the start of record
	wr := newErrWriter(w.fd)
	wr.Write(c[:])
	wr.Write([]byte(key))
	wr.Write(val)
	if err := wr.Error(); err != nil {
		return err
	}

	w.off += wr.Written()
	return nil
}

func recordChecksum(salt []byte, off uint64, key, val []byte) uint64 {
	var o [8]byte

	binary.BigEndian.PutUint64(o[:], off)

	h := siphash.New(salt)
	h.Write(o[:])
	h.Write(key)
	h.Write(val)
	return h.Sum64()
}
