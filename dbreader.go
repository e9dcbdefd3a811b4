// dbreader.go -- Constant keyword DB built on top of the packed MPH
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
	"crypto/subtle"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/golang-lru/arc/v2"
	"github.com/opencoff/go-mmap"
)

// DBReader represents the query interface for a previously constructed
// constant database (built using NewDBWriter()). The only meaningful
// operation on such a database is Lookup(). It is safe for concurrent use.
type DBReader struct {
	mph *HashFunction

	cache *arc.ARCCache[string, []byte]

	flags uint32

	// memory mapped index table
	index []byte

	nkeys  uint64
	salt   []byte
	offtbl uint64

	// original mmap slice
	mm *mmap.Mapping
	fd *os.File
	fn string
}

// NewDBReader reads a previously construct database in file 'fn'
// and prepares it for querying. Values are opportunistically
// cached after reading from disk.  We retain upto 'cache' number
// of records in memory (default 128).
func NewDBReader(fn string, cache int) (rd *DBReader, err error) {
	fd, err := os.Open(fn)
	if err != nil {
		return nil, err
	}

	defer func(e *error) {
		if *e != nil {
			fd.Close()
		}
	}(&err)

	// Number of records to cache
	if cache <= 0 {
		cache = 128
	}

	rd = &DBReader{
		fd: fd,
		fn: fn,
	}

	st, err := fd.Stat()
	if err != nil {
		return nil, fmt.Errorf("%s: can't stat: %w", fn, err)
	}

	if st.Size() < (_DBHeaderSize + 32) {
		return nil, fmt.Errorf("%s: file too small or corrupted", fn)
	}

	var hdrb [_DBHeaderSize]byte

	_, err = io.ReadFull(fd, hdrb[:])
	if err != nil {
		return nil, fmt.Errorf("%s: can't read header: %w", fn, err)
	}

	if err = rd.decodeHeader(hdrb[:], st.Size()); err != nil {
		return nil, err
	}

	if err = rd.verifyChecksum(hdrb[:], st.Size()); err != nil {
		return nil, err
	}

	// All metadata is now verified.
	// sanity check - even though we have verified the strong checksum
	tblsz := rd.nkeys * _IndexEntry
	if uint64(st.Size()) < (rd.offtbl + tblsz + _hashHeaderSize + 32) {
		return nil, fmt.Errorf("%s: corrupt header1", fn)
	}

	rd.cache, err = arc.NewARC[string, []byte](cache)
	if err != nil {
		return nil, err
	}

	// mmap the index table and the hash function
	mmapsz := st.Size() - int64(rd.offtbl) - 32
	mm := mmap.New(fd)

	mapping, err := mm.Map(mmapsz, int64(rd.offtbl), mmap.PROT_READ, mmap.F_READAHEAD)
	if err != nil {
		return nil, fmt.Errorf("%s: can't mmap %d bytes at off %d: %w",
			fn, mmapsz, rd.offtbl, err)
	}

	bs := mapping.Bytes()
	rd.mm = mapping
	rd.index = bs[:tblsz]

	mph, err := UnmarshalHashFunction(bs[tblsz:])
	if err != nil {
		mapping.Unmap()
		return nil, fmt.Errorf("%s: can't unmarshal MPH index: %w", fn, err)
	}
	if uint64(mph.Len()) != rd.nkeys {
		mapping.Unmap()
		return nil, fmt.Errorf("%s: MPH has %d keys, header says %d", fn, mph.Len(), rd.nkeys)
	}

	rd.mph = mph
	return rd, nil
}

// Len returns the number of keys in the DB
func (rd *DBReader) Len() int {
	return int(rd.nkeys)
}

// HashFunction returns the minimal perfect hash indexing this DB
func (rd *DBReader) HashFunction() *HashFunction {
	return rd.mph
}

// Close closes the db
func (rd *DBReader) Close() {
	rd.mm.Unmap()
	rd.fd.Close()
	rd.cache.Purge()
	rd.index = nil
	rd.salt = nil
	rd.mph = nil
	rd.fd = nil
	rd.fn = ""
}

// Lookup looks up 'key' in the table and returns the corresponding value.
// If the key is not found, value is nil and returns false.
func (rd *DBReader) Lookup(key string) ([]byte, bool) {
	v, err := rd.Find(key)
	if err != nil {
		return nil, false
	}

	return v, true
}

// DumpMeta dumps the metadata and index to io.Writer 'w'
func (rd *DBReader) DumpMeta(w io.Writer) {
	fmt.Fprintf(w, "%s", rd.Desc())

	for i := uint64(0); i < rd.nkeys; i++ {
		off, klen, vlen := rd.entry(i)
		key, _, err := rd.decodeRecord(off, klen, vlen)
		if err != nil {
			fmt.Fprintf(w, "  %3d: <%s>\n", i, err)
			continue
		}
		fmt.Fprintf(w, "  %3d: %q, %d bytes at %#x\n", i, key, vlen, off)
	}
}

// Desc provides a human description of the MPH db
func (rd *DBReader) Desc() string {
	var w strings.Builder

	typ := "KEYS+VALS"
	if (rd.flags & _DB_KeysOnly) > 0 {
		typ = "KEYS"
	}

	fmt.Fprintf(&w, "MSMP: <%s> %d keys, hash-salt %#x, offtbl at %#x\n",
		typ, rd.nkeys, rd.salt, rd.offtbl)
	rd.mph.DumpMeta(&w)
	return w.String()
}

// Find looks up 'key' in the table and returns the corresponding value.
// It returns an error if the key is not found or the disk i/o failed or
// the record checksum failed.
func (rd *DBReader) Find(key string) ([]byte, error) {
	if v, ok := rd.cache.Get(key); ok {
		return v, nil
	}

	// Not in cache. So, go to disk and find it.
	// We are guaranteed that: 0 <= i < rd.nkeys
	i, ok := rd.mph.Find(key)
	if !ok {
		return nil, ErrNoKey
	}

	off, klen, vlen := rd.entry(i)
	if int(klen) != len(key) {
		return nil, ErrNoKey
	}

	k, val, err := rd.decodeRecord(off, klen, vlen)
	if err != nil {
		return nil, err
	}
	if k != key {
		return nil, ErrNoKey
	}

	if (rd.flags & _DB_KeysOnly) > 0 {
		val = nil
	}

	rd.cache.Add(key, val)
	return val, nil
}

// IterFunc iterates through every record of the MPH db in hash order and
// calls 'fp' on each. If the called function returns non-nil,
// it stops the iteration and the error is propogated to the caller.
func (rd *DBReader) IterFunc(fp func(k string, v []byte) error) error {
	for i := uint64(0); i < rd.nkeys; i++ {
		off, klen, vlen := rd.entry(i)
		k, val, err := rd.decodeRecord(off, klen, vlen)
		if err != nil {
			return fmt.Errorf("iter: slot %d: read-record: %w", i, err)
		}

		if (rd.flags & _DB_KeysOnly) > 0 {
			val = nil
		}
		if err := fp(k, val); err != nil {
			return err
		}
	}
	return nil
}

// index entry for hash slot 'i'
func (rd *DBReader) entry(i uint64) (uint64, uint32, uint32) {
	le := binary.LittleEndian
	j := i * _IndexEntry
	e := rd.index[j : j+_IndexEntry]
	return le.Uint64(e[:8]), le.Uint32(e[8:12]), le.Uint32(e[12:16])
}

// read the full record at offset 'off', calculate the record checksum,
// validate it and return the key and value.
func (rd *DBReader) decodeRecord(off uint64, klen, vlen uint32) (string, []byte, error) {
	data := make([]byte, 8+uint64(klen)+uint64(vlen))

	_, err := rd.fd.ReadAt(data, int64(off))
	if err != nil {
		return "", nil, err
	}

	csum := binary.BigEndian.Uint64(data[:8])
	key := data[8 : 8+klen]
	val := data[8+klen:]

	exp := recordChecksum(rd.salt, off, key, val)
	if csum != exp {
		return "", nil, fmt.Errorf("%s: corrupted record at off %d (exp %#x, saw %#x)", rd.fn, off, exp, csum)
	}
	return string(key), val, nil
}

// Verify checksum of all metadata: index table, hash function and the file header.
// We know that offtbl is within the size bounds of the file - see decodeHeader() below.
// sz is the actual file size (includes the header we already read)
func (rd *DBReader) verifyChecksum(hdrb []byte, sz int64) error {
	h := sha512.New512_256()
	h.Write(hdrb)

	// remsz is the size of the remaining metadata (which begins at offset 'offtbl')
	remsz := sz - int64(rd.offtbl) - 32

	nw, err := io.Copy(h, io.NewSectionReader(rd.fd, int64(rd.offtbl), remsz))
	if err != nil {
		return fmt.Errorf("%s: metadata i/o error: %w", rd.fn, err)
	}
	if nw != remsz {
		return fmt.Errorf("%s: partial read while verifying checksum, exp %d, saw %d", rd.fn, remsz, nw)
	}

	var expsum [32]byte

	// Read the trailer -- which is the expected checksum
	if _, err = rd.fd.ReadAt(expsum[:], sz-32); err != nil {
		return fmt.Errorf("%s: checksum i/o error: %w", rd.fn, err)
	}

	csum := h.Sum(nil)
	if subtle.ConstantTimeCompare(csum[:], expsum[:]) != 1 {
		return fmt.Errorf("%s: checksum failure; exp %#x, saw %#x", rd.fn, expsum[:], csum[:])
	}
	return nil
}

// entry condition: b is _DBHeaderSize bytes long.
func (rd *DBReader) decodeHeader(b []byte, sz int64) error {
	if magic := string(b[:4]); magic != _Magic {
		return fmt.Errorf("%s: bad file magic <%s>", rd.fn, magic)
	}

	be := binary.BigEndian
	i := 4

	rd.flags = be.Uint32(b[i : i+4])
	i += 4

	rd.salt = make([]byte, 16)
	i += copy(rd.salt, b[i:i+16])
	rd.nkeys = be.Uint64(b[i : i+8])
	i += 8
	rd.offtbl = be.Uint64(b[i : i+8])

	if rd.offtbl < _DBHeaderSize || rd.offtbl >= uint64(sz-32) {
		return fmt.Errorf("%s: corrupt header0", rd.fn)
	}
	if rd.nkeys == 0 || rd.nkeys > uint64(sz) {
		return fmt.Errorf("%s: corrupt header0: %d keys", rd.fn, rd.nkeys)
	}

	return nil
}
