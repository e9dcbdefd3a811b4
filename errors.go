// errors.go - public errors exposed by msmp
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
	"fmt"
)

var (
	// ErrEmptyInput is returned when a hash function is requested for
	// zero keys. An empty key set is always rejected.
	ErrEmptyInput = errors.New("msmp: no keys to hash")

	// ErrInvalidIndex is matched by every *InvalidIndexError
	ErrInvalidIndex = errors.New("msmp: invalid index")

	// ErrKeyDomain is wrapped by an *InvalidIndexError when a key has
	// characters outside the alphabet of the index algorithm or is
	// too short for it.
	ErrKeyDomain = errors.New("key outside algorithm domain")

	// ErrDuplicateKey is wrapped by an *InvalidIndexError when the same
	// key appears twice in the input.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrCollision is matched by every *CollisionError
	ErrCollision = errors.New("msmp: key collision")

	// ErrPacking is matched by every *PackingError
	ErrPacking = errors.New("msmp: row packing failed")

	// ErrFrozen is returned when attempting to add new keys to an already
	// frozen builder or DB. It is also returned when freezing twice.
	ErrFrozen = errors.New("msmp: already frozen")

	// ErrAborted is returned by a builder whose construction failed
	// earlier; callers must start over with a new builder.
	ErrAborted = errors.New("msmp: construction aborted")

	// ErrUnsupportedAlgorithm is returned when marshaling a hash function
	// whose index algorithm has no binary encoding.
	ErrUnsupportedAlgorithm = errors.New("msmp: index algorithm can't be marshaled")

	// ErrValueTooLarge is returned if the value-length is larger than 2^32-1 bytes
	ErrValueTooLarge = errors.New("msmp: value is larger than 2^32-1 bytes")

	// ErrExists is returned if a duplicate key is added to the DB
	ErrExists = errors.New("msmp: key exists in DB")

	// ErrNoKey is returned when a key cannot be found in the DB
	ErrNoKey = errors.New("msmp: no such key")

	// Header too small for unmarshalling
	ErrTooSmall = errors.New("msmp: not enough data to unmarshal")
)

// InvalidIndexError reports a key the index algorithm can't place: the
// key is outside the algorithm's domain, a duplicate, or the algorithm
// returned an index outside its declared bounds.
type InvalidIndexError struct {
	Key     Key
	Row     int
	Col     int
	Columns int

	// Err is the underlying cause, if any
	Err error
}

func (e *InvalidIndexError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("msmp: invalid index for key %q at %d: %s", e.Key.Word, e.Key.Pos, e.Err)
	}
	return fmt.Sprintf("msmp: invalid index for key %q at %d: row %d, col %d (columns %d)",
		e.Key.Word, e.Key.Pos, e.Row, e.Col, e.Columns)
}

func (e *InvalidIndexError) Unwrap() error {
	return e.Err
}

func (e *InvalidIndexError) Is(target error) bool {
	return target == ErrInvalidIndex
}

// CollisionError reports two keys that map to the same (row, col) cell.
// First is the key that occupied the cell; Second is the key that came
// later in input order.
type CollisionError struct {
	Row    int
	Col    int
	First  Key
	Second Key
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("msmp: collision at row %d, col %d: %q (%d) === %q (%d)",
		e.Row, e.Col, e.First.Word, e.First.Pos, e.Second.Word, e.Second.Pos)
}

func (e *CollisionError) Is(target error) bool {
	return target == ErrCollision
}

// PackingError reports a row that could not be placed into the packed
// array, or a packed array that doesn't cover [0, n) exactly.
// Row is -1 when the failure isn't tied to a single row.
type PackingError struct {
	Row    int
	Reason string
}

func (e *PackingError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("msmp: packing failed: %s", e.Reason)
	}
	return fmt.Sprintf("msmp: packing failed at row %d: %s", e.Row, e.Reason)
}

func (e *PackingError) Is(target error) bool {
	return target == ErrPacking
}
