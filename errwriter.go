// errwriter.go -- io.writer that handles errors gracefully
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
)

// errWriter latches the first error; every later Write is a no-op that
// returns it. It also counts the bytes written so far.
type errWriter struct {
	w   io.Writer
	n   uint64
	err error
}

func newErrWriter(w io.Writer) *errWriter {
	return &errWriter{w: w}
}

func (e *errWriter) Write(b []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}

	n, err := e.w.Write(b)
	e.n += uint64(n)
	switch {
	case err != nil:
		e.err = err
	case n != len(b):
		e.err = shortWrite(n, len(b))
	}
	return n, e.err
}

// Written returns the number of bytes written to the underlying writer
func (e *errWriter) Written() uint64 {
	return e.n
}

func (e *errWriter) Error() error {
	return e.err
}

func shortWrite(saw, exp int) error {
	return fmt.Errorf("short write: exp %d, wrote %d", exp, saw)
}
