// builder_test.go -- test suite for the construction pipeline
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
	"testing"

	"go.uber.org/zap"
)

func TestBuilder(t *testing.T) {
	assert := newAsserter(t)

	b := NewBuilder(DefaultElcAlgorithm(), WithLogger(zap.NewExample()))
	assert(b.State() == Empty, "exp empty, saw %s", b.State())

	for _, k := range pascal {
		err := b.Add(k)
		assert(err == nil, "add %s: %s", k, err)
	}
	assert(b.Len() == len(pascal), "len: exp %d, saw %d", len(pascal), b.Len())

	h, err := b.Freeze()
	assert(err == nil, "freeze: %s", err)
	assert(b.State() == Generated, "exp generated, saw %s", b.State())

	for k, exp := range pascalHash {
		v, _ := h.Find(k)
		assert(v == exp, "%s: exp %d, saw %d", k, exp, v)
	}

	err = b.Add("EXIT")
	assert(err == ErrFrozen, "add after freeze: exp ErrFrozen, saw %v", err)

	_, err = b.Freeze()
	assert(err == ErrFrozen, "freeze twice: exp ErrFrozen, saw %v", err)
}

func TestBuilderAbort(t *testing.T) {
	assert := newAsserter(t)

	b := NewBuilder(DefaultElcAlgorithm())
	for _, k := range []string{"AND", "BEGIN", "AID"} {
		err := b.Add(k)
		assert(err == nil, "add %s: %s", k, err)
	}

	_, err := b.Freeze()
	assert(errors.Is(err, ErrCollision), "exp collision, saw %v", err)
	assert(b.State() == Aborted, "exp aborted, saw %s", b.State())

	err = b.Add("EXIT")
	assert(err == ErrAborted, "add: exp ErrAborted, saw %v", err)
	_, err = b.Freeze()
	assert(err == ErrAborted, "freeze: exp ErrAborted, saw %v", err)

	b = NewBuilder(DefaultElcAlgorithm())
	_, err = b.Freeze()
	assert(err == ErrEmptyInput, "exp ErrEmptyInput, saw %v", err)
	assert(b.State() == Aborted, "exp aborted, saw %s", b.State())
}

func TestStateString(t *testing.T) {
	assert := newAsserter(t)

	exp := map[State]string{
		Aborted:   "aborted",
		Empty:     "empty",
		Populated: "populated",
		Packed:    "packed",
		Generated: "generated",
		State(9):  "unknown",
	}
	for s, v := range exp {
		assert(s.String() == v, "state %d: exp %s, saw %s", int(s), v, s)
	}
}
