// helpers_test.go - helper routines for tests
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
	"runtime"
	"testing"
)

func newAsserter(t *testing.T) func(cond bool, msg string, args ...interface{}) {
	return func(cond bool, msg string, args ...interface{}) {
		if cond {
			return
		}

		_, file, line, ok := runtime.Caller(1)
		if !ok {
			file = "???"
			line = 0
		}

		s := fmt.Sprintf(msg, args...)
		t.Fatalf("%s: %d: Assertion failed: %s\n", file, line, s)
	}
}

// subset of pascal keywords from Brain & Tharp
var pascal = []string{
	"AND",
	"BEGIN",
	"CHAR",
	"CONST",
	"ELSE",
	"END",
	"ENTER",
	"EOF",
}

// expected hash values of 'pascal' with the default elc algorithm
var pascalHash = map[string]uint64{
	"AND":   4,
	"BEGIN": 7,
	"CHAR":  3,
	"CONST": 5,
	"ELSE":  1,
	"END":   0,
	"ENTER": 6,
	"EOF":   2,
}

var pascalOffsets = []int{1, -6, -14, 0, -3}

// prefixWords returns 'n' words with distinct two letter prefixes; with
// a 2 letter elc algorithm every row holds exactly one word.
func prefixWords(n int) []string {
	w := make([]string, n)
	for i := range w {
		a := byte('A' + (i/26)%26)
		b := byte('A' + i%26)
		c := byte('A' + (i*7)%26)
		w[i] = string([]byte{a, b, 'X', c, 'Q'})
	}
	return w
}

// every value of 'h' over 'keys' must be distinct and cover [0, n)
func checkBijection(t *testing.T, h *HashFunction, keys []string) {
	assert := newAsserter(t)

	n := uint64(len(keys))
	assert(uint64(h.Len()) == n, "len mismatch: exp %d, saw %d", n, h.Len())

	seen := make(map[uint64]string, n)
	for _, k := range keys {
		v, ok := h.Find(k)
		assert(ok, "can't find key %s", k)
		assert(v < n, "key %s mapping %d out-of-bounds", k, v)

		x, ok := seen[v]
		assert(!ok, "index %d already mapped to key %s; now %s", v, x, k)
		seen[v] = k
	}
	assert(uint64(len(seen)) == n, "exp %d distinct values, saw %d", n, len(seen))
}
