// words_test.go -- tests for the input readers
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

package main

import (
	"fmt"
	"runtime"
	"strings"
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

func TestWordList(t *testing.T) {
	assert := newAsserter(t)

	in := `# pascal keywords
and
begin   reserved
Char
spleen's
do
CONST
and

else
`
	wl := NewWordList(3)
	n, err := wl.AddStream(strings.NewReader(in))
	assert(err == nil, "read: %s", err)
	assert(n == 5, "exp 5 words, saw %d: %v", n, wl.Words)

	exp := []string{"AND", "BEGIN", "CHAR", "CONST", "ELSE"}
	for i, w := range exp {
		assert(wl.Words[i] == w, "word %d: exp %s, saw %s", i, w, wl.Words[i])
	}
}

func TestReadText(t *testing.T) {
	assert := newAsserter(t)

	in := `and  logical and
# comment
begin
end	block end
`
	r, err := ReadTextStream(strings.NewReader(in), " \t")
	assert(err == nil, "read: %s", err)
	assert(len(r) == 3, "exp 3 records, saw %d", len(r))

	assert(r[0].key == "AND" && string(r[0].val) == "logical and", "rec 0: %v", r[0])
	assert(r[1].key == "BEGIN" && r[1].val == nil, "rec 1: %v", r[1])
	assert(r[2].key == "END" && string(r[2].val) == "block end", "rec 2: %v", r[2])
}

func TestReadCSV(t *testing.T) {
	assert := newAsserter(t)

	in := `and,1
# comment
begin,2,extra
end
`
	r, err := ReadCSVStream(strings.NewReader(in), ',', '#', 0, 1)
	assert(err == nil, "read: %s", err)
	assert(len(r) == 2, "exp 2 records, saw %d", len(r))
	assert(r[0].key == "AND" && string(r[0].val) == "1", "rec 0: %v", r[0])
	assert(r[1].key == "BEGIN" && string(r[1].val) == "2", "rec 1: %v", r[1])
}

func TestReadCSVBadInput(t *testing.T) {
	assert := newAsserter(t)

	in := `and,1
"be"gin,2
end,3
`
	r, err := ReadCSVStream(strings.NewReader(in), ',', '#', 0, 1)
	assert(err != nil, "malformed quote accepted: %d records", len(r))
	assert(r == nil, "exp no records, saw %d", len(r))
}
