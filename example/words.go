// words.go -- read word lists
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
	"bufio"
	"io"
	"os"
	"strings"
)

// WordList is an ordered list of distinct upper case words
type WordList struct {
	Words  []string
	MinLen int

	seen map[string]bool
}

func NewWordList(minlen int) *WordList {
	w := &WordList{
		MinLen: minlen,
		seen:   make(map[string]bool),
	}
	return w
}

// AddFile adds words from text file 'fn'; see AddStream()
func (w *WordList) AddFile(fn string) (int, error) {
	fd, err := os.Open(fn)
	if err != nil {
		return 0, err
	}

	defer fd.Close()

	return w.AddStream(fd)
}

// AddStream adds the first word on each line of 'fd'. Empty lines,
// comments, words shorter than MinLen and words with anything other than
// letters (eg "spleen's") are skipped. Words are upper cased and
// duplicates are dropped.
// Returns number of words added.
func (w *WordList) AddStream(fd io.Reader) (int, error) {
	sc := bufio.NewScanner(fd)

	var n int
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if len(s) == 0 || s[0] == '#' {
			continue
		}

		if i := strings.IndexAny(s, " \t"); i > 0 {
			s = s[:i]
		}

		if w.Add(s) {
			n++
		}
	}

	return n, sc.Err()
}

// Add adds a single word if it passes the filters
func (w *WordList) Add(s string) bool {
	if len(s) < w.MinLen || !isAlpha(s) {
		return false
	}

	s = strings.ToUpper(s)
	if w.seen[s] {
		return false
	}

	w.seen[s] = true
	w.Words = append(w.Words, s)
	return true
}

func (w *WordList) Len() int {
	return len(w.Words)
}

func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}
