// text.go -- read key/value records from a variety of text files
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
	"encoding/csv"
	"io"
	"os"
	"strings"
)

type record struct {
	key string
	val []byte
}

// ReadTextFile reads records from text file 'fn' where key and value are separated
// by one of the characters in 'delim'. Empty lines are skipped and lines with no
// value become keys without values. This function just opens the file and calls
// ReadTextStream()
func ReadTextFile(fn string, delim string) ([]*record, error) {
	fd, err := os.Open(fn)
	if err != nil {
		return nil, err
	}

	if len(delim) == 0 {
		delim = " \t"
	}

	defer fd.Close()

	return ReadTextStream(fd, delim)
}

// ReadTextStream reads records from text stream 'fd' where key and value are separated
// by one of the characters in 'delim'. Empty lines and comments are skipped.
func ReadTextStream(fd io.Reader, delim string) ([]*record, error) {
	sc := bufio.NewScanner(fd)
	ch := make(chan *record, 10)

	// do I/O asynchronously
	go func(sc *bufio.Scanner, ch chan *record) {
		for sc.Scan() {
			s := strings.TrimSpace(sc.Text())
			if len(s) == 0 || s[0] == '#' {
				continue
			}

			var k, v string

			// if we have no delimiters - we treat the value as "boolean"
			i := strings.IndexAny(s, delim)
			if i > 0 {
				k = s[:i]
				v = strings.TrimSpace(s[i:])
			} else {
				k = s
			}

			// ignore items that are too large
			if len(v) >= 4294967295 {
				continue
			}

			ch <- makeRecord(k, v)
		}

		close(ch)
	}(sc, ch)

	r := readChan(ch)
	return r, sc.Err()
}

// ReadCSVFile reads records from CSV file 'fn'. If 'kwfield' and 'valfield' are
// non-negative, they indicate the field# of the key and value respectively; the
// default value for 'kwfield' & 'valfield' is 0 and 1 respectively.
// If 'comma' is not 0, the default CSV delimiter is ','.
// If 'comment' is not 0, then lines beginning with that rune are discarded.
// Records where the 'kwfield' and 'valfield' can't be evaluated are discarded.
func ReadCSVFile(fn string, comma, comment rune, kwfield, valfield int) ([]*record, error) {
	fd, err := os.Open(fn)
	if err != nil {
		return nil, err
	}

	defer fd.Close()

	return ReadCSVStream(fd, comma, comment, kwfield, valfield)
}

// ReadCSVStream reads records from CSV stream 'fd'; see ReadCSVFile().
func ReadCSVStream(fd io.Reader, comma, comment rune, kwfield, valfield int) ([]*record, error) {
	if kwfield < 0 {
		kwfield = 0
	}

	if valfield < 0 {
		valfield = 1
	}

	var max int = valfield
	if kwfield > valfield {
		max = kwfield
	}

	max += 1

	ch := make(chan *record, 10)
	cr := csv.NewReader(fd)
	cr.Comma = comma
	cr.Comment = comment
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	// written before close(ch), so it is visible once readChan() returns
	var rerr error
	go func(cr *csv.Reader, ch chan *record) {
		for {
			v, err := cr.Read()
			if err != nil {
				if err != io.EOF {
					rerr = err
				}
				break
			}

			if len(v) < max {
				continue
			}

			ch <- makeRecord(v[kwfield], v[valfield])
		}
		close(ch)
	}(cr, ch)

	r := readChan(ch)
	if rerr != nil {
		return nil, rerr
	}
	return r, nil
}

func readChan(ch chan *record) []*record {
	var r []*record
	for x := range ch {
		r = append(r, x)
	}
	return r
}

// keys are upper cased so they fit the end-letter-count alphabet
func makeRecord(key, val string) *record {
	r := &record{
		key: strings.ToUpper(key),
	}
	if len(val) > 0 {
		r.val = []byte(val)
	}
	return r
}
