// make.go -- 'make' command implementation
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
	"os"
	"strings"
	"time"

	"github.com/opencoff/go-msmp"
	flag "github.com/opencoff/pflag"
)

type makeCommand struct{}

func init() {
	m := makeCommand{}
	registerCommand("make", &m)
}

func (m *makeCommand) run(args []string, opt *Option) (err error) {
	var af algoFlags
	var db *msmp.DBWriter

	defer func(e *error) {
		if *e != nil && db != nil {
			db.Abort()
		}
	}(&err)

	fs := flag.NewFlagSet("make", flag.ExitOnError)
	fs.SetOutput(os.Stdout)
	af.register(fs)
	fs.Usage = func() {
		fmt.Printf(`Usage: make [options] DB [INPUT...]

where:
   DB	    is the name of the output keyword database file
   INPUT    is one or more optional input files

The input file(s) must have a name suffix of one of the following:
   .txt	    A key,value per-line delimited by white space
   .txt     one key per line (no embedded whitespace)
   .csv	    A comma-separated key,value file

Keys are upper cased. The hashed algorithm is sized once all records
are read.

options:
`)
		fs.PrintDefaults()
		os.Exit(0)
	}

	err = fs.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("make: %w", err)
	}

	args = fs.Args()
	if len(args) < 1 {
		return fmt.Errorf("make: insufficient args")
	}

	fn := args[0]
	args = args[1:]

	var recs []*record
	if len(args) > 0 {
		for _, f := range args {
			var r []*record

			switch {
			case strings.HasSuffix(f, ".txt"):
				r, err = ReadTextFile(f, " \t")

			case strings.HasSuffix(f, ".csv"):
				r, err = ReadCSVFile(f, ',', '#', 0, 1)

			default:
				return fmt.Errorf("make: don't know how to add %s", f)
			}

			if err != nil {
				return fmt.Errorf("make: can't add %s: %s", f, err)
			}

			opt.Printf("+ %s: %d records\n", f, len(r))
			recs = append(recs, r...)
		}
	} else {
		recs, err = ReadTextStream(os.Stdin, " \t")
		if err != nil {
			return fmt.Errorf("make: can't add text from stdin: %w", err)
		}

		opt.Printf("+ <STDIN>: %d records\n", len(recs))
	}

	algo, err := af.build(len(recs))
	if err != nil {
		return fmt.Errorf("make: %w", err)
	}

	db, err = msmp.NewDBWriter(fn, algo, msmp.WithLogger(opt.log))
	if err != nil {
		return fmt.Errorf("make: can't create DB: %w", err)
	}

	var tot int
	for _, r := range recs {
		err = db.Add(r.key, r.val)
		switch err {
		case nil:
			tot++
		case msmp.ErrExists:
			opt.Printf("+ duplicate key %s skipped\n", r.key)
		default:
			return fmt.Errorf("make: %s: %w", r.key, err)
		}
	}

	start := time.Now()
	err = db.Freeze()
	if err != nil {
		return fmt.Errorf("make: can't write db %s: %w", fn, err)
	}
	delta := time.Since(start)
	opt.Printf("%d keys, %s\n", tot, delta.Truncate(time.Millisecond).String())

	return nil
}
