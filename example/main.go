// main.go -- msmp command line tool
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

// msmp is an example of using msmp.GenerateHash(), DBWriter and DBReader.
// It prints the minimal perfect hash function for a word list, or builds
// a constant keyword DB indexed by such a function. Words are read from
// text files:
//   - one word per line, for 'gen'
//   - white space delimited text file: first field is key, second field is value
//   - Comma Separated text file (CSV): first field is key, second field is value
//
// Keys are upper cased before hashing. With the default end-letter-count
// algorithm, a word list that collides can often be hashed by consuming
// more letters from each end (-l 2).

package main

import (
	"fmt"
	"os"

	flag "github.com/opencoff/pflag"
	"go.uber.org/zap"
)

func main() {
	var opt Option

	usage := fmt.Sprintf(
		`%s - minimal perfect hashing by sparse matrix packing

Usage: %s [global-options] CMD CMD-ARGS...

CMD is an operation to be performed and CMD-ARGS are operation specific
arguments. The list of supported operations are:

  gen [options] [WORDS...]                -- Print the hash function for a word list
  make [options] DB [INPUTS...]           -- Make a new keyword db from the inputs
  lookup [options] DB KEY...              -- Lookup keys in a keyword db
  dump [options] DB                       -- Dump a keyword db
  fsck [options] DB                       -- Verify the integrity of the DB

Options:
`, os.Args[0], os.Args[0])

	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(os.Stdout)
	fs.BoolVarP(&opt.verbose, "verbose", "V", false, "Show verbose output")
	fs.Usage = func() {
		fmt.Printf(usage)
		fs.PrintDefaults()
		os.Exit(0)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		die("%s", err)
	}

	args := fs.Args()
	if len(args) < 1 {
		fmt.Printf(usage)
		fs.PrintDefaults()
		os.Exit(0)
	}

	opt.log = zap.NewNop()
	if opt.verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			die("can't create logger: %s", err)
		}
		opt.log = log
	}
	defer opt.log.Sync()

	err := runCommand(args, &opt)
	if err != nil {
		die("%s", err)
	}
}

// die with error
func die(f string, v ...interface{}) {
	warn(f, v...)
	os.Exit(1)
}

func warn(f string, v ...interface{}) {
	z := fmt.Sprintf("%s: %s", os.Args[0], f)
	s := fmt.Sprintf(z, v...)
	if n := len(s); s[n-1] != '\n' {
		s += "\n"
	}

	os.Stderr.WriteString(s)
	os.Stderr.Sync()
}

// vim: ft=go:sw=4:ts=4:noexpandtab:tw=78:
