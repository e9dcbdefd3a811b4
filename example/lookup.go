// lookup.go -- 'lookup' command implementation
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

	"github.com/opencoff/go-msmp"
	flag "github.com/opencoff/pflag"
)

type lookupCommand struct{}

func init() {
	l := lookupCommand{}
	registerCommand("lookup", &l)
}

func (l *lookupCommand) run(args []string, opt *Option) (err error) {
	fs := flag.NewFlagSet("lookup", flag.ExitOnError)
	fs.SetOutput(os.Stdout)
	fs.Usage = func() {
		fmt.Printf(`Usage: lookup [options] DB KEY [KEY...]

where  'DB' is the name of a keyword db and each KEY is upper cased
before the lookup.

Options:
`)
		fs.PrintDefaults()
		os.Exit(0)
	}

	err = fs.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("lookup: %w", err)
	}

	args = fs.Args()
	if len(args) < 2 {
		return fmt.Errorf("lookup: insufficient args")
	}

	db, err := msmp.NewDBReader(args[0], 16)
	if err != nil {
		return fmt.Errorf("lookup: %w", err)
	}

	defer db.Close()

	var missing int
	for _, k := range args[1:] {
		k = strings.ToUpper(k)
		v, err := db.Find(k)
		if err != nil {
			opt.Printf("%s: %s\n", k, err)
			missing++
			continue
		}
		fmt.Printf("%s: %s\n", k, v)
	}

	if missing > 0 {
		return fmt.Errorf("lookup: %d keys not found", missing)
	}
	return nil
}
