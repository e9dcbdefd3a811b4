// dump.go -- 'dump' command implementation
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

	"github.com/opencoff/go-msmp"
	flag "github.com/opencoff/pflag"
)

type dumpCommand struct{}

func init() {
	m := dumpCommand{}
	registerCommand("dump", &m)
}

func (m *dumpCommand) run(args []string, opt *Option) (err error) {
	var all, meta, code bool
	var db *msmp.DBReader

	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	fs.SetOutput(os.Stdout)
	fs.BoolVarP(&all, "all", "a", false, "Dump keys and values")
	fs.BoolVarP(&meta, "meta", "m", false, "Dump only metadata")
	fs.BoolVarP(&code, "pseudocode", "p", false, "Dump the hash function")
	fs.Usage = func() {
		fmt.Printf(`Usage: dump [options] DB

where  'DB' is the name of a keyword db

Options:
`)
		fs.PrintDefaults()
		os.Exit(0)
	}

	err = fs.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	args = fs.Args()
	if len(args) < 1 {
		return fmt.Errorf("dump: insufficient args")
	}

	fn := args[0]
	db, err = msmp.NewDBReader(fn, 1000)
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	defer db.Close()

	switch {
	case meta:
		db.DumpMeta(os.Stdout)
	case code:
		fmt.Print(db.HashFunction().Pseudocode())
	case all:
		err = db.IterFunc(func(k string, v []byte) error {
			fmt.Printf("%s: %q\n", k, v)
			return nil
		})
	default:
		err = db.IterFunc(func(k string, _ []byte) error {
			fmt.Printf("%s\n", k)
			return nil
		})
	}
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	return nil
}
