// fsck.go -- 'fsck' command implementation
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

type fsckCommand struct{}

func init() {
	m := fsckCommand{}
	registerCommand("fsck", &m)
}

func (m *fsckCommand) run(args []string, opt *Option) (err error) {
	var db *msmp.DBReader

	fs := flag.NewFlagSet("fsck", flag.ExitOnError)
	fs.SetOutput(os.Stdout)
	fs.Usage = func() {
		fmt.Printf(`Usage: fsck [options] DB

where  'DB' is the name of a keyword db

Options:
`)
		fs.PrintDefaults()
		os.Exit(0)
	}

	err = fs.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("fsck: %w", err)
	}

	args = fs.Args()
	if len(args) < 1 {
		return fmt.Errorf("fsck: insufficient args")
	}

	fn := args[0]
	db, err = msmp.NewDBReader(fn, 1000)
	if err != nil {
		return fmt.Errorf("fsck: %w", err)
	}

	defer db.Close()

	opt.Printf("%s", db.Desc())

	// every record must be readable and must hash back to its own slot
	h := db.HashFunction()
	var slot uint64
	err = db.IterFunc(func(k string, _ []byte) error {
		i, ok := h.Find(k)
		if !ok || i != slot {
			return fmt.Errorf("key %s in slot %d hashes to %d", k, slot, i)
		}
		slot++
		return nil
	})
	if err != nil {
		return fmt.Errorf("fsck: %s: %w", fn, err)
	}

	opt.Printf("%s: %d keys OK\n", fn, slot)
	return nil
}
