// gen.go -- 'gen' command implementation
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
	"time"

	"github.com/opencoff/go-msmp"
	flag "github.com/opencoff/pflag"
)

type genCommand struct{}

func init() {
	g := genCommand{}
	registerCommand("gen", &g)
}

func (g *genCommand) run(args []string, opt *Option) (err error) {
	var af algoFlags
	var minlen int
	var table bool

	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	fs.SetOutput(os.Stdout)
	af.register(fs)
	fs.IntVarP(&minlen, "min-length", "m", 3, "Skip words shorter than `N` letters")
	fs.BoolVarP(&table, "table", "t", false, "Print the hash value of every word")
	fs.Usage = func() {
		fmt.Printf(`Usage: gen [options] [WORDS...]

where:
   WORDS    is one or more text files with one word per line

Words with characters other than letters are skipped; the rest are
upper cased. With no input files, words are read from STDIN.

options:
`)
		fs.PrintDefaults()
		os.Exit(0)
	}

	err = fs.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("gen: %w", err)
	}

	wl := NewWordList(minlen)
	args = fs.Args()
	if len(args) > 0 {
		for _, f := range args {
			n, err := wl.AddFile(f)
			if err != nil {
				return fmt.Errorf("gen: can't add %s: %w", f, err)
			}
			opt.Printf("+ %s: %d words\n", f, n)
		}
	} else {
		n, err := wl.AddStream(os.Stdin)
		if err != nil {
			return fmt.Errorf("gen: can't add words from stdin: %w", err)
		}
		opt.Printf("+ <STDIN>: %d words\n", n)
	}

	algo, err := af.build(wl.Len())
	if err != nil {
		return fmt.Errorf("gen: %w", err)
	}

	start := time.Now()
	text, h, err := msmp.GenerateHash(wl.Words, algo, msmp.WithLogger(opt.log))
	if err != nil {
		return fmt.Errorf("gen: %w", err)
	}
	opt.Printf("%d words, %s\n", h.Len(), time.Since(start).String())

	fmt.Print(text)
	if table {
		for _, w := range wl.Words {
			v, _ := h.Find(w)
			fmt.Printf("%s:%d\n", w, v)
		}
	}
	return nil
}
