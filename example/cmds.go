// cmds.go -- commands abstraction
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
	"sync"

	"github.com/opencoff/go-msmp"
	flag "github.com/opencoff/pflag"
	"go.uber.org/zap"
)

type command interface {
	run(args []string, opt *Option) error
}

var cmds = struct {
	sync.Mutex
	m map[string]command
}{
	m: make(map[string]command),
}

func registerCommand(nm string, cmd command) {
	cmds.Lock()
	if _, ok := cmds.m[nm]; ok {
		panic(fmt.Sprintf("%s already registered", nm))
	}
	cmds.m[nm] = cmd
	cmds.Unlock()
}

func runCommand(args []string, o *Option) error {
	nm := args[0]

	cmds.Lock()
	cmd, ok := cmds.m[nm]
	cmds.Unlock()
	if !ok {
		return fmt.Errorf("unknown command %s", nm)
	}

	return cmd.run(args, o)
}

type Option struct {
	verbose bool
	log     *zap.Logger
}

func (o *Option) Printf(s string, v ...interface{}) {
	if o.verbose {
		o.log.Sugar().Infof(s, v...)
	}
}

// index algorithm selection shared by 'gen' and 'make'
type algoFlags struct {
	algo    string
	letters int
	radix   int
	rows    int
	cols    int
	seed    uint64
}

func (a *algoFlags) register(fs *flag.FlagSet) {
	fs.StringVarP(&a.algo, "algorithm", "a", "elc", "Use index algorithm `A` (elc or hashed)")
	fs.IntVarP(&a.letters, "letters", "l", 1, "elc: consume `N` letters from each end of a key")
	fs.IntVarP(&a.radix, "radix", "r", 26, "elc: combine letters in base `R`")
	fs.IntVarP(&a.rows, "rows", "", 0, "hashed: use `N` rows (default: number of keys)")
	fs.IntVarP(&a.cols, "cols", "", 0, "hashed: use `N` columns (default: 16 x number of keys)")
	fs.Uint64VarP(&a.seed, "seed", "s", 0, "hashed: hash seed `S`")
}

// build the algorithm for 'n' keys
func (a *algoFlags) build(n int) (msmp.IndexAlgorithm, error) {
	switch a.algo {
	case "elc":
		e, err := msmp.NewElcAlgorithm(a.letters, a.radix)
		if err != nil {
			return nil, err
		}
		return e, nil

	case "hashed":
		rows, cols := a.rows, a.cols
		if rows <= 0 {
			rows = n
		}
		if cols <= 0 {
			cols = 16 * n
		}
		h, err := msmp.NewHashedAlgorithm(rows, cols, a.seed)
		if err != nil {
			return nil, err
		}
		return h, nil

	default:
		return nil, fmt.Errorf("unknown index algorithm '%s'", a.algo)
	}
}
