// options.go -- construction options
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

package msmp

import (
	"runtime"

	"go.uber.org/zap"
)

// Minimum number of keys before the sparse matrix index computation
// is spread across goroutines
var MinParallelKeys int = 20000

// Option configures the construction of a hash function
type Option func(*config)

type config struct {
	log     *zap.Logger
	workers int
}

func defaultConfig() *config {
	return &config{
		log:     zap.NewNop(),
		workers: runtime.NumCPU(),
	}
}

func newConfig(opts []Option) *config {
	c := defaultConfig()
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithLogger sets the logger used to trace construction. Construction
// is silent by default.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// WithWorkers sets the number of goroutines used to compute key indices
// for large key sets. A value of 1 forces serial computation.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}
