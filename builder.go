// builder.go - construction pipeline for the hash function
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
	"go.uber.org/zap"
)

// State is the stage of a Builder
type State int

const (
	Aborted State = iota - 1
	Empty
	Populated
	Packed
	Generated
)

func (s State) String() string {
	switch s {
	case Aborted:
		return "aborted"
	case Empty:
		return "empty"
	case Populated:
		return "populated"
	case Packed:
		return "packed"
	case Generated:
		return "generated"
	default:
		return "unknown"
	}
}

// Builder collects keys and builds a minimal perfect hash function from
// them in one shot. A builder is single use: once Freeze() succeeds or
// fails, it can't be used again.
type Builder struct {
	algo  IndexAlgorithm
	cfg   *config
	keys  []Key
	state State
}

// NewBuilder enables creation of a minimal perfect hash function using
// index algorithm 'algo'. Callers add keys to it before Freezing it.
// Once frozen, callers can use "Find()" on the returned HashFunction to
// find the unique mapping for each key.
func NewBuilder(algo IndexAlgorithm, opts ...Option) *Builder {
	b := &Builder{
		algo: algo,
		cfg:  newConfig(opts),
		keys: make([]Key, 0, 64),
	}
	return b
}

// Add a new key; its position is the number of keys added before it
func (b *Builder) Add(key string) error {
	switch b.state {
	case Aborted:
		return ErrAborted
	case Empty:
	default:
		return ErrFrozen
	}

	b.keys = append(b.keys, Key{Word: key, Pos: len(b.keys)})
	return nil
}

// Len returns the number of keys added so far
func (b *Builder) Len() int {
	return len(b.keys)
}

// State returns the current stage of the builder
func (b *Builder) State() State {
	return b.state
}

// Freeze runs the pipeline: populate the sparse matrix, pack its rows and
// generate the hash function. Any failure aborts the builder.
func (b *Builder) Freeze() (h *HashFunction, err error) {
	switch b.state {
	case Aborted:
		return nil, ErrAborted
	case Empty:
	default:
		return nil, ErrFrozen
	}

	log := b.cfg.log
	defer func(e *error) {
		if *e != nil {
			log.Debug("construction aborted", zap.Stringer("stage", b.state), zap.Error(*e))
			b.state = Aborted
		}
	}(&err)

	m, err := buildMatrix(b.keys, b.algo, b.cfg)
	if err != nil {
		return nil, err
	}
	b.state = Populated

	t, err := pack(m, b.cfg)
	if err != nil {
		return nil, err
	}
	b.state = Packed

	_, h, err = Generate(m, t, b.algo)
	if err != nil {
		return nil, err
	}
	b.state = Generated

	log.Debug("hash function generated",
		zap.Int("keys", h.Len()),
		zap.String("algorithm", algoName(b.algo)),
		zap.Stringer("offsets", t))
	return h, nil
}

// GenerateHash builds a minimal perfect hash function for 'keys' using
// 'algo'. It returns the pseudocode of the function and the function.
// An empty key list is rejected with ErrEmptyInput.
func GenerateHash(keys []string, algo IndexAlgorithm, opts ...Option) (string, *HashFunction, error) {
	b := NewBuilder(algo, opts...)
	for _, k := range keys {
		if err := b.Add(k); err != nil {
			return "", nil, err
		}
	}

	h, err := b.Freeze()
	if err != nil {
		return "", nil, err
	}
	return h.Pseudocode(), h, nil
}
