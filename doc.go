// doc.go - top level documentation
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

// Package msmp builds minimal perfect hash functions for small, static
// key sets (keyword tables) by sparse matrix packing, as described by
// Brain & Tharp, "Perfect hashing using sparse matrix packing",
// Information Systems 15(3), 1990.
//
// Construction is a pipeline of three stages:
//
//  1. An IndexAlgorithm maps each key to a (row, col) cell of a sparse
//     matrix; BuildSparseMatrix fails on the first collision.
//  2. Pack assigns every populated row a signed offset so that each key
//     lands on a distinct slot of a 1-D array of exactly n slots.
//  3. Generate composes the offsets and the algorithm into a
//     HashFunction:
//
//     hash(key) = (offset[row(key)] + col(key)) mod n
//
// GenerateHash and Builder run the whole pipeline. The end-letter-count
// algorithm (ElcAlgorithm) is the classic choice for keyword tables;
// HashedAlgorithm accepts arbitrary strings at the cost of retrying
// seeds on collision.
//
// A HashFunction can be marshaled to a compact binary form. DBWriter and
// DBReader use it to index an on-disk constant DB of <key, value> pairs
// or of just keys. The DB is written once and then memory mapped for
// constant time lookups.
package msmp
