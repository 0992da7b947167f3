// Package gagatek converts delimited tabular text files into a compact
// columnar binary representation using two lossless transforms: per-column
// dictionary encoding and minimal-width bit-packing.
//
// # Architecture
//
// A conversion is two strictly sequenced passes over the data:
//
// 1. Dictionary encoding (pkg/encoder): the source is streamed exactly once,
// one order-preserving dictionary is built per column, and an intermediate
// file is written where every value is replaced by its dense integer id.
//
// 2. Bit-packing (pkg/packer): once the dictionaries are finalized, the
// minimum bit width of each column is known; the id stream is packed
// back-to-back into 64-bit words with no padding between values.
//
// The sequencing is enforced by construction: a BitPacker can only be built
// from a finalized dictionary arena (pkg/dictionary), which the encoder
// produces when its pass completes.
//
// Conversion of a source file P produces four files next to it: P.gag (the
// intermediate id stream), P.gaga (the packed binary words), P.gagc and
// P.gagd (the reverse and forward dictionaries). The internal/pipeline
// package orchestrates the full run; cmd/gagatek wraps it in a CLI.
package gagatek
