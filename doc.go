// Package vector provides Vector[T], an adaptive persistent sequence.
//
// A Vector starts as a small contiguous buffer, grows into a chunked
// radix trie, and then into a full trie as it crosses configurable size
// thresholds; every operation — indexing, update, append, prepend,
// insert, remove, slice, concat, and the higher-order map/filter/reduce
// family — behaves identically regardless of which representation is
// currently in use. Updates never mutate the receiver: each returns a
// new Vector that shares as much structure with the original as the
// operation allows.
//
// For batch construction, Transient provides an exclusively owned,
// mutable builder: append and set run in place against an owned copy
// of the graph, and Persist hands back an ordinary immutable Vector
// without copying more than necessary.
//
// The fusion kernels (MapFilter, MapReduce, and friends) give the same
// results as composing the equivalent single-purpose operations, but
// visit each element exactly once and never allocate an intermediate
// Vector.
package vector
