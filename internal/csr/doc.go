// Package csr implements the compressed-sparse-row graph representation
// used throughout the engine: a length-(n+1) row-start array plus a
// concatenated neighbor array. Every graph the engine touches — the
// loaded forward/backward partition, the replicated residual sub-graph —
// is a Graph, and a GraphPart additionally carries the partition scheme
// that explains which global vertices its rows belong to.
//
// Construction-time validation is split the way the design asks: Validate
// runs the O(n+m) structural sweep (head monotonicity, bounds-checking of
// neighbor ids) and is meant to be called from debug builds or right after
// the loader deserializes a graph; it is not called implicitly by New so
// that a release build can skip the sweep and trust the loader.
package csr
