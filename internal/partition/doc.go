// Package partition implements the graph partitioning algebra: the
// deterministic mapping from a global vertex id to its owning rank, and
// the local/global index conversions every other package needs to talk
// about "my vertices" versus "the world's vertices".
//
// A Scheme is a small value type, copyable across rank boundaries, that
// answers four questions in O(1) without allocating: does this rank own
// vertex u, what is u's local index, what global vertex does local index k
// correspond to, and which rank owns u. Five concrete schemes are
// supported (Single, Cyclic, BlockCyclic, TrivialSlice, BalancedSlice);
// rather than five Go types this package uses one tagged struct dispatched
// on Kind, so a Scheme can be passed by value and stored inline in a
// GraphPart the way the design calls for ("passed by value to keep all
// lookups inlinable").
package partition
