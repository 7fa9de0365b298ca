package csr

import "github.com/dreamware/kaspan/internal/partition"

// Slice extracts the rows of full owned by scheme into a new, local
// CSR keyed by local index. full is assumed global-id indexed (row u is
// vertex u's neighbor list in the full, unpartitioned graph) — the shape
// every rank's loader produces before scheme slicing, simulating what a
// real deployment would instead read only its own shard of from disk.
func Slice[V Vertex, I Index](full Graph[V, I], scheme partition.Scheme[V]) Graph[V, I] {
	localN := scheme.LocalN()
	head := make([]I, localN+1)
	var adj []V
	for k := V(0); k < localN; k++ {
		g := scheme.ToGlobal(k)
		adj = append(adj, full.Neighbors(g)...)
		head[k+1] = I(len(adj))
	}
	return New(localN, I(len(adj)), head, adj)
}

// SlicePart builds a full GraphPart for one rank from the unpartitioned
// forward/backward graphs.
func SlicePart[V Vertex, I Index](scheme partition.Scheme[V], fullFw, fullBw Graph[V, I]) GraphPart[V, I] {
	return NewGraphPart(scheme, Slice(fullFw, scheme), Slice(fullBw, scheme))
}
