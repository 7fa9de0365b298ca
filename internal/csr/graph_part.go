package csr

import "github.com/dreamware/kaspan/internal/partition"

// GraphPart is one rank's slice of a distributed graph: the partition
// scheme that explains vertex ownership, plus the forward and backward
// local CSRs. Both CSRs are keyed by local index k in [0, LocalN()); the
// neighbor lists they store contain global vertex ids, per the data
// model.
type GraphPart[V Vertex, I Index] struct {
	Scheme partition.Scheme[V]
	Fw     Graph[V, I]
	Bw     Graph[V, I]
}

// NewGraphPart bundles a scheme with its local forward/backward CSRs. The
// caller is responsible for ensuring Fw.N == Bw.N == scheme.LocalN().
func NewGraphPart[V Vertex, I Index](scheme partition.Scheme[V], fw, bw Graph[V, I]) GraphPart[V, I] {
	return GraphPart[V, I]{Scheme: scheme, Fw: fw, Bw: bw}
}

// LocalN returns the number of vertices owned by this rank.
func (gp GraphPart[V, I]) LocalN() V { return gp.Scheme.LocalN() }

// OutDegree returns the number of locally-recorded outgoing edges of the
// vertex at local index k.
func (gp GraphPart[V, I]) OutDegree(k V) I { return gp.Fw.Degree(k) }

// InDegree returns the number of locally-recorded incoming edges of the
// vertex at local index k (i.e. edges whose destination is k, owned here).
func (gp GraphPart[V, I]) InDegree(k V) I { return gp.Bw.Degree(k) }

// OutNeighbors returns the global ids of the out-neighbors of local
// vertex k.
func (gp GraphPart[V, I]) OutNeighbors(k V) []V { return gp.Fw.Neighbors(k) }

// InNeighbors returns the global ids of the in-neighbors of local vertex
// k.
func (gp GraphPart[V, I]) InNeighbors(k V) []V { return gp.Bw.Neighbors(k) }

// EachLocal calls fn once per local index k in [0, LocalN()).
func (gp GraphPart[V, I]) EachLocal(fn func(k V)) {
	n := gp.LocalN()
	for k := V(0); k < n; k++ {
		fn(k)
	}
}

// EachOutEdge calls fn once per locally-owned outgoing edge (k, v) where k
// is a local index and v is the global id of the destination.
func (gp GraphPart[V, I]) EachOutEdge(fn func(k, v V)) {
	gp.EachLocal(func(k V) {
		for _, v := range gp.OutNeighbors(k) {
			fn(k, v)
		}
	})
}

// EachInEdge calls fn once per locally-owned incoming edge (k, u) where k
// is a local index and u is the global id of the source.
func (gp GraphPart[V, I]) EachInEdge(fn func(k, u V)) {
	gp.EachLocal(func(k V) {
		for _, u := range gp.InNeighbors(k) {
			fn(k, u)
		}
	})
}
