package backward

import (
	"sort"

	"github.com/dreamware/kaspan/internal/csr"
	"github.com/dreamware/kaspan/internal/fabric"
	"github.com/dreamware/kaspan/internal/partition"
)

// remoteEdge is the frontier payload used to ship a (v, u) pair — a
// forward edge u->v reinterpreted as "u is an in-neighbor of v" — to
// whichever rank owns v.
type remoteEdge[V csr.Vertex] struct {
	v V // destination, owned by the receiving rank
	u V // source, global id
}

// BuildDistributed computes the local backward CSR for one rank's slice
// of a distributed graph: every rank pushes (v, u) for each of its local
// forward edges (u, v) to the owner of v via one fabric all-to-all; after
// the exchange every rank holds exactly its local backward edges (edges
// whose destination it owns) and runs the single-rank counting-sort
// construction on them.
func BuildDistributed[V csr.Vertex, I csr.Index](fab *fabric.Fabric, scheme partition.Scheme[V], fw csr.Graph[V, I]) csr.Graph[V, I] {
	destRank := func(e remoteEdge[V]) int { return scheme.WorldRankOf(e.v) }
	fr := fabric.NewFrontier[remoteEdge[V]](fab, destRank)

	localN := scheme.LocalN()
	for k := V(0); k < fw.N; k++ {
		u := scheme.ToGlobal(k)
		for _, v := range fw.Neighbors(k) {
			fr.RelaxedPush(remoteEdge[V]{v: v, u: u})
		}
	}
	fr.Exchange()

	var received []remoteEdge[V]
	for fr.HasNext() {
		received = append(received, fr.Next())
	}

	// Sort by destination's local index so the counting-sort pass below
	// can build the CSR directly, matching the single-rank algorithm's
	// input contract (edges grouped per destination row).
	sort.Slice(received, func(i, j int) bool {
		return scheme.ToLocal(received[i].v) < scheme.ToLocal(received[j].v)
	})

	bwHead := make([]I, int(localN)+1)
	for _, e := range received {
		bwHead[scheme.ToLocal(e.v)+1]++
	}
	for k := V(1); k <= localN; k++ {
		bwHead[k] += bwHead[k-1]
	}
	cursor := make([]I, localN)
	copy(cursor, bwHead[:localN])
	bwAdj := make([]V, len(received))
	for _, e := range received {
		k := scheme.ToLocal(e.v)
		bwAdj[cursor[k]] = e.u
		cursor[k]++
	}

	return csr.New(localN, I(len(received)), bwHead, bwAdj)
}
