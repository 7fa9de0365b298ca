// Package pivot implements 4.F: selecting the single undecided vertex
// with the largest live in-degree * out-degree product across the whole
// world, via one lexicographic-max all-reduce.
package pivot

import (
	"github.com/dreamware/kaspan/internal/csr"
	"github.com/dreamware/kaspan/internal/fabric"
	"github.com/dreamware/kaspan/internal/sccstate"
)

// Select returns the global id of the winning pivot and whether any rank
// had an undecided vertex to nominate at all (false only when every
// vertex in the world is already decided).
func Select[V csr.Vertex, I csr.Index](fab *fabric.Fabric, st *sccstate.State[V], gp csr.GraphPart[V, I]) (V, bool) {
	var best fabric.PivotCandidate
	gp.EachLocal(func(k V) {
		g := st.Scheme.ToGlobal(k)
		if st.IsDecided(g) {
			return
		}
		liveOut := liveDegree(st, gp.OutNeighbors(k))
		liveIn := liveDegree(st, gp.InNeighbors(k))
		product := int64(liveOut) * int64(liveIn)
		cand := fabric.PivotCandidate{Product: product, Vertex: int64(g), Valid: true}
		if !best.Valid || cand.Product > best.Product ||
			(cand.Product == best.Product && cand.Vertex < best.Vertex) {
			best = cand
		}
	})

	winner := fab.AllReducePivot(best)
	if !winner.Valid {
		return 0, false
	}
	return V(winner.Vertex), true
}

func liveDegree[V csr.Vertex](st *sccstate.State[V], neighbors []V) int {
	n := 0
	for _, v := range neighbors {
		if !st.IsDecided(v) {
			n++
		}
	}
	return n
}
