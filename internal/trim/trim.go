// Package trim implements the two trimming passes of 4.E: a no-comm
// first pass that removes vertices with zero static in- or out-degree,
// and an iterative pass that repeats the test counting only undecided
// neighbors, run to a fixpoint (capped, per the design notes' resolution
// of the double-invocation question — see DESIGN.md).
package trim

import (
	"github.com/dreamware/kaspan/internal/csr"
	"github.com/dreamware/kaspan/internal/fabric"
	"github.com/dreamware/kaspan/internal/sccstate"
)

// DefaultMaxSweeps bounds the iterative pass. The original source ran a
// fixed two invocations back to back; this implementation instead loops
// to a fixpoint with a small cap, per the design notes' open question.
const DefaultMaxSweeps = 3

// FirstPass marks every vertex with zero local out-degree or zero local
// in-degree as a singleton SCC (representative = itself). It performs no
// communication; the caller is expected to follow it with
// state.SyncRemote so remote ranks observe the new decisions before the
// next pass scans neighbor lists.
func FirstPass[V csr.Vertex, I csr.Index](st *sccstate.State[V], gp csr.GraphPart[V, I]) {
	gp.EachLocal(func(k V) {
		if gp.OutDegree(k) == 0 || gp.InDegree(k) == 0 {
			st.Assign(k, st.Scheme.ToGlobal(k))
		}
	})
}

// Iterative repeats the trim test, now counting only live (undecided)
// neighbors, to a fixpoint capped at maxSweeps rounds. A vertex becomes a
// singleton once every one of its live out-edges or every one of its
// live in-edges has disappeared (i.e. every neighbor on that side is
// already decided). It returns the number of sweeps actually performed.
func Iterative[V csr.Vertex, I csr.Index](fab *fabric.Fabric, st *sccstate.State[V], gp csr.GraphPart[V, I], maxSweeps int) int {
	if maxSweeps <= 0 {
		maxSweeps = DefaultMaxSweeps
	}
	sweep := 0
	for ; sweep < maxSweeps; sweep++ {
		local := 0
		gp.EachLocal(func(k V) {
			g := st.Scheme.ToGlobal(k)
			if st.IsDecided(g) {
				return
			}
			if liveDegreeZero(st, gp.OutNeighbors(k)) || liveDegreeZero(st, gp.InNeighbors(k)) {
				if st.Assign(k, g) {
					local++
				}
			}
		})
		st.SyncRemote(fab)
		if fab.AllReduceSum(local) == 0 {
			sweep++
			break
		}
	}
	return sweep
}

// liveDegreeZero reports whether every neighbor in the list is already
// decided, meaning the owning vertex has no live edge left on this side.
// An empty neighbor list trivially counts as zero live degree.
func liveDegreeZero[V csr.Vertex](st *sccstate.State[V], neighbors []V) bool {
	for _, v := range neighbors {
		if !st.IsDecided(v) {
			return false
		}
	}
	return true
}
