package engine

import (
	"github.com/dreamware/kaspan/internal/allgather"
	"github.com/dreamware/kaspan/internal/color"
	"github.com/dreamware/kaspan/internal/csr"
	"github.com/dreamware/kaspan/internal/fabric"
	"github.com/dreamware/kaspan/internal/pivot"
	"github.com/dreamware/kaspan/internal/reach"
	"github.com/dreamware/kaspan/internal/residual"
	"github.com/dreamware/kaspan/internal/sccstate"
	"github.com/dreamware/kaspan/internal/trim"
)

// SCC is the collective core entry point (the "scc" function of the
// external interface): every rank must call it with its own GraphPart
// sliced from the same partition scheme. It returns this rank's
// scc_id_out, one entry per local vertex, ready to write back out.
func SCC[V csr.Vertex, I csr.Index](fab *fabric.Fabric, gp csr.GraphPart[V, I]) []V {
	st := sccstate.New(gp.Scheme)

	trim.FirstPass(st, gp)
	st.SyncRemote(fab)

	n := int(gp.Scheme.N())
	if n == 0 {
		return st.SccID
	}

	if fab.World() == 1 {
		sub := allgather.Build(fab, st, gp)
		residual.Solve(st, sub)
		return st.SccID
	}

	trim.Iterative(fab, st, gp, trim.DefaultMaxSweeps)

	if p, ok := pivot.Select(fab, st, gp); ok {
		fwd := reach.Run(fab, st, gp, p, reach.Forward, reach.DefaultThresholds())
		bwd := reach.Run(fab, st, gp, p, reach.Backward, reach.DefaultThresholds())
		localN := int(gp.Scheme.LocalN())
		for k := 0; k < localN; k++ {
			if fwd[k] && bwd[k] {
				st.Assign(V(k), p)
			}
		}
		st.SyncRemote(fab)
	}

	trim.Iterative(fab, st, gp, trim.DefaultMaxSweeps)

	w := fab.World()
	undecided := n - st.GlobalDecidedCount(fab)

	if undecided >= n-n/w {
		prevDecided := -1
		for undecided >= 2*n/w {
			color.Pass(fab, st, gp)
			decided := st.GlobalDecidedCount(fab)
			undecided = n - decided
			if decided == prevDecided {
				// Coloring has stalled without crossing the threshold;
				// whatever remains is handed to the residual solver.
				break
			}
			prevDecided = decided
		}
	}

	sub := allgather.Build(fab, st, gp)
	residual.Solve(st, sub)
	st.SyncRemote(fab)

	return st.SccID
}
