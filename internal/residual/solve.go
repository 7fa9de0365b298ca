package residual

import (
	"gonum.org/v1/gonum/graph/topo"

	"github.com/dreamware/kaspan/internal/allgather"
	"github.com/dreamware/kaspan/internal/csr"
	"github.com/dreamware/kaspan/internal/sccstate"
)

// Solve runs gonum's Tarjan SCC over the replicated sub-graph and
// commits every sub-vertex's representative back into st, translated
// through SuperIDs into the original scc_id space. The representative
// chosen for each component is the smallest original global id among
// its members, keeping representative choice consistent with the rest
// of the pipeline's "smallest id wins" convention.
func Solve[V csr.Vertex, I csr.Index](st *sccstate.State[V], sub allgather.SubGraph[V, I]) {
	if len(sub.SuperIDs) == 0 {
		return
	}

	adapter := newDirectedAdapter(sub)
	components := topo.TarjanSCC(adapter)

	scheme := st.Scheme
	for _, comp := range components {
		rep := sub.SuperIDs[comp[0].ID()]
		for _, n := range comp {
			g := sub.SuperIDs[n.ID()]
			if g < rep {
				rep = g
			}
		}
		for _, n := range comp {
			g := sub.SuperIDs[n.ID()]
			if scheme.HasLocal(g) {
				st.Assign(scheme.ToLocal(g), rep)
			}
		}
	}
}
