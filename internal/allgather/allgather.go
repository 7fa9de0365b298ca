package allgather

import (
	"sort"

	"github.com/dreamware/kaspan/internal/csr"
	"github.com/dreamware/kaspan/internal/fabric"
	"github.com/dreamware/kaspan/internal/sccstate"
)

// SubGraph is the replicated, self-contained induced sub-graph over the
// undecided vertex set at the moment Build ran. Fw and Bw index their
// own vertex space 0..len(SuperIDs); SuperIDs[i] is the original global
// id of sub-vertex i, the mapping the driver uses to translate a
// residual solver's result back into scc_id space.
type SubGraph[V csr.Vertex, I csr.Index] struct {
	SuperIDs []V
	Fw       csr.Graph[V, I]
	Bw       csr.Graph[V, I]
}

type idPos[V csr.Vertex] struct {
	id  V
	pos int
}

// byID sorts idPos entries by original global id, for O(log sub_n)
// lookup of "is this global id still undecided, and at what sub-vertex
// position" — a small generalization over a scheme-order assumption
// that only holds for contiguous partitions: sorting an explicit
// (id, position) index makes the lookup correct under any scheme.
type byID[V csr.Vertex] []idPos[V]

func (b byID[V]) Len() int           { return len(b) }
func (b byID[V]) Less(i, j int) bool { return b[i].id < b[j].id }
func (b byID[V]) Swap(i, j int)      { b[i], b[j] = b[j], b[i] }

func lookup[V csr.Vertex](idx byID[V], id V) (int, bool) {
	i := sort.Search(len(idx), func(i int) bool { return idx[i].id >= id })
	if i < len(idx) && idx[i].id == id {
		return idx[i].pos, true
	}
	return 0, false
}

// Build replicates the induced sub-graph over every currently undecided
// vertex onto every rank (4.I).
func Build[V csr.Vertex, I csr.Index](fab *fabric.Fabric, st *sccstate.State[V], gp csr.GraphPart[V, I]) SubGraph[V, I] {
	scheme := st.Scheme
	localN := int(scheme.LocalN())

	var localIDs []V
	for k := 0; k < localN; k++ {
		g := scheme.ToGlobal(V(k))
		if !st.IsDecided(g) {
			localIDs = append(localIDs, g)
		}
	}

	superIDs := fabric.AllGather(fab, localIDs)

	idx := make(byID[V], len(superIDs))
	for i, id := range superIDs {
		idx[i] = idPos[V]{id: id, pos: i}
	}
	sort.Sort(idx)

	fwDeg, fwAdj := subEdges(localIDs, scheme, gp.OutNeighbors, idx)
	bwDeg, bwAdj := subEdges(localIDs, scheme, gp.InNeighbors, idx)

	allFwDeg := fabric.AllGather(fab, fwDeg)
	allFwAdj := fabric.AllGather(fab, fwAdj)
	allBwDeg := fabric.AllGather(fab, bwDeg)
	allBwAdj := fabric.AllGather(fab, bwAdj)

	subN := len(superIDs)
	fw := buildCSR[V, I](subN, allFwDeg, allFwAdj)
	bw := buildCSR[V, I](subN, allBwDeg, allBwAdj)

	return SubGraph[V, I]{SuperIDs: superIDs, Fw: fw, Bw: bw}
}

// subEdges computes, in the same per-vertex order as localIDs, the
// sub-graph out-degree and relabelled neighbor list for each locally
// owned undecided vertex, using neighborsOf to pick the forward or
// backward adjacency.
func subEdges[V csr.Vertex, I csr.Index](localIDs []V, scheme interface{ ToLocal(V) V }, neighborsOf func(V) []V, idx byID[V]) ([]I, []V) {
	deg := make([]I, len(localIDs))
	var adj []V
	for i, g := range localIDs {
		k := scheme.ToLocal(g)
		count := I(0)
		for _, n := range neighborsOf(k) {
			if pos, ok := lookup(idx, n); ok {
				adj = append(adj, V(pos))
				count++
			}
		}
		deg[i] = count
	}
	return deg, adj
}

func buildCSR[V csr.Vertex, I csr.Index](n int, degrees []I, adj []V) csr.Graph[V, I] {
	head := make([]I, n+1)
	for i, d := range degrees {
		head[i+1] = head[i] + d
	}
	return csr.New[V, I](I(n), I(len(adj)), head, adj)
}
