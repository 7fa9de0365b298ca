package residual

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"

	"github.com/dreamware/kaspan/internal/allgather"
	"github.com/dreamware/kaspan/internal/csr"
)

// subNode is a sub-graph vertex exposed to gonum as a graph.Node; its ID
// is simply the sub-vertex's position in the SubGraph's own index space,
// not the original scc_id-space vertex.
type subNode int64

func (n subNode) ID() int64 { return int64(n) }

// directedAdapter presents an allgather.SubGraph as a gonum
// graph.Directed, so topo.TarjanSCC runs the real library algorithm
// instead of a reimplementation.
type directedAdapter[V csr.Vertex, I csr.Index] struct {
	sub allgather.SubGraph[V, I]
}

func newDirectedAdapter[V csr.Vertex, I csr.Index](sub allgather.SubGraph[V, I]) *directedAdapter[V, I] {
	return &directedAdapter[V, I]{sub: sub}
}

func (a *directedAdapter[V, I]) Node(id int64) graph.Node {
	if id < 0 || id >= int64(len(a.sub.SuperIDs)) {
		return nil
	}
	return subNode(id)
}

func (a *directedAdapter[V, I]) Nodes() graph.Nodes {
	nodes := make([]graph.Node, len(a.sub.SuperIDs))
	for i := range nodes {
		nodes[i] = subNode(i)
	}
	return iterator.NewOrderedNodes(nodes)
}

func (a *directedAdapter[V, I]) From(id int64) graph.Nodes {
	neighbors := a.sub.Fw.Neighbors(V(id))
	nodes := make([]graph.Node, len(neighbors))
	for i, v := range neighbors {
		nodes[i] = subNode(int64(v))
	}
	return iterator.NewOrderedNodes(nodes)
}

func (a *directedAdapter[V, I]) To(id int64) graph.Nodes {
	neighbors := a.sub.Bw.Neighbors(V(id))
	nodes := make([]graph.Node, len(neighbors))
	for i, u := range neighbors {
		nodes[i] = subNode(int64(u))
	}
	return iterator.NewOrderedNodes(nodes)
}

func (a *directedAdapter[V, I]) HasEdgeFromTo(uid, vid int64) bool {
	for _, v := range a.sub.Fw.Neighbors(V(uid)) {
		if int64(v) == vid {
			return true
		}
	}
	return false
}

func (a *directedAdapter[V, I]) HasEdgeBetween(xid, yid int64) bool {
	return a.HasEdgeFromTo(xid, yid) || a.HasEdgeFromTo(yid, xid)
}

func (a *directedAdapter[V, I]) Edge(uid, vid int64) graph.Edge {
	if !a.HasEdgeFromTo(uid, vid) {
		return nil
	}
	return simpleEdge{from: subNode(uid), to: subNode(vid)}
}

type simpleEdge struct {
	from, to subNode
}

func (e simpleEdge) From() graph.Node         { return e.from }
func (e simpleEdge) To() graph.Node           { return e.to }
func (e simpleEdge) ReversedEdge() graph.Edge { return simpleEdge{from: e.to, to: e.from} }
