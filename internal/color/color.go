package color

import (
	"github.com/dreamware/kaspan/internal/csr"
	"github.com/dreamware/kaspan/internal/fabric"
	"github.com/dreamware/kaspan/internal/sccstate"
)

// labelMsg carries a candidate minimum label for Target, decided by the
// sender's current view and applied or discarded by whichever rank owns
// Target.
type labelMsg[V csr.Vertex] struct {
	Target V
	Label  V
}

// Propagate runs forward minimum-label propagation to a fixpoint:
// label[v] converges to the smallest global id among all live vertices
// that can reach v. Decided vertices are excluded from the live set and
// never update or get updated. The returned slice is indexed by local
// vertex position; entries for already-decided vertices are meaningless.
func Propagate[V csr.Vertex, I csr.Index](fab *fabric.Fabric, st *sccstate.State[V], gp csr.GraphPart[V, I]) []V {
	scheme := st.Scheme
	localN := int(scheme.LocalN())
	label := make([]V, localN)
	for k := 0; k < localN; k++ {
		label[k] = scheme.ToGlobal(V(k))
	}

	fr := fabric.NewFrontier[labelMsg[V]](fab, func(m labelMsg[V]) int { return scheme.WorldRankOf(m.Target) })

	for {
		changed := 0
		for k := 0; k < localN; k++ {
			g := scheme.ToGlobal(V(k))
			if st.IsDecided(g) {
				continue
			}
			for _, v := range gp.OutNeighbors(V(k)) {
				if st.IsDecided(v) {
					continue
				}
				if scheme.HasLocal(v) {
					vk := scheme.ToLocal(v)
					if label[k] < label[vk] {
						label[vk] = label[k]
						changed++
					}
				} else {
					fr.Push(labelMsg[V]{Target: v, Label: label[k]})
				}
			}
		}

		fr.Exchange()
		for fr.HasNext() {
			m := fr.Next()
			if st.IsDecided(m.Target) {
				continue
			}
			vk := scheme.ToLocal(m.Target)
			if m.Label < label[vk] {
				label[vk] = m.Label
				changed++
			}
		}
		fr.Reset()

		if fab.AllReduceSum(changed) == 0 {
			break
		}
	}

	return label
}

// colorMsg is a backward-restriction candidate: Target should join the
// SCC rooted at Color if its own label still equals Color and it is
// still undecided.
type colorMsg[V csr.Vertex] struct {
	Target V
	Color  V
}

// Restrict runs the backward sweep restricted to same-label vertices:
// for every local root (a still-undecided vertex whose label equals its
// own global id), it walks backward edges and claims any reachable
// vertex that shares the root's color, committing it to that SCC.
func Restrict[V csr.Vertex, I csr.Index](fab *fabric.Fabric, st *sccstate.State[V], gp csr.GraphPart[V, I], label []V) {
	scheme := st.Scheme

	fr := fabric.NewFrontier[colorMsg[V]](fab, func(m colorMsg[V]) int { return scheme.WorldRankOf(m.Target) })

	localN := int(scheme.LocalN())
	for k := 0; k < localN; k++ {
		g := scheme.ToGlobal(V(k))
		if st.IsDecided(g) {
			continue
		}
		if label[k] != g {
			continue
		}
		if !st.Assign(V(k), g) {
			continue
		}
		for _, u := range gp.InNeighbors(V(k)) {
			fr.Push(colorMsg[V]{Target: u, Color: g})
		}
	}

	for {
		more := fr.Exchange()
		if !more {
			break
		}
		for fr.HasNext() {
			m := fr.Next()
			k := scheme.ToLocal(m.Target)
			if label[k] != m.Color {
				continue
			}
			if !st.Assign(V(k), m.Color) {
				continue
			}
			for _, w := range gp.InNeighbors(V(k)) {
				fr.Push(colorMsg[V]{Target: w, Color: m.Color})
			}
		}
		fr.Reset()
	}
}

// Pass runs one full coloring pass (4.H): forward propagation to a
// fixpoint, then backward restriction from every resulting color root.
// The driver repeats Pass until the undecided fraction drops below its
// threshold (4.K step 6).
func Pass[V csr.Vertex, I csr.Index](fab *fabric.Fabric, st *sccstate.State[V], gp csr.GraphPart[V, I]) {
	label := Propagate(fab, st, gp)
	Restrict(fab, st, gp, label)
}
