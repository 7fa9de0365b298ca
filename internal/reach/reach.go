package reach

import (
	"github.com/dreamware/kaspan/internal/csr"
	"github.com/dreamware/kaspan/internal/fabric"
	"github.com/dreamware/kaspan/internal/sccstate"
)

// Direction selects which CSR the traversal follows: Forward walks out
// edges, Backward walks in edges.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// mode names one of the three traversal strategies; the switch between
// them is collective and monotone (top-down -> bottom-up -> bitmap),
// matching the load heuristics in 4.G.
type mode int

const (
	topDown mode = iota
	bottomUp
	bitmapExchange
)

// Thresholds tunes the traversal-mode switches. Defaults match the
// reference: alpha ~= 14 for the top-down -> bottom-up switch, level 50
// and frontier size 10000 for the switch into bitmap-exchange.
type Thresholds struct {
	Alpha       int64
	LevelSwitch int
	SizeSwitch  int
}

// DefaultThresholds returns the reference's default switch points.
func DefaultThresholds() Thresholds {
	return Thresholds{Alpha: 14, LevelSwitch: 50, SizeSwitch: 10000}
}

// Run performs one distributed BFS from source in the given direction,
// restricted to currently-undecided vertices (an already-decided vertex
// is a dead end, since it has already been committed to another SCC). It
// returns a bool slice of length LocalN() marking which local vertices
// were reached, including source if this rank owns it.
func Run[V csr.Vertex, I csr.Index](fab *fabric.Fabric, st *sccstate.State[V], gp csr.GraphPart[V, I], source V, dir Direction, th Thresholds) []bool {
	scheme := st.Scheme
	localN := int(scheme.LocalN())
	visited := make([]bool, localN)

	neighborsOf := func(k V) []V { return gp.OutNeighbors(k) }
	otherSideOf := func(k V) []V { return gp.InNeighbors(k) }
	degreeOf := func(k V) I { return gp.OutDegree(k) }
	totalEdges := int64(gp.Fw.M)
	if dir == Backward {
		neighborsOf = func(k V) []V { return gp.InNeighbors(k) }
		otherSideOf = func(k V) []V { return gp.OutNeighbors(k) }
		degreeOf = func(k V) I { return gp.InDegree(k) }
		totalEdges = int64(gp.Bw.M)
	}
	totalEdges = int64(fab.AllReduceSum(int(totalEdges)))

	n := int64(scheme.N())
	bits := newBitset(int(n))
	haveBitmap := false

	// The current local frontier, as global ids.
	var frontier []V
	if scheme.HasLocal(source) {
		k := scheme.ToLocal(source)
		visited[k] = true
		frontier = append(frontier, source)
		bits.set(int64(source))
	}

	fr := fabric.NewFrontier[V](fab, func(v V) int { return scheme.WorldRankOf(v) })

	curMode := topDown
	level := 0

	for {
		var next []V

		switch curMode {
		case topDown:
			for _, g := range frontier {
				k := scheme.ToLocal(g)
				for _, v := range neighborsOf(k) {
					if st.IsDecided(v) {
						continue
					}
					if scheme.HasLocal(v) {
						lk := scheme.ToLocal(v)
						if !visited[lk] {
							visited[lk] = true
							next = append(next, v)
						}
					} else {
						fr.Push(v)
					}
				}
			}
			fr.Exchange()
			for fr.HasNext() {
				v := fr.Next()
				if st.IsDecided(v) {
					continue
				}
				lk := scheme.ToLocal(v)
				if !visited[lk] {
					visited[lk] = true
					next = append(next, v)
				}
			}
			fr.Reset()

		case bottomUp:
			if !haveBitmap {
				bits = refreshBitmap(fab, n, scheme, visited)
				haveBitmap = true
			}
			var gained []V
			for k := 0; k < localN; k++ {
				if visited[k] {
					continue
				}
				g := scheme.ToGlobal(V(k))
				if st.IsDecided(g) {
					continue
				}
				for _, u := range otherSideOf(V(k)) {
					if bits.get(int64(u)) {
						visited[k] = true
						gained = append(gained, g)
						break
					}
				}
			}
			next = gained
			bits = refreshBitmap(fab, n, scheme, visited)

		case bitmapExchange:
			local := newBitset(int(n))
			for _, g := range frontier {
				k := scheme.ToLocal(g)
				for _, v := range neighborsOf(k) {
					if !st.IsDecided(v) {
						local.set(int64(v))
					}
				}
			}
			merged := fab.AllReduceBitmap(local.words)
			bits = bitset{words: merged}
			for k := 0; k < localN; k++ {
				if visited[k] {
					continue
				}
				g := scheme.ToGlobal(V(k))
				if st.IsDecided(g) {
					continue
				}
				if bits.get(int64(g)) {
					visited[k] = true
					next = append(next, g)
				}
			}
		}

		gained := fab.AllReduceSum(len(next))
		if gained == 0 {
			break
		}

		// Mode-switch evaluation, collective so every rank agrees.
		if curMode == topDown {
			nextEdges := 0
			for _, g := range next {
				nextEdges += int(degreeOf(scheme.ToLocal(g)))
			}
			globalNextEdges := int64(fab.AllReduceSum(nextEdges))
			if globalNextEdges*th.Alpha > totalEdges && totalEdges > 0 {
				curMode = bottomUp
				haveBitmap = false
			}
		}
		level++
		globalFrontierSize := fab.AllReduceSum(len(next))
		if curMode != bitmapExchange && (level > th.LevelSwitch || globalFrontierSize > th.SizeSwitch) {
			curMode = bitmapExchange
		}

		frontier = next
	}

	return visited
}

func refreshBitmap[V csr.Vertex](fab *fabric.Fabric, n int64, scheme interface {
	ToGlobal(V) V
}, visited []bool) bitset {
	local := newBitset(int(n))
	for k, v := range visited {
		if v {
			local.set(int64(scheme.ToGlobal(V(k))))
		}
	}
	merged := fab.AllReduceBitmap(local.words)
	return bitset{words: merged}
}
