package backward

import "github.com/dreamware/kaspan/internal/csr"

// BuildLocal computes the transpose of a single-rank forward CSR with the
// classic three-pass counting-sort construction: count in-degrees, prefix-
// sum them into row ends, then scatter each edge into its row while
// moving that row's entry back to its start. Running time is O(n+m); the
// head array doubles as the scatter cursor, so nothing is allocated
// beyond the two output arrays.
func BuildLocal[V csr.Vertex, I csr.Index](fw csr.Graph[V, I]) csr.Graph[V, I] {
	n, m := fw.N, fw.M
	bwHead := make([]I, int(n)+1)

	// Pass 1: count in-degrees into bwHead[v].
	for _, v := range fw.Adj {
		bwHead[v]++
	}

	// Pass 2: inclusive prefix-sum, so bwHead[v] is the end of row v;
	// bwHead[n] == m afterward.
	for v := V(1); v <= n; v++ {
		bwHead[v] += bwHead[v-1]
	}

	// Pass 3: scatter each (u, v) edge into row v from the back, walking
	// sources in descending order so every row ends up ascending; each
	// bwHead[v] is left at the start of row v.
	bwAdj := make([]V, m)
	for u := n - 1; u >= 0; u-- {
		nbrs := fw.Neighbors(u)
		for i := len(nbrs) - 1; i >= 0; i-- {
			v := nbrs[i]
			bwHead[v]--
			bwAdj[bwHead[v]] = u
		}
	}

	return csr.New(n, m, bwHead, bwAdj)
}
