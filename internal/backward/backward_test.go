package backward

import (
	"sync"
	"testing"

	"github.com/dreamware/kaspan/internal/csr"
	"github.com/dreamware/kaspan/internal/fabric"
	"github.com/dreamware/kaspan/internal/partition"
)

func TestBuildLocalIsExactTranspose(t *testing.T) {
	// 0->1, 0->2, 1->2, 2->0
	fw := csr.New[int64, int64](3, 4, []int64{0, 2, 3, 4}, []int64{1, 2, 2, 0})
	bw := BuildLocal(fw)
	if err := bw.Validate(); err != nil {
		t.Fatalf("transpose failed validation: %v", err)
	}
	wantIn := map[int64][]int64{0: {2}, 1: {0}, 2: {0, 1}}
	for v, want := range wantIn {
		got := append([]int64(nil), bw.Neighbors(v)...)
		if len(got) != len(want) {
			t.Fatalf("in-neighbors(%d) = %v, want %v", v, got, want)
		}
		seen := map[int64]bool{}
		for _, u := range got {
			seen[u] = true
		}
		for _, u := range want {
			if !seen[u] {
				t.Fatalf("in-neighbors(%d) = %v, missing %d", v, got, u)
			}
		}
	}
}

func TestBuildDistributedMatchesSingleRank(t *testing.T) {
	// Same graph as above, split across 2 ranks with a cyclic scheme:
	// rank 0 owns {0, 2}, rank 1 owns {1}.
	const n, world = 3, 2
	fabs := fabric.NewWorld(world)

	// local forward edges per rank, in terms of local rows k (owned
	// vertex = scheme.ToGlobal(k)):
	// rank0 owns 0,2: edges 0->1, 0->2, 2->0 => local rows [0: out{1,2}, 1(=vtx2): out{0}]
	// rank1 owns 1:   edge 1->2             => local rows [0(=vtx1): out{2}]
	fwByRank := []csr.Graph[int64, int64]{
		csr.New[int64, int64](2, 3, []int64{0, 2, 3}, []int64{1, 2, 0}),
		csr.New[int64, int64](1, 1, []int64{0, 1}, []int64{2}),
	}

	results := make([]csr.Graph[int64, int64], world)
	var wg sync.WaitGroup
	for r := 0; r < world; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			scheme := partition.NewCyclic[int64](n, world, r)
			results[r] = BuildDistributed(fabs[r], scheme, fwByRank[r])
		}(r)
	}
	wg.Wait()

	// rank 0 owns global vertices 0, 2. in-neighbors(0) = {2}, in-neighbors(2) = {0, 1}.
	bw0 := results[0]
	if bw0.Degree(0) != 1 || bw0.Neighbors(0)[0] != 2 {
		t.Fatalf("rank0 in-neighbors(0) = %v, want [2]", bw0.Neighbors(0))
	}
	if bw0.Degree(1) != 2 {
		t.Fatalf("rank0 in-neighbors(2) degree = %d, want 2", bw0.Degree(1))
	}

	// rank 1 owns global vertex 1. in-neighbors(1) = {0}.
	bw1 := results[1]
	if bw1.Degree(0) != 1 || bw1.Neighbors(0)[0] != 0 {
		t.Fatalf("rank1 in-neighbors(1) = %v, want [0]", bw1.Neighbors(0))
	}
}
