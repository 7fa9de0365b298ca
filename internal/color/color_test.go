package color

import (
	"sync"
	"testing"

	"github.com/dreamware/kaspan/internal/csr"
	"github.com/dreamware/kaspan/internal/fabric"
	"github.com/dreamware/kaspan/internal/partition"
	"github.com/dreamware/kaspan/internal/sccstate"
)

// Two disjoint triangles {0,1,2} and {3,4,5}, single rank.
func buildTwoTriangles(t *testing.T) csr.GraphPart[int64, int64] {
	t.Helper()
	fwHead := []int64{0, 1, 2, 3, 4, 5, 6}
	fwAdj := []int64{1, 2, 0, 4, 5, 3}
	bwHead := []int64{0, 1, 2, 3, 4, 5, 6}
	bwAdj := []int64{2, 0, 1, 5, 3, 4}
	fw := csr.New[int64, int64](6, 6, fwHead, fwAdj)
	bw := csr.New[int64, int64](6, 6, bwHead, bwAdj)
	scheme := partition.NewSingle[int64](6)
	return csr.NewGraphPart(scheme, fw, bw)
}

func TestPassSplitsTwoTriangles(t *testing.T) {
	gp := buildTwoTriangles(t)
	st := sccstate.New(gp.Scheme)
	fabs := fabric.NewWorld(1)

	Pass(fabs[0], st, gp)

	if st.SccID[0] != st.SccID[1] || st.SccID[1] != st.SccID[2] {
		t.Fatalf("triangle {0,1,2} must share a representative, got %v", st.SccID[:3])
	}
	if st.SccID[3] != st.SccID[4] || st.SccID[4] != st.SccID[5] {
		t.Fatalf("triangle {3,4,5} must share a representative, got %v", st.SccID[3:])
	}
	if st.SccID[0] == st.SccID[3] {
		t.Fatal("the two triangles must not merge into one SCC")
	}
	if st.SccID[0] != 0 || st.SccID[3] != 3 {
		t.Fatalf("representative must be the smallest id in each class, got %d and %d", st.SccID[0], st.SccID[3])
	}
}

func TestPropagateSkipsDecidedVertices(t *testing.T) {
	gp := buildTwoTriangles(t)
	st := sccstate.New(gp.Scheme)
	st.Assign(0, 0) // pre-decide vertex 0 out from under the pass
	fabs := fabric.NewWorld(1)

	label := Propagate(fabs[0], st, gp)
	// With 0 decided, the edges 2->0 and 0->1 are skipped, so label 0
	// never reaches 1 or 2; the only live edge in the triangle, 1->2,
	// carries label 1 onto vertex 2.
	if label[1] != 1 || label[2] != 1 {
		t.Fatalf("label[1], label[2] = %d, %d, want 1, 1", label[1], label[2])
	}
}

func TestPassDistributedTwoRanks(t *testing.T) {
	// Triangle 0,1,2 split across two ranks with a cyclic scheme:
	// rank 0 owns 0,2 and rank 1 owns 1.
	const world = 2
	fabs := fabric.NewWorld(world)

	fw0 := csr.New[int64, int64](2, 2, []int64{0, 1, 2}, []int64{1, 0})
	bw0 := csr.New[int64, int64](2, 2, []int64{0, 1, 2}, []int64{2, 1})
	fw1 := csr.New[int64, int64](1, 1, []int64{0, 1}, []int64{2})
	bw1 := csr.New[int64, int64](1, 1, []int64{0, 1}, []int64{0})

	results := make([][]int64, world)
	var wg sync.WaitGroup
	for r := 0; r < world; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			scheme := partition.NewCyclic[int64](3, world, r)
			var gp csr.GraphPart[int64, int64]
			if r == 0 {
				gp = csr.NewGraphPart(scheme, fw0, bw0)
			} else {
				gp = csr.NewGraphPart(scheme, fw1, bw1)
			}
			st := sccstate.New(scheme)
			Pass(fabs[r], st, gp)
			results[r] = st.SccID
		}(r)
	}
	wg.Wait()

	// rank0 locals are global 0,2; rank1 local is global 1. All three
	// must share representative 0.
	if results[0][0] != 0 || results[0][1] != 0 {
		t.Fatalf("rank0 sccid = %v, want both 0", results[0])
	}
	if results[1][0] != 0 {
		t.Fatalf("rank1 sccid = %v, want 0", results[1])
	}
}
