package allgather

import (
	"testing"

	"github.com/dreamware/kaspan/internal/csr"
	"github.com/dreamware/kaspan/internal/fabric"
	"github.com/dreamware/kaspan/internal/partition"
	"github.com/dreamware/kaspan/internal/sccstate"
)

func TestBuildSingleRankInducedSubgraph(t *testing.T) {
	// 4-vertex chain 0->1->2->3; vertex 0 already decided (trimmed),
	// leaving {1,2,3} undecided.
	fwHead := []int64{0, 1, 2, 3, 3}
	fwAdj := []int64{1, 2, 3}
	bwHead := []int64{0, 0, 1, 2, 3}
	bwAdj := []int64{0, 1, 2}
	fw := csr.New[int64, int64](4, 3, fwHead, fwAdj)
	bw := csr.New[int64, int64](4, 3, bwHead, bwAdj)
	scheme := partition.NewSingle[int64](4)
	gp := csr.NewGraphPart(scheme, fw, bw)
	st := sccstate.New(scheme)
	st.Assign(0, 0)

	fabs := fabric.NewWorld(1)
	sub := Build(fabs[0], st, gp)

	if len(sub.SuperIDs) != 3 {
		t.Fatalf("sub_n = %d, want 3", len(sub.SuperIDs))
	}
	want := map[int64]bool{1: true, 2: true, 3: true}
	for _, id := range sub.SuperIDs {
		if !want[id] {
			t.Fatalf("unexpected super id %d in sub-graph", id)
		}
	}
	if sub.Fw.M != 2 {
		t.Fatalf("sub_m = %d, want 2 (edges 1->2, 2->3, since 0 is excluded)", sub.Fw.M)
	}
	if err := sub.Fw.Validate(); err != nil {
		t.Fatalf("forward sub-CSR invalid: %v", err)
	}
	if err := sub.Bw.Validate(); err != nil {
		t.Fatalf("backward sub-CSR invalid: %v", err)
	}
}

func TestBuildEmptyWhenAllDecided(t *testing.T) {
	fw := csr.New[int64, int64](2, 0, []int64{0, 0, 0}, nil)
	bw := csr.New[int64, int64](2, 0, []int64{0, 0, 0}, nil)
	scheme := partition.NewSingle[int64](2)
	gp := csr.NewGraphPart(scheme, fw, bw)
	st := sccstate.New(scheme)
	st.Assign(0, 0)
	st.Assign(1, 1)

	fabs := fabric.NewWorld(1)
	sub := Build(fabs[0], st, gp)
	if len(sub.SuperIDs) != 0 {
		t.Fatalf("expected empty sub-graph, got %d vertices", len(sub.SuperIDs))
	}
}
