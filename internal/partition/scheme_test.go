package partition

import "testing"

func roundTrip[V Vertex](t *testing.T, s Scheme[V]) {
	t.Helper()
	n := s.LocalN()
	for k := V(0); k < n; k++ {
		u := s.ToGlobal(k)
		if !s.HasLocal(u) {
			t.Fatalf("ToGlobal(%d)=%d not HasLocal on rank %d", k, u, s.Rank())
		}
		if got := s.ToLocal(u); got != k {
			t.Fatalf("ToLocal(ToGlobal(%d))=%d, want %d", k, got, k)
		}
		if got := s.WorldRankOf(u); got != s.Rank() {
			t.Fatalf("WorldRankOf(%d)=%d, want owning rank %d", u, got, s.Rank())
		}
	}
}

func TestSingleScheme(t *testing.T) {
	s := NewSingle[int64](10)
	if s.LocalN() != 10 {
		t.Fatalf("LocalN = %d, want 10", s.LocalN())
	}
	if !s.Continuous() || !s.Ordered() {
		t.Fatal("single scheme must be continuous and ordered")
	}
	roundTrip(t, s)
}

func TestCyclicScheme(t *testing.T) {
	const n, world = 17, 4
	var total int64
	for r := 0; r < world; r++ {
		s := NewCyclic[int64](n, world, r)
		total += s.LocalN()
		roundTrip(t, s)
		for u := int64(0); u < n; u++ {
			if s.WorldRankOf(u) != int(u%world) {
				t.Fatalf("world_rank_of(%d) = %d, want %d", u, s.WorldRankOf(u), u%world)
			}
		}
	}
	if total != n {
		t.Fatalf("sum of LocalN = %d, want %d", total, n)
	}
}

func TestBlockCyclicScheme(t *testing.T) {
	const n, world, block = 29, 3, 4
	var total int64
	for r := 0; r < world; r++ {
		s := NewBlockCyclic[int64](n, world, r, block)
		total += s.LocalN()
		roundTrip(t, s)
	}
	if total != n {
		t.Fatalf("sum of LocalN = %d, want %d", total, n)
	}
	for u := int64(0); u < n; u++ {
		want := int((u / block) % world)
		s := NewBlockCyclic[int64](n, world, want, block)
		if !s.HasLocal(u) {
			t.Fatalf("block-cyclic: vertex %d expected on rank %d", u, want)
		}
	}
}

func TestTrivialSliceScheme(t *testing.T) {
	const n, world = 10, 3
	var total int64
	var prevEnd int64
	for r := 0; r < world; r++ {
		s := NewTrivialSlice[int64](n, world, r)
		if s.Begin() != prevEnd {
			t.Fatalf("rank %d begin = %d, want %d", r, s.Begin(), prevEnd)
		}
		prevEnd = s.End()
		total += s.LocalN()
		roundTrip(t, s)
	}
	if prevEnd != n {
		t.Fatalf("final end = %d, want %d", prevEnd, n)
	}
	if total != n {
		t.Fatalf("sum of LocalN = %d, want %d", total, n)
	}
}

func TestBalancedSliceScheme(t *testing.T) {
	const n, world = 10, 3
	var total int64
	var prevEnd int64
	counts := make([]int64, world)
	for r := 0; r < world; r++ {
		s := NewBalancedSlice[int64](n, world, r)
		if s.Begin() != prevEnd {
			t.Fatalf("rank %d begin = %d, want %d", r, s.Begin(), prevEnd)
		}
		prevEnd = s.End()
		counts[r] = s.LocalN()
		total += s.LocalN()
		roundTrip(t, s)
	}
	if prevEnd != n {
		t.Fatalf("final end = %d, want %d", prevEnd, n)
	}
	if total != n {
		t.Fatalf("sum of LocalN = %d, want %d", total, n)
	}
	// first n mod W ranks get base+1, the rest get base.
	base, rem := int64(n/world), int64(n%world)
	for r := 0; r < world; r++ {
		want := base
		if int64(r) < rem {
			want = base + 1
		}
		if counts[r] != want {
			t.Fatalf("rank %d got %d vertices, want %d", r, counts[r], want)
		}
	}
}

func TestInt32Vertices(t *testing.T) {
	type vid = int32
	s := NewBalancedSlice[vid](7, 2, 0)
	roundTrip(t, s)
}
