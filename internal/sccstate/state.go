package sccstate

import (
	"github.com/dreamware/kaspan/internal/fabric"
	"github.com/dreamware/kaspan/internal/partition"
)

// Decided is one vertex's committed representative, the payload shape
// all-gathered between ranks when new decisions need to become visible
// to remote neighbor-list scans.
type Decided[V partition.Vertex] struct {
	Vertex V
	Rep    V
}

// State is the scc_id array for one rank plus the remote-decision cache
// that lets it answer "is this (possibly remote) vertex decided yet"
// without ever reading another rank's memory directly — the cache is
// populated exclusively through SyncRemote's all-gather.
type State[V partition.Vertex] struct {
	Scheme partition.Scheme[V]
	SccID  []V

	remote  map[V]V
	pending []Decided[V]
}

// New builds a State with every local entry set to the UNDECIDED
// sentinel, as the driver is required to hand the engine.
func New[V partition.Vertex](scheme partition.Scheme[V]) *State[V] {
	n := scheme.LocalN()
	id := make([]V, n)
	u := partition.Undecided[V]()
	for i := range id {
		id[i] = u
	}
	return &State[V]{Scheme: scheme, SccID: id, remote: make(map[V]V)}
}

// IsDecided reports whether global vertex u (local or remote) has been
// assigned a representative.
func (s *State[V]) IsDecided(u V) bool {
	if s.Scheme.HasLocal(u) {
		return s.SccID[s.Scheme.ToLocal(u)] != partition.Undecided[V]()
	}
	_, ok := s.remote[u]
	return ok
}

// RepOf returns the representative of global vertex u and whether it has
// been decided yet.
func (s *State[V]) RepOf(u V) (V, bool) {
	if s.Scheme.HasLocal(u) {
		r := s.SccID[s.Scheme.ToLocal(u)]
		if r == partition.Undecided[V]() {
			return 0, false
		}
		return r, true
	}
	r, ok := s.remote[u]
	return r, ok
}

// Assign commits local index k to representative rep if and only if it
// is still UNDECIDED, preserving the write-monotonicity invariant; it
// reports whether the assignment happened.
func (s *State[V]) Assign(k V, rep V) bool {
	if s.SccID[k] != partition.Undecided[V]() {
		return false
	}
	s.SccID[k] = rep
	s.pending = append(s.pending, Decided[V]{Vertex: s.Scheme.ToGlobal(k), Rep: rep})
	return true
}

// LocalDecidedCount returns how many local vertices have been assigned.
func (s *State[V]) LocalDecidedCount() int {
	cnt := 0
	u := partition.Undecided[V]()
	for _, x := range s.SccID {
		if x != u {
			cnt++
		}
	}
	return cnt
}

// SyncRemote all-gathers every rank's assignments made since the last
// call and merges the remote ones into this rank's cache, making them
// visible to IsDecided/RepOf for neighbor-list scans that cross a rank
// boundary.
func (s *State[V]) SyncRemote(fab *fabric.Fabric) {
	all := fabric.AllGather(fab, s.pending)
	for _, d := range all {
		if !s.Scheme.HasLocal(d.Vertex) {
			s.remote[d.Vertex] = d.Rep
		}
	}
	s.pending = s.pending[:0]
}

// GlobalDecidedCount all-reduces LocalDecidedCount across the world.
func (s *State[V]) GlobalDecidedCount(fab *fabric.Fabric) int {
	return fab.AllReduceSum(s.LocalDecidedCount())
}
