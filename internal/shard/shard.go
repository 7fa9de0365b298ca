package shard

import (
	"fmt"
	"sync"
)

// Shard holds one rank's scc_id results as they are assigned during a run,
// indexed by local vertex position (the same indexing engine.SCC's returned
// slice uses). It exists for the networked rankd deployment, where a rank's
// HTTP handlers need a concurrency-safe place to read partial progress and
// write the final assignment; it plays no part in the in-process path.
type Shard struct {
	mu     sync.RWMutex
	sccID  []int64
	done   bool
	RankID int
}

// NewShard allocates a shard sized for localN local vertices, all
// initially unassigned (represented as -1).
func NewShard(rankID int, localN int64) *Shard {
	ids := make([]int64, localN)
	for i := range ids {
		ids[i] = -1
	}
	return &Shard{RankID: rankID, sccID: ids}
}

// Set records the scc_id decided for a local vertex.
func (s *Shard) Set(local int64, sccID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if local < 0 || int(local) >= len(s.sccID) {
		return fmt.Errorf("local vertex %d out of range [0, %d)", local, len(s.sccID))
	}
	s.sccID[local] = sccID
	return nil
}

// Get returns the scc_id for a local vertex and whether it has been
// assigned yet.
func (s *Shard) Get(local int64) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if local < 0 || int(local) >= len(s.sccID) {
		return 0, false
	}
	id := s.sccID[local]
	return id, id >= 0
}

// Snapshot returns a copy of the full local scc_id array, safe to hand to a
// JSON encoder concurrently with further Set calls.
func (s *Shard) Snapshot() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int64, len(s.sccID))
	copy(out, s.sccID)
	return out
}

// MarkDone flags the shard's run as finished; Done reports it.
func (s *Shard) MarkDone() {
	s.mu.Lock()
	s.done = true
	s.mu.Unlock()
}

// Done reports whether MarkDone has been called.
func (s *Shard) Done() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.done
}

// Len returns the number of local vertices this shard tracks.
func (s *Shard) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sccID)
}
